// Package docs registers the OpenAPI document served at /swagger/doc.json.
// It mirrors the swag annotations on the handlers in package server and is
// maintained by hand alongside them; running swag init over the server
// package regenerates an equivalent file.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "segmentd maintainers"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/content-angles": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "List content angles",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/server.ContentAnglesResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "system"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/server.HealthResponse"
                        }
                    }
                }
            }
        },
        "/segment/classify": {
            "post": {
                "description": "Accepts a signal vector or a demo_mode and returns the segment classification.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "classification"
                ],
                "summary": "Classify a visitor session",
                "parameters": [
                    {
                        "description": "Signals or demo mode",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/server.ClassifyRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/server.ClassifyResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/server.ClassifyResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/server.ClassifyResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/server.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/server.ClassifyResponse"
                        }
                    }
                }
            }
        },
        "/segments": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "List customer segments",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/server.SegmentsResponse"
                        }
                    }
                }
            }
        },
        "/ws/segment/classify": {
            "get": {
                "description": "Upgrades to a WebSocket. Every text frame is a ClassifyRequest and is answered with one ClassifyResponse frame. Frames share the client's rate limit; an over-limit frame is answered with an error envelope.",
                "tags": [
                    "classification"
                ],
                "summary": "Stream classifications over a WebSocket",
                "responses": {
                    "101": {
                        "description": "Switching Protocols"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            }
        }
    },
    "definitions": {
        "segment.ClassificationResult": {
            "type": "object",
            "properties": {
                "classification_factors": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "confidence_score": {
                    "type": "number"
                },
                "consultation_readiness_score": {
                    "type": "number"
                },
                "content_angle": {
                    "type": "string"
                },
                "primary_segment": {
                    "type": "string"
                },
                "segment_probabilities": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "number"
                    }
                }
            }
        },
        "segment.ContentAngle": {
            "type": "object",
            "properties": {
                "description": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "themes": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "segment.SegmentDefinition": {
            "type": "object",
            "properties": {
                "characteristics": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "description": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "key_signals": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "name": {
                    "type": "string"
                },
                "thresholds": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "number"
                    }
                }
            }
        },
        "server.ClassifyRequest": {
            "type": "object",
            "properties": {
                "demo_mode": {
                    "type": "string",
                    "example": "heritage"
                },
                "session_id": {
                    "type": "string",
                    "example": "sess_42"
                },
                "signals": {
                    "type": "object",
                    "additionalProperties": {}
                }
            }
        },
        "server.ClassifyResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/segment.ClassificationResult"
                },
                "demo_mode": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "processing_time_ms": {
                    "type": "number"
                },
                "request_id": {
                    "type": "string"
                },
                "session_id": {
                    "type": "string"
                },
                "success": {
                    "type": "boolean"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "server.ContentAnglesResponse": {
            "type": "object",
            "properties": {
                "content_angles": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/segment.ContentAngle"
                    }
                }
            }
        },
        "server.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "rate limit exceeded"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "server.HealthResponse": {
            "type": "object",
            "properties": {
                "service": {
                    "type": "string",
                    "example": "segmentd"
                },
                "status": {
                    "type": "string",
                    "example": "healthy"
                },
                "version": {
                    "type": "string",
                    "example": "1.0.0"
                }
            }
        },
        "server.SegmentsResponse": {
            "type": "object",
            "properties": {
                "segments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/segment.SegmentDefinition"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "segmentd API",
	Description:      "Classifies visitor sessions into customer segments from behavioral signals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
