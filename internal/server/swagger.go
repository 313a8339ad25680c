package server

//go:generate swag init -g swagger.go -o docs --parseDependency --parseInternal

// @title segmentd API
// @version 1.0
// @description Classifies visitor sessions into customer segments from behavioral signals.
// @contact.name segmentd maintainers
// @BasePath /
