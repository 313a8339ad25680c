package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/raysh454/segmentd/internal/demo"
	"github.com/raysh454/segmentd/internal/logging"
	"github.com/raysh454/segmentd/internal/ratelimit"
	"github.com/raysh454/segmentd/internal/segment"

	_ "github.com/raysh454/segmentd/internal/server/docs" // registers the OpenAPI document
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// maxBodyBytes caps a classify request body.
const maxBodyBytes = 1 << 20

// Classifier is the classification contract the HTTP layer depends on.
type Classifier interface {
	Classify(signals segment.SignalVector) (*segment.ClassificationResult, error)
	Catalog() *segment.Catalog
}

// SignalSource produces demo signal vectors.
type SignalSource interface {
	Signals(mode demo.Mode) (segment.SignalVector, error)
}

// Server is the HTTP + WebSocket API surface of segmentd.
type Server struct {
	cfg        Config
	classifier Classifier
	demo       SignalSource
	router     chi.Router
	upgrader   websocket.Upgrader
	limiter    *ratelimit.Limiter
	validate   *validator.Validate
	logger     logging.Logger

	streamsMu sync.Mutex
	streams   map[*websocket.Conn]struct{}
	draining  bool
}

// NewServer creates a Server around classifier. source may be nil when demo
// mode is disabled.
func NewServer(cfg Config, classifier Classifier, source SignalSource, logger logging.Logger) (*Server, error) {
	if classifier == nil {
		return nil, errors.New("server: nil classifier")
	}
	if cfg.EnableDemoMode && source == nil {
		return nil, errors.New("server: demo mode enabled without a signal source")
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = DefaultConfig().AllowedOrigins
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}

	s := &Server{
		cfg:        cfg,
		classifier: classifier,
		demo:       source,
		router:     chi.NewRouter(),
		limiter:    ratelimit.New(cfg.RateLimit),
		validate:   newValidator(),
		logger:     logger.With(logging.F("component", "server")),
		streams:    make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(cfg.AllowedOrigins),
		},
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RequestID)
	if s.cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}).Handler)
	r.Use(s.limiter.Middleware(http.HandlerFunc(s.handleRateLimited)))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))

		r.Get("/health", s.handleHealth)
		r.Get("/segments", s.handleListSegments)
		r.Get("/content-angles", s.handleListContentAngles)
		r.Post("/segment/classify", s.handleClassify)
	})

	r.Get("/ws/segment/classify", s.handleClassifyWS)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

	s.router.ServeHTTP(ww, r)

	s.logger.Info("http_request",
		logging.F("method", r.Method),
		logging.F("path", r.URL.Path),
		logging.F("status", ww.Status()),
		logging.F("bytes", ww.BytesWritten()),
		logging.F("duration_ms", float64(time.Since(start).Microseconds())/1000))
}

// HTTPServer creates an *http.Server ready to Serve. Shutting it down also
// closes open WebSocket sessions, which http.Server does not track.
func (s *Server) HTTPServer() *http.Server {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      0, // websocket sessions are long-lived
	}
	srv.RegisterOnShutdown(s.CloseStreams)
	return srv
}

// CloseStreams sends a going-away close frame to every open WebSocket
// session, closes it, and refuses new sessions.
func (s *Server) CloseStreams() {
	s.streamsMu.Lock()
	s.draining = true
	conns := make([]*websocket.Conn, 0, len(s.streams))
	for c := range s.streams {
		conns = append(conns, c)
	}
	s.streamsMu.Unlock()

	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, c := range conns {
		_ = c.WriteControl(websocket.CloseMessage, msg, deadline)
		_ = c.Close()
	}
	if len(conns) > 0 {
		s.logger.Info("closed websocket sessions", logging.F("count", len(conns)))
	}
}

// trackStream registers c; it returns false once CloseStreams has run.
func (s *Server) trackStream(c *websocket.Conn) bool {
	s.streamsMu.Lock()
	defer s.streamsMu.Unlock()
	if s.draining {
		return false
	}
	s.streams[c] = struct{}{}
	return true
}

func (s *Server) untrackStream(c *websocket.Conn) {
	s.streamsMu.Lock()
	delete(s.streams, c)
	s.streamsMu.Unlock()
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: msg})
}

// --- HTTP handlers ---

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.Warn("rate limit exceeded", logging.F("client", ratelimit.ClientKey(r)), logging.F("path", r.URL.Path))
	w.Header().Set("Retry-After", "1")
	writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
}

// handleHealth godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Service: "segmentd", Version: Version})
}

// handleListSegments godoc
// @Summary List customer segments
// @Tags catalog
// @Produce json
// @Success 200 {object} SegmentsResponse
// @Router /segments [get]
func (s *Server) handleListSegments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SegmentsResponse{Segments: s.classifier.Catalog().Segments()})
}

// handleListContentAngles godoc
// @Summary List content angles
// @Tags catalog
// @Produce json
// @Success 200 {object} ContentAnglesResponse
// @Router /content-angles [get]
func (s *Server) handleListContentAngles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ContentAnglesResponse{ContentAngles: s.classifier.Catalog().ContentAngles()})
}

// handleClassify godoc
// @Summary Classify a visitor session
// @Description Accepts a signal vector or a demo_mode and returns the segment classification.
// @Tags classification
// @Accept json
// @Produce json
// @Param request body ClassifyRequest true "Signals or demo mode"
// @Success 200 {object} ClassifyResponse
// @Failure 400 {object} ClassifyResponse
// @Failure 403 {object} ClassifyResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ClassifyResponse
// @Router /segment/classify [post]
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.logger.Warn("decoding classify body", logging.Err(err))
		writeJSON(w, http.StatusBadRequest, ClassifyResponse{
			Success:   false,
			Error:     "invalid JSON",
			RequestID: uuid.NewString(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	status, resp := s.classify(&req)
	writeJSON(w, status, resp)
}

// handleClassifyWS godoc
// @Summary Stream classifications over a WebSocket
// @Description Upgrades to a WebSocket. Every text frame is a ClassifyRequest and is answered with one ClassifyResponse frame. Frames share the client's rate limit; an over-limit frame is answered with an error envelope.
// @Tags classification
// @Success 101 "Switching Protocols"
// @Failure 400 "Bad Request"
// @Router /ws/segment/classify [get]
func (s *Server) handleClassifyWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Err(err))
		return
	}
	defer conn.Close()
	if !s.trackStream(conn) {
		msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server shutting down")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		return
	}
	defer s.untrackStream(conn)
	conn.SetReadLimit(maxBodyBytes)

	s.logger.Info("websocket session opened", logging.F("client", ratelimit.ClientKey(r)))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && !s.isDraining() {
				s.logger.Warn("reading websocket frame", logging.Err(err))
			}
			return
		}

		var resp ClassifyResponse
		var req ClassifyRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			resp = ClassifyResponse{
				Success:   false,
				Error:     "invalid JSON",
				RequestID: uuid.NewString(),
				Timestamp: time.Now().UTC(),
			}
		} else if !s.limiter.Allow(ratelimit.ClientKey(r)) {
			resp = ClassifyResponse{
				Success:   false,
				Error:     "rate limit exceeded",
				RequestID: uuid.NewString(),
				SessionID: req.SessionID,
				Timestamp: time.Now().UTC(),
			}
		} else {
			_, resp = s.classify(&req)
		}

		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Warn("writing websocket frame", logging.Err(err))
			return
		}
	}
}

func (s *Server) isDraining() bool {
	s.streamsMu.Lock()
	defer s.streamsMu.Unlock()
	return s.draining
}

// classify validates req, resolves its signals and runs the classifier. It
// returns the HTTP status alongside the envelope.
func (s *Server) classify(req *ClassifyRequest) (int, ClassifyResponse) {
	start := time.Now()
	resp := ClassifyResponse{
		RequestID: uuid.NewString(),
		SessionID: req.SessionID,
		DemoMode:  req.DemoMode,
	}
	fail := func(status int, err error) (int, ClassifyResponse) {
		resp.Success = false
		resp.Error = err.Error()
		resp.ProcessingTimeMS = elapsedMS(start)
		resp.Timestamp = time.Now().UTC()
		s.logger.Warn("classification failed",
			logging.F("request_id", resp.RequestID),
			logging.F("status", status),
			logging.Err(err))
		return status, resp
	}

	if err := s.validateRequest(req); err != nil {
		return fail(http.StatusBadRequest, err)
	}

	signals, status, err := s.resolveSignals(req)
	if err != nil {
		return fail(status, err)
	}

	result, err := s.classifier.Classify(signals)
	if err != nil {
		if errors.Is(err, segment.ErrInvalidInput) {
			return fail(http.StatusBadRequest, err)
		}
		return fail(http.StatusInternalServerError, fmt.Errorf("classification failed: %w", err))
	}

	resp.Success = true
	resp.Data = result
	resp.ProcessingTimeMS = elapsedMS(start)
	resp.Timestamp = time.Now().UTC()

	s.logger.Info("classification complete",
		logging.F("request_id", resp.RequestID),
		logging.F("session_id", resp.SessionID),
		logging.F("demo_mode", resp.DemoMode),
		logging.F("primary_segment", result.PrimarySegment),
		logging.F("confidence", result.ConfidenceScore))
	return http.StatusOK, resp
}

// resolveSignals returns the vector to classify: a generated one in demo
// mode, otherwise the parsed and range-checked request signals.
func (s *Server) resolveSignals(req *ClassifyRequest) (segment.SignalVector, int, error) {
	if req.DemoMode != "" {
		if !s.cfg.EnableDemoMode {
			return nil, http.StatusForbidden, errors.New("demo mode is disabled")
		}
		mode, err := demo.ParseMode(req.DemoMode)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		v, err := s.demo.Signals(mode)
		if err != nil {
			return nil, http.StatusInternalServerError, fmt.Errorf("generating demo signals: %w", err)
		}
		return v, http.StatusOK, nil
	}

	v, err := segment.ParseSignals(req.Signals)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	if err := checkRanges(v); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return v, http.StatusOK, nil
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

// originChecker allows a websocket handshake from any configured origin, or
// from anywhere when "*" is configured. Requests without an Origin header are
// not browser requests and are allowed.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}
