package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/netutil"

	"github.com/raysh454/segmentd/internal/demo"
	"github.com/raysh454/segmentd/internal/logging"
	"github.com/raysh454/segmentd/internal/segment"
	"github.com/raysh454/segmentd/internal/server"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 15 * time.Second

// Application is the runtime state container. It owns the catalog, the
// classifier and the HTTP server built from a Config; pass it around rather
// than using package-level variables.
type Application struct {
	Config     *Config
	Logger     logging.Logger
	Catalog    *segment.Catalog
	Classifier *segment.Classifier
	Demo       *demo.Generator
	Server     *server.Server
}

// NewApplication wires every component from cfg. A nil logger is replaced by
// a JSON stdout logger at the configured level.
func NewApplication(cfg *Config, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = logging.NewLogger(os.Stdout, cfg.Level(), "segmentd")
	}

	catalog, err := segment.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	classifier, err := segment.NewClassifier(catalog, logger)
	if err != nil {
		return nil, fmt.Errorf("creating classifier: %w", err)
	}

	gen := demo.NewGenerator(cfg.DemoConfig())

	srv, err := server.NewServer(cfg.ServerConfig(), classifier, gen, logger)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}

	return &Application{
		Config:     cfg,
		Logger:     logger,
		Catalog:    catalog,
		Classifier: classifier,
		Demo:       gen,
		Server:     srv,
	}, nil
}

// Run listens on the configured address and serves until ctx is done, then
// shuts the server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	if a == nil {
		return errors.New("application is nil")
	}

	ln, err := net.Listen("tcp", a.Config.ListenAddr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.Config.ListenAddr(), err)
	}
	return a.Serve(ctx, ln)
}

// Serve runs the HTTP server on ln until ctx is done.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	if a.Config.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, a.Config.MaxConnections)
	}

	httpSrv := a.Server.HTTPServer()
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening",
			logging.F("addr", ln.Addr().String()),
			logging.F("max_connections", a.Config.MaxConnections),
			logging.F("segments", len(a.Catalog.Segments())))
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("application shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("shutting down server", logging.Err(err))
		return fmt.Errorf("shutting down: %w", err)
	}
	a.Logger.Info("application stopped")
	return nil
}
