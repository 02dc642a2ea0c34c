// Package server exposes pathgrid over HTTP.
//
// Routes:
//
//	POST /path     one JSON wire.Request in, one wire.Response out
//	GET  /ws       websocket; every text message is a Request, every reply a Response
//	GET  /healthz  liveness check
//	GET  /metrics  Prometheus metrics
//
// Validation failures are ordinary responses (200 with status "error").
// Malformed bodies answer 400 and panics answer 500, both with the same envelope.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/pathgrid/config"
	"github.com/katalvlaran/pathgrid/pathfinder"
	"github.com/katalvlaran/pathgrid/wire"
)

const (
	URIPath    = "/path"
	URIWS      = "/ws"
	URIHealthz = "/healthz"
	URIMetrics = "/metrics"
)

const tracerName = "github.com/katalvlaran/pathgrid/server"

// bytesPerCell bounds the JSON size of one penalty value including separator.
const bytesPerCell = 24

// Server answers path queries for one Config.
type Server struct {
	cfg      config.Config
	log      log.FieldLogger
	opts     []pathfinder.Option
	maxBody  int64
	router   *way.Router
	upgrader websocket.Upgrader
	metrics  *metrics
	tracer   trace.Tracer

	// compute is wire.Handle outside of tests.
	compute func(wire.Request, ...pathfinder.Option) wire.Response
}

// New builds a Server. cfg must be valid.
func New(cfg config.Config, logger log.FieldLogger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("init server: %w", err)
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	s := &Server{
		cfg:     cfg,
		log:     logger,
		opts:    cfg.PathOptions(logger),
		maxBody: int64(cfg.MaxWidth)*int64(cfg.MaxHeight)*bytesPerCell + 4096,
		metrics: newMetrics(),
		tracer:  otel.Tracer(tracerName),
		compute: wire.Handle,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc(http.MethodPost, URIPath, s.handlePath())
	s.router.HandleFunc(http.MethodGet, URIWS, s.handleWS())
	s.router.HandleFunc(http.MethodGet, URIHealthz, s.handleHealthz())
	s.router.Handle(http.MethodGet, URIMetrics, promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
}

// Handler returns the routed handler with logging and panic recovery applied.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.recoverer(s.router))
}

// Run builds a logger and a Server from cfg and serves until ctx ends.
func Run(ctx context.Context, cfg config.Config) error {
	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	s, err := New(cfg, logger)
	if err != nil {
		return err
	}
	if err := s.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve pathgrid: %w", err)
	}
	return nil
}

// ListenAndServe listens on the configured address and serves until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends, then shuts down gracefully
// within the configured timeout. Open websockets are closed with GoingAway.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	s.log.WithField("addr", ln.Addr().String()).Info("pathgrid server listening")
	go func() {
		serveErr <- httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("pathgrid server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		err := httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// answer runs one query inside a span. A panic inside the search becomes an
// Internal response with status 500.
func (s *Server) answer(ctx context.Context, transport string, req wire.Request) (resp wire.Response, status int) {
	started := time.Now()
	_, span := s.tracer.Start(ctx, "pathgrid.Query", trace.WithAttributes(
		attribute.String("transport", transport),
		attribute.Int("width", req.Width),
		attribute.Int("height", req.Height),
		attribute.IntSlice("start", req.Start[:]),
		attribute.IntSlice("destination", req.Destination[:]),
	))
	defer func() {
		if rec := recover(); rec != nil {
			s.log.WithField("panic", rec).Error("query panicked")
			resp, status = wire.Failure(wire.KindInternal), http.StatusInternalServerError
		}
		s.record(span, transport, resp, started)
	}()
	return s.compute(req, s.opts...), http.StatusOK
}

// reject answers a request that could not be decoded.
func (s *Server) reject(ctx context.Context, transport string, err error) wire.Response {
	started := time.Now()
	_, span := s.tracer.Start(ctx, "pathgrid.Query", trace.WithAttributes(
		attribute.String("transport", transport),
	))
	span.RecordError(err)
	resp := wire.Failure(wire.Kind(err))
	s.record(span, transport, resp, started)
	return resp
}

func (s *Server) record(span trace.Span, transport string, resp wire.Response, started time.Time) {
	if resp.OK() {
		span.SetAttributes(attribute.Int("steps", len(resp.Path.Steps)))
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, resp.Comment)
	}
	span.End()
	s.metrics.observe(transport, resp, time.Since(started).Seconds())
}

func (s *Server) handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func (s *Server) handlePath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := wire.DecodeRequest(http.MaxBytesReader(w, r.Body, s.maxBody))
		if err != nil {
			s.log.WithError(err).Debug("rejecting request body")
			s.writeJSON(w, http.StatusBadRequest, s.reject(r.Context(), transportHTTP, err))
			return
		}
		resp, status := s.answer(r.Context(), transportHTTP, req)
		s.writeJSON(w, status, resp)
	}
}

func (s *Server) handleWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied to the client.
			s.log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		defer conn.Close()
		conn.SetReadLimit(s.maxBody)

		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-r.Context().Done():
				msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
				_ = conn.Close()
			case <-done:
			}
		}()

		s.metrics.wsSessions.Inc()
		defer s.metrics.wsSessions.Dec()
		logger := s.log.WithField("remote", r.RemoteAddr)
		logger.Debug("websocket opened")
		for {
			messageType, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.WithError(err).Warn("websocket read failed")
				}
				logger.Debug("websocket closed")
				return
			}
			var resp wire.Response
			if messageType != websocket.TextMessage {
				resp = s.reject(r.Context(), transportWS, fmt.Errorf("%w: binary message", wire.ErrBadRequest))
			} else if req, err := wire.DecodeRequest(bytes.NewReader(data)); err != nil {
				resp = s.reject(r.Context(), transportWS, err)
			} else {
				resp, _ = s.answer(r.Context(), transportWS, req)
			}
			if err := conn.WriteJSON(resp); err != nil {
				logger.WithError(err).Warn("websocket write failed")
				return
			}
		}
	}
}
