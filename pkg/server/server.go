// Package server exposes the formatter over HTTP.
//
// Routes:
//
//	POST /v1/format  {"source": "...", "width": 80, "indent": 3, "policy": "max"}
//	GET  /healthz
//
// Every response carries an X-Request-ID header. Errors are returned as
// {"error": {"code": "...", "message": "..."}, "request_id": "..."} with a
// status derived from the error code.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lamafmt/pkg/buildinfo"
	lerrors "github.com/matzehuels/lamafmt/pkg/errors"
	"github.com/matzehuels/lamafmt/pkg/pipeline"
)

// MaxBodyBytes bounds request bodies. It leaves room for JSON escaping of a
// source of the maximum accepted size.
const MaxBodyBytes = 2*lerrors.MaxSourceBytes + 4096

// Server serves formatting requests through a pipeline.Runner.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	timeout  time.Duration
}

// New creates a server. defaults supplies the options a request leaves unset.
func New(runner *pipeline.Runner, logger *log.Logger, defaults pipeline.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:   runner,
		logger:   logger,
		defaults: defaults,
		timeout:  30 * time.Second,
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/format", s.handleFormat)
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		s.logger.Info("server stopped")
		return nil
	}
}

// FormatRequest is the body of POST /v1/format.
type FormatRequest struct {
	Source string `json:"source"`
	Width  int    `json:"width,omitempty"`
	Indent int    `json:"indent,omitempty"`
	Policy string `json:"policy,omitempty"`
}

// FormatResponse is the successful reply of POST /v1/format.
type FormatResponse struct {
	Formatted  string `json:"formatted"`
	Changed    bool   `json:"changed"`
	Candidates int    `json:"candidates"`
	Height     int    `json:"height"`
	Cached     bool   `json:"cached"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

// ErrorBody describes a failure.
type ErrorBody struct {
	Code    lerrors.Code `json:"code"`
	Message string       `json:"message"`
	Line    int          `json:"line,omitempty"`
	Column  int          `json:"column,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": info.Version,
		"commit":  info.Commit,
		"built":   info.Built,
	})
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, lerrors.Wrap(lerrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	opts := s.defaults
	if req.Width != 0 {
		opts.Width = req.Width
	}
	if req.Indent != 0 {
		opts.Indent = req.Indent
	}
	if req.Policy != "" {
		opts.Policy = req.Policy
	}

	res, err := s.runner.Format(r.Context(), req.Source, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FormatResponse{
		Formatted:  res.Formatted,
		Changed:    res.Changed,
		Candidates: res.Candidates,
		Height:     res.Height,
		Cached:     res.Cached,
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := lerrors.GetCode(err)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		code = lerrors.ErrCodeTimeout
	case code == "":
		code = lerrors.ErrCodeInternal
	}
	status := statusFor(code)
	body := ErrorBody{Code: code, Message: lerrors.UserMessage(err)}

	var syn *lerrors.SyntaxError
	if errors.As(err, &syn) {
		body.Message = syn.Message
		body.Line, body.Column = syn.Line, syn.Column
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", RequestIDFromContext(r.Context()), "err", err)
		body.Message = "internal error"
	}
	writeJSON(w, status, ErrorResponse{
		Error:     body,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code lerrors.Code) int {
	switch code {
	case lerrors.ErrCodeInvalidInput, lerrors.ErrCodeInvalidWidth, lerrors.ErrCodeInvalidIndent,
		lerrors.ErrCodeInvalidPolicy, lerrors.ErrCodeInvalidPath, lerrors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case lerrors.ErrCodeParse, lerrors.ErrCodeEmptyCandidateSet:
		return http.StatusUnprocessableEntity
	case lerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case lerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
