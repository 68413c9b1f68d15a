// Package server serves ticket previews over HTTP.
//
// Every request draws with the same [pipeline.Job] the generate command
// would use, so a preview shows exactly what will be printed.
//
// Routes:
//
//	GET /healthz                     build info
//	GET /config                      effective configuration as JSON
//	GET /tickets/{number}/front.png  front of one ticket
//	GET /tickets/{number}/back.png   back of one ticket
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ticketsheet/pkg/buildinfo"
	"github.com/matzehuels/ticketsheet/pkg/errors"
	"github.com/matzehuels/ticketsheet/pkg/observability"
	"github.com/matzehuels/ticketsheet/pkg/pipeline"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	job        *pipeline.Job
	logger     *log.Logger
}

// New builds a server listening on addr that previews tickets of job.
func New(addr string, job *pipeline.Job, logger *log.Logger) *Server {
	s := &Server{job: job, logger: logger}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(s.logRequests)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(chimw.CleanPath)

	r.Get("/healthz", s.handleHealth)
	r.Get("/config", s.handleConfig)
	r.Route("/tickets/{number}", func(tr chi.Router) {
		tr.Get("/front.png", s.handleTicket(pipeline.SideFront))
		tr.Get("/back.png", s.handleTicket(pipeline.SideBack))
	})

	s.router = r
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", s.httpServer.Addr)
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down preview server")
	return s.httpServer.Shutdown(sctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.job.Config)
}

func (s *Server) handleTicket(side pipeline.Side) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := errors.ParseNumber(chi.URLParam(r, "number"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		img := s.job.Ticket(n, side)
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		if err := imaging.Encode(w, img, imaging.PNG); err != nil {
			observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
			s.logger.Error("encode preview", "number", n, "side", side, "err", err)
		}
	}
}

type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.IsInput(err) {
		status = http.StatusBadRequest
	} else {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", chimw.GetReqID(r.Context()), "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Error: errors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()))
	})
}
