// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the publish pipeline over HTTP: an HTML form at /,
// a JSON endpoint at /create_doc, plus /healthz and /metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/promptdoc/internal/metrics"
	"github.com/pdiddy/promptdoc/internal/publish"
	"github.com/pdiddy/promptdoc/pkg/types"
)

const (
	DefaultAddr = ":5050"

	// DefaultTopic is used by /create_doc when the request names none.
	DefaultTopic = "the craft of clear writing"

	maxBodyBytes    = 64 * 1024
	shutdownTimeout = 10 * time.Second
)

// Publisher is the pipeline the handlers call. *publish.Publisher
// implements it.
type Publisher interface {
	Publish(ctx context.Context, req publish.Request) (*types.PublishedDoc, error)
}

// Config wires the server. Metrics and Logger are optional.
type Config struct {
	Publisher    Publisher
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
	DefaultTopic string
}

// Server holds the router and its collaborators.
type Server struct {
	cfg    Config
	router chi.Router
}

// New builds the router.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DefaultTopic == "" {
		cfg.DefaultTopic = DefaultTopic
	}
	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleForm)
	r.Post("/", s.handleForm)
	r.Post("/create_doc", s.handleCreateDoc)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.cfg.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// observe logs each request and counts it by route pattern and status.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		}
		s.cfg.Logger.Debug("request", "method", r.Method, "route", route, "status", status,
			"duration", time.Since(start), "request_id", middleware.GetReqID(r.Context()))
	})
}

var formTmpl = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>promptdoc</title>
<style>
body{font-family:system-ui,sans-serif;max-width:640px;margin:2rem auto;padding:0 1rem;color:#222}
label{display:block;margin-top:1rem}
input,select{width:100%;padding:.4rem}
.error{color:#b00020}
</style></head><body>
<h1>Generate a document</h1>
<form method="post" action="/">
<label>Topic <input name="topic" value="{{.Topic}}" required></label>
<label>Title (optional) <input name="title" value="{{.Title}}"></label>
<label>Kind <select name="kind">
{{- range .Kinds}}
<option value="{{.}}"{{if eq . $.Kind}} selected{{end}}>{{.}}</option>
{{- end}}
</select></label>
<p><button type="submit">Generate</button></p>
</form>
{{- if .URL}}
<p>Document created: <a href="{{.URL}}">{{.URL}}</a></p>
{{- end}}
{{- if .Error}}
<p class="error">{{.Error}}</p>
{{- end}}
</body></html>`))

type formView struct {
	Topic string
	Title string
	Kind  types.DocumentKind
	Kinds []types.DocumentKind
	URL   string
	Error string
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	view := formView{
		Kind:  types.KindAgreement,
		Kinds: []types.DocumentKind{types.KindAgreement, types.KindEssay},
	}
	status := http.StatusOK

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			view.Error = "invalid form"
			s.renderForm(w, http.StatusBadRequest, view)
			return
		}
		view.Topic = strings.TrimSpace(r.PostForm.Get("topic"))
		view.Title = strings.TrimSpace(r.PostForm.Get("title"))

		kind, err := types.ParseDocumentKind(r.PostForm.Get("kind"))
		switch {
		case err != nil:
			view.Error = err.Error()
			status = http.StatusBadRequest
		case view.Topic == "":
			view.Kind = kind
			view.Error = "Topic is required."
			status = http.StatusBadRequest
		default:
			view.Kind = kind
			doc, err := s.cfg.Publisher.Publish(r.Context(), publish.Request{Kind: kind, Topic: view.Topic, Title: view.Title})
			if err != nil {
				view.Error = err.Error()
				status = http.StatusInternalServerError
			} else {
				view.URL = doc.URL
			}
		}
	}
	s.renderForm(w, status, view)
}

func (s *Server) renderForm(w http.ResponseWriter, status int, view formView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := formTmpl.Execute(w, view); err != nil {
		s.cfg.Logger.Error("rendering form", "error", err)
	}
}

type createDocRequest struct {
	Topic string `json:"topic"`
	Title string `json:"title"`
	Kind  string `json:"kind"`
}

// handleCreateDoc publishes from a JSON body. Kind defaults to essay and a
// missing topic falls back to the configured default. An empty body is
// treated as an empty request.
func (s *Server) handleCreateDoc(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req createDocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		req.Topic = s.cfg.DefaultTopic
	}
	if req.Kind == "" {
		req.Kind = string(types.KindEssay)
	}
	kind, err := types.ParseDocumentKind(req.Kind)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	doc, err := s.cfg.Publisher.Publish(r.Context(), publish.Request{Kind: kind, Topic: req.Topic, Title: req.Title})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": doc.URL})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
