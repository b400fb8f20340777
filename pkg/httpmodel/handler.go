// Package httpmodel serves generated model definitions over HTTP:
//
//	GET /models/{class}.js?dialect=touch2&minify=true
//
// The class segment is a source class name or an external model name.
// Responses carry the dialect's content type; generation happens through an
// orchestrator so repeated requests are served from its caches.
package httpmodel

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/render"
)

// ClassResolver finds the class descriptor served under a name.
// *classdesc.Catalog satisfies it.
type ClassResolver interface {
	Class(name string) (*classdesc.Class, bool)
}

// ResolverFunc adapts a function to ClassResolver.
type ResolverFunc func(name string) (*classdesc.Class, bool)

// Class implements ClassResolver.
func (f ResolverFunc) Class(name string) (*classdesc.Class, bool) {
	return f(name)
}

type namer interface {
	Names() []string
}

// Generator is the subset of the orchestrator the handler needs.
type Generator interface {
	GenerateSource(ctx context.Context, req orchestrator.Request) ([]byte, error)
	ContentType(dialect render.Dialect) (string, error)
}

// Option customises a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for failed requests.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithPrefix mounts the routes under prefix instead of /models.
func WithPrefix(prefix string) Option {
	return func(h *Handler) {
		h.prefix = "/" + strings.Trim(prefix, "/")
	}
}

// Handler routes model requests to a Generator.
type Handler struct {
	gen      Generator
	resolver ClassResolver
	logger   *slog.Logger
	prefix   string
	router   chi.Router
}

// New builds a Handler serving the classes known to resolver.
func New(gen Generator, resolver ClassResolver, options ...Option) *Handler {
	h := &Handler{
		gen:      gen,
		resolver: resolver,
		logger:   slog.New(slog.DiscardHandler),
		prefix:   "/models",
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}

	r := chi.NewRouter()
	r.Route(h.prefix, func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{file}", h.model)
	})
	h.router = r
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	if n, ok := h.resolver.(namer); ok {
		names = append(names, n.Names()...)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"models": names}); err != nil {
		h.logger.WarnContext(r.Context(), "httpmodel encode list", "error", err)
	}
}

func (h *Handler) model(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "file"), ".js")
	if !ok || name == "" {
		http.NotFound(w, r)
		return
	}
	class, found := h.resolver.Class(name)
	if !found {
		http.Error(w, "unknown model "+strconv.Quote(name), http.StatusNotFound)
		return
	}

	query := r.URL.Query()
	var dialect render.Dialect
	if raw := query.Get("dialect"); raw != "" {
		parsed, err := render.ParseDialect(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		dialect = parsed
	}
	minify := false
	if raw := query.Get("minify"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "minify must be a boolean", http.StatusBadRequest)
			return
		}
		minify = parsed
	}

	contentType, err := h.gen.ContentType(dialect)
	if err != nil {
		h.fail(w, r, name, err)
		return
	}
	output, err := h.gen.GenerateSource(r.Context(), orchestrator.Request{Class: class, Dialect: dialect, Minify: minify})
	if err != nil {
		h.fail(w, r, name, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(output)))
	if _, err := w.Write(output); err != nil {
		h.logger.WarnContext(r.Context(), "httpmodel write", "model", name, "error", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, name string, err error) {
	status := statusFor(err)
	h.logger.ErrorContext(r.Context(), "httpmodel generate", "model", name, "status", status, "error", err)
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, render.ErrUnknownDialect), errors.Is(err, render.ErrRendererNotFound):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInvalidMetadata):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
