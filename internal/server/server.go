// Package server implements the maskcompo preview server.
//
// Routes:
//
//	GET /healthz                                 liveness and version
//	GET /components                              registered components
//	GET /components/{name}                       layers, marks and options
//	GET /components/{name}/render.{format}       rendered artifact
//	GET /components/{name}/tree.{format}         hierarchy diagram (svg, dot)
//
// Query parameters on the render and tree routes are component options
// (?bend_radius=20&dtheta=90deg). Omitted required options use browser
// defaults. The render route also accepts the render settings scale,
// arc_step, marks, outlines and refresh.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/maskcompo/pkg/buildinfo"
	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/pipeline"
)

// ShutdownTimeout bounds how long in-flight requests may run after the
// server context is cancelled.
const ShutdownTimeout = 10 * time.Second

// renderSettings are query keys consumed by the render route itself rather
// than passed to the component.
var renderSettings = map[string]bool{
	"scale":    true,
	"arc_step": true,
	"marks":    true,
	"outlines": true,
	"refresh":  true,
}

// Server serves component previews from a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	base   pipeline.Options
	logger *log.Logger
	router chi.Router
}

// New creates a server. base carries default render settings (typically
// from maskcompo.toml); requests override them per call.
func New(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, base: base, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/components", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Get("/{name}", s.handleDescribe)
		r.Get("/{name}/render.{format}", s.handleRender)
		r.Get("/{name}/tree.{format}", s.handleTree)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving previews", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

type componentSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	names := s.runner.Registry.Names()
	out := make([]componentSummary, 0, len(names))
	for _, name := range names {
		b, err := s.runner.Registry.Get(name)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, componentSummary{Name: name, Description: b.Spec().Description})
	}
	writeJSON(w, http.StatusOK, out)
}

type componentDetail struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Layers      []compo.Layer  `json:"layers"`
	Marks       []compo.Mark   `json:"marks"`
	Options     []compo.Option `json:"options"`
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	b, err := s.runner.Registry.Get(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	spec := b.Spec()
	writeJSON(w, http.StatusOK, componentDetail{
		Name:        spec.Name,
		Description: spec.Description,
		Layers:      nonNil(spec.Layers),
		Marks:       nonNil(spec.Marks),
		Options:     nonNil(spec.Options),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	query := r.URL.Query()
	params, err := componentParams(query, renderSettings)
	if err != nil {
		writeError(w, err)
		return
	}

	opts := s.base
	opts.Component = chi.URLParam(r, "name")
	opts.Params = params
	opts.Browser = true
	opts.Formats = []string{format}
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	if err := applyRenderSettings(&opts, query); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writeArtifact(w, format, res.Artifacts[format])
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format != pipeline.FormatSVG && format != "dot" {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat,
			"invalid tree format: %q (must be one of: svg, dot)", format))
		return
	}

	query := r.URL.Query()
	params, err := componentParams(query, map[string]bool{"detailed": true, "primitives": true})
	if err != nil {
		writeError(w, err)
		return
	}
	detailed, err := queryBool(query, "detailed")
	if err != nil {
		writeError(w, err)
		return
	}
	primitives, err := queryBool(query, "primitives")
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := s.runner.Tree(r.Context(), pipeline.TreeOptions{
		Component:  chi.URLParam(r, "name"),
		Params:     params,
		Browser:    true,
		Format:     format,
		Detailed:   detailed,
		Primitives: primitives,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if format == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	writeArtifact(w, format, data)
}

// =============================================================================
// Helpers
// =============================================================================

// componentParams collects component options from a query string, skipping
// reserved keys.
func componentParams(query url.Values, reserved map[string]bool) (compo.Params, error) {
	keys := make([]string, 0, len(query))
	for k := range query {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		if len(query[k]) > 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "option %q given more than once", k)
		}
		pairs = append(pairs, k+"="+query.Get(k))
	}
	return compo.ParseAssignments(pairs)
}

func applyRenderSettings(opts *pipeline.Options, query url.Values) error {
	if v := query.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
		opts.Scale = f
	}
	if v := query.Get("arc_step"); v != "" {
		f, err := compo.ParseValue(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "arc_step")
		}
		opts.ArcStep = f
	}
	for key, dst := range map[string]*bool{
		"marks":    &opts.Marks,
		"outlines": &opts.Outlines,
		"refresh":  &opts.Refresh,
	} {
		if _, ok := query[key]; !ok {
			continue
		}
		b, err := queryBool(query, key)
		if err != nil {
			return err
		}
		*dst = b
	}
	return nil
}

// queryBool treats a bare key (?marks) as true.
func queryBool(query url.Values, key string) (bool, error) {
	v, ok := query[key]
	if !ok {
		return false, nil
	}
	if len(v) == 0 || v[0] == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(v[0])
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid %s value %q", key, v[0])
	}
	return b, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeUnknownComponent), errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
