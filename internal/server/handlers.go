package server

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/blockgraph/pkg/buildinfo"
	apperrors "github.com/matzehuels/blockgraph/pkg/errors"
	pkgio "github.com/matzehuels/blockgraph/pkg/io"
	"github.com/matzehuels/blockgraph/pkg/pipeline"
	"github.com/matzehuels/blockgraph/pkg/project"
	"github.com/matzehuels/blockgraph/pkg/store"
)

// Response headers set on rendered output.
const (
	HeaderRenderID    = "X-Render-ID"
	HeaderProjectHash = "X-Project-Hash"
	HeaderCache       = "X-Cache"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type listResponse struct {
	Renders []store.Artifact `json:"renders"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	p, err := readProject(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result, err := s.runner.Execute(ctx, p, opts)
	if err != nil {
		if ctx.Err() != nil && !apperrors.Is(err, apperrors.ErrCodeTimeout) {
			err = apperrors.Wrap(apperrors.ErrCodeTimeout, err, "render timed out")
		}
		s.writeError(w, err)
		return
	}

	format := opts.Formats[0]
	data := result.Artifacts[format]

	if s.store != nil {
		a := store.NewArtifact(p.Title, format, result.ProjectHash, data)
		if err := s.store.Put(r.Context(), a); err != nil {
			s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "store render"))
			return
		}
		w.Header().Set(HeaderRenderID, a.ID)
	}

	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set(HeaderProjectHash, result.ProjectHash)
	w.Header().Set(HeaderCache, cacheStatus)
	writeArtifact(w, http.StatusOK, format, data)
}

func (s *Server) handleListRenders(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeUnsupported, "render storage is disabled"))
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	renders, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if renders == nil {
		renders = []store.Artifact{}
	}
	writeJSON(w, http.StatusOK, listResponse{Renders: renders})
}

func (s *Server) handleGetRender(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeUnsupported, "render storage is disabled"))
		return
	}
	a, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set(HeaderRenderID, a.ID)
	w.Header().Set(HeaderProjectHash, a.ProjectHash)
	writeArtifact(w, http.StatusOK, a.Format, a.Data)
}

// renderOptions builds pipeline options from the query string.
func (s *Server) renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Config:  s.config,
		Formats: []string{pipeline.FormatSVG},
		VizType: q.Get("viz"),
		Logger:  s.logger,
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	var err error
	if opts.Highlight, err = queryBool(q.Get("highlight")); err != nil {
		return opts, err
	}
	if opts.Refresh, err = queryBool(q.Get("refresh")); err != nil {
		return opts, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

func queryBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid boolean %q", v)
	}
	return b, nil
}

// readProject decodes the request body according to its Content-Type.
func readProject(w http.ResponseWriter, r *http.Request) (*project.Project, error) {
	body := http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer body.Close()

	format := pkgio.FormatText
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid Content-Type")
		}
		switch mt {
		case "application/json":
			format = pkgio.FormatJSON
		case "application/toml":
			format = pkgio.FormatTOML
		}
	}

	p, err := pkgio.Read(body, format)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "project exceeds %d bytes", MaxBodySize)
		}
		return nil, err
	}
	if len(p.Blocks) == 0 && len(p.Refs) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidProject, "project has no blocks")
	}
	return p, nil
}

// writeError maps err to a status code and writes it as JSON.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		err = apperrors.Wrap(apperrors.ErrCodeRenderNotFound, err, "render not found")
	case errors.Is(err, store.ErrInvalidID):
		err = apperrors.Wrap(apperrors.ErrCodeInvalidID, err, "invalid render id")
	}

	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(apperrors.GetCode(err)),
	})
}

func writeArtifact(w http.ResponseWriter, status int, format string, data []byte) {
	ct, ok := pipeline.ContentTypes[format]
	if !ok {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
