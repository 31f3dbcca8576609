package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/facetgrid/pkg/buildinfo"
	"github.com/matzehuels/facetgrid/pkg/errors"
	"github.com/matzehuels/facetgrid/pkg/observability"
	"github.com/matzehuels/facetgrid/pkg/pipeline"
	"github.com/matzehuels/facetgrid/pkg/storage"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if err := opts.ValidateForLoad(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.ValidateForLayout(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Table.NumRows() == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidTable, "table has no rows"))
		return
	}

	inputHash, err := pipeline.InputHash(opts.Table, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	docKey := s.runner.Keyer.LayoutKey(inputHash, opts.LayoutKeyOpts())

	if doc, err := s.store.FindByInputHash(ctx, docKey); err == nil {
		writeJSON(w, http.StatusOK, doc)
		return
	} else if !stderrors.Is(err, storage.ErrNotFound) {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "look up layout"))
		return
	}

	layout, err := s.runner.Layout(ctx, opts.Table, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc := storage.NewDocument(docKey, layout, s.ttl)
	if err := s.store.Put(ctx, doc); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "store layout"))
		return
	}
	s.logger.Info("stored layout", "id", doc.ID, "facets", len(layout.Series), "strategy", layout.Strategy)
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.lookup(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleRenderLayout(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.lookup(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Formats:  []string{format},
		Gutters:  r.URL.Query().Get("gutters") == "true",
		NoTitles: r.URL.Query().Get("titles") == "false",
		Width:    doc.Layout.Bounds.Width,
		Height:   doc.Layout.Bounds.Height,
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), doc.Layout, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if hit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) lookup(r *http.Request) (*storage.Document, error) {
	id := chi.URLParam(r, "id")
	if err := storage.ValidateID(id); err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid layout id: %q", id)
	}
	doc, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, storage.ErrNotFound) {
		return nil, errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load layout")
	}
	return doc, nil
}

type errorBody struct {
	Error struct {
		Code      errors.Code `json:"code"`
		Message   string      `json:"message"`
		RequestID string      `json:"request_id,omitempty"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	body.Error.RequestID = requestID(r)

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeJSON(w, status, body)
}
