package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
	bracketio "github.com/matzehuels/bracket/pkg/io"
	"github.com/matzehuels/bracket/pkg/pipeline"
	"github.com/matzehuels/bracket/pkg/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 4 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// =============================================================================
// Tournaments
// =============================================================================

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		ts  []bracket.Tournament
		err error
	)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		ts, err = store.FindByName(r.Context(), s.store, q)
	} else {
		ts, err = s.store.List(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ts == nil {
		ts = []bracket.Tournament{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tournaments": ts})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	t, err := bracketio.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, asInput(err))
		return
	}
	id, err := s.store.Create(r.Context(), t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/tournaments/"+id)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p store.Patch
	if err := decodeBody(w, r, &p); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Update(r.Context(), id, p); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondTournament(w, r, id)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.forget(id)
	w.WriteHeader(http.StatusNoContent)
}

type winnerRequest struct {
	Round  int            `json:"round"`
	Match  int            `json:"match"`
	Winner bracket.Winner `json:"winner"`
}

// handleWinner records a match result and advances the winner, then stores
// the whole bracket back.
func (s *Server) handleWinner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req winnerRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := bracket.SetWinner(t.Rounds, req.Round, req.Match, req.Winner); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Update(r.Context(), id, store.Patch{Rounds: t.Rounds}); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondTournament(w, r, id)
}

func (s *Server) respondTournament(w http.ResponseWriter, r *http.Request, id string) {
	t, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// =============================================================================
// Rendering
// =============================================================================

// handleBracket renders a stored tournament. A render failure falls back to
// the last good render of the same tournament and options, if there is one.
func (s *Server) handleBracket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := chi.URLParam(r, "format")

	t, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.requestOptions(r, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Title == "" {
		opts.Title = t.Name
	}

	key := strings.Join([]string{id, format, opts.VizType, opts.Style, opts.Title}, "|")
	v := s.view(key, opts)
	if err := v.Update(r.Context(), t.Rounds); err != nil {
		data, ok := v.Artifact(format)
		if !ok {
			s.writeError(w, r, err)
			return
		}
		s.logger.Warn("serving last good render", "tournament", id, "format", format, "err", err)
		w.Header().Set(HeaderRenderError, headerSafe(errors.UserMessage(err)))
		w.Header().Set("Last-Modified", v.UpdatedAt().UTC().Format(http.TimeFormat))
		writeArtifact(w, format, data)
		return
	}

	data, _ := v.Artifact(format)
	writeArtifact(w, format, data)
}

type renderRequest struct {
	Rounds  []bracket.Round  `json:"rounds"`
	Options pipeline.Options `json:"options"`
}

// handleRender renders posted rounds in the format named by ?format=
// (default svg). Options in the body override the server defaults.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Rounds) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "no rounds to render"))
		return
	}
	if err := bracket.ValidateWinners(req.Rounds); err != nil {
		s.writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := mergeOptions(s.opts, req.Options)
	opts.Formats = []string{format}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	artifacts, err := s.runner.Render(r.Context(), req.Rounds, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeArtifact(w, format, artifacts[format])
}

// requestOptions derives render options for one format from the server
// defaults and the style, viz and title query parameters.
func (s *Server) requestOptions(r *http.Request, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := mergeOptions(s.opts, pipeline.Options{
		VizType: q.Get("viz"),
		Style:   q.Get("style"),
		Title:   q.Get("title"),
	})
	opts.Formats = []string{format}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// mergeOptions overlays the set fields of o onto base.
func mergeOptions(base, o pipeline.Options) pipeline.Options {
	out := base
	out.Formats = nil
	if o.VizType != "" {
		out.VizType = o.VizType
	}
	if o.Width > 0 {
		out.Width = o.Width
	}
	if o.MatchGap > 0 {
		out.MatchGap = o.MatchGap
	}
	if o.MinGapFraction != nil {
		out.MinGapFraction = o.MinGapFraction
	}
	if o.TopOffset != nil {
		out.TopOffset = o.TopOffset
	}
	if o.Padding > 0 {
		out.Padding = o.Padding
	}
	if o.Style != "" {
		out.Style = o.Style
	}
	if o.Title != "" {
		out.Title = o.Title
	}
	if o.Background != "" {
		out.Background = o.Background
	}
	if o.Scale > 0 {
		out.Scale = o.Scale
	}
	if o.Detailed {
		out.Detailed = true
	}
	return out
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// asInput gives uncoded read failures the INVALID_INPUT code.
func asInput(err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
}

func headerSafe(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
