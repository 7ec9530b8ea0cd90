// Package server exposes a built verb dataset as a JSON REST API.
//
// Endpoints:
//
//	GET /api/verbs?q=<prefix>[&limit=N]
//	GET /api/verb/{infinitive}
//	GET /api/manifest
//	GET /healthz
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/cbueth/conjugateur-fr/internal/colorize"
	"github.com/cbueth/conjugateur-fr/internal/conjug"
	"github.com/cbueth/conjugateur-fr/internal/render"
	"github.com/cbueth/conjugateur-fr/internal/verbdata"
)

const (
	defaultSuggestLimit = 20
	shutdownTimeout     = 5 * time.Second
)

// Server serves lookups and per-character analyses over a loaded
// dataset.
type Server struct {
	store *verbdata.Store
	log   *zap.Logger
	mux   *http.ServeMux
}

// New routes the API over store. A nil logger disables logging.
func New(store *verbdata.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{store: store, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("/api/verbs", s.handleSuggest)
	s.mux.HandleFunc("/api/verb/", s.handleVerb)
	s.mux.HandleFunc("/api/manifest", s.handleManifest)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	return s
}

// Handler returns the routed handler behind the CORS middleware.
func (s *Server) Handler() http.Handler {
	return cors.Default().Handler(s.logRequests(s.mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("listening", zap.String("addr", addr), zap.Int("verbs", s.store.Len()))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

// ---- JSON response types ------------------------------------------------

type errorResponse struct {
	Error string `json:"error"`
}

type suggestResponse struct {
	Query string   `json:"query"`
	Verbs []string `json:"verbs"`
}

type formJSON struct {
	Person    string   `json:"person"`
	Form      string   `json:"form"`
	Raw       string   `json:"raw"`
	IPA       string   `json:"ipa,omitempty"`
	IPAEnding string   `json:"ipa_ending,omitempty"`
	Classes   []string `json:"classes"`
	Cost      int      `json:"cost"`
}

type tenseJSON struct {
	Tense        string     `json:"tense"`
	Label        string     `json:"label"`
	SharedPrefix string     `json:"shared_prefix"`
	Forms        []formJSON `json:"forms"`
}

type participleJSON struct {
	Form string `json:"form"`
	IPA  string `json:"ipa,omitempty"`
}

type verbResponse struct {
	Word          string           `json:"word"`
	IPA           string           `json:"ipa,omitempty"`
	Audio         string           `json:"audio,omitempty"`
	Marker        string           `json:"marker"`
	Hint          string           `json:"hint"`
	HasAlternates bool             `json:"has_alternates,omitempty"`
	Participles   []participleJSON `json:"participles"`
	Tenses        []tenseJSON      `json:"tenses"`
}

func toVerbResponse(rec *verbdata.Record) verbResponse {
	stems := rec.Stems()
	resp := verbResponse{
		Word:          rec.Word,
		IPA:           rec.IPA,
		Audio:         rec.Audio,
		Marker:        colorize.DisplayMarker(rec.Irregularity),
		Hint:          colorize.HintFR(rec.Irregularity),
		HasAlternates: rec.HasAlternates,
		Participles:   []participleJSON{},
		Tenses:        []tenseJSON{},
	}
	for _, p := range []verbdata.FormIPA{rec.Participles.Present, rec.Participles.Past} {
		if p.Form == "" {
			continue
		}
		resp.Participles = append(resp.Participles, participleJSON{Form: p.Form, IPA: p.IPA})
	}

	for _, tense := range conjug.Tenses {
		forms := rec.TenseForms(tense)
		analyses, ok := colorize.AnalyzeTense(rec.Word, tense, verbdata.Texts(forms), stems)
		if !ok {
			continue
		}
		tj := tenseJSON{
			Tense: string(tense),
			Label: tense.French(),
		}
		if len(analyses) == conjug.PersonCount {
			cleaned := make([]string, len(analyses))
			for i, a := range analyses {
				cleaned[i] = a.Form
			}
			tj.SharedPrefix = colorize.SharedPrefix(cleaned)
		}
		for i, a := range analyses {
			classes := make([]string, len(a.Classes))
			for j, c := range a.Classes {
				classes[j] = c.String()
			}
			tj.Forms = append(tj.Forms, formJSON{
				Person:    conjug.Person(i).Label(),
				Form:      a.Form,
				Raw:       forms[i].Form,
				IPA:       forms[i].IPA,
				IPAEnding: render.ExtractIPAEnding(forms[i].IPA),
				Classes:   classes,
				Cost:      a.Cost,
			})
		}
		resp.Tenses = append(resp.Tenses, tj)
	}
	return resp
}

// ---- handlers -----------------------------------------------------------

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	q := r.URL.Query().Get("q")
	limit := defaultSuggestLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "'limit' must be a positive integer")
			return
		}
		limit = n
	}
	verbs := s.store.Suggest(q, limit)
	if verbs == nil {
		verbs = []string{}
	}
	s.writeJSON(w, http.StatusOK, suggestResponse{Query: q, Verbs: verbs})
}

func (s *Server) handleVerb(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	infinitive := strings.TrimPrefix(r.URL.Path, "/api/verb/")
	if infinitive == "" || strings.Contains(infinitive, "/") {
		s.writeError(w, http.StatusBadRequest, "path must be /api/verb/{infinitive}")
		return
	}
	rec, ok := s.store.Lookup(infinitive)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("verb %q not found", infinitive))
		return
	}
	s.writeJSON(w, http.StatusOK, toVerbResponse(rec))
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.Manifest())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"verbs":  s.store.Len(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
