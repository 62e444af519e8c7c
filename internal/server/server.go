// Package server expose le pipeline derrière une petite API HTTP à jobs :
// POST /api/extract enregistre un travail et répond tout de suite avec son
// identifiant, GET /api/status/{id} permet de suivre l'avancement. Le
// traitement se fait en goroutine, l'état vit dans le store SQLite.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/patrickprogramme/ytscribe/internal/app"
	"github.com/patrickprogramme/ytscribe/internal/gemini"
	"github.com/patrickprogramme/ytscribe/internal/jobs"
)

// Runner : ce que le serveur attend du pipeline. *app.Pipeline convient ;
// les tests injectent un faux.
type Runner interface {
	Run(ctx context.Context, input string, opts app.Options, report app.Progress) (*app.Result, error)
}

// Server relie l'API HTTP au store et au pipeline.
type Server struct {
	store  *jobs.Store
	runner Runner
	log    *slog.Logger

	// jobTimeout borne la durée d'un travail détaché de la requête.
	jobTimeout time.Duration
}

// New construit le serveur. logger nil -> slog.Default().
func New(store *jobs.Store, runner Runner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:      store,
		runner:     runner,
		log:        logger,
		jobTimeout: 10 * time.Minute,
	}
}

// Handler assemble les routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("GET /api/status/{id}", s.handleStatus)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// extractRequest : corps attendu par POST /api/extract.
type extractRequest struct {
	URL               string `json:"url"`
	IncludeTimestamps *bool  `json:"include_timestamps"`
	GenerateSummary   bool   `json:"generate_summary"`
	SummaryLang       string `json:"summary_lang"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	hint, err := gemini.ParseHint(req.SummaryLang)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := app.Options{
		IncludeTimestamps: true,
		GenerateSummary:   req.GenerateSummary,
		SummaryHint:       hint,
	}
	if req.IncludeTimestamps != nil {
		opts.IncludeTimestamps = *req.IncludeTimestamps
	}

	job, err := s.store.Create(r.Context(), req.URL)
	if err != nil {
		s.log.Error("création du job impossible", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	s.log.Info("job accepté", "job_id", job.ID, "url", req.URL)
	// détaché de la requête : le client suit via /api/status
	go s.processJob(job.ID, req.URL, opts)

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": job.ID})
}

// processJob exécute le pipeline pour un job et pousse chaque étape dans le
// store. Un résumé qui échoue n'invalide pas un transcript réussi.
func (s *Server) processJob(id, input string, opts app.Options) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	report := func(step string) {
		if err := s.store.UpdateProgress(ctx, id, step); err != nil {
			s.log.Warn("mise à jour de l'avancement impossible", "job_id", id, "error", err)
		}
	}

	res, err := s.runner.Run(ctx, input, opts, report)
	if err != nil {
		s.log.Error("job en échec", "job_id", id, "error", err)
		if ferr := s.store.Fail(ctx, id, err.Error()); ferr != nil {
			s.log.Error("enregistrement de l'échec impossible", "job_id", id, "error", ferr)
		}
		return
	}
	if res.SummaryErr != nil {
		s.log.Warn("résumé indisponible", "job_id", id, "error", res.SummaryErr)
	}

	if err := s.store.Complete(ctx, id, res.Markdown, res.Summary); err != nil {
		s.log.Error("enregistrement du résultat impossible", "job_id", id, "error", err)
		return
	}
	s.log.Info("job terminé", "job_id", id, "selection", res.Selection.String())
}

// statusResponse : vue API d'un job. Les champs optionnels disparaissent
// tant qu'ils sont vides.
type statusResponse struct {
	JobID    string `json:"job_id"`
	Status   string `json:"status"`
	Progress string `json:"progress,omitempty"`
	Result   string `json:"result,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, err := s.store.Get(r.Context(), id)
	if errors.Is(err, jobs.ErrNotFound) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		s.log.Error("lecture du job impossible", "job_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read job")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		JobID:    job.ID,
		Status:   string(job.Status),
		Progress: job.Progress,
		Result:   job.Result,
		Summary:  job.Summary,
		Error:    job.Error,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// ListenAndServe démarre le serveur et s'arrête proprement quand ctx est
// annulé (signal d'arrêt du daemon).
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("daemon en écoute", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
