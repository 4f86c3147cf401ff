package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/bakerapp/baker/internal/app"
	"github.com/bakerapp/baker/internal/breadcrumbs"
	"github.com/bakerapp/baker/internal/logging"
	"github.com/bakerapp/baker/internal/registry"
	"github.com/bakerapp/baker/internal/scanner"
	"github.com/bakerapp/baker/internal/trello"

	_ "modernc.org/sqlite" // SQLite driver
)

// Server is the HTTP + WebSocket API surface for Baker.
type Server struct {
	cfg          Config
	orchestrator *app.Orchestrator
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       logging.Logger
	registryDB   *sql.DB
}

// NewServer creates a new Server with its own Orchestrator.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	// Make sure storage root exists
	storageRoot, err := app.ExpandPath(cfg.AppConfig.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("expanding storage root path: %w", err)
	}
	cfg.AppConfig.StorageRoot = storageRoot
	err = os.MkdirAll(cfg.AppConfig.StorageRoot, 0755)
	if err != nil {
		logger.Warn("creating storage root directory", logging.Field{Key: "path", Value: cfg.AppConfig.StorageRoot}, logging.Field{Key: "error", Value: err.Error()})
	}

	// Set up registry DB
	db, err := sql.Open("sqlite", filepath.Join(cfg.AppConfig.StorageRoot, "baker.db"))
	if err != nil {
		return nil, fmt.Errorf("opening registry database: %w", err)
	}

	reg, err := registry.NewRegistry(db, logger)
	if err != nil {
		return nil, fmt.Errorf("creating registry: %w", err)
	}

	orch := app.NewOrchestrator(cfg.AppConfig, reg, logger)

	r := chi.NewRouter()
	s := &Server{
		cfg:          cfg,
		orchestrator: orch,
		router:       r,
		logger:       logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
		registryDB: db,
	}

	s.routes()
	return s, nil
}

// Orchestrator returns the underlying orchestrator for advanced use (tests, etc.).
func (s *Server) Orchestrator() *app.Orchestrator {
	return s.orchestrator
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/roots", s.optionsHandler("GET, POST"))
	r.Options("/roots/{slug}", s.optionsHandler("GET"))
	r.Options("/roots/{slug}/scans", s.optionsHandler("GET"))
	r.Options("/roots/{slug}/jobs/scan", s.optionsHandler("POST"))
	r.Options("/projects/preview", s.optionsHandler("POST"))
	r.Options("/projects/breadcrumbs", s.optionsHandler("GET"))
	r.Options("/projects/videos", s.optionsHandler("GET, POST, PATCH, DELETE"))
	r.Options("/projects/videos/order", s.optionsHandler("PUT"))
	r.Options("/projects/cards", s.optionsHandler("GET, POST, DELETE"))
	r.Options("/batch/preview", s.optionsHandler("POST"))
	r.Options("/batch/jobs/apply", s.optionsHandler("POST"))
	r.Options("/jobs", s.optionsHandler("GET"))
	r.Options("/jobs/{jobID}", s.optionsHandler("GET, DELETE"))
	r.Options("/ws/roots/{slug}/scan", s.optionsHandler("GET"))
	r.Options("/ws/batch/apply", s.optionsHandler("GET"))

	// Scan roots
	r.Post("/roots", s.handleCreateRoot)
	r.Get("/roots", s.handleListRoots)
	r.Get("/roots/{slug}", s.handleGetRoot)
	r.Get("/roots/{slug}/scans", s.handleListScans)

	// Previews
	r.Post("/projects/preview", s.handlePreviewProject)
	r.Post("/batch/preview", s.handlePreviewBatch)

	// Breadcrumbs file
	r.Get("/projects/breadcrumbs", s.handleGetBreadcrumbs)

	// Media associations
	r.Get("/projects/videos", s.handleListVideos)
	r.Post("/projects/videos", s.handleAssociateVideo)
	r.Patch("/projects/videos", s.handleUpdateVideo)
	r.Delete("/projects/videos", s.handleRemoveVideo)
	r.Put("/projects/videos/order", s.handleReorderVideos)
	r.Get("/projects/cards", s.handleListCards)
	r.Post("/projects/cards", s.handleAssociateCard)
	r.Delete("/projects/cards", s.handleRemoveCard)

	// Jobs over REST
	r.Post("/roots/{slug}/jobs/scan", s.handleStartScanJob)
	r.Post("/batch/jobs/apply", s.handleStartBatchApplyJob)
	r.Get("/jobs", s.handleListJobs)
	r.Get("/jobs/{jobID}", s.handleGetJob)
	r.Delete("/jobs/{jobID}", s.handleCancelJob)

	// WebSockets for job progress
	r.Get("/ws/roots/{slug}/scan", s.handleScanWS)
	r.Get("/ws/batch/apply", s.handleBatchApplyWS)

	s.mountSwagger(r)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close shuts down the orchestrator and underlying resources.
func (s *Server) Close() {
	if s.orchestrator != nil {
		s.orchestrator.Close()
	}
	if s.registryDB != nil {
		s.registryDB.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusForError maps domain errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, registry.ErrRootNotFound),
		errors.Is(err, app.ErrNoBreadcrumbs),
		errors.Is(err, app.ErrVideoNotFound),
		errors.Is(err, app.ErrCardNotAttached),
		errors.Is(err, trello.ErrCardNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrVideoLimit),
		errors.Is(err, app.ErrCardLimit),
		errors.Is(err, app.ErrBadReorder),
		errors.Is(err, trello.ErrInvalidCardURL),
		errors.Is(err, breadcrumbs.ErrInvalidFile):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrDuplicateCard):
		return http.StatusConflict
	case errors.Is(err, trello.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// --- HTTP handlers ---

// Scan roots

// handleCreateRoot godoc
// @Summary Register a scan root
// @Tags roots
// @Accept json
// @Produce json
// @Param root body CreateRootRequest true "Root to register"
// @Success 201 {object} registry.Root
// @Failure 400 {object} ErrorResponse
// @Router /roots [post]
func (s *Server) handleCreateRoot(w http.ResponseWriter, r *http.Request) {
	var body CreateRootRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	root, err := s.orchestrator.CreateRoot(r.Context(), body.Slug, body.Path, body.Label)
	if err != nil {
		s.logger.Warn("creating root", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("created root", logging.Field{Key: "slug", Value: root.Slug})
	writeJSON(w, http.StatusCreated, root)
}

// handleListRoots godoc
// @Summary List registered scan roots
// @Tags roots
// @Produce json
// @Success 200 {array} registry.Root
// @Router /roots [get]
func (s *Server) handleListRoots(w http.ResponseWriter, r *http.Request) {
	roots, err := s.orchestrator.ListRoots(r.Context())
	if err != nil {
		s.logger.Warn("listing roots", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, roots)
}

// handleGetRoot godoc
// @Summary Get one scan root by slug
// @Tags roots
// @Produce json
// @Param slug path string true "Root slug"
// @Success 200 {object} registry.Root
// @Failure 404 {object} ErrorResponse
// @Router /roots/{slug} [get]
func (s *Server) handleGetRoot(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	root, err := s.orchestrator.GetRootBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, root)
}

// handleListScans godoc
// @Summary List scan history for a root
// @Tags roots
// @Produce json
// @Param slug path string true "Root slug"
// @Param limit query int false "Maximum rows"
// @Success 200 {array} registry.ScanRecord
// @Failure 404 {object} ErrorResponse
// @Router /roots/{slug}/scans [get]
func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 {
			limit = v
		}
	}

	scans, err := s.orchestrator.ListScans(r.Context(), slug, limit)
	if err != nil {
		s.logger.Warn("listing scans", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scans)
}

// Previews

// handlePreviewProject godoc
// @Summary Preview the breadcrumbs update for one project folder
// @Tags preview
// @Accept json
// @Produce json
// @Param request body ProjectPreviewRequest true "Project folder"
// @Success 200 {object} app.ProjectPreviewResponse
// @Failure 400 {object} ErrorResponse
// @Router /projects/preview [post]
func (s *Server) handlePreviewProject(w http.ResponseWriter, r *http.Request) {
	var body ProjectPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.Path == "" {
		writeError(w, http.StatusBadRequest, "missing project path")
		return
	}

	preview, err := s.orchestrator.PreviewProject(r.Context(), body.Path)
	if err != nil {
		s.logger.Warn("previewing project", logging.Field{Key: "path", Value: body.Path}, logging.Field{Key: "error", Value: err.Error()})
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// handlePreviewBatch godoc
// @Summary Preview a batch update over selected project folders
// @Tags preview
// @Accept json
// @Produce json
// @Param request body BatchPreviewRequest true "Selected projects"
// @Success 200 {object} app.BatchPreview
// @Failure 400 {object} ErrorResponse
// @Router /batch/preview [post]
func (s *Server) handlePreviewBatch(w http.ResponseWriter, r *http.Request) {
	var body BatchPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	batch, err := s.orchestrator.PreviewBatch(r.Context(), body.Projects)
	if err != nil {
		s.logger.Warn("previewing batch", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, statusForError(err), err.Error())
		return
	}
	s.logger.Info("previewed batch",
		logging.Field{Key: "projects", Value: len(body.Projects)},
		logging.Field{Key: "with_changes", Value: batch.Summary.ProjectsWithChanges})
	writeJSON(w, http.StatusOK, batch)
}

// Breadcrumbs file

// handleGetBreadcrumbs godoc
// @Summary Read a project's breadcrumbs file
// @Tags breadcrumbs
// @Produce json
// @Param path query string true "Project folder path"
// @Param raw query string false "Return the file bytes verbatim when set to 1"
// @Success 200 {object} breadcrumbs.Snapshot
// @Failure 404 {object} ErrorResponse
// @Router /projects/breadcrumbs [get]
func (s *Server) handleGetBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path query parameter")
		return
	}

	if r.URL.Query().Get("raw") == "1" {
		if !breadcrumbs.Exists(path) {
			writeError(w, http.StatusNotFound, app.ErrNoBreadcrumbs.Error())
			return
		}
		raw, err := breadcrumbs.LoadRaw(path)
		if err != nil {
			writeError(w, statusForError(err), err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(raw))
		return
	}

	snap, err := breadcrumbs.Load(path)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, app.ErrNoBreadcrumbs.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Media associations

// handleListVideos godoc
// @Summary List a project's attached videos
// @Tags media
// @Produce json
// @Param path query string true "Project folder path"
// @Success 200 {array} breadcrumbs.VideoLink
// @Failure 404 {object} ErrorResponse
// @Router /projects/videos [get]
func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path query parameter")
		return
	}

	links, err := s.orchestrator.ListVideoLinks(path)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	if links == nil {
		links = []breadcrumbs.VideoLink{}
	}
	writeJSON(w, http.StatusOK, links)
}

// handleAssociateVideo godoc
// @Summary Attach a hosted video to a project
// @Tags media
// @Accept json
// @Produce json
// @Param request body AssociateVideoRequest true "Video to attach"
// @Success 201 {object} breadcrumbs.VideoLink
// @Failure 400 {object} ErrorResponse
// @Router /projects/videos [post]
func (s *Server) handleAssociateVideo(w http.ResponseWriter, r *http.Request) {
	var body AssociateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	link, err := s.orchestrator.AssociateVideoLink(r.Context(), body.Path, body.URL, body.Title, body.APIKey)
	if err != nil {
		s.logger.Warn("associating video", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// handleUpdateVideo godoc
// @Summary Edit an attached video's metadata
// @Tags media
// @Accept json
// @Produce json
// @Param request body UpdateVideoRequest true "Fields to update"
// @Success 200 {object} breadcrumbs.VideoLink
// @Failure 404 {object} ErrorResponse
// @Router /projects/videos [patch]
func (s *Server) handleUpdateVideo(w http.ResponseWriter, r *http.Request) {
	var body UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	link, err := s.orchestrator.UpdateVideoLink(body.Path, body.URL, body.Title, body.SourceRenderFile)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// handleRemoveVideo godoc
// @Summary Detach a video from a project
// @Tags media
// @Accept json
// @Param request body RemoveVideoRequest true "Video to detach"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /projects/videos [delete]
func (s *Server) handleRemoveVideo(w http.ResponseWriter, r *http.Request) {
	var body RemoveVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := s.orchestrator.RemoveVideoLink(body.Path, body.URL); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// handleReorderVideos godoc
// @Summary Rewrite a project's video order
// @Tags media
// @Accept json
// @Param request body ReorderVideosRequest true "New order"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /projects/videos/order [put]
func (s *Server) handleReorderVideos(w http.ResponseWriter, r *http.Request) {
	var body ReorderVideosRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := s.orchestrator.ReorderVideoLinks(body.Path, body.URLs); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// handleListCards godoc
// @Summary List a project's Trello cards
// @Tags media
// @Produce json
// @Param path query string true "Project folder path"
// @Success 200 {array} breadcrumbs.TrelloCard
// @Failure 404 {object} ErrorResponse
// @Router /projects/cards [get]
func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path query parameter")
		return
	}

	cards, err := s.orchestrator.ListTrelloCards(path)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	if cards == nil {
		cards = []breadcrumbs.TrelloCard{}
	}
	writeJSON(w, http.StatusOK, cards)
}

// handleAssociateCard godoc
// @Summary Attach a Trello card to a project
// @Tags media
// @Accept json
// @Produce json
// @Param request body AssociateCardRequest true "Card to attach"
// @Success 201 {object} breadcrumbs.TrelloCard
// @Failure 409 {object} ErrorResponse
// @Router /projects/cards [post]
func (s *Server) handleAssociateCard(w http.ResponseWriter, r *http.Request) {
	var body AssociateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	card, err := s.orchestrator.AssociateTrelloCard(r.Context(), body.Path, body.URL, body.APIKey, body.APIToken)
	if err != nil {
		s.logger.Warn("associating card", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

// handleRemoveCard godoc
// @Summary Detach a Trello card from a project
// @Tags media
// @Accept json
// @Param request body RemoveCardRequest true "Card to detach"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /projects/cards [delete]
func (s *Server) handleRemoveCard(w http.ResponseWriter, r *http.Request) {
	var body RemoveCardRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := s.orchestrator.RemoveTrelloCard(body.Path, body.CardID); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// Jobs (REST)

// handleStartScanJob godoc
// @Summary Start an asynchronous scan of a root
// @Tags jobs
// @Accept json
// @Produce json
// @Param slug path string true "Root slug"
// @Param request body ScanJobRequest false "Scan overrides"
// @Success 202 {object} app.Job
// @Failure 404 {object} ErrorResponse
// @Router /roots/{slug}/jobs/scan [post]
func (s *Server) handleStartScanJob(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var body ScanJobRequest
	_ = json.NewDecoder(r.Body).Decode(&body)

	var opts *scanner.Options
	if body.MaxDepth > 0 || body.IncludeHidden {
		opts = &scanner.Options{MaxDepth: body.MaxDepth, IncludeHidden: body.IncludeHidden}
	}

	job, err := s.orchestrator.StartScanJob(context.Background(), slug, opts)
	if err != nil {
		s.logger.Warn("starting scan job", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, statusForError(err), err.Error())
		return
	}
	s.logger.Info("started scan job", logging.Field{Key: "job_id", Value: job.ID}, logging.Field{Key: "root", Value: slug})
	writeJSON(w, http.StatusAccepted, job)
}

// handleStartBatchApplyJob godoc
// @Summary Start an asynchronous batch update
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body BatchApplyJobRequest true "Selected projects"
// @Success 202 {object} app.Job
// @Failure 400 {object} ErrorResponse
// @Router /batch/jobs/apply [post]
func (s *Server) handleStartBatchApplyJob(w http.ResponseWriter, r *http.Request) {
	var body BatchApplyJobRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	job, err := s.orchestrator.StartBatchApplyJob(context.Background(), app.BatchApplyRequest{
		Projects:      body.Projects,
		CreateMissing: body.CreateMissing,
	})
	if err != nil {
		s.logger.Warn("starting batch apply job", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Info("started batch apply job", logging.Field{Key: "job_id", Value: job.ID}, logging.Field{Key: "projects", Value: len(body.Projects)})
	writeJSON(w, http.StatusAccepted, job)
}

// handleGetJob godoc
// @Summary Get one job by id
// @Tags jobs
// @Produce json
// @Param jobID path string true "Job id"
// @Success 200 {object} app.Job
// @Failure 404 {object} ErrorResponse
// @Router /jobs/{jobID} [get]
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// handleCancelJob godoc
// @Summary Cancel a running job
// @Tags jobs
// @Param jobID path string true "Job id"
// @Success 204
// @Router /jobs/{jobID} [delete]
func (s *Server) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	s.orchestrator.CancelJob(jobID)
	s.logger.Info("canceled job", logging.Field{Key: "job_id", Value: jobID})
	writeJSON(w, http.StatusNoContent, nil)
}

// handleListJobs godoc
// @Summary List all jobs, newest first
// @Tags jobs
// @Produce json
// @Success 200 {array} app.Job
// @Router /jobs [get]
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := s.orchestrator.ListJobs()
	writeJSON(w, http.StatusOK, jobs)
}

// WebSockets

// handleScanWS starts a scan job and streams its events over a websocket.
func (s *Server) handleScanWS(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var opts *scanner.Options
	if ds := r.URL.Query().Get("maxDepth"); ds != "" {
		if v, err := strconv.Atoi(ds); err == nil && v > 0 {
			opts = &scanner.Options{
				MaxDepth:      v,
				IncludeHidden: r.URL.Query().Get("includeHidden") == "true",
			}
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	job, err := s.orchestrator.StartScanJob(r.Context(), slug, opts)
	if err != nil {
		s.logger.Warn("starting scan job", logging.Field{Key: "error", Value: err.Error()})
		_ = conn.WriteJSON(map[string]string{"error": err.Error()})
		return
	}

	s.logger.Info("started scan job", logging.Field{Key: "job_id", Value: job.ID})
	_ = conn.WriteJSON(job)

	for ev := range job.Events {
		if err := conn.WriteJSON(ev); err != nil {
			// Assume client disconnected; cancel job
			s.orchestrator.CancelJob(job.ID)
			return
		}
	}
}

// handleBatchApplyWS starts a batch apply job and streams per-project
// outcomes over a websocket. Projects are passed as repeated "project" query
// parameters.
func (s *Server) handleBatchApplyWS(w http.ResponseWriter, r *http.Request) {
	projects := r.URL.Query()["project"]
	createMissing := r.URL.Query().Get("createMissing") == "true"

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	job, err := s.orchestrator.StartBatchApplyJob(r.Context(), app.BatchApplyRequest{
		Projects:      projects,
		CreateMissing: createMissing,
	})
	if err != nil {
		_ = conn.WriteJSON(map[string]string{"error": err.Error()})
		s.logger.Warn("starting batch apply job", logging.Field{Key: "error", Value: err.Error()})
		return
	}

	s.logger.Info("started batch apply job", logging.Field{Key: "job_id", Value: job.ID})
	_ = conn.WriteJSON(job)

	for ev := range job.Events {
		if err := conn.WriteJSON(ev); err != nil {
			s.orchestrator.CancelJob(job.ID)
			return
		}
	}
}
