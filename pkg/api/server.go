// Package api exposes onboarding wizard sessions over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/internal/config"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/calendar"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/paste"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/wizard"
)

// maxUploadSize caps roster workbook uploads
const maxUploadSize = 10 << 20

// pruneInterval is how often expired sessions are dropped
const pruneInterval = time.Minute

// Server is the HTTP server for wizard sessions
type Server struct {
	cfg      *config.Config
	calendar *calendar.Calendar
	sessions *SessionStore
	logger   *zap.Logger
	router   *chi.Mux
	server   *http.Server
	done     chan struct{}
}

// NewServer creates a Server. cal may be nil, in which case summaries do
// not count dated shifts.
func NewServer(cfg *config.Config, cal *calendar.Calendar, logger *zap.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		calendar: cal,
		sessions: NewSessionStore(cfg.Session.TTL),
		logger:   logger,
		router:   chi.NewRouter(),
		done:     make(chan struct{}),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.logger, map[string]int{"sessions": s.sessions.Len()})
	})

	s.router.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)

			// Navigation
			r.Get("/validation", s.handleValidation)
			r.Get("/steps/{stepID}/errors", s.handleStepErrors)
			r.Post("/next", s.handleNext)
			r.Post("/prev", s.handlePrev)
			r.Post("/goto/{stepID}", s.handleGoTo)

			// Admin, company and groups
			r.Put("/admin", s.handleSetAdmin)
			r.Put("/company", s.handleSetCompany)
			r.Get("/groups", s.handleListGroups)
			r.Post("/groups", s.handleAddGroup)
			r.Put("/groups/{groupID}", s.handleRenameGroup)
			r.Delete("/groups/{groupID}", s.handleRemoveGroup)

			// Roster
			r.Get("/workers", s.handleListWorkers)
			r.Post("/workers", s.handleAddWorker)
			r.Post("/workers/paste", s.handlePasteWorkers)
			r.Post("/workers/import", s.handleImportWorkers)
			r.Put("/workers/{workerID}", s.handleUpdateWorker)
			r.Delete("/workers/{workerID}", s.handleRemoveWorker)

			// Weekly schedules
			r.Put("/workers/{workerID}/days/{day}", s.handleSetWorkerDay)
			r.Post("/workers/{workerID}/copy-previous", s.handleCopyFromPrevious)
			r.Post("/workers/{workerID}/copy-monday", s.handleCopyMonday)
			r.Post("/workers/{workerID}/copy-to-selected", s.handleCopyToSelected)
			r.Put("/general/days/{day}", s.handleSetGeneralDay)
			r.Post("/general/apply", s.handleApplyGeneral)

			// Selection
			r.Get("/selection", s.handleGetSelection)
			r.Put("/selection", s.handleSetSelection)
			r.Post("/selection/all", s.handleSelectAll)
			r.Post("/selection/{index}/toggle", s.handleToggleSelection)
			r.Delete("/selection", s.handleClearSelection)

			// Base shifts, templates and assignments
			r.Get("/base-shifts", s.handleListBaseShifts)
			r.Post("/base-shifts", s.handleAddBaseShift)
			r.Delete("/base-shifts/{shiftID}", s.handleRemoveBaseShift)
			r.Get("/templates", s.handleListTemplates)
			r.Post("/templates", s.handleAddTemplate)
			r.Put("/templates/{templateID}/days/{day}", s.handleSetTemplateDay)
			r.Delete("/templates/{templateID}", s.handleRemoveTemplate)
			r.Get("/assignments", s.handleListAssignments)
			r.Post("/assignments", s.handleAssignTemplate)
			r.Delete("/assignments/{assignmentID}", s.handleRemoveAssignment)

			// Review
			r.Get("/summary", s.handleSummary)
			r.Get("/export", s.handleExport)
		})
	})
}

// sessionOptions builds the options of sessions created over HTTP
func (s *Server) sessionOptions(variant string, demo bool) wizard.Options {
	if variant == "" {
		variant = s.cfg.Session.Variant
	}
	return wizard.Options{
		Variant: wizard.ParseVariant(variant),
		Paste: paste.Options{
			ExtendedDelimiters: s.cfg.Paste.ExtendedDelimiters,
			SkipHeaderRows:     s.cfg.Paste.SkipHeaderRows,
		},
		SeedGroups: s.cfg.SeedGroups,
		Demo:       demo || s.cfg.Session.Demo,
	}
}

// requestLogger logs every request through zap once it completes
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// Start listens on the configured address until Shutdown is called.
// Expired sessions are pruned in the background while it runs. Calling
// Shutdown first makes Start return immediately.
func (s *Server) Start() error {
	go s.pruneSessions()

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) pruneSessions() {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if n := s.sessions.Prune(); n > 0 {
				s.logger.Debug("Pruned expired sessions", zap.Int("count", n))
			}
		}
	}
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.logger.Info("Shutting down server")
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Sessions returns the session store
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}
