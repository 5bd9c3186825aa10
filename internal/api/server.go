package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
	"github.com/rs/zerolog"
)

// Server is the business-tier HTTP API.
type Server struct {
	cfg    config.ServerConfig
	logger *zerolog.Logger
	server *http.Server

	users    *UserHandler
	items    *ItemHandler
	bookings *BookingHandler
	requests *RequestHandler
}

func NewServer(
	cfg config.ServerConfig,
	users domain.UserService,
	items domain.ItemService,
	bookings domain.BookingService,
	requests domain.RequestService,
	logger *zerolog.Logger,
) *Server {
	srv := &Server{
		cfg:      cfg,
		logger:   logger,
		users:    &UserHandler{Service: users, logger: logger},
		items:    &ItemHandler{Service: items, logger: logger},
		bookings: &BookingHandler{Service: bookings, logger: logger},
		requests: &RequestHandler{Service: requests, logger: logger},
	}

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *Server) Routes() http.Handler {
	standard := alice.New(s.recoverPanic, s.logRequest, makeResponseJSON)

	mux := pat.New()

	// Users
	mux.Post("/users", standard.ThenFunc(s.users.Create))
	mux.Get("/users/:id", standard.ThenFunc(s.users.GetByID))
	mux.Get("/users", standard.ThenFunc(s.users.GetAll))
	mux.Add("PATCH", "/users/:id", standard.ThenFunc(s.users.Update))
	mux.Del("/users/:id", standard.ThenFunc(s.users.Delete))

	// Items
	mux.Post("/items", standard.ThenFunc(s.items.Create))
	mux.Get("/items/search", standard.ThenFunc(s.items.Search))
	mux.Get("/items/:id", standard.ThenFunc(s.items.GetByID))
	mux.Get("/items", standard.ThenFunc(s.items.GetByOwner))
	mux.Add("PATCH", "/items/:id", standard.ThenFunc(s.items.Update))
	mux.Del("/items/:id", standard.ThenFunc(s.items.Delete))
	mux.Post("/items/:id/comment", standard.ThenFunc(s.items.AddComment))

	// Bookings
	mux.Post("/bookings", standard.ThenFunc(s.bookings.Create))
	mux.Get("/bookings/owner/export", standard.ThenFunc(s.bookings.ExportByOwner))
	mux.Get("/bookings/owner", standard.ThenFunc(s.bookings.ListByOwner))
	mux.Get("/bookings/:id", standard.ThenFunc(s.bookings.GetByID))
	mux.Get("/bookings", standard.ThenFunc(s.bookings.ListByBooker))
	mux.Add("PATCH", "/bookings/:id", standard.ThenFunc(s.bookings.Approve))

	// Item requests
	mux.Post("/requests", standard.ThenFunc(s.requests.Create))
	mux.Get("/requests/all", standard.ThenFunc(s.requests.GetAll))
	mux.Get("/requests/:id", standard.ThenFunc(s.requests.GetByID))
	mux.Get("/requests", standard.ThenFunc(s.requests.GetAllForUser))

	mux.Get("/healthz", standard.ThenFunc(handleHealth))

	return mux
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
