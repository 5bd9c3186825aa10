package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
	"github.com/rs/zerolog"
)

// Gateway validates request shape and forwards to the business tier.
type Gateway struct {
	cfg     config.GatewayConfig
	client  *Client
	limiter domain.RateLimiter
	logger  *zerolog.Logger
	now     func() time.Time
	server  *http.Server
}

func New(cfg config.GatewayConfig, client *Client, limiter domain.RateLimiter, logger *zerolog.Logger) *Gateway {
	g := &Gateway{
		cfg:     cfg,
		client:  client,
		limiter: limiter,
		logger:  logger,
		now:     time.Now,
	}

	g.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           g.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return g
}

func (g *Gateway) Routes() http.Handler {
	standard := alice.New(g.recoverPanic, g.requestID, g.logRequest, g.rateLimit)

	mux := pat.New()

	// Users
	mux.Post("/users", standard.ThenFunc(g.createUser))
	mux.Get("/users/:id", standard.ThenFunc(g.forwardWithID))
	mux.Get("/users", standard.ThenFunc(g.forward))
	mux.Add("PATCH", "/users/:id", standard.ThenFunc(g.updateUser))
	mux.Del("/users/:id", standard.ThenFunc(g.forwardWithID))

	// Items
	mux.Post("/items", standard.ThenFunc(g.createItem))
	mux.Get("/items/search", standard.ThenFunc(g.searchItems))
	mux.Get("/items/:id", standard.ThenFunc(g.authForwardWithID))
	mux.Get("/items", standard.ThenFunc(g.listPaged))
	mux.Add("PATCH", "/items/:id", standard.ThenFunc(g.updateItem))
	mux.Del("/items/:id", standard.ThenFunc(g.authForwardWithID))
	mux.Post("/items/:id/comment", standard.ThenFunc(g.createComment))

	// Bookings
	mux.Post("/bookings", standard.ThenFunc(g.createBooking))
	mux.Get("/bookings/owner/export", standard.ThenFunc(g.authForward))
	mux.Get("/bookings/owner", standard.ThenFunc(g.listBookings))
	mux.Get("/bookings/:id", standard.ThenFunc(g.authForwardWithID))
	mux.Get("/bookings", standard.ThenFunc(g.listBookings))
	mux.Add("PATCH", "/bookings/:id", standard.ThenFunc(g.approveBooking))

	// Item requests
	mux.Post("/requests", standard.ThenFunc(g.createRequest))
	mux.Get("/requests/all", standard.ThenFunc(g.listPaged))
	mux.Get("/requests/:id", standard.ThenFunc(g.authForwardWithID))
	mux.Get("/requests", standard.ThenFunc(g.authForward))

	mux.Get("/healthz", standard.ThenFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))

	return mux
}

func (g *Gateway) Start() error {
	g.logger.Info().Str("addr", g.server.Addr).Msg("gateway listening")
	if err := g.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	if g.server == nil {
		return nil
	}
	return g.server.Shutdown(ctx)
}

// proxy forwards the request and copies the upstream response through.
func (g *Gateway) proxy(w http.ResponseWriter, r *http.Request, body []byte) {
	resp, err := g.client.Forward(r.Context(), r, body)
	if err != nil {
		g.logger.Error().Err(err).Str("path", r.URL.Path).Msg("upstream call failed")
		writeError(w, http.StatusBadGateway, "server unavailable")
		return
	}
	defer resp.Body.Close()

	for _, header := range []string{"Content-Type", "Content-Disposition"} {
		if v := resp.Header.Get(header); v != "" {
			w.Header().Set(header, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.Error().Err(err).Msg("copy upstream response")
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	body := map[string]string{"error": message}
	if statusCode == http.StatusBadRequest {
		body["message"] = message
	}
	writeJSON(w, statusCode, body)
}
