package gateway

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/google/uuid"
)

const headerRequestID = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (g *Gateway) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(headerRequestID, id)
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r)
	})
}

func (g *Gateway) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		g.logger.Info().
			Str("request_id", r.Header.Get(headerRequestID)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("gateway request")
	})
}

func (g *Gateway) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				g.logger.Error().Interface("panic", err).Str("path", r.URL.Path).Msg("panic in gateway handler")
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (g *Gateway) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.cfg.RateLimit.Enabled || g.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		window := time.Duration(g.cfg.RateLimit.Window) * time.Second
		allowed, err := g.limiter.CheckRateLimit(r.Context(), clientKey(r), g.cfg.RateLimit.Requests, window)
		if err != nil {
			// Limiter trouble never blocks traffic
			g.logger.Error().Err(err).Msg("rate limit check failed")
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			metrics.IncRateLimited()
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller for rate limiting. The identity
// header wins, then the remote host.
func clientKey(r *http.Request) string {
	if raw := r.Header.Get(models.HeaderUserID); raw != "" {
		if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return "user:" + raw
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return "addr:" + host
	}
	return "unknown"
}
