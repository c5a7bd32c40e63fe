package server

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"bikeshare-dashboard/logger"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const REQUEST_ID_HEADER = "X-Request-ID"

type Middleware struct {
	logger      logger.Logger
	rateLimiter *rate.Limiter
}

// NewMiddleware builds the HTTP middleware chain. rateLimit requests are
// allowed per rateWindow, refilled evenly; zero or less disables rate limiting.
func NewMiddleware(rateLimit int, rateWindow time.Duration, log logger.Logger) *Middleware {
	m := &Middleware{logger: logger.WithComponent(log, "middleware")}
	if rateLimit > 0 {
		m.rateLimiter = rate.NewLimiter(rate.Every(rateWindow/time.Duration(rateLimit)), rateLimit)
	}
	return m
}

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(REQUEST_ID_HEADER)
		if id == "" {
			id = uuid.New().String()
			r.Header.Set(REQUEST_ID_HEADER, id)
		}
		w.Header().Set(REQUEST_ID_HEADER, id)
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.logger.WithField("request_id", r.Header.Get(REQUEST_ID_HEADER)).Infof("HTTP | %3d | %13v | %15s | %-7s %s",
			rec.status,
			time.Since(start),
			clientIP(r),
			r.Method,
			r.URL.Path,
		)
	})
}

func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.rateLimiter != nil && !m.rateLimiter.Allow() {
			m.logger.Warnf("Rate limit exceeded for IP: %s", clientIP(r))
			writeJSONError(w, http.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				m.logger.Errorf("Panic recovered: %v", err)
				writeJSONError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSONError(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   title,
		"message": message,
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
