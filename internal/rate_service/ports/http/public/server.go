package public

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"fixrates/deploy/config"
	"fixrates/internal/entities"
	mwLogger "fixrates/internal/rate_service/ports/http/public/middleware/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	Server  *http.Server
	cfg     *config.Config
	service Service
}

func NewServer(server *http.Server, cfg *config.Config, service Service) *Server {
	return &Server{
		Server:  server,
		cfg:     cfg,
		service: service,
	}
}

func StartServer(ctx context.Context, service Service, cfg *config.Config) <-chan struct{} {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mwLogger.New())
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())

	serverConfig := &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	server := NewServer(serverConfig, cfg, service)

	r.Get("/healthz", server.Healthz)
	r.Get("/rates", server.GetAllRates)
	r.Get("/rates/specific", server.GetSpecificRates)
	r.Get("/convert", server.Convert)
	r.Get("/currencies", server.ListCurrencies)

	doneChan := make(chan struct{})

	go func() {
		if err := server.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to stop server", "error", err)
		}

		close(doneChan)
	}()

	return doneChan
}

func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"greeting": s.service.Hello()})
}

type rateEntry struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
}

// ratesPreview truncates the all-rates listing for display. Presentation
// policy only: TotalCurrencies always reflects the full response.
type ratesPreview struct {
	Base            string      `json:"base"`
	Timestamp       int64       `json:"timestamp"`
	Preview         []rateEntry `json:"preview"`
	TotalCurrencies int         `json:"total_currencies"`
}

func (s *Server) GetAllRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rates, err := s.service.GetAllRates(ctx, apiKey(r))
	if err != nil {
		RespondWithError(w, statusForError(err), userMessage(err))
		return
	}

	codes := make([]string, 0, len(rates.Rates))
	for code := range rates.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	limit := s.cfg.Fixer.PreviewLimit
	if limit <= 0 || limit > len(codes) {
		limit = len(codes)
	}

	preview := make([]rateEntry, 0, limit)
	for _, code := range codes[:limit] {
		preview = append(preview, rateEntry{Currency: code, Rate: rates.Rates[code]})
	}

	RespondWithJSON(w, http.StatusOK, ratesPreview{
		Base:            rates.Base,
		Timestamp:       rates.Timestamp,
		Preview:         preview,
		TotalCurrencies: len(rates.Rates),
	})
}

func (s *Server) GetSpecificRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	currencies := r.URL.Query().Get("currencies")

	rates, err := s.service.GetSpecificRates(ctx, currencies, apiKey(r))
	if err != nil {
		RespondWithError(w, statusForError(err), userMessage(err))
		return
	}

	RespondWithJSON(w, http.StatusOK, rates)
}

func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()

	result, err := s.service.Convert(ctx, q.Get("amount"), q.Get("source"), q.Get("target"), apiKey(r))
	if err != nil {
		RespondWithError(w, statusForError(err), userMessage(err))
		return
	}

	RespondWithJSON(w, http.StatusOK, result)
}

func (s *Server) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	currencies, err := s.service.ListSupportedCurrencies(ctx, apiKey(r))
	if err != nil {
		RespondWithError(w, statusForError(err), userMessage(err))
		return
	}

	RespondWithJSON(w, http.StatusOK, currencies)
}

func apiKey(r *http.Request) string {
	if key := r.Header.Get("X-Api-Key"); key != "" {
		return key
	}
	return r.URL.Query().Get("api_key")
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, entities.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrInvalidAPIKey):
		return http.StatusUnauthorized
	case errors.Is(err, entities.ErrPlanRestriction):
		return http.StatusForbidden
	case errors.Is(err, entities.ErrInvalidCurrency):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entities.ErrRateLimit):
		return http.StatusTooManyRequests
	case errors.Is(err, entities.ErrNetwork):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// userMessage turns a failure into a single display-ready string. Raw
// stack traces and provider-internal codes stay inside.
func userMessage(err error) string {
	msg := "Error: " + err.Error()

	switch {
	case errors.Is(err, entities.ErrInvalidAPIKey):
		msg += ". Check your Fixer.io API key."
	case errors.Is(err, entities.ErrRateLimit):
		msg += ". The monthly request quota is exhausted; wait for the next period or upgrade the plan."
	case errors.Is(err, entities.ErrNetwork):
		msg += ". The rate provider could not be reached; try again later."
	}

	return msg
}

func RespondWithJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)

	if _, err := w.Write([]byte(message)); err != nil {
		slog.Error("Failed to write error response", "error", err)
	}
}
