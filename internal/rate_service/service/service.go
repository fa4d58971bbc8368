package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"fixrates/deploy/config"
	"fixrates/internal/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is the conversion engine: it turns caller arguments into rate
// fetches and cross-rate arithmetic. Stateless across calls; every
// operation is one fetch at most.
type Service struct {
	client RateClient
	audit  AuditStorage
	cfg    *config.Config
}

// NewService wires the engine. audit may be nil, in which case completed
// conversions are not recorded.
func NewService(client RateClient, audit AuditStorage, cfg *config.Config) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("rate client is required")
	}

	return &Service{
		client: client,
		audit:  audit,
		cfg:    cfg,
	}, nil
}

// Hello answers the liveness check. No key, no network.
func (s *Service) Hello() string {
	return "Hello from the Fixer currency exchange service! Pass your Fixer.io API key to the other operations."
}

func (s *Service) GetAllRates(ctx context.Context, apiKey string) (*entities.RateResponse, error) {
	if err := validateKey(apiKey); err != nil {
		return nil, err
	}

	return s.client.FetchRates(ctx, entities.RateQuery{APIKey: apiKey})
}

// GetSpecificRates fetches rates filtered to a comma-separated currency
// list. The base currency is never forwarded to the provider; its rate is
// 1.0 by definition, so a request for the base alone returns an empty
// rates map without a network call.
func (s *Service) GetSpecificRates(ctx context.Context, currencies, apiKey string) (*entities.RateResponse, error) {
	if err := validateKey(apiKey); err != nil {
		return nil, err
	}

	symbols, err := parseCurrencies(currencies)
	if err != nil {
		return nil, err
	}

	filtered := s.withoutBase(symbols)
	if len(filtered) == 0 {
		return &entities.RateResponse{
			Base:      s.base(),
			Timestamp: time.Now().Unix(),
			Rates:     map[string]float64{},
		}, nil
	}

	return s.client.FetchRates(ctx, entities.RateQuery{APIKey: apiKey, Symbols: filtered})
}

// Convert computes amount * (rate(target) / rate(source)). The provider
// quotes every rate against a single fixed base on the free tier, so the
// source->target rate has to be derived as a cross rate.
func (s *Service) Convert(ctx context.Context, amount, sourceCurrency, targetCurrency, apiKey string) (*entities.ConversionResult, error) {
	if err := validateKey(apiKey); err != nil {
		return nil, err
	}

	amt, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}

	source, err := normalizeCode(sourceCurrency, "source currency")
	if err != nil {
		return nil, err
	}
	target, err := normalizeCode(targetCurrency, "target currency")
	if err != nil {
		return nil, err
	}

	if source == target {
		return s.finishConversion(ctx, amt, source, target, decimal.NewFromInt(1)), nil
	}

	symbols := s.withoutBase([]string{source, target})

	resp, err := s.client.FetchRates(ctx, entities.RateQuery{APIKey: apiKey, Symbols: symbols})
	if err != nil {
		return nil, err
	}

	sourceRate, err := resolveRate(resp, source)
	if err != nil {
		return nil, err
	}
	targetRate, err := resolveRate(resp, target)
	if err != nil {
		return nil, err
	}

	rate := targetRate.Div(sourceRate)

	return s.finishConversion(ctx, amt, source, target, rate), nil
}

// ListSupportedCurrencies returns the static reference table joined with
// any codes present in a live response but missing from the table. The
// fetch doubles as an early API-key check.
func (s *Service) ListSupportedCurrencies(ctx context.Context, apiKey string) ([]entities.CurrencyInfo, error) {
	if err := validateKey(apiKey); err != nil {
		return nil, err
	}

	resp, err := s.client.FetchRates(ctx, entities.RateQuery{APIKey: apiKey})
	if err != nil {
		return nil, err
	}

	list := entities.SupportedCurrencies()

	known := make(map[string]struct{}, len(list))
	for _, c := range list {
		known[c.Code] = struct{}{}
	}

	live := make([]string, 0, len(resp.Rates)+1)
	for code := range resp.Rates {
		live = append(live, code)
	}
	if resp.Base != "" {
		live = append(live, resp.Base)
	}

	for _, code := range live {
		if _, ok := known[code]; ok {
			continue
		}
		known[code] = struct{}{}
		name, ok := entities.CurrencyName(code)
		if !ok {
			name = code
		}
		list = append(list, entities.CurrencyInfo{Code: code, Name: name})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })

	return list, nil
}

func (s *Service) finishConversion(ctx context.Context, amount decimal.Decimal, source, target string, rate decimal.Decimal) *entities.ConversionResult {
	result := &entities.ConversionResult{
		Amount:          amount,
		SourceCurrency:  source,
		TargetCurrency:  target,
		ConvertedAmount: amount.Mul(rate).Round(s.cfg.Fixer.DisplayPrecision),
		RateUsed:        rate,
	}

	if s.audit != nil {
		record := entities.ConversionRecord{
			ID:              uuid.NewString(),
			Amount:          result.Amount,
			SourceCurrency:  result.SourceCurrency,
			TargetCurrency:  result.TargetCurrency,
			ConvertedAmount: result.ConvertedAmount,
			RateUsed:        result.RateUsed,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.audit.SaveConversion(ctx, record); err != nil {
			slog.Warn("failed to save conversion audit record", "error", err)
		}
	}

	return result
}

func (s *Service) base() string {
	return strings.ToUpper(s.cfg.Fixer.BaseCurrency)
}

func (s *Service) withoutBase(symbols []string) []string {
	base := s.base()

	out := make([]string, 0, len(symbols))
	for _, code := range symbols {
		if code != base {
			out = append(out, code)
		}
	}
	return out
}

// resolveRate looks a code up in the response, with the response's own
// base currency resolving to the identity rate.
func resolveRate(resp *entities.RateResponse, code string) (decimal.Decimal, error) {
	if code == resp.Base {
		return decimal.NewFromInt(1), nil
	}
	if rate, ok := resp.Rates[code]; ok {
		return decimal.NewFromFloat(rate), nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: no rate available for %s", entities.ErrInvalidCurrency, code)
}

func validateKey(apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("%w: api key is required", entities.ErrInvalidInput)
	}
	return nil
}

func parseAmount(amount string) (decimal.Decimal, error) {
	amt, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q is not numeric", entities.ErrInvalidInput, amount)
	}
	if !amt.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: amount must be positive, got %s", entities.ErrInvalidInput, amt)
	}
	return amt, nil
}

func normalizeCode(code, field string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("%w: %s is required", entities.ErrInvalidInput, field)
	}
	if len(code) != 3 || !isAlpha(code) {
		return "", fmt.Errorf("%w: %s %q is not a 3-letter currency code", entities.ErrInvalidInput, field, code)
	}
	return code, nil
}

// parseCurrencies splits a comma-separated list into normalized codes,
// de-duplicated with request order preserved.
func parseCurrencies(currencies string) ([]string, error) {
	if strings.TrimSpace(currencies) == "" {
		return nil, fmt.Errorf("%w: currency list is empty", entities.ErrInvalidInput)
	}

	parts := strings.Split(currencies, ",")

	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))

	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, fmt.Errorf("%w: empty entry in currency list %q", entities.ErrInvalidInput, currencies)
		}
		code, err := normalizeCode(part, "currency")
		if err != nil {
			return nil, err
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: currency list is empty", entities.ErrInvalidInput)
	}

	return out, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
