package fixer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fixrates/deploy/config"
	"fixrates/internal/entities"
	"github.com/pkg/errors"
)

// Client talks to the Fixer latest-rates endpoint. One outbound call per
// FetchRates, no retries; retry policy belongs to the caller.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Fixer.URL,
		client:  &http.Client{Timeout: cfg.Fixer.Timeout},
	}
}

// envelope mirrors the provider body. Success is a pointer so that a body
// without the field is distinguishable from success=false.
type envelope struct {
	Success   *bool              `json:"success"`
	Base      string             `json:"base"`
	Timestamp int64              `json:"timestamp"`
	Rates     map[string]float64 `json:"rates"`
	Error     *apiError          `json:"error"`
}

type apiError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

func (c *Client) FetchRates(ctx context.Context, query entities.RateQuery) (*entities.RateResponse, error) {
	const op = "api_client.fixer.FetchRates"

	if strings.TrimSpace(query.APIKey) == "" {
		return nil, fmt.Errorf("%w: api key is required", entities.ErrInvalidInput)
	}

	apiURL, err := c.buildURL(query)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		observe(outcomeNetworkError, start)
		return nil, fmt.Errorf("%w: %w", entities.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observe(outcomeNetworkError, start)
		return nil, fmt.Errorf("%w: read body: %w", entities.ErrNetwork, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		observe(outcomeMalformed, start)
		return nil, fmt.Errorf("%w: %w", entities.ErrMalformedResponse, err)
	}

	if env.Success == nil {
		observe(outcomeMalformed, start)
		return nil, fmt.Errorf("%w: missing success field", entities.ErrMalformedResponse)
	}

	if !*env.Success {
		if env.Error == nil {
			observe(outcomeMalformed, start)
			return nil, fmt.Errorf("%w: success=false without error object", entities.ErrMalformedResponse)
		}
		observe(outcomeProviderError, start)
		return nil, providerFailure(env.Error)
	}

	if err := validateEnvelope(&env); err != nil {
		observe(outcomeMalformed, start)
		return nil, err
	}

	observe(outcomeSuccess, start)

	return &entities.RateResponse{
		Base:      env.Base,
		Timestamp: env.Timestamp,
		Rates:     env.Rates,
	}, nil
}

func (c *Client) buildURL(query entities.RateQuery) (string, error) {
	const op = "api_client.fixer.buildURL"

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.Wrap(err, op)
	}

	q := u.Query()
	q.Set("access_key", query.APIKey)
	if len(query.Symbols) > 0 {
		symbols := make([]string, len(query.Symbols))
		for i, s := range query.Symbols {
			symbols[i] = strings.ToUpper(s)
		}
		q.Set("symbols", strings.Join(symbols, ","))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// validateEnvelope enforces the success-envelope shape so that a field
// access can never blow up downstream.
func validateEnvelope(env *envelope) error {
	if env.Base == "" {
		return fmt.Errorf("%w: missing base currency", entities.ErrMalformedResponse)
	}
	if env.Rates == nil {
		return fmt.Errorf("%w: missing rates", entities.ErrMalformedResponse)
	}
	for code, rate := range env.Rates {
		if rate <= 0 {
			return fmt.Errorf("%w: non-positive rate %v for %s", entities.ErrMalformedResponse, rate, code)
		}
	}
	return nil
}

// providerFailure maps documented Fixer error codes to failure kinds.
// Unrecognized codes pass the provider message through verbatim.
func providerFailure(apiErr *apiError) error {
	info := apiErr.Info
	if info == "" {
		info = apiErr.Type
	}
	if info == "" {
		info = "api request failed"
	}

	var kind error
	switch apiErr.Code {
	case 101, 102:
		kind = entities.ErrInvalidAPIKey
	case 104:
		kind = entities.ErrRateLimit
	case 202:
		kind = entities.ErrInvalidCurrency
	case 105, 201:
		kind = entities.ErrPlanRestriction
	default:
		kind = entities.ErrProvider
	}

	return fmt.Errorf("%w: %s", kind, info)
}
