package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateQuery describes a single request to the rate provider. It is
// constructed by the caller, used once and never mutated. An empty
// Symbols slice means an unfiltered fetch.
type RateQuery struct {
	APIKey  string
	Symbols []string
}

// RateResponse is a validated provider envelope. Rates never contains the
// base currency itself: every quote is relative to Base, so its own rate
// is 1.0 by definition.
type RateResponse struct {
	Base      string             `json:"base"`
	Timestamp int64              `json:"timestamp"`
	Rates     map[string]float64 `json:"rates"`
}

// ConversionResult carries both the rounded amount for display and the
// unrounded cross rate that produced it.
type ConversionResult struct {
	Amount          decimal.Decimal `json:"amount"`
	SourceCurrency  string          `json:"source_currency"`
	TargetCurrency  string          `json:"target_currency"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	RateUsed        decimal.Decimal `json:"rate_used"`
}

// ConversionRecord is one row of the conversion audit log.
type ConversionRecord struct {
	ID              string
	Amount          decimal.Decimal
	SourceCurrency  string
	TargetCurrency  string
	ConvertedAmount decimal.Decimal
	RateUsed        decimal.Decimal
	CreatedAt       time.Time
}
