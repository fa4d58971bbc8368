package public

import (
	"context"

	"fixrates/internal/entities"
)

type Service interface {
	Hello() string
	GetAllRates(ctx context.Context, apiKey string) (*entities.RateResponse, error)
	GetSpecificRates(ctx context.Context, currencies, apiKey string) (*entities.RateResponse, error)
	Convert(ctx context.Context, amount, sourceCurrency, targetCurrency, apiKey string) (*entities.ConversionResult, error)
	ListSupportedCurrencies(ctx context.Context, apiKey string) ([]entities.CurrencyInfo, error)
}
