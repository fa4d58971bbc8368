package service

import (
	"context"

	"fixrates/internal/entities"
)

type RateClient interface {
	FetchRates(ctx context.Context, query entities.RateQuery) (*entities.RateResponse, error)
}
