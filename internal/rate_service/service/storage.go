package service

import (
	"context"

	"fixrates/internal/entities"
)

type AuditStorage interface {
	SaveConversion(ctx context.Context, record entities.ConversionRecord) error
}
