package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StagingCounter acumulado del material que pasó a la siguiente etapa (ej. tolva de gruesos).
type StagingCounter struct {
	ID        string
	Name      string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
