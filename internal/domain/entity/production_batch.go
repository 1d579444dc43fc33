package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote de producción (blend).
const (
	BatchStatusPROGRAMMED = "PROGRAMMED"
	BatchStatusINPROGRESS = "IN_PROGRESS"
	BatchStatusCOMPLETED  = "COMPLETED"
)

// BatchComponent una línea de la composición: lote consumido y cantidad.
type BatchComponent struct {
	ItemID   string
	ItemName string
	Quantity decimal.Decimal
}

// ProductionBatch registro agregado del consumo de un blend de minerales.
type ProductionBatch struct {
	ID               string
	Composition      []BatchComponent
	CompositionLabel string
	TotalQuantity    decimal.Decimal
	StagingCounterID string
	Status           string
	StartTime        time.Time
	Actor            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanAdvanceTo valida la máquina de estados PROGRAMMED -> IN_PROGRESS -> COMPLETED.
func (b *ProductionBatch) CanAdvanceTo(status string) bool {
	switch b.Status {
	case BatchStatusPROGRAMMED:
		return status == BatchStatusINPROGRESS
	case BatchStatusINPROGRESS:
		return status == BatchStatusCOMPLETED
	}
	return false
}
