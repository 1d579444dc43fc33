package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un lote físico de material en una ubicación (cancha, zona, tolva).
// Quantity nunca es negativa; solo se modifica a través del kardex.
type StockItem struct {
	ID          string
	Name        string
	Category    string
	Unit        string          // TM, m3, kg
	Quantity    decimal.Decimal // saldo actual
	Location    string          // etiqueta libre: "Cancha 1", "Zona B"
	Origin      string          // proveedor o procedencia (opcional)
	MinQuantity decimal.Decimal // punto de reorden (informativo)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BelowMinimum indica si el saldo está por debajo del punto de reorden.
func (s *StockItem) BelowMinimum() bool {
	return s.MinQuantity.GreaterThan(decimal.Zero) && s.Quantity.LessThan(s.MinQuantity)
}

// StockItemFilter filtros de listado de lotes.
type StockItemFilter struct {
	Location     string
	Category     string
	BelowMinimum bool
	Limit        int
	Offset       int
}
