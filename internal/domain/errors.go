package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio del kardex (sin dependencias de infraestructura).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrItemNotFound            = errors.New("ítem de stock no encontrado")
	ErrInvalidQuantity         = errors.New("cantidad inválida")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrInvalidDestination      = errors.New("ubicación destino inválida")
	ErrTransactionConflict     = errors.New("conflicto de concurrencia, reintente la operación")
	ErrInvalidStatusTransition = errors.New("transición de estado inválida")
)

// InsufficientStockError identifica el ítem que no alcanza la cantidad pedida.
// errors.Is(err, ErrInsufficientStock) sigue funcionando.
type InsufficientStockError struct {
	ItemID    string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en %s: disponible %s, solicitado %s",
		e.ItemID, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NewInsufficientStock construye el error tipado.
func NewInsufficientStock(itemID string, available, requested decimal.Decimal) error {
	return &InsufficientStockError{ItemID: itemID, Available: available, Requested: requested}
}
