package inventory

import (
	"strings"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// subtipos permitidos por tipo de movimiento; el primero es el valor por defecto.
var allowedSubtypes = map[string][]string{
	entity.MovementTypeENTRY: {
		entity.SubtypePURCHASE, entity.SubtypeINITIAL, entity.SubtypeRETURN,
		entity.SubtypeTRANSFER, entity.SubtypePRODUCTION, entity.SubtypeCORRECTION,
	},
	entity.MovementTypeEXIT: {
		entity.SubtypeCONSUMPTION, entity.SubtypeLOSS, entity.SubtypeEXPIRY,
		entity.SubtypeRETURN, entity.SubtypeTRANSFER, entity.SubtypePRODUCTION,
		entity.SubtypeCORRECTION,
	},
	entity.MovementTypeADJUSTMENT: {
		entity.SubtypeCORRECTION, entity.SubtypeLOSS, entity.SubtypeEXPIRY,
		entity.SubtypeRETURN,
	},
}

// Límites de las columnas NUMERIC(18,4) del almacén.
const QuantityScale = 4

var maxQuantity = decimal.New(1, 14)

// ValidQuantity verifica que la magnitud quepa en el almacén sin redondeo:
// a lo sumo QuantityScale decimales y valor absoluto menor que 10^14.
// No valida el signo.
func ValidQuantity(q decimal.Decimal) error {
	if !q.Equal(q.Truncate(QuantityScale)) || q.Abs().GreaterThanOrEqual(maxQuantity) {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// ResolveSubtype valida el par tipo/subtipo. Un subtipo vacío toma el valor por defecto del tipo.
func ResolveSubtype(movementType, subtype string) (string, error) {
	allowed, ok := allowedSubtypes[movementType]
	if !ok {
		return "", domain.ErrInvalidInput
	}
	if subtype == "" {
		return allowed[0], nil
	}
	for _, s := range allowed {
		if s == subtype {
			return s, nil
		}
	}
	return "", domain.ErrInvalidInput
}

// SignedDelta devuelve el cambio de saldo que implica un movimiento.
// ENTRY suma, EXIT resta y ADJUSTMENT aplica quantity tal cual (con signo).
func SignedDelta(movementType string, quantity decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidQuantity(quantity); err != nil {
		return decimal.Zero, err
	}
	switch movementType {
	case entity.MovementTypeENTRY:
		if !quantity.IsPositive() {
			return decimal.Zero, domain.ErrInvalidQuantity
		}
		return quantity, nil
	case entity.MovementTypeEXIT:
		if !quantity.IsPositive() {
			return decimal.Zero, domain.ErrInvalidQuantity
		}
		return quantity.Neg(), nil
	case entity.MovementTypeADJUSTMENT:
		if quantity.IsZero() {
			return decimal.Zero, domain.ErrInvalidQuantity
		}
		return quantity, nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// ApplyMovement calcula el saldo posterior. Nunca permite un saldo negativo.
func ApplyMovement(itemID string, balanceBefore decimal.Decimal, movementType string, quantity decimal.Decimal) (decimal.Decimal, error) {
	delta, err := SignedDelta(movementType, quantity)
	if err != nil {
		return decimal.Zero, err
	}
	after := balanceBefore.Add(delta)
	if after.IsNegative() {
		return decimal.Zero, domain.NewInsufficientStock(itemID, balanceBefore, delta.Abs())
	}
	if err := ValidQuantity(after); err != nil {
		return decimal.Zero, err
	}
	return after, nil
}

// NormalizeLocation normaliza etiquetas de ubicación para compararlas (trim + minúsculas).
func NormalizeLocation(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

// SameLocation compara dos ubicaciones con la regla de normalización.
func SameLocation(a, b string) bool {
	return NormalizeLocation(a) == NormalizeLocation(b)
}
