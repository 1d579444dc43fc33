package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementTypeENTRY      = "ENTRY"      // entrada
	MovementTypeEXIT       = "EXIT"       // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste con signo
)

// Subtipos (clasificación del movimiento).
const (
	SubtypePURCHASE    = "PURCHASE"
	SubtypeINITIAL     = "INITIAL"
	SubtypeRETURN      = "RETURN"
	SubtypeCONSUMPTION = "CONSUMPTION"
	SubtypeLOSS        = "LOSS"
	SubtypeEXPIRY      = "EXPIRY"
	SubtypeCORRECTION  = "CORRECTION"
	SubtypeTRANSFER    = "TRANSFER"
	SubtypePRODUCTION  = "PRODUCTION"
)

// MovementRecord es una entrada inmutable del kardex.
// Quantity siempre es la magnitud (>= 0); el signo se deduce de Type o, en ajustes,
// de BalanceAfter - BalanceBefore.
type MovementRecord struct {
	ID            string
	ItemID        string
	Type          string
	Subtype       string
	Quantity      decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Timestamp     time.Time
	Note          string
	Actor         string
	Reference     string
	TransferID    string // vacío salvo en traslados; enlaza salida y entrada
}

// Delta devuelve el cambio de saldo con signo que produjo el movimiento.
func (m *MovementRecord) Delta() decimal.Decimal {
	return m.BalanceAfter.Sub(m.BalanceBefore)
}
