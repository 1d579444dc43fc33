package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TransferOrchestrator traslada material de un lote a un lote nuevo en otra ubicación,
// con salida y entrada en el kardex dentro de una sola transacción.
type TransferOrchestrator struct {
	txRunner TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewTransferOrchestrator construye el orquestador de traslados.
func NewTransferOrchestrator(txRunner TxRunner, log zerolog.Logger) *TransferOrchestrator {
	return &TransferOrchestrator{txRunner: txRunner, log: log, now: time.Now}
}

// TransferInput entrada de un traslado.
type TransferInput struct {
	SourceItemID        string
	DestinationLocation string
	Quantity            decimal.Decimal
	Note                string
	Actor               string
}

// TransferResult saldos resultantes e identificadores creados.
type TransferResult struct {
	TransferID         string
	SourceBalance      decimal.Decimal
	DestinationItemID  string
	DestinationBalance decimal.Decimal
	ExitMovementID     string
	EntryMovementID    string
}

// Transfer resta del lote origen, materializa siempre un lote nuevo en el destino y
// registra EXIT/TRANSFER y ENTRY/TRANSFER. Nunca se observa un traslado parcial.
func (uc *TransferOrchestrator) Transfer(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if strings.TrimSpace(in.SourceItemID) == "" || strings.TrimSpace(in.Actor) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if err := inventory.ValidQuantity(in.Quantity); err != nil {
		return nil, err
	}
	destination := strings.TrimSpace(in.DestinationLocation)
	if destination == "" {
		return nil, domain.ErrInvalidDestination
	}

	now := uc.now()
	res := &TransferResult{
		TransferID:      uuid.New().String(),
		ExitMovementID:  uuid.New().String(),
		EntryMovementID: uuid.New().String(),
	}

	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		// Relee el origen dentro de la transacción
		source, err := repos.Stock.Get(ctx, in.SourceItemID)
		if err != nil {
			return err
		}
		if inventory.SameLocation(source.Location, destination) {
			return domain.ErrInvalidDestination
		}
		oldBalance := source.Quantity
		newBalance, err := inventory.ApplyMovement(source.ID, oldBalance, entity.MovementTypeEXIT, in.Quantity)
		if err != nil {
			return err
		}
		if err := repos.Stock.Put(ctx, source.ID, newBalance, now); err != nil {
			return err
		}

		// Lote nuevo en destino (no se fusiona con lotes existentes)
		destID, err := repos.Stock.Create(ctx, &entity.StockItem{
			Name:        source.Name,
			Category:    source.Category,
			Unit:        source.Unit,
			Quantity:    in.Quantity,
			Location:    destination,
			Origin:      source.Origin,
			MinQuantity: source.MinQuantity,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}

		exit := &entity.MovementRecord{
			ID:            res.ExitMovementID,
			ItemID:        source.ID,
			Type:          entity.MovementTypeEXIT,
			Subtype:       entity.SubtypeTRANSFER,
			Quantity:      in.Quantity,
			BalanceBefore: oldBalance,
			BalanceAfter:  newBalance,
			Timestamp:     now,
			Note:          in.Note,
			Actor:         in.Actor,
			Reference:     fmt.Sprintf("Traslado a %s (mov %s)", destination, res.EntryMovementID),
			TransferID:    res.TransferID,
		}
		if _, err := repos.Movements.Append(ctx, exit); err != nil {
			return err
		}
		entry := &entity.MovementRecord{
			ID:            res.EntryMovementID,
			ItemID:        destID,
			Type:          entity.MovementTypeENTRY,
			Subtype:       entity.SubtypeTRANSFER,
			Quantity:      in.Quantity,
			BalanceBefore: decimal.Zero,
			BalanceAfter:  in.Quantity,
			Timestamp:     now,
			Note:          in.Note,
			Actor:         in.Actor,
			Reference:     fmt.Sprintf("Traslado desde %s (mov %s)", source.Location, res.ExitMovementID),
			TransferID:    res.TransferID,
		}
		if _, err := repos.Movements.Append(ctx, entry); err != nil {
			return err
		}

		res.SourceBalance = newBalance
		res.DestinationItemID = destID
		res.DestinationBalance = in.Quantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("transfer_id", res.TransferID).
		Str("source_item_id", in.SourceItemID).
		Str("destination_item_id", res.DestinationItemID).
		Str("destination", destination).
		Str("quantity", in.Quantity.String()).
		Str("actor", in.Actor).
		Msg("traslado registrado")
	return res, nil
}
