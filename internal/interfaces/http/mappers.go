package http

import (
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

func toStockItemResponse(s *entity.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:           s.ID,
		Name:         s.Name,
		Category:     s.Category,
		Unit:         s.Unit,
		Quantity:     s.Quantity,
		Location:     s.Location,
		Origin:       s.Origin,
		MinQuantity:  s.MinQuantity,
		BelowMinimum: s.BelowMinimum(),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toMovementResponse(m *entity.MovementRecord) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ItemID:        m.ItemID,
		Type:          m.Type,
		Subtype:       m.Subtype,
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Timestamp:     m.Timestamp,
		Note:          m.Note,
		Actor:         m.Actor,
		Reference:     m.Reference,
		TransferID:    m.TransferID,
	}
}

func toBatchResponse(b *entity.ProductionBatch) dto.ProductionBatchResponse {
	comp := make([]dto.BatchComponentDTO, 0, len(b.Composition))
	for _, c := range b.Composition {
		comp = append(comp, dto.BatchComponentDTO{ItemID: c.ItemID, ItemName: c.ItemName, Quantity: c.Quantity})
	}
	return dto.ProductionBatchResponse{
		ID:               b.ID,
		Composition:      comp,
		CompositionLabel: b.CompositionLabel,
		TotalQuantity:    b.TotalQuantity,
		StagingCounterID: b.StagingCounterID,
		Status:           b.Status,
		StartTime:        b.StartTime,
		Actor:            b.Actor,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
