package services

import (
	"sort"

	"gso-inventory-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockCardService builds the per-item stock card: the movement ledger
// replayed in date order with a running balance. It is read-only and
// never touches the item registry.
type StockCardService struct {
	db *gorm.DB
}

// NewStockCardService creates a new stock card service
func NewStockCardService(db *gorm.DB) *StockCardService {
	return &StockCardService{db: db}
}

// StockCardEntry is one row of a stock card: a movement together with the
// balance and total value after it was applied.
type StockCardEntry struct {
	ID         uint            `json:"id"`
	Date       string          `json:"date"`
	Reference  string          `json:"reference"`
	Type       string          `json:"type"`
	Quantity   int             `json:"quantity"`
	Balance    int             `json:"balance"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	TotalValue decimal.Decimal `json:"total_value"`
	Remarks    string          `json:"remarks"`
}

// StockCard is the full stock card response for one item. LedgerBalance
// is the balance after the last ledger entry; Item.Quantity is the
// authoritative registry value. The two can legitimately differ after a
// physical-count adjustment, which is written to the registry directly
// and not to the ledger, so both are reported.
type StockCard struct {
	Item          models.Item      `json:"item"`
	TotalValue    decimal.Decimal  `json:"total_value"` // quantity × unit cost
	Entries       []StockCardEntry `json:"entries"`
	LedgerBalance int              `json:"ledger_balance"`
}

// GetStockCard computes the stock card for one item. An item with no
// movements yields an empty entry list.
func (s *StockCardService) GetStockCard(itemID uint) (*StockCard, error) {
	var item models.Item
	if err := s.db.First(&item, itemID).Error; err != nil {
		return nil, err
	}

	var movements []models.StockMovement
	if err := s.db.Preload("Custodian").Where("item_id = ?", itemID).Order("id ASC").Find(&movements).Error; err != nil {
		return nil, err
	}

	entries := ComputeStockCardEntries(&item, movements)

	card := &StockCard{
		Item:       item,
		TotalValue: item.TotalValue(),
		Entries:    entries,
	}
	if len(entries) > 0 {
		card.LedgerBalance = entries[len(entries)-1].Balance
	}

	return card, nil
}

// ComputeStockCardEntries replays an item's movements in chronological
// order and emits one entry per movement with the running balance.
// The input order does not matter: movements are stable-sorted by date
// here, with insertion order breaking ties.
func ComputeStockCardEntries(item *models.Item, movements []models.StockMovement) []StockCardEntry {
	sorted := make([]models.StockMovement, len(movements))
	copy(sorted, movements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	entries := make([]StockCardEntry, 0, len(sorted))
	balance := 0

	for _, movement := range sorted {
		if movement.Type == models.MovementReceived {
			balance += movement.Quantity
		} else {
			balance -= movement.Quantity
		}

		date := movement.Date.Format("2006-01-02")

		remarks := ""
		if movement.Type == models.MovementReceived {
			remarks = "Received on: " + date
		} else if movement.Custodian != nil {
			remarks = "Issued to: " + movement.Custodian.Name
		}

		entries = append(entries, StockCardEntry{
			ID:         movement.ID,
			Date:       date,
			Reference:  movement.Reference,
			Type:       movement.Type,
			Quantity:   movement.Quantity,
			Balance:    balance,
			UnitCost:   item.UnitCost,
			TotalValue: item.UnitCost.Mul(decimal.NewFromInt(int64(balance))),
			Remarks:    remarks,
		})
	}

	return entries
}
