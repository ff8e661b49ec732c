package services

import (
	"errors"
	"sort"
	"time"

	"gso-inventory-backend/models"

	"gorm.io/gorm"
)

var (
	// ErrCountCompleted is returned when entries are submitted against a
	// finalized session. Completed is terminal.
	ErrCountCompleted = errors.New("physical count is already completed")
	// ErrNegativeCount is returned before any write when an entry is below zero.
	ErrNegativeCount = errors.New("counted quantity cannot be negative")
	// ErrNoSavedEntries is returned when reconciling a session that never
	// had progress saved.
	ErrNoSavedEntries = errors.New("physical count has no saved entries")
)

// CountService drives the physical count session state machine and the
// reconciliation of counted quantities against the item registry.
//
// Finalization is a best-effort fan-out: one absolute registry write per
// discrepant item, independent and unretried, followed by a single
// session write. A failure on one item does not roll back or abort the
// others; it is collected and reported. Callers must treat a failed
// finalize as partially applied and use Reconcile to repair.
type CountService struct {
	db *gorm.DB
}

// NewCountService creates a new count service
func NewCountService(db *gorm.DB) *CountService {
	return &CountService{db: db}
}

// Adjustment records one registry write performed during finalization.
type Adjustment struct {
	ItemID      uint   `json:"item_id"`
	ItemCode    string `json:"item_code"`
	ItemName    string `json:"item_name"`
	OldQuantity int    `json:"old_quantity"`
	NewQuantity int    `json:"new_quantity"`
	Discrepancy int    `json:"discrepancy"`
}

// AdjustmentFailure records one registry write that failed. The session
// and the other writes are not rolled back.
type AdjustmentFailure struct {
	ItemID  uint   `json:"item_id"`
	Message string `json:"message"`
}

// FinalizeResult is the outcome of a finalize or reconcile call.
type FinalizeResult struct {
	Count       *models.PhysicalCount `json:"count"`
	Adjustments []Adjustment          `json:"adjustments"`
	Failures    []AdjustmentFailure   `json:"failures,omitempty"`
}

// Schedule creates a new session in the Scheduled state with no lines.
func (s *CountService) Schedule(countDate time.Time, countedBy, location, notes string) (*models.PhysicalCount, error) {
	count := models.PhysicalCount{
		CountDate: countDate,
		CountedBy: countedBy,
		Location:  location,
		Status:    models.CountScheduled,
		Notes:     notes,
	}
	if err := s.db.Create(&count).Error; err != nil {
		return nil, err
	}
	return &count, nil
}

// Get loads a session with its lines.
func (s *CountService) Get(countID uint) (*models.PhysicalCount, error) {
	var count models.PhysicalCount
	err := s.db.Preload("Items.Item").First(&count, countID).Error
	if err != nil {
		return nil, err
	}
	return &count, nil
}

// List returns all sessions, newest count date first.
func (s *CountService) List() ([]models.PhysicalCount, error) {
	var counts []models.PhysicalCount
	err := s.db.Order("count_date DESC, id DESC").Find(&counts).Error
	return counts, err
}

// SaveProgress stores a partial set of counted quantities against a
// Scheduled or In Progress session and moves it to In Progress. The line
// set is replaced, not appended to, so re-saving is idempotent. Entries
// for items not in the registry are dropped. The item registry is never
// touched here.
func (s *CountService) SaveProgress(countID uint, entries map[uint]int) (*models.PhysicalCount, error) {
	count, err := s.Get(countID)
	if err != nil {
		return nil, err
	}
	if !count.Editable() {
		return nil, ErrCountCompleted
	}
	if err := checkEntries(entries); err != nil {
		return nil, err
	}

	items, err := s.itemsByID()
	if err != nil {
		return nil, err
	}

	lines := make([]models.PhysicalCountItem, 0, len(entries))
	for _, itemID := range sortedKeys(entries) {
		item, ok := items[itemID]
		if !ok {
			continue
		}
		counted := entries[itemID]
		lines = append(lines, models.PhysicalCountItem{
			PhysicalCountID: count.ID,
			ItemID:          itemID,
			CountedQuantity: intPtr(counted),
			SystemQuantity:  item.Quantity,
			Discrepancy:     counted - item.Quantity,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("physical_count_id = ?", count.ID).Delete(&models.PhysicalCountItem{}).Error; err != nil {
			return err
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return tx.Model(count).Updates(map[string]interface{}{
			"status":     models.CountInProgress,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(countID)
}

// Finalize reconciles the entered counts against the full item registry
// and freezes the session.
//
// Every registry item takes part: an item without an entry is assumed
// correct (counted = system, discrepancy 0) and does not count toward
// ItemsCounted. Every item with a non-zero discrepancy gets an absolute
// quantity write with the status recomputed by the registry's usual rule.
// The session write (lines, Completed, aggregates) happens once, after
// the per-item fan-out.
//
// Because the registry holds absolute quantities, re-running Finalize
// with the same entries after a successful pass finds zero discrepancies
// and performs zero writes.
func (s *CountService) Finalize(countID uint, entries map[uint]int, actedBy string) (*FinalizeResult, error) {
	count, err := s.Get(countID)
	if err != nil {
		return nil, err
	}
	if count.Status == models.CountCompleted {
		return nil, ErrCountCompleted
	}
	if err := checkEntries(entries); err != nil {
		return nil, err
	}

	var items []models.Item
	if err := s.db.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	itemsCounted := 0
	discrepanciesFound := 0
	lines := make([]models.PhysicalCountItem, 0, len(items))
	adjustments := []Adjustment{}
	failures := []AdjustmentFailure{}

	for i := range items {
		item := &items[i]

		counted, entered := entries[item.ID]
		if !entered {
			counted = item.Quantity
		} else {
			itemsCounted++
		}

		discrepancy := counted - item.Quantity
		if discrepancy != 0 {
			discrepanciesFound++
			if err := s.adjustItem(item, counted); err != nil {
				failures = append(failures, AdjustmentFailure{ItemID: item.ID, Message: err.Error()})
			} else {
				adjustments = append(adjustments, Adjustment{
					ItemID:      item.ID,
					ItemCode:    item.ItemCode,
					ItemName:    item.ItemName,
					OldQuantity: item.Quantity,
					NewQuantity: counted,
					Discrepancy: discrepancy,
				})
			}
		}

		lines = append(lines, models.PhysicalCountItem{
			PhysicalCountID: count.ID,
			ItemID:          item.ID,
			CountedQuantity: intPtr(counted),
			SystemQuantity:  item.Quantity,
			Discrepancy:     discrepancy,
		})
	}

	countedBy := count.CountedBy
	if countedBy == "" {
		countedBy = actedBy
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("physical_count_id = ?", count.ID).Delete(&models.PhysicalCountItem{}).Error; err != nil {
			return err
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return tx.Model(count).Updates(map[string]interface{}{
			"status":              models.CountCompleted,
			"counted_by":          countedBy,
			"items_counted":       itemsCounted,
			"discrepancies_found": discrepanciesFound,
			"updated_at":          time.Now(),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	count, err = s.Get(countID)
	if err != nil {
		return nil, err
	}

	return &FinalizeResult{Count: count, Adjustments: adjustments, Failures: failures}, nil
}

// Reconcile re-diffs a session's saved lines against the current registry
// and re-applies any counted value that still differs. It exists to
// repair a finalize that crashed between the per-item writes and the
// session write, or that reported per-item failures; registry writes are
// absolute, so repeating them cannot double-apply a delta. A session
// repaired while still In Progress is moved to Completed with aggregates
// recomputed from its lines.
func (s *CountService) Reconcile(countID uint) (*FinalizeResult, error) {
	count, err := s.Get(countID)
	if err != nil {
		return nil, err
	}
	if len(count.Items) == 0 {
		return nil, ErrNoSavedEntries
	}

	adjustments := []Adjustment{}
	failures := []AdjustmentFailure{}

	for _, line := range count.Items {
		if line.CountedQuantity == nil {
			continue
		}
		counted := *line.CountedQuantity

		var item models.Item
		if err := s.db.First(&item, line.ItemID).Error; err != nil {
			failures = append(failures, AdjustmentFailure{ItemID: line.ItemID, Message: err.Error()})
			continue
		}
		if item.Quantity == counted {
			continue
		}

		if err := s.adjustItem(&item, counted); err != nil {
			failures = append(failures, AdjustmentFailure{ItemID: item.ID, Message: err.Error()})
			continue
		}
		adjustments = append(adjustments, Adjustment{
			ItemID:      item.ID,
			ItemCode:    item.ItemCode,
			ItemName:    item.ItemName,
			OldQuantity: item.Quantity,
			NewQuantity: counted,
			Discrepancy: counted - item.Quantity,
		})
	}

	if count.Status != models.CountCompleted {
		itemsCounted := 0
		discrepanciesFound := 0
		for _, line := range count.Items {
			if line.CountedQuantity != nil {
				itemsCounted++
			}
			if line.Discrepancy != 0 {
				discrepanciesFound++
			}
		}
		err = s.db.Model(count).Updates(map[string]interface{}{
			"status":              models.CountCompleted,
			"items_counted":       itemsCounted,
			"discrepancies_found": discrepanciesFound,
			"updated_at":          time.Now(),
		}).Error
		if err != nil {
			return nil, err
		}
	}

	count, err = s.Get(countID)
	if err != nil {
		return nil, err
	}

	return &FinalizeResult{Count: count, Adjustments: adjustments, Failures: failures}, nil
}

// adjustItem writes an absolute quantity to the registry, recomputing the
// derived status. No ledger movement is recorded: a count adjustment is
// an out-of-band correction, and the ledger keeps the observed history.
func (s *CountService) adjustItem(item *models.Item, quantity int) error {
	return s.db.Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"quantity":   quantity,
		"status":     models.ComputeStatus(quantity, item.ReorderLevel),
		"updated_at": time.Now(),
	}).Error
}

func (s *CountService) itemsByID() (map[uint]*models.Item, error) {
	var items []models.Item
	if err := s.db.Find(&items).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	return byID, nil
}

func checkEntries(entries map[uint]int) error {
	for _, counted := range entries {
		if counted < 0 {
			return ErrNegativeCount
		}
	}
	return nil
}

func sortedKeys(entries map[uint]int) []uint {
	keys := make([]uint, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func intPtr(v int) *int {
	return &v
}
