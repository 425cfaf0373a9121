package repositories

import (
	"errors"
	"time"

	"fiber-tracking/models"
	"fiber-tracking/services"

	"gorm.io/gorm"
)

type UnitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

func (r *UnitRepository) GetByProductCode(code string) (*models.ProductionCode, error) {
	var unit models.ProductionCode
	if err := r.db.Where("product_code = ?", code).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.NewNotFoundError("code %s not found", code)
		}
		return nil, services.NewInternalError("unit lookup failed", err)
	}
	return &unit, nil
}

// ExistingCodes reports which of the candidate codes are already
// taken. One query per generation round.
func (r *UnitRepository) ExistingCodes(codes []string) (map[string]bool, error) {
	var taken []string
	if err := r.db.Model(&models.ProductionCode{}).
		Where("product_code IN ?", codes).
		Pluck("product_code", &taken).Error; err != nil {
		return nil, err
	}
	result := make(map[string]bool, len(taken))
	for _, code := range taken {
		result[code] = true
	}
	return result, nil
}

// CreateLotUnits persists a whole lot group in one transaction. A
// duplicate-key violation means another writer won a code between the
// pre-check and the insert; the caller regenerates and retries.
func (r *UnitRepository) CreateLotUnits(units []models.ProductionCode) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range units {
			if err := tx.Create(&units[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return services.NewConflictError("duplicate code or barcode in lot batch")
		}
		return services.NewInternalError("lot creation failed", err)
	}
	return nil
}

// Group returns every unit of the lot group, master first.
func (r *UnitRepository) Group(unit *models.ProductionCode) ([]models.ProductionCode, error) {
	masterID := unit.MasterID()
	var group []models.ProductionCode
	if err := r.db.
		Where("id = ? OR parent_group_id = ?", masterID, masterID).
		Order("code_index ASC").
		Find(&group).Error; err != nil {
		return nil, services.NewInternalError("group lookup failed", err)
	}
	return group, nil
}

// GroupSiblings returns the other units of the lot group: the master's
// children when the scanned unit is the master, otherwise the master
// plus the remaining children.
func (r *UnitRepository) GroupSiblings(unit *models.ProductionCode) ([]models.ProductionCode, error) {
	masterID := unit.MasterID()
	var siblings []models.ProductionCode
	if err := r.db.
		Where("(id = ? OR parent_group_id = ?) AND id <> ?", masterID, masterID, unit.ID).
		Order("code_index ASC").
		Find(&siblings).Error; err != nil {
		return nil, services.NewInternalError("sibling lookup failed", err)
	}
	return siblings, nil
}

// ApplyStageScan records one stage scan on the unit: timestamp, actor
// and quantity for that stage plus the recomputed status. The version
// compare-and-swap closes the double-scan race: two requests advancing
// the same unit cannot both match the old version.
func (r *UnitRepository) ApplyStageScan(unit *models.ProductionCode, step, actor string, qty float64, now time.Time) error {
	cols := map[string]interface{}{
		"status":     services.StatusAfterStep(step),
		"version":    unit.Version + 1,
		"updated_at": now,
	}
	switch step {
	case services.StepDelivery:
		cols["delivery_at"] = now
		cols["delivery_by"] = actor
		cols["delivery_qty"] = qty
	case services.StepReceive:
		cols["receive_at"] = now
		cols["receive_by"] = actor
		cols["receive_qty"] = qty
	case services.StepAssembling:
		cols["assembling_at"] = now
		cols["assembling_by"] = actor
		cols["assembling_qty"] = qty
	case services.StepWarehousing:
		cols["warehousing_at"] = now
		cols["warehousing_by"] = actor
		cols["warehousing_qty"] = qty
	default:
		return services.NewValidationError("unknown workflow step %q", step)
	}

	res := r.db.Model(&models.ProductionCode{}).
		Where("id = ? AND version = ?", unit.ID, unit.Version).
		Updates(cols)
	if res.Error != nil {
		return services.NewInternalError("stage update failed", res.Error)
	}
	if res.RowsAffected == 0 {
		return services.NewConflictError("code %s was scanned by another request, rescan to see its current stage", unit.ProductCode)
	}

	applyStageLocally(unit, step, actor, qty, now)
	return nil
}

func applyStageLocally(unit *models.ProductionCode, step, actor string, qty float64, now time.Time) {
	t := now
	switch step {
	case services.StepDelivery:
		unit.DeliveryAt, unit.DeliveryBy, unit.DeliveryQty = &t, actor, qty
	case services.StepReceive:
		unit.ReceiveAt, unit.ReceiveBy, unit.ReceiveQty = &t, actor, qty
	case services.StepAssembling:
		unit.AssemblingAt, unit.AssemblingBy, unit.AssemblingQty = &t, actor, qty
	case services.StepWarehousing:
		unit.WarehousingAt, unit.WarehousingBy, unit.WarehousingQty = &t, actor, qty
	}
	unit.Status = services.StatusAfterStep(step)
	unit.Version++
	unit.UpdatedAt = now
}

// PropagateStatus pushes the scanned unit's status onto its group
// siblings in one filtered batch update. Only status and updated_at
// move; the siblings' own stage timestamps, actors and quantities stay
// untouched so traceability remains per physical scan. Single-code
// lots skip propagation. Best effort: a failure here never rolls back
// the primary scan.
func (r *UnitRepository) PropagateStatus(unit *models.ProductionCode, status string, now time.Time) (int64, error) {
	if unit.TotalCodes <= 1 {
		return 0, nil
	}
	masterID := unit.MasterID()
	res := r.db.Model(&models.ProductionCode{}).
		Where("(id = ? OR parent_group_id = ?) AND id <> ?", masterID, masterID, unit.ID).
		UpdateColumns(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}

// CompleteSetup assigns the lot name and barcodes across the whole
// group and clears needs_setup, in one transaction.
func (r *UnitRepository) CompleteSetup(group []models.ProductionCode, lotName string, barcodes []string) error {
	if len(group) != len(barcodes) {
		return services.NewInternalError("barcode count does not match group size", nil)
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range group {
			res := tx.Model(&models.ProductionCode{}).
				Where("id = ?", group[i].ID).
				Updates(map[string]interface{}{
					"lot_name":    lotName,
					"lot_barcode": barcodes[i],
					"needs_setup": false,
				})
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return services.NewConflictError("lot barcode already in use")
		}
		return services.NewInternalError("setup completion failed", err)
	}
	return nil
}

// ListMasters returns lot masters, newest first, optionally filtered
// by status.
func (r *UnitRepository) ListMasters(status string, limit int) ([]models.ProductionCode, error) {
	q := r.db.Where("is_master = ?", true)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	var masters []models.ProductionCode
	if err := q.Order("id DESC").Limit(limit).Find(&masters).Error; err != nil {
		return nil, services.NewInternalError("lot list failed", err)
	}
	return masters, nil
}

// CountByStatus powers the dashboard summary.
func (r *UnitRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	if err := r.db.Model(&models.ProductionCode{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, services.NewInternalError("status count failed", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, v := range rows {
		counts[v.Status] = v.Total
	}
	return counts, nil
}
