package repositories

import (
	"testing"
	"time"

	"fiber-tracking/models"
	"fiber-tracking/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLotUnitsInvariants(t *testing.T) {
	db := setupTestDB(t)
	createLot(t, db, "LOTA", 3)

	var units []models.ProductionCode
	require.NoError(t, db.Order("code_index ASC").Find(&units).Error)
	require.Len(t, units, 3)

	masters := 0
	for i, unit := range units {
		assert.Equal(t, i+1, unit.CodeIndex)
		assert.Equal(t, 3, unit.TotalCodes)
		if unit.IsMaster {
			masters++
			assert.Equal(t, 1, unit.CodeIndex)
			assert.Nil(t, unit.ParentGroupID)
		} else {
			require.NotNil(t, unit.ParentGroupID)
			assert.Equal(t, units[0].ID, *unit.ParentGroupID)
		}
	}
	assert.Equal(t, 1, masters)
}

func TestCreateLotUnitsDuplicateCodeConflict(t *testing.T) {
	db := setupTestDB(t)
	group := createLot(t, db, "LOTA", 2)

	repo := NewUnitRepository(db)
	dup := models.ProductionCode{
		ProductCode: group[0].ProductCode,
		LotBarcode:  "OTHER-QR1",
		IsMaster:    true,
		CodeIndex:   1,
		TotalCodes:  1,
		Status:      services.StatusCreated,
	}

	err := repo.CreateLotUnits([]models.ProductionCode{dup})
	var conflict *services.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestExistingCodes(t *testing.T) {
	db := setupTestDB(t)
	group := createLot(t, db, "LOTA", 2)

	repo := NewUnitRepository(db)
	taken, err := repo.ExistingCodes([]string{group[0].ProductCode, "PDEADBEEF00"})
	require.NoError(t, err)
	assert.True(t, taken[group[0].ProductCode])
	assert.False(t, taken["PDEADBEEF00"])
}

// Scanning the master sets its own stage fields; propagation moves the
// siblings' status only, never their stage timestamps or quantities.
func TestPropagateStatusLeavesSiblingStageFieldsAlone(t *testing.T) {
	db := setupTestDB(t)
	group := createLot(t, db, "LOTA", 3)

	repo := NewUnitRepository(db)
	master := group[0]
	now := time.Now()

	require.NoError(t, repo.ApplyStageScan(&master, services.StepDelivery, "Siti Rahma (EMP042)", 10, now))

	updated, err := repo.PropagateStatus(&master, master.Status, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	var siblings []models.ProductionCode
	require.NoError(t, db.Where("id <> ?", master.ID).Find(&siblings).Error)
	require.Len(t, siblings, 2)

	for _, sibling := range siblings {
		assert.Equal(t, services.StatusDelivered, sibling.Status)
		assert.Nil(t, sibling.DeliveryAt)
		assert.Empty(t, sibling.DeliveryBy)
		assert.Zero(t, sibling.DeliveryQty)
	}

	var reloaded models.ProductionCode
	require.NoError(t, db.First(&reloaded, "id = ?", master.ID).Error)
	assert.NotNil(t, reloaded.DeliveryAt)
	assert.Equal(t, "Siti Rahma (EMP042)", reloaded.DeliveryBy)
}

func TestPropagateStatusSkipsSingleUnitLots(t *testing.T) {
	db := setupTestDB(t)
	group := createLot(t, db, "LOTA", 1)

	repo := NewUnitRepository(db)
	updated, err := repo.PropagateStatus(&group[0], services.StatusDelivered, time.Now())
	require.NoError(t, err)
	assert.Zero(t, updated)
}

// Two requests racing to advance the same unit: the second one holds a
// stale version and must get a conflict, not a silent double-write.
func TestApplyStageScanVersionConflict(t *testing.T) {
	db := setupTestDB(t)
	group := createLot(t, db, "LOTA", 1)

	repo := NewUnitRepository(db)

	first := group[0]
	second := group[0]

	require.NoError(t, repo.ApplyStageScan(&first, services.StepDelivery, "Device: abcdef01", 10, time.Now()))

	err := repo.ApplyStageScan(&second, services.StepDelivery, "Device: ffffffff", 10, time.Now())
	var conflict *services.ConflictError
	assert.ErrorAs(t, err, &conflict)

	// The winner's write stands untouched.
	var reloaded models.ProductionCode
	require.NoError(t, db.First(&reloaded, "id = ?", first.ID).Error)
	assert.Equal(t, "Device: abcdef01", reloaded.DeliveryBy)
	assert.Equal(t, 1, reloaded.Version)
}

func TestGroupSiblingsFromMember(t *testing.T) {
	db := setupTestDB(t)
	group := createLot(t, db, "LOTA", 3)

	repo := NewUnitRepository(db)
	siblings, err := repo.GroupSiblings(&group[1])
	require.NoError(t, err)
	require.Len(t, siblings, 2)

	ids := map[string]bool{}
	for _, s := range siblings {
		ids[s.ProductCode] = true
	}
	assert.True(t, ids[group[0].ProductCode], "master missing from siblings")
	assert.True(t, ids[group[2].ProductCode], "other member missing from siblings")
	assert.False(t, ids[group[1].ProductCode], "scanned unit must not be its own sibling")
}

func TestCompleteSetup(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUnitRepository(db)
	group := createLot(t, db, "TMP", 2)
	require.NoError(t, db.Model(&models.ProductionCode{}).Where("1 = 1").Update("needs_setup", true).Error)

	require.NoError(t, repo.CompleteSetup(group, "Valve Housing", []string{"VH-001-QR1", "VH-001-QR2"}))

	var units []models.ProductionCode
	require.NoError(t, db.Order("code_index ASC").Find(&units).Error)
	for i, unit := range units {
		assert.False(t, unit.NeedsSetup)
		assert.Equal(t, "Valve Housing", unit.LotName)
		assert.Equal(t, []string{"VH-001-QR1", "VH-001-QR2"}[i], unit.LotBarcode)
	}
}

func TestListMastersAndCounts(t *testing.T) {
	db := setupTestDB(t)
	createLot(t, db, "LOTA", 2)
	createLot(t, db, "LOTB", 1)

	repo := NewUnitRepository(db)

	masters, err := repo.ListMasters("", 0)
	require.NoError(t, err)
	assert.Len(t, masters, 2)

	counts, err := repo.CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[services.StatusCreated])
}
