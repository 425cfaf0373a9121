package repositories

import (
	"fmt"
	"testing"

	"fiber-tracking/controllers/idgen"
	"fiber-tracking/models"
	"fiber-tracking/services"
	"fiber-tracking/types"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a per-test in-memory database. TranslateError is
// on, matching production, so duplicate-key violations surface as
// gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ProductionCode{},
		&models.WorkflowConfig{},
		&models.ScanDevice{},
		&models.ScanHistory{},
	))
	return db
}

// createLot inserts a lot group of the given size, mirroring what the
// lot controller builds: master at index 1, members pointing at it.
func createLot(t *testing.T, db *gorm.DB, barcodeBase string, total int) []models.ProductionCode {
	t.Helper()

	repo := NewUnitRepository(db)
	masterID := types.SnowflakeID(idgen.GenerateID())

	group := make([]models.ProductionCode, 0, total)
	for i := 1; i <= total; i++ {
		unit := models.ProductionCode{
			ProductCode: fmt.Sprintf("P%09X%d", idgen.GenerateID()%0xFFFFFF, i),
			LotBarcode:  fmt.Sprintf("%s-QR%d", barcodeBase, i),
			LotName:     "Test Lot",
			IsMaster:    i == 1,
			CodeIndex:   i,
			TotalCodes:  total,
			Quantity:    10,
			Status:      services.StatusCreated,
		}
		if i == 1 {
			unit.ID = masterID
		} else {
			parent := masterID
			unit.ParentGroupID = &parent
		}
		group = append(group, unit)
	}

	require.NoError(t, repo.CreateLotUnits(group))
	return group
}
