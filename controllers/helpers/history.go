package helpers

import (
	"fiber-tracking/models"

	"gorm.io/gorm"
)

// InsertScanHistory appends one row to the scan trail.
func InsertScanHistory(db *gorm.DB, refCode, lotBarcode, stage, scannedBy string, quantity float64) error {
	history := models.ScanHistory{
		RefCode:    refCode,
		LotBarcode: lotBarcode,
		Stage:      stage,
		ScannedBy:  scannedBy,
		Quantity:   quantity,
	}

	if err := db.Create(&history).Error; err != nil {
		return err
	}

	return nil
}
