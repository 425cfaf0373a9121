package models

import "gorm.io/gorm"

// ScanHistory is the append-only trail of successful stage scans.
type ScanHistory struct {
	gorm.Model
	RefCode    string  `json:"ref_code" gorm:"size:11;index"`
	LotBarcode string  `json:"lot_barcode" gorm:"size:20"`
	Stage      string  `json:"stage" gorm:"size:20"`
	ScannedBy  string  `json:"scanned_by"`
	Quantity   float64 `json:"quantity"`
}
