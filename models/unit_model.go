package models

import (
	"fiber-tracking/controllers/idgen"
	"fiber-tracking/types"
	"time"

	"gorm.io/gorm"
)

// ProductionCode is one scannable unit of a lot. A lot of N pieces is
// stored as N rows sharing one group: the master (code_index 1) plus
// members pointing back at it via parent_group_id.
//
// The four stage timestamps are the source of truth for the workflow
// position. Status is a cached value recomputed from them on every
// write and must never be mutated independently.
type ProductionCode struct {
	ID            types.SnowflakeID  `json:"id" gorm:"primaryKey"`
	ProductCode   string             `json:"product_code" gorm:"size:11;uniqueIndex"`
	LotBarcode    string             `json:"lot_barcode" gorm:"size:20;index"`
	LotName       string             `json:"lot_name"`
	IsMaster      bool               `json:"is_master"`
	ParentGroupID *types.SnowflakeID `json:"parent_group_id" gorm:"index"`
	CodeIndex     int                `json:"code_index"`
	TotalCodes    int                `json:"total_codes"`
	Quantity      float64            `json:"quantity"`
	NeedsSetup    bool               `json:"needs_setup"`

	DeliveryAt     *time.Time `json:"delivery_at"`
	DeliveryBy     string     `json:"delivery_by"`
	DeliveryQty    float64    `json:"delivery_qty"`
	ReceiveAt      *time.Time `json:"receive_at"`
	ReceiveBy      string     `json:"receive_by"`
	ReceiveQty     float64    `json:"receive_qty"`
	AssemblingAt   *time.Time `json:"assembling_at"`
	AssemblingBy   string     `json:"assembling_by"`
	AssemblingQty  float64    `json:"assembling_qty"`
	WarehousingAt  *time.Time `json:"warehousing_at"`
	WarehousingBy  string     `json:"warehousing_by"`
	WarehousingQty float64    `json:"warehousing_qty"`

	Status  string `json:"status" gorm:"size:20;default:'created';index"`
	Version int    `json:"version" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *ProductionCode) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == 0 {
		u.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}

// MasterID returns the ID of the group's master row.
func (u *ProductionCode) MasterID() types.SnowflakeID {
	if u.IsMaster || u.ParentGroupID == nil {
		return u.ID
	}
	return *u.ParentGroupID
}
