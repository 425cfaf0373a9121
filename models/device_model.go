package models

import (
	"fiber-tracking/controllers/idgen"
	"fiber-tracking/types"
	"time"

	"gorm.io/gorm"
)

// ScanDevice binds a device fingerprint to an employee. There are no
// logins; this record is how a scan gets attributed to a person. The
// unique indexes on employee_code and device_fingerprint are the
// arbiter for concurrent registrations.
type ScanDevice struct {
	ID                types.SnowflakeID `json:"id" gorm:"primaryKey"`
	EmployeeCode      string            `json:"employee_code" gorm:"size:30;uniqueIndex"`
	UserName          string            `json:"user_name"`
	DeviceFingerprint string            `json:"device_fingerprint" gorm:"size:16;uniqueIndex"`
	LastKnownIP       string            `json:"last_known_ip" gorm:"size:45;index"`
	UserAgent         string            `json:"user_agent"`
	LastSeen          time.Time         `json:"last_seen"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (d *ScanDevice) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == 0 {
		d.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
