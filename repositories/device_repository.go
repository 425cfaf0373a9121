package repositories

import (
	"errors"
	"time"

	"fiber-tracking/models"
	"fiber-tracking/services"

	"gorm.io/gorm"
)

type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Resolve finds a known device by exact fingerprint first, then falls
// back to the last known IP. Returns nil without error when nothing
// matches: unknown devices are not an error condition.
func (r *DeviceRepository) Resolve(fingerprint, ip string) (*models.ScanDevice, error) {
	var device models.ScanDevice
	err := r.db.Where("device_fingerprint = ?", fingerprint).First(&device).Error
	if err == nil {
		return &device, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.NewInternalError("device lookup failed", err)
	}

	err = r.db.Where("last_known_ip = ?", ip).Order("last_seen DESC").First(&device).Error
	if err == nil {
		return &device, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.NewInternalError("device lookup failed", err)
	}
	return nil, nil
}

// Register binds the fingerprint to an employee. An existing
// employee_code gets its fingerprint and metadata updated (device
// re-binding); a fingerprint already bound to a different employee is
// a conflict, never an overwrite.
func (r *DeviceRepository) Register(fingerprint, employeeCode, userName, ip, userAgent string) (*models.ScanDevice, error) {
	var other models.ScanDevice
	err := r.db.Where("device_fingerprint = ? AND employee_code <> ?", fingerprint, employeeCode).First(&other).Error
	if err == nil {
		return nil, services.NewConflictError("this device is already registered to %s", other.EmployeeCode)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.NewInternalError("device lookup failed", err)
	}

	now := time.Now()

	var device models.ScanDevice
	err = r.db.Where("employee_code = ?", employeeCode).First(&device).Error
	if err == nil {
		updates := map[string]interface{}{
			"user_name":          userName,
			"device_fingerprint": fingerprint,
			"last_known_ip":      ip,
			"user_agent":         userAgent,
			"last_seen":          now,
		}
		if err := r.db.Model(&device).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, services.NewConflictError("this device is already registered to another employee")
			}
			return nil, services.NewInternalError("device update failed", err)
		}
		return &device, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.NewInternalError("device lookup failed", err)
	}

	device = models.ScanDevice{
		EmployeeCode:      employeeCode,
		UserName:          userName,
		DeviceFingerprint: fingerprint,
		LastKnownIP:       ip,
		UserAgent:         userAgent,
		LastSeen:          now,
	}
	if err := r.db.Create(&device).Error; err != nil {
		// The unique indexes are the real arbiter under concurrent
		// registration; the pre-checks above only save round-trips.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, services.NewConflictError("employee code or device already registered")
		}
		return nil, services.NewInternalError("device registration failed", err)
	}
	return &device, nil
}

// Touch refreshes last-seen bookkeeping on a resolved device.
func (r *DeviceRepository) Touch(device *models.ScanDevice, ip string) error {
	return r.db.Model(device).UpdateColumns(map[string]interface{}{
		"last_known_ip": ip,
		"last_seen":     time.Now(),
	}).Error
}

func (r *DeviceRepository) List() ([]models.ScanDevice, error) {
	var devices []models.ScanDevice
	if err := r.db.Order("last_seen DESC").Find(&devices).Error; err != nil {
		return nil, services.NewInternalError("device list failed", err)
	}
	return devices, nil
}
