package repositories

import (
	"testing"

	"fiber-tracking/models"
	"fiber-tracking/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndResolve(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceRepository(db)

	device, err := repo.Register("aaaa111122223333", "EMP042", "Siti Rahma", "10.0.0.5", "ScannerApp/1.2")
	require.NoError(t, err)
	assert.Equal(t, "EMP042", device.EmployeeCode)

	resolved, err := repo.Resolve("aaaa111122223333", "10.9.9.9")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, "EMP042", resolved.EmployeeCode)
}

func TestResolveFallsBackToIP(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceRepository(db)

	_, err := repo.Register("aaaa111122223333", "EMP042", "Siti Rahma", "10.0.0.5", "ScannerApp/1.2")
	require.NoError(t, err)

	// A browser update changed the fingerprint; the IP still matches.
	resolved, err := repo.Resolve("bbbb444455556666", "10.0.0.5")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, "EMP042", resolved.EmployeeCode)

	unknown, err := repo.Resolve("bbbb444455556666", "172.16.0.1")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

// Re-registering an existing employee re-binds the record to the new
// device instead of creating a duplicate.
func TestRegisterExistingEmployeeRebinds(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceRepository(db)

	first, err := repo.Register("aaaa111122223333", "EMP042", "Siti Rahma", "10.0.0.5", "ScannerApp/1.2")
	require.NoError(t, err)

	second, err := repo.Register("bbbb444455556666", "EMP042", "Siti Rahma", "10.0.0.7", "ScannerApp/1.3")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.ScanDevice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var reloaded models.ScanDevice
	require.NoError(t, db.First(&reloaded, "employee_code = ?", "EMP042").Error)
	assert.Equal(t, "bbbb444455556666", reloaded.DeviceFingerprint)
	assert.Equal(t, "10.0.0.7", reloaded.LastKnownIP)
}

// A fingerprint already bound to another employee is a conflict, never
// an overwrite.
func TestRegisterFingerprintOwnedByOtherEmployee(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceRepository(db)

	_, err := repo.Register("aaaa111122223333", "EMP042", "Siti Rahma", "10.0.0.5", "ScannerApp/1.2")
	require.NoError(t, err)

	_, err = repo.Register("aaaa111122223333", "EMP077", "Budi Santoso", "10.0.0.6", "ScannerApp/1.2")
	var conflict *services.ConflictError
	assert.ErrorAs(t, err, &conflict)
}
