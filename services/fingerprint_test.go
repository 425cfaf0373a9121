package services

import (
	"testing"

	"fiber-tracking/models"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint("10.0.0.5", "ScannerApp/1.2", "en-US", "gzip")
	b := Fingerprint("10.0.0.5", "ScannerApp/1.2", "en-US", "gzip")
	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
}

func TestFingerprintSensitiveToEachField(t *testing.T) {
	base := Fingerprint("10.0.0.5", "ScannerApp/1.2", "en-US", "gzip")

	assert.NotEqual(t, base, Fingerprint("10.0.0.6", "ScannerApp/1.2", "en-US", "gzip"))
	assert.NotEqual(t, base, Fingerprint("10.0.0.5", "ScannerApp/1.3", "en-US", "gzip"))
	assert.NotEqual(t, base, Fingerprint("10.0.0.5", "ScannerApp/1.2", "de-DE", "gzip"))
	assert.NotEqual(t, base, Fingerprint("10.0.0.5", "ScannerApp/1.2", "en-US", "br"))
}

func TestAttributionLabel(t *testing.T) {
	device := &models.ScanDevice{UserName: "Siti Rahma", EmployeeCode: "EMP042"}
	assert.Equal(t, "Siti Rahma (EMP042)", AttributionLabel(device, "abcdef0123456789"))

	// Unknown devices are labelled, never rejected.
	assert.Equal(t, "Device: abcdef01", AttributionLabel(nil, "abcdef0123456789"))
}
