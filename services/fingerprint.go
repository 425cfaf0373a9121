package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"fiber-tracking/models"
)

// fingerprintLen keeps the digest short enough for labels and the
// device_fingerprint column while leaving collisions negligible for a
// plant-floor device population.
const fingerprintLen = 16

// Fingerprint derives a stable device identity from request
// characteristics. Identical inputs always produce the same value; any
// field change is expected (not guaranteed) to change it.
func Fingerprint(ip, userAgent, acceptLanguage, acceptEncoding string) string {
	sum := sha256.Sum256([]byte(ip + "|" + userAgent + "|" + acceptLanguage + "|" + acceptEncoding))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

// AttributionLabel is the human-readable actor recorded on scans.
// Unknown devices are never rejected, just labelled by fingerprint.
func AttributionLabel(device *models.ScanDevice, fingerprint string) string {
	if device != nil {
		return fmt.Sprintf("%s (%s)", device.UserName, device.EmployeeCode)
	}
	if len(fingerprint) > 8 {
		fingerprint = fingerprint[:8]
	}
	return "Device: " + fingerprint
}
