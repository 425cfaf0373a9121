package middleware

import (
	"log"

	"fiber-tracking/repositories"
	"fiber-tracking/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Locals keys set by DeviceIdentity.
const (
	LocalsFingerprint = "deviceFingerprint"
	LocalsDevice      = "scanDevice"
	LocalsScannedBy   = "scannedBy"
)

// DeviceIdentity fingerprints every request and resolves the device to
// a registered employee when possible. There are no logins: this is
// the only identity a scan carries. Resolution failures never block
// the request; the scan is attributed to the raw fingerprint instead.
func DeviceIdentity(db *gorm.DB) fiber.Handler {
	repo := repositories.NewDeviceRepository(db)

	return func(ctx *fiber.Ctx) error {
		fp := services.Fingerprint(
			ctx.IP(),
			ctx.Get("User-Agent"),
			ctx.Get("Accept-Language"),
			ctx.Get("Accept-Encoding"),
		)

		device, err := repo.Resolve(fp, ctx.IP())
		if err != nil {
			log.Printf("device resolution failed for %s: %v", fp, err)
			device = nil
		}
		if device != nil {
			if err := repo.Touch(device, ctx.IP()); err != nil {
				log.Printf("device touch failed for %s: %v", device.EmployeeCode, err)
			}
		}

		ctx.Locals(LocalsFingerprint, fp)
		if device != nil {
			ctx.Locals(LocalsDevice, device)
		}
		ctx.Locals(LocalsScannedBy, services.AttributionLabel(device, fp))

		return ctx.Next()
	}
}
