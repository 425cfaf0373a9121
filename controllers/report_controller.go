package controllers

import (
	"fmt"
	"time"

	"fiber-tracking/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// ExportScanHistory streams the scan trail as an Excel workbook.
// Optional from/to query params (YYYY-MM-DD) bound the range.
func (c *ReportController) ExportScanHistory(ctx *fiber.Ctx) error {
	q := c.DB.Model(&models.ScanHistory{}).Order("created_at DESC")

	if from := ctx.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid from date, use YYYY-MM-DD"})
		}
		q = q.Where("created_at >= ?", t)
	}
	if to := ctx.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid to date, use YYYY-MM-DD"})
		}
		q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
	}

	var history []models.ScanHistory
	if err := q.Find(&history).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Product Code")
	f.SetCellValue(sheet, "B1", "Lot Barcode")
	f.SetCellValue(sheet, "C1", "Stage")
	f.SetCellValue(sheet, "D1", "Scanned By")
	f.SetCellValue(sheet, "E1", "Quantity")
	f.SetCellValue(sheet, "F1", "Scanned At")

	for i, item := range history {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), item.RefCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), item.LotBarcode)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), item.Stage)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), item.ScannedBy)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), item.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), item.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="scan-history.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
