package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fiber-tracking/config"
	"fiber-tracking/database"
	"fiber-tracking/models"
	"fiber-tracking/repositories"

	"github.com/xuri/excelize/v2"
	"gopkg.in/gomail.v2"
)

// Daily production summary mailer. Run from cron once per day: builds
// an Excel workbook of yesterday's scans plus the current status
// counts and mails it to REPORT_RECIPIENTS.
func main() {
	config.LoadConfig()

	db, err := database.OpenDatabaseConnection(config.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if len(config.ReportRecipients) == 0 {
		log.Fatal("REPORT_RECIPIENTS is empty, nothing to do")
	}

	since := time.Now().AddDate(0, 0, -1)

	var history []models.ScanHistory
	if err := db.Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&history).Error; err != nil {
		log.Fatalf("Failed to load scan history: %v", err)
	}

	counts, err := repositories.NewUnitRepository(db).CountByStatus()
	if err != nil {
		log.Fatalf("Failed to load status counts: %v", err)
	}

	reportPath, err := buildWorkbook(history, counts)
	if err != nil {
		log.Fatalf("Failed to build report: %v", err)
	}
	defer os.Remove(reportPath)

	if err := sendReport(reportPath, len(history)); err != nil {
		log.Fatalf("Failed to send report: %v", err)
	}

	fmt.Println("✅ Daily report sent to:", config.ReportRecipients)
}

func buildWorkbook(history []models.ScanHistory, counts map[string]int64) (string, error) {
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

	summary := "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return "", err
	}
	f.SetCellValue(summary, "A1", "Status")
	f.SetCellValue(summary, "B1", "Codes")
	row := 2
	for status, total := range counts {
		f.SetCellValue(summary, fmt.Sprintf("A%d", row), status)
		f.SetCellValue(summary, fmt.Sprintf("B%d", row), total)
		row++
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("production-report-%s.xlsx", time.Now().Format("20060102")))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func sendReport(reportPath string, scanCount int) error {
	subject := "📦 Daily Production Report " + time.Now().Format("2006-01-02")
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Daily production report</h3>
				<p>Scans in the last 24 hours: <strong>%d</strong></p>
				<p>This is an auto-generated email. Please do not reply to this email or its recipients.</p>
			</body>
		</html>
	`, scanCount)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPUser)
	msg.SetHeader("To", config.ReportRecipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	msg.Attach(reportPath)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	return dialer.DialAndSend(msg)
}
