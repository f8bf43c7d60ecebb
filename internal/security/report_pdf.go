package security

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderReportPDF lays the report out as a single A4 document.
func RenderReportPDF(rep *Report, email string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)

	pdf.CellFormat(0, 10, "Security Report", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Account: %s (user %d)", email, rep.UserID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Generated: "+rep.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Totals
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Last 30 days", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, row := range [][2]string{
		{"Events", fmt.Sprint(rep.TotalEvents)},
		{"Failed logins", fmt.Sprint(rep.FailedLogins)},
		{"Successful logins", fmt.Sprint(rep.SuccessfulLogins)},
		{"Suspicious events", fmt.Sprint(rep.SuspiciousEvents)},
		{"Active sessions", fmt.Sprint(rep.ActiveSessionCount)},
	} {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Recent events
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Recent events", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(45, 7, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 7, "Event", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "Severity", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, "IP", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 7, "Score", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, ev := range rep.RecentEvents {
		pdf.CellFormat(45, 7, ev.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, ev.EventType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, ev.Severity, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, ev.IPAddress, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprint(ev.SuspiciousScore), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Sessions
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Active sessions", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, sess := range rep.ActiveSessions {
		line := fmt.Sprintf("%s  from %s  until %s", sess.DeviceInfo, sess.IPAddress, sess.ExpiresAt.Format("2006-01-02 15:04"))
		pdf.MultiCell(0, 6, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
