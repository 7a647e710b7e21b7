package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	qc "assemblyline-cloud/internal/qc/domain"
)

type qcPoint struct {
	key         string
	label       string
	description string
}

// qcPoints lists the checked points in printed order. Labels carry the
// printed row numbers; 16 is the visual firmware-version step and has no
// stored field, so the numbering jumps to 17.
var qcPoints = []qcPoint{
	{"probePin", "1. PCB S.No.", "Verify PCB Serial Number"},
	{"powerSupply", "2. Device ID Check", "Check device ID on server for GPS, GSM signal"},
	{"capacitorBackup", "3. Device & Battery Status", "Check status of connection & battery status in server"},
	{"terminal", "4. LED Signal Stability", "Check LED indication for stability of signal"},
	{"signalIntegraty", "5. PCB Tightness", "Check PCB tightness & screw on PCB"},
	{"cabelStrain", "6. Conformal Coating", "Conformal coating on both sides & check solder balls"},
	{"ledCheck", "7. S.No. on PCA", "Check for the serial number on PCA"},
	{"gpsClod", "8. Glue & Cable Routing", "Check for glue application and proper cable routing"},
	{"gsmNetwork", "9. Product Cleanliness", "Check for damage, dust, cleanliness & cabinet screws"},
	{"productId", "10. Product ID/IMEI Match", "Verify Product ID/IMEI match on sticker"},
	{"physicallyAssembly", "11. Firmware Version", "Firmware version consistency check"},
	{"housingSeal", "12. Physical Assembly", "Physical assembly integrity (screw torque)"},
	{"labelPlaceMent", "13. Glue & Cable Routing", "Check glue application and proper cable routing"},
	{"qrCodeRelaliablty", "14. LED Signal Verification", "Verify LED indication for signal stability"},
	{"finalVisualInspection", "15. PCB Serial Verification", "Verify PCB serial number"},
	{"packingMatarialIntegraty", "17. Packing Material", "Packing material integrity check"},
}

// BuildQCReportPDF renders the day's QC report. The first page is a summary
// table; every record then gets a detail page with its point-by-point results
// and, when the unit passed, an approval stamp.
func BuildQCReportPDF(day time.Time, records []qc.Record) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 16)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()
	pdf.CellFormat(pageWidth-20, 10, "Quality Check - Detailed Report", "", 0, "C", false, 0, "")
	pdf.Ln(12)

	passed := 0
	for _, record := range records {
		if record.Pass {
			passed++
		}
	}

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Report Date: %s", day.Format("02-01-2006")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Records: %d    Passed: %d    Failed: %d", len(records), passed, len(records)-passed))
	pdf.Ln(8)

	// Summary table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(15, 6, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 6, "IMEI", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Checked At", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Checked By", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for i, record := range records {
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, record.IMEINo, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, passFail(record.Pass), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, record.CreatedAt.Format("02-01-2006 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, record.EmpName, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	// Detail page per record
	for _, record := range records {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 8, fmt.Sprintf("Detailed QC Check - IMEI: %s", record.IMEINo))
		pdf.Ln(10)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Date: %s", record.CreatedAt.Format("02-01-2006 15:04:05")))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Checked By: %s", record.EmpName))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Overall Result: %s", passFail(record.Pass)))
		pdf.Ln(8)

		values := record.Values()
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(60, 6, "QC Point", "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, "Status", "1", 0, "C", false, 0, "")
		pdf.CellFormat(130, 6, "Description", "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		for _, point := range qcPoints {
			pdf.CellFormat(60, 6, point.label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, passFail(values[point.key]), "1", 0, "C", false, 0, "")
			pdf.CellFormat(130, 6, point.description, "1", 0, "L", false, 0, "")
			pdf.Ln(-1)
		}

		if record.Pass {
			drawApprovalStamp(pdf, pageWidth-70, pageHeight-55)
		}
		pdf.SetFont("Arial", "", 10)
		pdf.SetXY(20, pageHeight-30)
		pdf.Cell(60, 6, "Authorized Signature")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

// drawApprovalStamp draws the round APPROVED mark used on signed-off pages.
func drawApprovalStamp(pdf *gofpdf.Fpdf, x, y float64) {
	pdf.SetDrawColor(0, 128, 0)
	pdf.SetTextColor(0, 128, 0)
	pdf.SetLineWidth(0.8)
	pdf.Circle(x+20, y+15, 15, "D")
	pdf.SetFont("Arial", "B", 11)
	pdf.SetXY(x, y+12)
	pdf.CellFormat(40, 6, "APPROVED", "", 0, "C", false, 0, "")
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
}
