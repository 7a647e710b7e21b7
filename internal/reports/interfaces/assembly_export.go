package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type assemblyCheckItem struct {
	no       int
	text     string
	testedBy string
}

// assemblyCheckItems is the fixed line checklist printed per unit, with the
// employee responsible for each step.
var assemblyCheckItems = []assemblyCheckItem{
	{1, "No solder defect on Elite PCB", "Rajat Barik"},
	{2, "No electrical and physical damage component Elite Tracking PCB", "Rajat Barik"},
	{3, "Wire harnessing check", "Rajat Barik"},
	{4, "Manual components post-soldering worksheet implementation", "Satya Jena"},
	{5, "Check soldering of cable as per sequence (Green, Yellow, Red & Blue)", "Susanta Dalei"},
	{6, "Battery Connection to board - LED should be glow as red color.", "Srikanta Dalei"},
	{7, "No shorting of any component.", "Srikanta Dalei"},
	{8, "Power / Voltage Testing- overall assembly check - All Components should be in right polarity.", "Srikanta Dalei"},
	{9, "Firmware Flashing and IMEI to ICCID Mapping Request Raised", "Ramchandra Ghantayat"},
	{10, "Embedded SIM Activation", "M Bhoi"},
	{11, "Final QC Manual Check - All Steps Followed for Out of Box Audit", "Chinmay Puhan"},
	{12, "Final QC System Check - Report Downloaded", "Shashikanta Rout"},
	{13, "Packaging and Enclosure Sealing", "Chinmay Jena"},
}

// BuildAssemblyChecklistPDF renders the assembly checklist and test record,
// one page per IMEI.
func BuildAssemblyChecklistPDF(day time.Time, imeis []string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pageWidth, pageHeight := pdf.GetPageSize()

	if len(imeis) == 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "", 10)
		pdf.SetXY(10, 20)
		pdf.Cell(0, 6, fmt.Sprintf("No units checked on %s", day.Format("02-01-2006")))
	}

	for pageNo, imei := range imeis {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 8)
		pdf.SetXY(10, 12)
		pdf.CellFormat(pageWidth-20, 5, "PANIC SWITCH SOLDERING ASSEMBLY CHECKLIST & TEST RECORD", "", 0, "C", false, 0, "")

		pdf.SetFont("Arial", "", 9)
		pdf.SetXY(10, 22)
		pdf.Cell(80, 5, "FORMAT NO. F-TIA/102/01A")
		pdf.SetXY(pageWidth-40, 22)
		pdf.CellFormat(30, 5, "Rev. 1", "", 0, "R", false, 0, "")
		pdf.SetXY(10, 29)
		pdf.Cell(80, 5, "Date : 22.12.2025")
		pdf.SetXY(pageWidth/2-30, 29)
		pdf.CellFormat(60, 5, fmt.Sprintf("Page %d of %d", pageNo+1, len(imeis)), "", 0, "C", false, 0, "")
		pdf.SetXY(pageWidth-90, 29)
		pdf.CellFormat(80, 5, "Approved by : in charge production", "", 0, "R", false, 0, "")

		pdf.SetFont("Arial", "B", 12)
		pdf.SetXY(10, 40)
		pdf.CellFormat(pageWidth-20, 6, "Traxo AIS-140 Tracker (Elite)", "", 0, "C", false, 0, "")
		pdf.SetFont("Arial", "B", 11)
		pdf.SetXY(10, 47)
		pdf.CellFormat(pageWidth-20, 6, "Assembly Checklist & Test Record", "", 0, "C", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetXY(10, 56)
		pdf.Cell(80, 5, fmt.Sprintf("DATE: %s", day.Format("02-01-2006")))

		pdf.SetXY(10, 65)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(10, 7, "No.", "1", 0, "C", false, 0, "")
		pdf.CellFormat(85, 7, "CHECK POINT", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, "IMEI", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, "Tested By", "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, "Note", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		for _, item := range assemblyCheckItems {
			rowY := pdf.GetY()
			pdf.SetX(10)
			pdf.CellFormat(10, 10, fmt.Sprintf("%d", item.no), "1", 0, "C", false, 0, "")
			// MultiCell wraps the long check-point texts; the flanking cells
			// are drawn at fixed height around it.
			textX := pdf.GetX()
			pdf.MultiCell(85, 5, item.text, "1", "L", false)
			rowH := pdf.GetY() - rowY
			if rowH < 10 {
				rowH = 10
			}
			pdf.SetXY(textX+85, rowY)
			pdf.CellFormat(35, rowH, imei, "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, rowH, item.testedBy, "1", 0, "C", false, 0, "")
			pdf.CellFormat(25, rowH, "OK", "1", 0, "C", false, 0, "")
			pdf.SetXY(10, rowY+rowH)
		}

		signY := pdf.GetY() + 15
		pdf.SetFont("Arial", "B", 10)
		pdf.SetXY(20, signY)
		pdf.Cell(50, 5, "VERIFIED BY")
		pdf.Line(20, signY+12, 70, signY+12)
		pdf.SetXY(pageWidth-70, signY)
		pdf.Cell(50, 5, "APPROVED BY")
		pdf.Line(pageWidth-70, signY+12, pageWidth-20, signY+12)

		pdf.SetFont("Arial", "", 7)
		pdf.SetTextColor(100, 100, 100)
		pdf.SetXY(10, pageHeight-14)
		pdf.CellFormat(pageWidth-20, 5, "(c) TRAXO (INDIA) AUTOMATION PVT. LTD.", "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
