package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	reportsapp "assemblyline-cloud/internal/reports/application"
)

// BuildProductionXLSX renders the day's completed units as a workbook with a
// summary sheet and one row per unit.
func BuildProductionXLSX(day time.Time, rows []reportsapp.ProductionRow) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	unitsSheet := "units"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(unitsSheet)

	passed := 0
	for _, row := range rows {
		if row.Pass {
			passed++
		}
	}

	_ = f.SetCellValue(summarySheet, "A1", "Production Report")
	_ = f.SetCellValue(summarySheet, "A3", "Report Date")
	_ = f.SetCellValue(summarySheet, "B3", day.Format("02-01-2006"))
	_ = f.SetCellValue(summarySheet, "A4", "Total Units")
	_ = f.SetCellValue(summarySheet, "B4", len(rows))
	_ = f.SetCellValue(summarySheet, "A5", "Passed")
	_ = f.SetCellValue(summarySheet, "B5", passed)
	_ = f.SetCellValue(summarySheet, "A6", "Failed")
	_ = f.SetCellValue(summarySheet, "B6", len(rows)-passed)

	_ = f.SetCellValue(unitsSheet, "A1", "IMEI NO")
	_ = f.SetCellValue(unitsSheet, "B1", "ICCID NO")
	_ = f.SetCellValue(unitsSheet, "C1", "SERIAL NO")
	_ = f.SetCellValue(unitsSheet, "D1", "BATCH NO")
	_ = f.SetCellValue(unitsSheet, "E1", "LOT NO")
	_ = f.SetCellValue(unitsSheet, "F1", "QC RESULT")
	_ = f.SetCellValue(unitsSheet, "G1", "CHECKED AT")
	for i, row := range rows {
		line := i + 2
		_ = f.SetCellValue(unitsSheet, fmt.Sprintf("A%d", line), row.IMEINo)
		_ = f.SetCellValue(unitsSheet, fmt.Sprintf("B%d", line), row.ICCIDNo)
		_ = f.SetCellValue(unitsSheet, fmt.Sprintf("C%d", line), row.SlNo)
		_ = f.SetCellValue(unitsSheet, fmt.Sprintf("D%d", line), row.BatchNo)
		_ = f.SetCellValue(unitsSheet, fmt.Sprintf("E%d", line), row.LotNo)
		_ = f.SetCellValue(unitsSheet, fmt.Sprintf("F%d", line), passFail(row.Pass))
		_ = f.SetCellValue(unitsSheet, fmt.Sprintf("G%d", line), row.CheckedAt.Format("02-01-2006 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
