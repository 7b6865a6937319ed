package generate_excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"butchers-ledger/internal/service/aggregate"
	"butchers-ledger/internal/storage"
)

const (
	SummarySheet      = "Podsumowanie"
	RequirementsSheet = "Zapotrzebowanie"
)

type ReportProvider interface {
	Report(ctx context.Context) (aggregate.Report, error)
}

type GenerateExcelService struct {
	reports ReportProvider
}

func NewGenerateService(reports ReportProvider) *GenerateExcelService {
	return &GenerateExcelService{reports: reports}
}

// GenerateExcel строит отчет: суммы по товарам и потребность в мясе.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	report, err := g.reports.Report(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := f.NewSheet(RequirementsSheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// шапка
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summaryRows := make([][]interface{}, 0, len(report.Summary))
	for _, line := range report.Summary {
		summaryRows = append(summaryRows, []interface{}{
			line.Product,
			line.Annotation,
			unitLabel(line.UnitKind),
			line.Total.InexactFloat64(),
		})
	}
	if err := writeSheet(f, SummarySheet, headerStyle,
		[]string{"Produkt", "Partia", "Jednostka", "Razem"}, summaryRows); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reqRows := make([][]interface{}, 0, len(report.Requirements))
	for _, line := range report.Requirements {
		reqRows = append(reqRows, []interface{}{line.Meat, line.Total.InexactFloat64()})
	}
	if err := writeSheet(f, RequirementsSheet, headerStyle,
		[]string{"Mięso", "Razem (kg)"}, reqRows); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

// WriteFile сохраняет отчет в dir и возвращает путь к файлу.
func (g *GenerateExcelService) WriteFile(ctx context.Context, dir string, now time.Time) (string, error) {
	const op = "service.generate_excel.WriteFile"

	data, err := g.GenerateExcel(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	path := filepath.Join(dir, FileName(now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return path, nil
}

func FileName(now time.Time) string {
	return fmt.Sprintf("Zestawienie_%s.xlsx", now.Format("2006-01-02_150405"))
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, headers []string, rows [][]interface{}) error {
	for i, name := range headers {
		if err := f.SetCellValue(sheet, cellName(i+1, 1), name); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		if err := f.SetSheetRow(sheet, cellName(1, i+2), &row); err != nil {
			return err
		}
	}

	// закрепляем первую строку
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	last, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheet, "A", last, 18)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func unitLabel(kind storage.UnitKind) string {
	switch kind {
	case storage.UnitByWeight:
		return "kg"
	case storage.UnitByCount:
		return "szt."
	default:
		return ""
	}
}
