package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/serralheria/internal/calculator"
	"github.com/mmynk/serralheria/internal/models"
)

const historySheet = "Orçamentos"

var historyColumns = []struct {
	title string
	width float64
}{
	{"Data", 12},
	{"Cliente", 32},
	{"Telefone", 18},
	{"Endereço", 36},
	{"Status", 12},
	{"Itens", 8},
	{"Materiais (R$)", 16},
	{"Mão de obra (R$)", 18},
	{"Total (R$)", 16},
}

// HistoryXLSX writes the quote history as a single-sheet workbook, one row per
// quote in the given order, followed by a totals row.
func HistoryXLSX(quotes []models.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), historySheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	for i, c := range historyColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name %d: %w", i+1, err)
		}
		if err := f.SetColWidth(historySheet, name, name, c.width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
		f.SetCellValue(historySheet, name+"1", c.title)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(historyColumns))

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#334155"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	f.SetCellStyle(historySheet, "A1", lastCol+"1", headerStyle)

	moneyFmt := `"R$ "#,##0.00`
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &moneyFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	row := 2
	for _, q := range quotes {
		cats := calculator.AggregateByCategory([]models.Quote{q})
		values := []any{
			q.Date,
			sanitizeExcelCell(q.ClientName),
			sanitizeExcelCell(q.ClientPhone),
			sanitizeExcelCell(q.ClientAddress),
			q.Status.Label(),
			len(q.Items),
			cats.MaterialsValue,
			cats.LaborValue,
			q.Total,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(historySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	summary := calculator.Summarize(quotes)
	totalRow := row
	f.SetCellValue(historySheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(historySheet, fmt.Sprintf("F%d", totalRow), fmt.Sprintf("%d orçamentos", summary.QuoteCount))
	f.SetCellValue(historySheet, fmt.Sprintf("G%d", totalRow), summary.Categories.MaterialsValue)
	f.SetCellValue(historySheet, fmt.Sprintf("H%d", totalRow), summary.Categories.LaborValue)
	f.SetCellValue(historySheet, fmt.Sprintf("I%d", totalRow), summary.TotalQuoted)

	if row > 2 {
		f.SetCellStyle(historySheet, "G2", fmt.Sprintf("I%d", row-1), moneyStyle)
	}
	f.SetCellStyle(historySheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("I%d", totalRow), totalStyle)

	if err := f.SetPanes(historySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell keeps operator text from being read as a formula.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
