package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"cdvtrack/internal/models"
)

const (
	sheetTX      = "Transmissores"
	sheetRX      = "Receptores"
	sheetSummary = "Resumo"

	maxColumnWidth  = 30
	summaryColWidth = 26
	ratioColumn     = "F"
	lowRatioBound   = "0.6"
	highRatioBound  = "0.8"
)

// Document is a generated workbook ready to stream to the client.
type Document struct {
	StationName string
	file        *excelize.File
}

// Filename is the attachment name embedding the station.
func (d *Document) Filename() string {
	return fmt.Sprintf("dados_%s.xlsx", d.StationName)
}

// Write streams the workbook.
func (d *Document) Write(w io.Writer) error {
	return d.file.Write(w)
}

// File exposes the underlying workbook.
func (d *Document) File() *excelize.File {
	return d.file
}

// Build renders the three-sheet workbook from already-filtered rows.
func Build(stationName string, transmitters []models.Transmitter, receivers []models.Receiver) (*Document, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheetTX)
	if _, err := f.NewSheet(sheetRX); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, err
	}

	if err := writeTransmitterSheet(f, stationName, transmitters); err != nil {
		return nil, err
	}
	if err := writeReceiverSheet(f, stationName, receivers); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, stationName, Summarize(transmitters, receivers)); err != nil {
		return nil, err
	}

	return &Document{StationName: stationName, file: f}, nil
}

func writeTransmitterSheet(f *excelize.File, stationName string, transmitters []models.Transmitter) error {
	w := newSheetWriter(f, sheetTX)
	if err := w.appendRow(
		"Estação", "Circuito", "TX", "VOUT", "POUT", "TAP", "Tipo TX",
		"Tipo Manutenção", "Data", "Horário Coleta", "Temp. (Celsius)",
	); err != nil {
		return err
	}

	for _, t := range transmitters {
		if err := w.appendRow(
			stationName,
			t.Circuit,
			intCell(t.Code),
			floatCell(t.Vout),
			floatCell(t.Pout),
			intCell(t.Tap),
			t.TxType,
			string(t.MaintenanceType),
			dateCell(t.MaintenanceAt),
			timeCell(t.CollectionTime),
			floatCell(t.TempCelsius),
		); err != nil {
			return err
		}
	}

	if len(transmitters) > 0 {
		if err := applyNumberFormat(f, sheetTX, "K", 2, w.row, "0.0"); err != nil {
			return err
		}
	}
	return w.applyWidths()
}

func writeReceiverSheet(f *excelize.File, stationName string, receivers []models.Receiver) error {
	w := newSheetWriter(f, sheetRX)
	if err := w.appendRow(
		"Estação", "Circuito", "RX", "IAV", "ITH", "Relação",
		"Tipo Manutenção", "Data", "Horário Coleta", "Temp. (Celsius)",
	); err != nil {
		return err
	}

	for _, r := range receivers {
		var ratio any
		if v, ok := RatioFraction(r.Ratio); ok {
			ratio = v
		}
		if err := w.appendRow(
			stationName,
			r.Circuit,
			intCell(r.Code),
			floatCell(r.IAV),
			floatCell(r.ITH),
			ratio,
			string(r.MaintenanceType),
			dateCell(r.MaintenanceAt),
			timeCell(r.CollectionTime),
			floatCell(r.TempCelsius),
		); err != nil {
			return err
		}
	}

	if len(receivers) > 0 {
		if err := applyNumberFormat(f, sheetRX, ratioColumn, 2, w.row, "0.00%"); err != nil {
			return err
		}
		if err := applyNumberFormat(f, sheetRX, "J", 2, w.row, "0.0"); err != nil {
			return err
		}
		if err := applyRatioHighlight(f, w.row); err != nil {
			return err
		}
	}
	return w.applyWidths()
}

// applyRatioHighlight adds the tolerance traffic light on the ratio column:
// below 60% and above 80% red, 60%..80% inclusive green.
func applyRatioHighlight(f *excelize.File, lastRow int) error {
	red, err := f.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	green, err := f.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Color: "006100"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	rangeRef := fmt.Sprintf("%s2:%s%d", ratioColumn, ratioColumn, lastRow)
	firstCell := fmt.Sprintf("%s2", ratioColumn)

	return f.SetConditionalFormat(sheetRX, rangeRef, []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: "less than", Value: lowRatioBound, Format: red},
		{Type: "cell", Criteria: "greater than", Value: highRatioBound, Format: red},
		{Type: "formula", Criteria: fmt.Sprintf("AND(%s>=%s,%s<=%s)", firstCell, lowRatioBound, firstCell, highRatioBound), Format: green},
	})
}

func writeSummarySheet(f *excelize.File, stationName string, sum Summary) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	percent, err := newNumberStyle(f, "0.00%")
	if err != nil {
		return err
	}
	oneDecimal, err := newNumberStyle(f, "0.0")
	if err != nil {
		return err
	}

	setCell := func(cell string, value any) error {
		return f.SetCellValue(sheetSummary, cell, value)
	}

	if err := setCell("A1", fmt.Sprintf("Resumo Estatístico — %s", stationName)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "A1", title); err != nil {
		return err
	}
	if err := f.MergeCell(sheetSummary, "A1", "D1"); err != nil {
		return err
	}

	row := 3

	boldCell := func(col string, r int) error {
		cell := fmt.Sprintf("%s%d", col, r)
		return f.SetCellStyle(sheetSummary, cell, cell, bold)
	}
	writeRow := func(r int, values ...any) error {
		cell := fmt.Sprintf("A%d", r)
		return f.SetSheetRow(sheetSummary, cell, &values)
	}

	// Block 1: overall receiver ratio.
	if err := setCell(fmt.Sprintf("A%d", row), "Relação (RX) — Geral"); err != nil {
		return err
	}
	if err := boldCell("A", row); err != nil {
		return err
	}
	row++
	if err := writeRow(row, "Métrica", "Valor"); err != nil {
		return err
	}
	for _, col := range []string{"A", "B"} {
		if err := boldCell(col, row); err != nil {
			return err
		}
	}
	row++

	if err := writeRow(row, "Quantidade (linhas RX com relação)", sum.RatioCount); err != nil {
		return err
	}
	row++
	if err := writeRow(row, "Média de Relação", floatCell(sum.RatioMean)); err != nil {
		return err
	}
	meanCell := fmt.Sprintf("B%d", row)
	if err := f.SetCellStyle(sheetSummary, meanCell, meanCell, percent); err != nil {
		return err
	}
	row++
	if err := writeRow(row, "Abaixo de 60%", sum.Below60); err != nil {
		return err
	}
	row++
	if err := writeRow(row, "Entre 61% e 79%", sum.Between60And80); err != nil {
		return err
	}
	row++
	if err := writeRow(row, "Acima de 80%", sum.Above80); err != nil {
		return err
	}
	row += 2

	// Block 2: ratio per maintenance type.
	if err := setCell(fmt.Sprintf("A%d", row), "Relação (RX) — por Tipo de Manutenção"); err != nil {
		return err
	}
	if err := boldCell("A", row); err != nil {
		return err
	}
	row++
	if err := writeRow(row, "Tipo", "Qtd", "Média Relação"); err != nil {
		return err
	}
	for _, col := range []string{"A", "B", "C"} {
		if err := boldCell(col, row); err != nil {
			return err
		}
	}
	row++
	for _, tr := range sum.ByType {
		label := tr.Type
		if label == "" {
			label = "-"
		}
		if err := writeRow(row, label, tr.Count, tr.Mean); err != nil {
			return err
		}
		cell := fmt.Sprintf("C%d", row)
		if err := f.SetCellStyle(sheetSummary, cell, cell, percent); err != nil {
			return err
		}
		row++
	}
	row++

	// Block 3: temperatures.
	if err := setCell(fmt.Sprintf("A%d", row), "Temperatura (°C)"); err != nil {
		return err
	}
	if err := boldCell("A", row); err != nil {
		return err
	}
	row++
	if err := writeRow(row, "Grupo", "Média", "Mín", "Máx"); err != nil {
		return err
	}
	for _, col := range []string{"A", "B", "C", "D"} {
		if err := boldCell(col, row); err != nil {
			return err
		}
	}
	row++

	tempRows := []struct {
		label string
		s     Stats
	}{
		{"TX", sum.TXTemp},
		{"RX", sum.RXTemp},
		{"Geral", sum.AllTemp},
	}
	for _, tr := range tempRows {
		if err := writeRow(row, tr.label, floatCell(tr.s.Mean), floatCell(tr.s.Min), floatCell(tr.s.Max)); err != nil {
			return err
		}
		first := fmt.Sprintf("B%d", row)
		last := fmt.Sprintf("D%d", row)
		if err := f.SetCellStyle(sheetSummary, first, last, oneDecimal); err != nil {
			return err
		}
		row++
	}

	return f.SetColWidth(sheetSummary, "A", "D", summaryColWidth)
}

// sheetWriter appends rows and tracks column content lengths for auto-width.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	row    int
	widths []int
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet}
}

func (w *sheetWriter) appendRow(values ...any) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(w.sheet, cell, &values); err != nil {
		return err
	}
	for i, v := range values {
		for len(w.widths) <= i {
			w.widths = append(w.widths, 0)
		}
		if v == nil {
			continue
		}
		if l := len(fmt.Sprint(v)); l > w.widths[i] {
			w.widths[i] = l
		}
	}
	return nil
}

func (w *sheetWriter) applyWidths() error {
	for i, l := range w.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := l + 2
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := w.f.SetColWidth(w.sheet, col, col, float64(width)); err != nil {
			return err
		}
	}
	return nil
}

func newNumberStyle(f *excelize.File, format string) (int, error) {
	return f.NewStyle(&excelize.Style{CustomNumFmt: &format})
}

func applyNumberFormat(f *excelize.File, sheet, col string, firstRow, lastRow int, format string) error {
	style, err := newNumberStyle(f, format)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet,
		fmt.Sprintf("%s%d", col, firstRow),
		fmt.Sprintf("%s%d", col, lastRow),
		style)
}

// intCell forces strictly integer codes to numeric display; anything else
// leaves the cell blank, as the source system always did.
func intCell(s string) any {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return v
}

func floatCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func timeCell(t *string) string {
	if t == nil || strings.TrimSpace(*t) == "" {
		return "-"
	}
	return *t
}

func dateCell(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("02/01/2006")
}
