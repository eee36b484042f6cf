package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/lfmotta/livrocaixa/internal/models"
	"github.com/lfmotta/livrocaixa/internal/money"
)

// BTGChecking parses BTG Pactual checking-account spreadsheet exports.
//
// The export template puts a metadata block in rows 0–10 of the first
// sheet; transaction data starts at row 11 with fixed column offsets:
// [1]=date ("DD/MM/YYYY HH:MM"), [6]=description, [10]=signed amount.
// "Saldo Diário" rows are running-balance summaries, not transactions.
type BTGChecking struct{}

// NewBTGChecking returns the BTG Pactual statement parser.
func NewBTGChecking() *BTGChecking { return &BTGChecking{} }

func (p *BTGChecking) ID() string     { return "btg-checking" }
func (p *BTGChecking) Name() string   { return "BTG Pactual – Extrato" }
func (p *BTGChecking) Accept() string { return ".xls,.xlsx" }

const (
	btgHeaderRows     = 11
	btgColDate        = 1
	btgColDescription = 6
	btgColAmount      = 10
)

func (p *BTGChecking) Parse(ctx context.Context, data []byte) ([]models.ParsedRow, error) {
	grid, err := loadFirstSheet(data)
	if err != nil {
		return nil, fmt.Errorf("reading spreadsheet: %w", err)
	}

	rows := []models.ParsedRow{}
	for i := btgHeaderRows; i < len(grid); i++ {
		row := grid[i]

		date, ok := normalizeDate(cellAt(row, btgColDate))
		if !ok {
			continue
		}
		description := cellAt(row, btgColDescription)
		if description == "" || description == "Saldo Diário" {
			continue
		}
		amount, ok := parseCellAmount(cellAt(row, btgColAmount))
		if !ok || amount.IsZero() {
			continue
		}

		rows = append(rows, models.ParsedRow{
			TempID:      newTempID(),
			Date:        date,
			Description: strings.ToUpper(description),
			Amount:      amount,
		})
	}

	return rows, nil
}

// loadFirstSheet reads the first sheet of an XLSX or legacy XLS workbook
// into a string grid. XLSX is tried first; the binary BIFF reader handles
// older exports.
func loadFirstSheet(data []byte) ([][]string, error) {
	if f, err := excelize.OpenReader(bytes.NewReader(data)); err == nil {
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		return f.GetRows(sheets[0])
	}

	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("not a readable xls/xlsx workbook: %w", err)
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("reading first xls sheet: %w", err)
	}

	var grid [][]string
	for _, row := range sheet.GetRows() {
		var cells []string
		for _, cell := range row.GetCols() {
			cells = append(cells, cell.GetString())
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseCellAmount handles both raw numeric cells ("-1475.5") and cells the
// export formatted as Brazilian currency text.
func parseCellAmount(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}
	return money.ParseBRL(s)
}
