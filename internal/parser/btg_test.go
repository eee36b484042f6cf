package parser

import (
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildBTGWorkbook writes an XLSX mimicking the BTG export template: an
// 11-row metadata block, then transactions at fixed column offsets.
func buildBTGWorkbook(t *testing.T, dataRows [][3]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "BTG Pactual banking")
	f.SetCellValue(sheet, "B5", "Extrato de conta corrente")
	f.SetCellValue(sheet, "B11", "Data")

	for i, row := range dataRows {
		n := 12 + i // first data row is sheet row 12 (index 11)
		f.SetCellValue(sheet, cellRef("B", n), row[0]) // date, column index 1
		f.SetCellValue(sheet, cellRef("G", n), row[1]) // description, index 6
		f.SetCellValue(sheet, cellRef("K", n), row[2]) // amount, index 10
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("writing workbook: %v", err)
	}
	return buf.Bytes()
}

func cellRef(col string, row int) string {
	ref, _ := excelize.JoinCellName(col, row)
	return ref
}

func TestBTGParse(t *testing.T) {
	data := buildBTGWorkbook(t, [][3]string{
		{"28/11/2025 14:47", "Pix recebido Flavia", "6553.08"},
		{"28/11/2025", "Saldo Diário", "7990.71"},
		{"29/11/2025 09:01", "Pagamento boleto Cemig", "-681.20"},
		{"", "Linha sem data", "10.00"},
		{"30/11/2025", "", "10.00"},
		{"30/11/2025", "Estorno tarifa", "0"},
	})

	p := NewBTGChecking()
	rows, err := p.Parse(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}

	if rows[0].Date != "2025-11-28" {
		t.Errorf("rows[0].Date = %q, want 2025-11-28", rows[0].Date)
	}
	if rows[0].Description != "PIX RECEBIDO FLAVIA" {
		t.Errorf("rows[0].Description = %q", rows[0].Description)
	}
	if rows[0].Amount.StringFixed(2) != "6553.08" {
		t.Errorf("rows[0].Amount = %s, want 6553.08", rows[0].Amount)
	}
	if rows[1].Amount.StringFixed(2) != "-681.20" {
		t.Errorf("rows[1].Amount = %s, want -681.20", rows[1].Amount)
	}
}

func TestBTGSkipsMetadataBlock(t *testing.T) {
	// A date-looking value inside the metadata block must not be parsed.
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "B3", "01/11/2025")
	f.SetCellValue(sheet, "G3", "Período do extrato")
	f.SetCellValue(sheet, "K3", "999.99")
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("writing workbook: %v", err)
	}

	p := NewBTGChecking()
	rows, err := p.Parse(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(rows))
	}
}

func TestBTGUnreadableContainer(t *testing.T) {
	p := NewBTGChecking()
	if _, err := p.Parse(context.Background(), []byte("definitely not a workbook")); err == nil {
		t.Fatal("expected an error for an unreadable container")
	}
}

func TestBTGAmountCellFormats(t *testing.T) {
	data := buildBTGWorkbook(t, [][3]string{
		{"01/12/2025", "Valor numerico", "-1475.5"},
		{"02/12/2025", "Valor formatado", "R$ 1.234,56"},
	})

	p := NewBTGChecking()
	rows, err := p.Parse(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Amount.StringFixed(2) != "-1475.50" {
		t.Errorf("rows[0].Amount = %s, want -1475.50", rows[0].Amount)
	}
	if rows[1].Amount.StringFixed(2) != "1234.56" {
		t.Errorf("rows[1].Amount = %s, want 1234.56", rows[1].Amount)
	}
}
