package parser

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/lfmotta/livrocaixa/internal/models"
	"github.com/lfmotta/livrocaixa/internal/money"
)

// ContabilizeiChecking parses Contabilizei checking-account CSV exports.
//
// Columns: [0]=Data [1]=Categoria [2]=Lançamento [3]=Descrição
// [4]=Entrada [5]=Saída [6]=Saldo do dia. Exactly one of Entrada/Saída is
// populated per row; the other carries a "-" sentinel. Description fields
// may contain commas inside double quotes, so lines get a quote-aware
// split rather than a naive one.
type ContabilizeiChecking struct{}

// NewContabilizeiChecking returns the Contabilizei statement parser.
func NewContabilizeiChecking() *ContabilizeiChecking { return &ContabilizeiChecking{} }

func (p *ContabilizeiChecking) ID() string     { return "contabilizei-checking" }
func (p *ContabilizeiChecking) Name() string   { return "Contabilizei – Extrato" }
func (p *ContabilizeiChecking) Accept() string { return ".csv" }

func (p *ContabilizeiChecking) Parse(ctx context.Context, data []byte) ([]models.ParsedRow, error) {
	lines := strings.Split(decodeText(data), "\n")
	rows := []models.ParsedRow{}

	// Line 0 is the column header.
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(strings.TrimSuffix(lines[i], "\r"))
		if line == "" {
			continue
		}

		cols := splitCSVLine(line)
		if len(cols) < 6 {
			continue
		}

		date, ok := normalizeDate(cols[0])
		if !ok {
			continue
		}
		description := cols[3]
		if description == "" {
			continue
		}

		// Entrada is an inflow, Saída an outflow; the unpopulated column
		// holds "-" which ParseBRL reports as no value.
		entrada, entradaOK := money.ParseBRL(cols[4])
		saida, saidaOK := money.ParseBRL(cols[5])

		amount := entrada
		switch {
		case entradaOK:
		case saidaOK:
			amount = saida.Neg()
		default:
			continue
		}
		if amount.IsZero() {
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

// decodeText returns the file content as UTF-8. Exports saved by older
// spreadsheet tools arrive in Windows-1252; those are transcoded so the
// accented descriptions survive the uppercase alias key.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// splitCSVLine splits one CSV line on commas, honoring double quotes so a
// comma inside a quoted description is not a field separator.
func splitCSVLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
