package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/lfmotta/livrocaixa/internal/extractor"
	"github.com/lfmotta/livrocaixa/internal/models"
	"github.com/lfmotta/livrocaixa/internal/money"
)

// ItauChecking parses Itaú checking-account PDF statements.
//
// The PDF renders transactions as positional text lines:
//
//	20/11/2025 PIX TRANSF FLAVIA 20/026.553,08
//	21/11/2025 PAGTO-681,20
//
// A transaction line starts with DD/MM/YYYY at column 0 and usually ends
// with the amount. Some PIX layouts embed a DD/MM date fragment directly
// before the amount with no separator, and some transfer layouts push the
// amount to the next line. The heuristics here are tied to this one
// institution's rendering; new institutions get their own parser instead
// of a generalization of these patterns.
type ItauChecking struct{}

// NewItauChecking returns the Itaú checking-account statement parser.
func NewItauChecking() *ItauChecking { return &ItauChecking{} }

func (p *ItauChecking) ID() string     { return "itau-checking" }
func (p *ItauChecking) Name() string   { return "Itaú – Extrato Conta Corrente" }
func (p *ItauChecking) Accept() string { return ".pdf" }

var (
	itauLineDate = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})`)

	// Amount preceded by an embedded "DD/MM" date fragment, as in
	// "PIX TRANSF FLAVIA 20/026.553,08" where the real amount is 6.553,08.
	// The amount's leading digit group may be "0" only when the decimal
	// comma follows immediately, so "026..." never reads as one number.
	itauDatePrefixAmount = regexp.MustCompile(`\d{2}/\d{2}(-?(?:0,\d{2}|[1-9]\d{0,2}(?:\.\d{3})*,\d{2}))$`)

	// General trailing amount, same leading-digit rule.
	// "PAGTO-681,20" → "-681,20"; "SALDO DO DIA7.990,71" → "7.990,71".
	itauTrailingAmount = regexp.MustCompile(`(-?(?:0,\d{2}|[1-9]\d{0,2}(?:\.\d{3})*,\d{2}))$`)

	// A continuation line holding nothing but an amount.
	itauAmountOnly = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})*,\d{2}$`)
)

// Daily running-balance lines carry no transaction; they are filtered by
// description because their position in the export varies.
var itauSkipDescriptions = map[string]bool{
	"SALDO DO DIA": true,
}

func (p *ItauChecking) Parse(ctx context.Context, data []byte) ([]models.ParsedRow, error) {
	pages, err := extractor.ExtractText(data)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.Join(pages, "\n"), "\n")
	return p.parseLines(lines), nil
}

func (p *ItauChecking) parseLines(lines []string) []models.ParsedRow {
	rows := []models.ParsedRow{}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if !itauLineDate.MatchString(line) {
			continue
		}
		date, ok := normalizeDate(line[:10])
		if !ok {
			continue
		}
		rest := line[10:]

		var description, amountStr string

		// The date-prefix pattern goes first: on PIX lines the trailing
		// amount pattern alone would absorb stray date digits and read
		// "26.553,08" where the statement means "6.553,08".
		m := itauDatePrefixAmount.FindStringSubmatch(rest)
		if m == nil {
			m = itauTrailingAmount.FindStringSubmatch(rest)
		}
		if m != nil {
			amountStr = m[1]
			description = strings.TrimSpace(rest[:len(rest)-len(amountStr)])
		} else {
			// Continuation layout: the amount stands alone on the next line.
			next := ""
			if i+1 < len(lines) {
				next = strings.TrimSpace(lines[i+1])
			}
			if !itauAmountOnly.MatchString(next) {
				continue
			}
			amountStr = next
			description = strings.TrimSpace(rest)
			i++ // consume the continuation line
		}

		if description == "" || itauSkipDescriptions[description] {
			continue
		}

		amount, ok := money.ParseBRL(amountStr)
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

	return rows
}
