// Package parser converts raw bank-statement exports into normalized rows.
//
// Each institution's export format gets its own StatementParser. Parsers
// are layout heuristics tied to one institution's template: they skip
// malformed lines instead of failing, and only an unreadable container
// surfaces as an error.
package parser

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lfmotta/livrocaixa/internal/models"
)

// StatementParser is the contract every per-institution parser implements.
type StatementParser interface {
	// ID is the stable identifier the ingestion endpoint looks up.
	ID() string
	// Name is the human-readable institution/format name.
	Name() string
	// Accept is the file-extension filter for the upload input, e.g. ".pdf".
	Accept() string
	// Parse converts raw file bytes into normalized rows. Individual
	// malformed rows are skipped; only a structurally unreadable file
	// returns an error.
	Parse(ctx context.Context, data []byte) ([]models.ParsedRow, error)
}

// ParserMeta is the presentation descriptor for one registered parser.
type ParserMeta struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Accept string `json:"accept"`
}

// Registry maps parser ids to parsers and keeps registration order for
// presentation.
type Registry struct {
	order []StatementParser
	byID  map[string]StatementParser
}

// NewRegistry builds a registry from the given parsers.
func NewRegistry(parsers ...StatementParser) *Registry {
	r := &Registry{byID: make(map[string]StatementParser, len(parsers))}
	for _, p := range parsers {
		r.order = append(r.order, p)
		r.byID[p.ID()] = p
	}
	return r
}

// DefaultRegistry returns the registry with all supported institutions.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewBTGChecking(),
		NewContabilizeiChecking(),
		NewItauChecking(),
	)
}

// Lookup returns the parser for id, or false when the id is unknown.
func (r *Registry) Lookup(id string) (StatementParser, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Meta lists the registered parsers in registration order.
func (r *Registry) Meta() []ParserMeta {
	meta := make([]ParserMeta, 0, len(r.order))
	for _, p := range r.order {
		meta = append(meta, ParserMeta{ID: p.ID(), Name: p.Name(), Accept: p.Accept()})
	}
	return meta
}

// normalizeDate converts a "DD/MM/YYYY" date, optionally followed by a
// time-of-day, into "YYYY-MM-DD". Returns false for anything that is not a
// valid calendar date.
func normalizeDate(s string) (string, bool) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(s), " ")
	t, err := time.Parse("2/1/2006", datePart)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// newTempID returns a fresh batch-local row identifier.
func newTempID() string {
	return uuid.NewString()
}
