package suggest

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lfmotta/livrocaixa/internal/models"
	"github.com/lfmotta/livrocaixa/internal/store"
)

// Classifier proposes a COA code per statement description. It returns a
// map keyed by the literal description string; descriptions it cannot
// place are simply absent from the map. Keying by description means equal
// descriptions always share one answer, however many rows carry them.
type Classifier interface {
	Classify(ctx context.Context, descriptions []string, options []models.CoaOption) (map[string]string, error)
}

// Suggester enriches parsed statement rows with COA suggestions. Exact
// alias matches come first; rows still unresolved go to the classifier.
// Classification is best effort: any failure leaves rows unsuggested and
// never fails the import.
type Suggester struct {
	store      store.Store
	classifier Classifier
	log        *zap.Logger
}

func New(st store.Store, classifier Classifier, log *zap.Logger) *Suggester {
	return &Suggester{store: st, classifier: classifier, log: log}
}

// Enrich fills SuggestedCoaCode, SuggestedCoaName and SuggestionSource on
// the rows in place and returns the same slice.
func (s *Suggester) Enrich(ctx context.Context, rows []models.ParsedRow) []models.ParsedRow {
	if len(rows) == 0 {
		return rows
	}

	descriptions := make([]string, 0, len(rows))
	for _, r := range rows {
		descriptions = append(descriptions, strings.ToUpper(r.Description))
	}

	aliasHits, err := s.store.FindAliasSuggestions(ctx, descriptions)
	if err != nil {
		s.log.Warn("alias lookup failed, skipping alias suggestions", zap.Error(err))
		aliasHits = nil
	}

	// Distinct descriptions the alias pass left unresolved.
	var unresolved []string
	seen := make(map[string]bool)
	for i := range rows {
		desc := strings.ToUpper(rows[i].Description)
		if hit, ok := aliasHits[desc]; ok {
			rows[i].SuggestedCoaCode = hit.CoaCode
			rows[i].SuggestedCoaName = hit.CoaName
			rows[i].SuggestionSource = models.SourceAlias
			continue
		}
		if !seen[desc] {
			seen[desc] = true
			unresolved = append(unresolved, desc)
		}
	}

	if s.classifier == nil || len(unresolved) == 0 {
		return rows
	}

	options, err := s.store.ActiveCoaOptions(ctx)
	if err != nil || len(options) == 0 {
		if err != nil {
			s.log.Warn("loading coa options failed, skipping classification", zap.Error(err))
		}
		return rows
	}

	codes, err := s.classifier.Classify(ctx, unresolved, options)
	if err != nil {
		s.log.Warn("classification failed, rows left unsuggested",
			zap.Int("descriptions", len(unresolved)), zap.Error(err))
		return rows
	}

	nameByCode := make(map[string]string, len(options))
	for _, o := range options {
		nameByCode[o.Code] = o.Name
	}

	for i := range rows {
		if rows[i].SuggestionSource == models.SourceAlias {
			continue
		}
		code, ok := codes[strings.ToUpper(rows[i].Description)]
		if !ok {
			continue
		}
		name, valid := nameByCode[code]
		if !valid {
			// The model invented a code outside the chart; drop it.
			s.log.Warn("classifier returned unknown coa code",
				zap.String("code", code), zap.String("description", rows[i].Description))
			continue
		}
		rows[i].SuggestedCoaCode = code
		rows[i].SuggestedCoaName = name
		rows[i].SuggestionSource = models.SourceAI
	}
	return rows
}
