package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lfmotta/livrocaixa/internal/models"
)

func newTestStore(t *testing.T) (*Memory, context.Context) {
	t.Helper()
	return NewMemory(), context.Background()
}

func mustCreateCoa(t *testing.T, m *Memory, code, parent, name string, typ models.CoaType) models.CoaAccount {
	t.Helper()
	coa, err := m.CreateCoa(context.Background(), models.CoaAccount{
		Code: code, ParentCode: parent, Name: name, Type: typ, IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateCoa(%s): %v", code, err)
	}
	return coa
}

func TestCreateCoaDuplicateCode(t *testing.T) {
	m, ctx := newTestStore(t)
	mustCreateCoa(t, m, "5", "", "Despesas", models.CoaExpense)

	_, err := m.CreateCoa(ctx, models.CoaAccount{Code: "5", Name: "Outra", Type: models.CoaExpense})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate code, got %v", err)
	}
}

func TestCoaParentValidation(t *testing.T) {
	m, ctx := newTestStore(t)
	mustCreateCoa(t, m, "5", "", "Despesas", models.CoaExpense)
	mustCreateCoa(t, m, "5.1", "5", "Moradia", models.CoaExpense)

	_, err := m.CreateCoa(ctx, models.CoaAccount{Code: "6.1", ParentCode: "6", Name: "Receitas", Type: models.CoaIncome})
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for missing parent, got %v", err)
	}

	// Re-parenting "5" under its own descendant would close a cycle.
	_, err = m.UpdateCoa(ctx, "5", models.CoaAccount{Name: "Despesas", Type: models.CoaExpense, ParentCode: "5.1"})
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for parent cycle, got %v", err)
	}

	_, err = m.UpdateCoa(ctx, "5", models.CoaAccount{Name: "Despesas", Type: models.CoaExpense, ParentCode: "5"})
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for self parent, got %v", err)
	}
}

func TestDeleteCoaWithChildren(t *testing.T) {
	m, ctx := newTestStore(t)
	mustCreateCoa(t, m, "5", "", "Despesas", models.CoaExpense)
	mustCreateCoa(t, m, "5.1", "5", "Moradia", models.CoaExpense)

	if err := m.DeleteCoa(ctx, "5"); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict deleting coa with children, got %v", err)
	}
	if err := m.DeleteCoa(ctx, "5.1"); err != nil {
		t.Errorf("deleting leaf coa: %v", err)
	}
	if err := m.DeleteCoa(ctx, "5"); err != nil {
		t.Errorf("deleting coa after children removed: %v", err)
	}
}

func TestActiveCoaOptionsFiltersInactive(t *testing.T) {
	m, ctx := newTestStore(t)
	mustCreateCoa(t, m, "5.1", "", "Moradia", models.CoaExpense)
	if _, err := m.CreateCoa(ctx, models.CoaAccount{Code: "5.2", Name: "Antiga", Type: models.CoaExpense, IsActive: false}); err != nil {
		t.Fatalf("CreateCoa: %v", err)
	}

	opts, err := m.ActiveCoaOptions(ctx)
	if err != nil {
		t.Fatalf("ActiveCoaOptions: %v", err)
	}
	if len(opts) != 1 || opts[0].Code != "5.1" {
		t.Errorf("expected only active option 5.1, got %+v", opts)
	}
}

func TestAliasUniqueness(t *testing.T) {
	m, ctx := newTestStore(t)
	r1, _ := m.CreateRecipient(ctx, models.Recipient{Name: "Supermercado Zaffari", IsActive: true})
	r2, _ := m.CreateRecipient(ctx, models.Recipient{Name: "Zaffari Cartões", IsActive: true})

	if _, err := m.AddAlias(ctx, r1.ID, "  compra zaffari  "); err != nil {
		t.Fatalf("AddAlias: %v", err)
	}
	// Aliases are stored uppercase and are globally unique.
	if _, err := m.AddAlias(ctx, r2.ID, "COMPRA ZAFFARI"); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate alias, got %v", err)
	}

	d, err := m.GetRecipient(ctx, r1.ID)
	if err != nil {
		t.Fatalf("GetRecipient: %v", err)
	}
	if len(d.Aliases) != 1 || d.Aliases[0].Alias != "COMPRA ZAFFARI" {
		t.Errorf("expected normalized alias COMPRA ZAFFARI, got %+v", d.Aliases)
	}
}

func TestPrimaryCoaLinkInvariant(t *testing.T) {
	m, ctx := newTestStore(t)
	mustCreateCoa(t, m, "5.1", "", "Moradia", models.CoaExpense)
	mustCreateCoa(t, m, "5.2", "", "Alimentação", models.CoaExpense)
	r, _ := m.CreateRecipient(ctx, models.Recipient{Name: "Condomínio Itapema", IsActive: true})

	l1, err := m.AddCoaLink(ctx, r.ID, "5.1", true)
	if err != nil {
		t.Fatalf("AddCoaLink: %v", err)
	}
	l2, err := m.AddCoaLink(ctx, r.ID, "5.2", true)
	if err != nil {
		t.Fatalf("AddCoaLink: %v", err)
	}

	d, _ := m.GetRecipient(ctx, r.ID)
	primaries := 0
	for _, l := range d.Coas {
		if l.IsPrimary {
			primaries++
			if l.ID != l2.ID {
				t.Errorf("expected %s to be primary, got %s", l2.ID, l.ID)
			}
		}
	}
	if primaries != 1 {
		t.Fatalf("expected exactly one primary link, got %d", primaries)
	}

	if _, err := m.SetPrimaryCoaLink(ctx, r.ID, l1.ID); err != nil {
		t.Fatalf("SetPrimaryCoaLink: %v", err)
	}
	d, _ = m.GetRecipient(ctx, r.ID)
	for _, l := range d.Coas {
		if l.IsPrimary != (l.ID == l1.ID) {
			t.Errorf("primary flag wrong on link %s after promotion", l.ID)
		}
	}
}

func TestFindAliasSuggestions(t *testing.T) {
	m, ctx := newTestStore(t)
	mustCreateCoa(t, m, "5.3", "", "Alimentação", models.CoaExpense)
	r, _ := m.CreateRecipient(ctx, models.Recipient{Name: "Padaria do Bairro", IsActive: true})
	if _, err := m.AddAlias(ctx, r.ID, "PIX PADARIA LTDA"); err != nil {
		t.Fatalf("AddAlias: %v", err)
	}
	if _, err := m.AddCoaLink(ctx, r.ID, "5.3", true); err != nil {
		t.Fatalf("AddCoaLink: %v", err)
	}

	got, err := m.FindAliasSuggestions(ctx, []string{"PIX PADARIA LTDA", "DESCONHECIDO"})
	if err != nil {
		t.Fatalf("FindAliasSuggestions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(got))
	}
	s := got["PIX PADARIA LTDA"]
	if s.CoaCode != "5.3" || s.CoaName != "Alimentação" {
		t.Errorf("unexpected suggestion %+v", s)
	}
}

func TestFindAliasSuggestionsRequiresPrimaryLink(t *testing.T) {
	m, ctx := newTestStore(t)
	mustCreateCoa(t, m, "5.3", "", "Alimentação", models.CoaExpense)
	r, _ := m.CreateRecipient(ctx, models.Recipient{Name: "Padaria do Bairro", IsActive: true})
	if _, err := m.AddAlias(ctx, r.ID, "PIX PADARIA LTDA"); err != nil {
		t.Fatalf("AddAlias: %v", err)
	}
	// Link exists but is not primary, so no suggestion is produced.
	if _, err := m.AddCoaLink(ctx, r.ID, "5.3", false); err != nil {
		t.Fatalf("AddCoaLink: %v", err)
	}

	got, err := m.FindAliasSuggestions(ctx, []string{"PIX PADARIA LTDA"})
	if err != nil {
		t.Fatalf("FindAliasSuggestions: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no suggestions without a primary link, got %+v", got)
	}
}

func TestMergeRecipients(t *testing.T) {
	m, ctx := newTestStore(t)
	mustCreateCoa(t, m, "5.1", "", "Moradia", models.CoaExpense)
	mustCreateCoa(t, m, "5.2", "", "Alimentação", models.CoaExpense)

	source, _ := m.CreateRecipient(ctx, models.Recipient{Name: "Zafari", IsActive: true})
	target, _ := m.CreateRecipient(ctx, models.Recipient{Name: "Supermercado Zaffari", IsActive: true})

	if _, err := m.AddAlias(ctx, source.ID, "COMPRA ZAFARI"); err != nil {
		t.Fatalf("AddAlias: %v", err)
	}
	if _, err := m.AddCoaLink(ctx, source.ID, "5.1", true); err != nil {
		t.Fatalf("AddCoaLink: %v", err)
	}
	if _, err := m.AddCoaLink(ctx, source.ID, "5.2", false); err != nil {
		t.Fatalf("AddCoaLink: %v", err)
	}
	if _, err := m.AddCoaLink(ctx, target.ID, "5.2", true); err != nil {
		t.Fatalf("AddCoaLink: %v", err)
	}

	if err := m.MergeRecipients(ctx, source.ID, target.ID); err != nil {
		t.Fatalf("MergeRecipients: %v", err)
	}

	if _, err := m.GetRecipient(ctx, source.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected source recipient gone, got %v", err)
	}

	d, err := m.GetRecipient(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetRecipient(target): %v", err)
	}
	if len(d.Aliases) != 1 || d.Aliases[0].Alias != "COMPRA ZAFARI" {
		t.Errorf("expected alias moved to target, got %+v", d.Aliases)
	}
	if len(d.Coas) != 2 {
		t.Fatalf("expected duplicate link dropped, got %d links", len(d.Coas))
	}
	primaries := 0
	for _, l := range d.Coas {
		if l.IsPrimary {
			primaries++
			if l.CoaCode != "5.2" {
				t.Errorf("target's own primary should survive, got primary on %s", l.CoaCode)
			}
		}
	}
	if primaries != 1 {
		t.Errorf("expected one primary after merge, got %d", primaries)
	}
}

func TestMergeRecipientsSelf(t *testing.T) {
	m, ctx := newTestStore(t)
	r, _ := m.CreateRecipient(ctx, models.Recipient{Name: "Alguém", IsActive: true})
	if err := m.MergeRecipients(ctx, r.ID, r.ID); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid merging into self, got %v", err)
	}
}

func TestOrphanRecipients(t *testing.T) {
	m, ctx := newTestStore(t)
	mustCreateCoa(t, m, "5.3", "", "Alimentação", models.CoaExpense)
	acc, _ := m.CreateAccount(ctx, models.Account{Name: "Itaú PF", Type: models.AccountChecking, IsActive: true})

	known, _ := m.CreateRecipient(ctx, models.Recipient{Name: "Farmácia Panvel", IsActive: true})
	if _, err := m.AddAlias(ctx, known.ID, "PANVEL FILIAL 12"); err != nil {
		t.Fatalf("AddAlias: %v", err)
	}

	txs := []models.Transaction{
		{AccountID: acc.ID, TransactionDate: "2025-11-01", Amount: decimal.RequireFromString("-30"), Recipient: "PANVEL FILIAL 12"},
		{AccountID: acc.ID, TransactionDate: "2025-11-02", Amount: decimal.RequireFromString("-10"), Recipient: "FARMACIA PANVEL 9", CoaCode: "5.3"},
		{AccountID: acc.ID, TransactionDate: "2025-11-03", Amount: decimal.RequireFromString("-20"), Recipient: "FARMACIA PANVEL 9", CoaCode: "5.3"},
		{AccountID: acc.ID, TransactionDate: "2025-11-04", Amount: decimal.RequireFromString("-5")},
	}
	if _, err := m.InsertTransactions(ctx, txs); err != nil {
		t.Fatalf("InsertTransactions: %v", err)
	}

	orphans, err := m.OrphanRecipients(ctx)
	if err != nil {
		t.Fatalf("OrphanRecipients: %v", err)
	}
	if len(orphans) != 1 {
		t.Fatalf("expected one orphan, got %+v", orphans)
	}
	o := orphans[0]
	if o.Recipient != "FARMACIA PANVEL 9" {
		t.Errorf("unexpected orphan %q", o.Recipient)
	}
	if o.TxCount != 2 || !o.Total.Equal(decimal.RequireFromString("-30")) {
		t.Errorf("unexpected orphan aggregate %+v", o)
	}
	if o.SuggestedCoaCode != "5.3" || o.SuggestedCoaName != "Alimentação" {
		t.Errorf("expected modal coa suggestion 5.3, got %+v", o)
	}
	if o.ClosestRecipient != "Farmácia Panvel" {
		t.Errorf("expected closest recipient hint, got %q", o.ClosestRecipient)
	}
}

func TestTransactionFilterAndReports(t *testing.T) {
	m, ctx := newTestStore(t)
	mustCreateCoa(t, m, "5.3", "", "Alimentação", models.CoaExpense)
	mustCreateCoa(t, m, "4.1", "", "Salário", models.CoaIncome)
	acc, _ := m.CreateAccount(ctx, models.Account{Name: "BTG PJ", Type: models.AccountChecking, IsActive: true})

	txs := []models.Transaction{
		{AccountID: acc.ID, TransactionDate: "2025-10-15", Amount: decimal.RequireFromString("-100"), CoaCode: "5.3", Recipient: "MERCADO"},
		{AccountID: acc.ID, TransactionDate: "2025-11-05", Amount: decimal.RequireFromString("-50.5"), CoaCode: "5.3", Recipient: "MERCADO"},
		{AccountID: acc.ID, TransactionDate: "2025-11-20", Amount: decimal.RequireFromString("7000"), CoaCode: "4.1", Recipient: "EMPRESA"},
	}
	if n, err := m.InsertTransactions(ctx, txs); err != nil || n != 3 {
		t.Fatalf("InsertTransactions: n=%d err=%v", n, err)
	}

	got, err := m.ListTransactions(ctx, TransactionFilter{From: "2025-11-01", To: "2025-11-30", CoaCode: "5.3"})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(got) != 1 || got[0].TransactionDate != "2025-11-05" {
		t.Errorf("unexpected filtered transactions %+v", got)
	}

	report, err := m.CoaReport(ctx, "2025-11-01", "2025-11-30")
	if err != nil {
		t.Fatalf("CoaReport: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("expected two coa rows, got %+v", report)
	}
	// Sorted by code: 4.1 first.
	if report[0].CoaCode != "4.1" || report[0].TxCount != 1 || !report[0].Total.Equal(decimal.RequireFromString("7000")) {
		t.Errorf("unexpected coa row %+v", report[0])
	}
	if report[1].CoaCode != "5.3" || !report[1].Total.Equal(decimal.RequireFromString("-50.5")) {
		t.Errorf("unexpected coa row %+v", report[1])
	}

	byRecipient, err := m.RecipientReport(ctx, "", "")
	if err != nil {
		t.Fatalf("RecipientReport: %v", err)
	}
	if len(byRecipient) != 2 {
		t.Fatalf("expected two recipient rows, got %+v", byRecipient)
	}
	if byRecipient[1].Recipient != "MERCADO" || byRecipient[1].TxCount != 2 || !byRecipient[1].Total.Equal(decimal.RequireFromString("-150.5")) {
		t.Errorf("unexpected recipient row %+v", byRecipient[1])
	}
}

func TestInsertTransactionsValidatesBeforeWriting(t *testing.T) {
	m, ctx := newTestStore(t)
	acc, _ := m.CreateAccount(ctx, models.Account{Name: "Conta", Type: models.AccountChecking, IsActive: true})

	txs := []models.Transaction{
		{AccountID: acc.ID, TransactionDate: "2025-11-01", Amount: decimal.RequireFromString("-1")},
		{AccountID: "", TransactionDate: "2025-11-02", Amount: decimal.RequireFromString("-2")},
	}
	if _, err := m.InsertTransactions(ctx, txs); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	got, _ := m.ListTransactions(ctx, TransactionFilter{})
	if len(got) != 0 {
		t.Errorf("expected no partial insert, got %d rows", len(got))
	}
}
