package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/closestmatch"
	"github.com/shopspring/decimal"

	"github.com/lfmotta/livrocaixa/internal/models"
)

// Memory is the in-process Store implementation. It stands in for the
// relational engine, which is outside this module's scope; everything is
// guarded by one RWMutex since the CRUD surface mutates shared maps.
type Memory struct {
	mu           sync.RWMutex
	coa          map[string]models.CoaAccount
	recipients   map[string]models.Recipient
	aliases      map[string]models.Alias
	coaLinks     map[string]models.CoaLink
	accounts     map[string]models.Account
	balances     map[string]models.Balance
	transactions map[string]models.Transaction
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		coa:          make(map[string]models.CoaAccount),
		recipients:   make(map[string]models.Recipient),
		aliases:      make(map[string]models.Alias),
		coaLinks:     make(map[string]models.CoaLink),
		accounts:     make(map[string]models.Account),
		balances:     make(map[string]models.Balance),
		transactions: make(map[string]models.Transaction),
	}
}

var _ Store = (*Memory)(nil)

func now() time.Time { return time.Now().UTC() }

// ---------------------------------------------------------------------------
// Chart of accounts
// ---------------------------------------------------------------------------

func (m *Memory) ListCoa(ctx context.Context) ([]models.CoaAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.CoaAccount, 0, len(m.coa))
	for _, c := range m.coa {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *Memory) CreateCoa(ctx context.Context, coa models.CoaAccount) (models.CoaAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if coa.Code == "" || coa.Name == "" || !models.ValidCoaType(coa.Type) {
		return models.CoaAccount{}, fmt.Errorf("coa code, name and type are required: %w", ErrInvalid)
	}
	if _, exists := m.coa[coa.Code]; exists {
		return models.CoaAccount{}, fmt.Errorf("coa %s: %w", coa.Code, ErrConflict)
	}
	if err := m.checkParent(coa.Code, coa.ParentCode); err != nil {
		return models.CoaAccount{}, err
	}

	coa.CreatedAt = now()
	coa.UpdatedAt = coa.CreatedAt
	m.coa[coa.Code] = coa
	return coa, nil
}

func (m *Memory) UpdateCoa(ctx context.Context, code string, coa models.CoaAccount) (models.CoaAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.coa[code]
	if !ok {
		return models.CoaAccount{}, fmt.Errorf("coa %s: %w", code, ErrNotFound)
	}
	if coa.Name == "" || !models.ValidCoaType(coa.Type) {
		return models.CoaAccount{}, fmt.Errorf("coa name and type are required: %w", ErrInvalid)
	}
	if err := m.checkParent(code, coa.ParentCode); err != nil {
		return models.CoaAccount{}, err
	}

	existing.Name = coa.Name
	existing.Type = coa.Type
	existing.ParentCode = coa.ParentCode
	existing.Description = coa.Description
	existing.IsActive = coa.IsActive
	existing.UpdatedAt = now()
	m.coa[code] = existing
	return existing, nil
}

// checkParent verifies the parent code exists and that linking to it would
// not close a cycle. Callers hold the lock.
func (m *Memory) checkParent(code, parentCode string) error {
	if parentCode == "" {
		return nil
	}
	if _, ok := m.coa[parentCode]; !ok {
		return fmt.Errorf("parent coa %s: %w", parentCode, ErrInvalid)
	}
	for cur := parentCode; cur != ""; {
		if cur == code {
			return fmt.Errorf("coa parent cycle via %s: %w", parentCode, ErrInvalid)
		}
		cur = m.coa[cur].ParentCode
	}
	return nil
}

func (m *Memory) DeleteCoa(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.coa[code]; !ok {
		return fmt.Errorf("coa %s: %w", code, ErrNotFound)
	}
	for _, c := range m.coa {
		if c.ParentCode == code {
			return fmt.Errorf("coa %s has child accounts: %w", code, ErrConflict)
		}
	}
	delete(m.coa, code)
	return nil
}

func (m *Memory) ActiveCoaOptions(ctx context.Context) ([]models.CoaOption, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.CoaOption
	for _, c := range m.coa {
		if c.IsActive {
			out = append(out, models.CoaOption{Code: c.Code, Name: c.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// ---------------------------------------------------------------------------
// Recipients, aliases, COA links
// ---------------------------------------------------------------------------

func (m *Memory) ListRecipients(ctx context.Context) ([]models.RecipientDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.RecipientDetail, 0, len(m.recipients))
	for id := range m.recipients {
		out = append(out, m.recipientDetail(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetRecipient(ctx context.Context, id string) (models.RecipientDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.recipients[id]; !ok {
		return models.RecipientDetail{}, fmt.Errorf("recipient %s: %w", id, ErrNotFound)
	}
	return m.recipientDetail(id), nil
}

// recipientDetail expands one recipient. Callers hold the lock.
func (m *Memory) recipientDetail(id string) models.RecipientDetail {
	d := models.RecipientDetail{Recipient: m.recipients[id], Aliases: []models.Alias{}, Coas: []models.CoaLinkDetail{}}
	for _, a := range m.aliases {
		if a.RecipientID == id {
			d.Aliases = append(d.Aliases, a)
		}
	}
	sort.Slice(d.Aliases, func(i, j int) bool { return d.Aliases[i].Alias < d.Aliases[j].Alias })

	for _, l := range m.coaLinks {
		if l.RecipientID == id {
			d.Coas = append(d.Coas, models.CoaLinkDetail{CoaLink: l, CoaName: m.coa[l.CoaCode].Name})
		}
	}
	sort.Slice(d.Coas, func(i, j int) bool { return d.Coas[i].CoaCode < d.Coas[j].CoaCode })
	return d
}

func (m *Memory) CreateRecipient(ctx context.Context, r models.Recipient) (models.Recipient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.Name == "" {
		return models.Recipient{}, fmt.Errorf("recipient name is required: %w", ErrInvalid)
	}
	r.ID = uuid.NewString()
	r.CreatedAt = now()
	r.UpdatedAt = r.CreatedAt
	m.recipients[r.ID] = r
	return r, nil
}

func (m *Memory) UpdateRecipient(ctx context.Context, id string, r models.Recipient) (models.Recipient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.recipients[id]
	if !ok {
		return models.Recipient{}, fmt.Errorf("recipient %s: %w", id, ErrNotFound)
	}
	if r.Name == "" {
		return models.Recipient{}, fmt.Errorf("recipient name is required: %w", ErrInvalid)
	}
	existing.Name = r.Name
	existing.Notes = r.Notes
	existing.IsActive = r.IsActive
	existing.UpdatedAt = now()
	m.recipients[id] = existing
	return existing, nil
}

func (m *Memory) DeleteRecipient(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.recipients[id]; !ok {
		return fmt.Errorf("recipient %s: %w", id, ErrNotFound)
	}
	delete(m.recipients, id)
	for alias, a := range m.aliases {
		if a.RecipientID == id {
			delete(m.aliases, alias)
		}
	}
	for linkID, l := range m.coaLinks {
		if l.RecipientID == id {
			delete(m.coaLinks, linkID)
		}
	}
	return nil
}

func (m *Memory) AddAlias(ctx context.Context, recipientID, alias string) (models.Alias, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	alias = strings.ToUpper(strings.TrimSpace(alias))
	if alias == "" {
		return models.Alias{}, fmt.Errorf("alias is required: %w", ErrInvalid)
	}
	if _, ok := m.recipients[recipientID]; !ok {
		return models.Alias{}, fmt.Errorf("recipient %s: %w", recipientID, ErrNotFound)
	}
	if _, ok := m.aliases[alias]; ok {
		return models.Alias{}, fmt.Errorf("alias %q: %w", alias, ErrConflict)
	}

	a := models.Alias{Alias: alias, RecipientID: recipientID, CreatedAt: now()}
	m.aliases[alias] = a
	return a, nil
}

func (m *Memory) RemoveAlias(ctx context.Context, alias string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	alias = strings.ToUpper(strings.TrimSpace(alias))
	if _, ok := m.aliases[alias]; !ok {
		return fmt.Errorf("alias %q: %w", alias, ErrNotFound)
	}
	delete(m.aliases, alias)
	return nil
}

func (m *Memory) AddCoaLink(ctx context.Context, recipientID, coaCode string, isPrimary bool) (models.CoaLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.recipients[recipientID]; !ok {
		return models.CoaLink{}, fmt.Errorf("recipient %s: %w", recipientID, ErrNotFound)
	}
	if _, ok := m.coa[coaCode]; !ok {
		return models.CoaLink{}, fmt.Errorf("coa %s: %w", coaCode, ErrInvalid)
	}
	for _, l := range m.coaLinks {
		if l.RecipientID == recipientID && l.CoaCode == coaCode {
			return models.CoaLink{}, fmt.Errorf("coa link %s/%s: %w", recipientID, coaCode, ErrConflict)
		}
	}

	if isPrimary {
		m.clearPrimary(recipientID)
	}
	l := models.CoaLink{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		CoaCode:     coaCode,
		IsPrimary:   isPrimary,
		CreatedAt:   now(),
	}
	m.coaLinks[l.ID] = l
	return l, nil
}

func (m *Memory) SetPrimaryCoaLink(ctx context.Context, recipientID, linkID string) (models.CoaLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.coaLinks[linkID]
	if !ok || l.RecipientID != recipientID {
		return models.CoaLink{}, fmt.Errorf("coa link %s: %w", linkID, ErrNotFound)
	}
	m.clearPrimary(recipientID)
	l.IsPrimary = true
	m.coaLinks[linkID] = l
	return l, nil
}

// clearPrimary demotes the recipient's current primary link, keeping the
// at-most-one-primary invariant. Callers hold the lock.
func (m *Memory) clearPrimary(recipientID string) {
	for id, l := range m.coaLinks {
		if l.RecipientID == recipientID && l.IsPrimary {
			l.IsPrimary = false
			m.coaLinks[id] = l
		}
	}
}

func (m *Memory) RemoveCoaLink(ctx context.Context, linkID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.coaLinks[linkID]; !ok {
		return fmt.Errorf("coa link %s: %w", linkID, ErrNotFound)
	}
	delete(m.coaLinks, linkID)
	return nil
}

func (m *Memory) MergeRecipients(ctx context.Context, sourceID, targetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sourceID == targetID {
		return fmt.Errorf("cannot merge a recipient into itself: %w", ErrInvalid)
	}
	if _, ok := m.recipients[sourceID]; !ok {
		return fmt.Errorf("recipient %s: %w", sourceID, ErrNotFound)
	}
	if _, ok := m.recipients[targetID]; !ok {
		return fmt.Errorf("recipient %s: %w", targetID, ErrNotFound)
	}

	for alias, a := range m.aliases {
		if a.RecipientID == sourceID {
			a.RecipientID = targetID
			m.aliases[alias] = a
		}
	}

	targetCodes := make(map[string]bool)
	targetHasPrimary := false
	for _, l := range m.coaLinks {
		if l.RecipientID == targetID {
			targetCodes[l.CoaCode] = true
			if l.IsPrimary {
				targetHasPrimary = true
			}
		}
	}
	for id, l := range m.coaLinks {
		if l.RecipientID != sourceID {
			continue
		}
		if targetCodes[l.CoaCode] {
			delete(m.coaLinks, id)
			continue
		}
		l.RecipientID = targetID
		if targetHasPrimary {
			l.IsPrimary = false
		} else if l.IsPrimary {
			targetHasPrimary = true
		}
		m.coaLinks[id] = l
	}

	delete(m.recipients, sourceID)
	return nil
}

func (m *Memory) OrphanRecipients(ctx context.Context) ([]OrphanRecipient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type agg struct {
		count     int
		total     decimal.Decimal
		coaCounts map[string]int
	}
	byRecipient := make(map[string]*agg)

	for _, t := range m.transactions {
		if t.Recipient == "" {
			continue
		}
		if _, aliased := m.aliases[t.Recipient]; aliased {
			continue
		}
		a := byRecipient[t.Recipient]
		if a == nil {
			a = &agg{coaCounts: make(map[string]int)}
			byRecipient[t.Recipient] = a
		}
		a.count++
		a.total = a.total.Add(t.Amount)
		if t.CoaCode != "" {
			a.coaCounts[t.CoaCode]++
		}
	}

	var names []string
	for _, r := range m.recipients {
		names = append(names, r.Name)
	}
	var matcher *closestmatch.ClosestMatch
	if len(names) > 0 {
		matcher = closestmatch.New(names, []int{2, 3})
	}

	out := make([]OrphanRecipient, 0, len(byRecipient))
	for recipient, a := range byRecipient {
		row := OrphanRecipient{Recipient: recipient, TxCount: a.count, Total: a.total}
		// Modal COA code from past manual tagging.
		best := 0
		for code, n := range a.coaCounts {
			if n > best || (n == best && code < row.SuggestedCoaCode) {
				best = n
				row.SuggestedCoaCode = code
			}
		}
		if row.SuggestedCoaCode != "" {
			row.SuggestedCoaName = m.coa[row.SuggestedCoaCode].Name
		}
		if matcher != nil {
			// The matcher lowercases its dictionary but not the search
			// word; orphan recipients are uppercase, so lowercase here or
			// no n-gram ever overlaps.
			row.ClosestRecipient = matcher.Closest(strings.ToLower(recipient))
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TxCount != out[j].TxCount {
			return out[i].TxCount > out[j].TxCount
		}
		return out[i].Recipient < out[j].Recipient
	})
	return out, nil
}

func (m *Memory) FindAliasSuggestions(ctx context.Context, descriptions []string) (map[string]AliasSuggestion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Primary COA link per recipient.
	primaryByRecipient := make(map[string]models.CoaLink)
	for _, l := range m.coaLinks {
		if l.IsPrimary {
			primaryByRecipient[l.RecipientID] = l
		}
	}

	out := make(map[string]AliasSuggestion)
	for _, desc := range descriptions {
		a, ok := m.aliases[desc]
		if !ok {
			continue
		}
		link, ok := primaryByRecipient[a.RecipientID]
		if !ok {
			continue
		}
		coa, ok := m.coa[link.CoaCode]
		if !ok {
			continue
		}
		out[desc] = AliasSuggestion{Alias: desc, CoaCode: coa.Code, CoaName: coa.Name}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

func (m *Memory) ListAccounts(ctx context.Context) ([]models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetAccount(ctx context.Context, id string) (models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[id]
	if !ok {
		return models.Account{}, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	return a, nil
}

func (m *Memory) CreateAccount(ctx context.Context, a models.Account) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.Name == "" || a.Type == "" {
		return models.Account{}, fmt.Errorf("account name and type are required: %w", ErrInvalid)
	}
	a.ID = uuid.NewString()
	a.CreatedAt = now()
	a.UpdatedAt = a.CreatedAt
	m.accounts[a.ID] = a
	return a, nil
}

func (m *Memory) UpdateAccount(ctx context.Context, id string, a models.Account) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.accounts[id]
	if !ok {
		return models.Account{}, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	if a.Name == "" || a.Type == "" {
		return models.Account{}, fmt.Errorf("account name and type are required: %w", ErrInvalid)
	}
	existing.Name = a.Name
	existing.Type = a.Type
	existing.Institution = a.Institution
	existing.Owner = a.Owner
	existing.AccountNumber = a.AccountNumber
	existing.OpeningBalance = a.OpeningBalance
	existing.Notes = a.Notes
	existing.IsActive = a.IsActive
	existing.UpdatedAt = now()
	m.accounts[id] = existing
	return existing, nil
}

func (m *Memory) DeleteAccount(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[id]; !ok {
		return fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	delete(m.accounts, id)
	return nil
}

// ---------------------------------------------------------------------------
// Balances
// ---------------------------------------------------------------------------

func (m *Memory) ListBalances(ctx context.Context, accountID string) ([]models.Balance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Balance
	for _, b := range m.balances {
		if accountID == "" || b.AccountID == accountID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out, nil
}

func (m *Memory) CreateBalance(ctx context.Context, b models.Balance) (models.Balance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b.AccountID == "" || b.Date == "" {
		return models.Balance{}, fmt.Errorf("balance accountId and date are required: %w", ErrInvalid)
	}
	b.ID = uuid.NewString()
	b.CreatedAt = now()
	b.UpdatedAt = b.CreatedAt
	m.balances[b.ID] = b
	return b, nil
}

func (m *Memory) UpdateBalance(ctx context.Context, id string, b models.Balance) (models.Balance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.balances[id]
	if !ok {
		return models.Balance{}, fmt.Errorf("balance %s: %w", id, ErrNotFound)
	}
	if b.AccountID == "" || b.Date == "" {
		return models.Balance{}, fmt.Errorf("balance accountId and date are required: %w", ErrInvalid)
	}
	existing.AccountID = b.AccountID
	existing.Date = b.Date
	existing.Balance = b.Balance
	existing.Notes = b.Notes
	existing.UpdatedAt = now()
	m.balances[id] = existing
	return existing, nil
}

func (m *Memory) DeleteBalance(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.balances[id]; !ok {
		return fmt.Errorf("balance %s: %w", id, ErrNotFound)
	}
	delete(m.balances, id)
	return nil
}

// ---------------------------------------------------------------------------
// Transactions and reports
// ---------------------------------------------------------------------------

func (m *Memory) ListTransactions(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Transaction
	for _, t := range m.transactions {
		if f.AccountID != "" && t.AccountID != f.AccountID {
			continue
		}
		if f.CoaCode != "" && t.CoaCode != f.CoaCode {
			continue
		}
		if f.From != "" && t.TransactionDate < f.From {
			continue
		}
		if f.To != "" && t.TransactionDate > f.To {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TransactionDate != out[j].TransactionDate {
			return out[i].TransactionDate > out[j].TransactionDate
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.AccountID == "" || t.TransactionDate == "" {
		return models.Transaction{}, fmt.Errorf("transaction accountId and transactionDate are required: %w", ErrInvalid)
	}
	t.ID = uuid.NewString()
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt
	m.transactions[t.ID] = t
	return t, nil
}

func (m *Memory) UpdateTransaction(ctx context.Context, id string, t models.Transaction) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.transactions[id]
	if !ok {
		return models.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	if t.AccountID == "" || t.TransactionDate == "" {
		return models.Transaction{}, fmt.Errorf("transaction accountId and transactionDate are required: %w", ErrInvalid)
	}
	existing.TransactionDate = t.TransactionDate
	existing.AccountingDate = t.AccountingDate
	existing.AccountID = t.AccountID
	existing.CoaCode = t.CoaCode
	existing.Amount = t.Amount
	existing.Recipient = t.Recipient
	existing.Notes = t.Notes
	existing.UpdatedAt = now()
	m.transactions[id] = existing
	return existing, nil
}

func (m *Memory) DeleteTransaction(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[id]; !ok {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	delete(m.transactions, id)
	return nil
}

func (m *Memory) InsertTransactions(ctx context.Context, ts []models.Transaction) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range ts {
		if t.AccountID == "" || t.TransactionDate == "" {
			return 0, fmt.Errorf("transaction accountId and transactionDate are required: %w", ErrInvalid)
		}
	}
	stamp := now()
	for _, t := range ts {
		t.ID = uuid.NewString()
		t.CreatedAt = stamp
		t.UpdatedAt = stamp
		m.transactions[t.ID] = t
	}
	return len(ts), nil
}

func (m *Memory) CoaReport(ctx context.Context, from, to string) ([]CoaReportRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byCode := make(map[string]*CoaReportRow)
	for _, t := range m.transactions {
		if t.CoaCode == "" || !inRange(t.TransactionDate, from, to) {
			continue
		}
		row := byCode[t.CoaCode]
		if row == nil {
			coa := m.coa[t.CoaCode]
			row = &CoaReportRow{CoaCode: t.CoaCode, CoaName: coa.Name, Type: coa.Type}
			byCode[t.CoaCode] = row
		}
		row.TxCount++
		row.Total = row.Total.Add(t.Amount)
	}

	out := make([]CoaReportRow, 0, len(byCode))
	for _, row := range byCode {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CoaCode < out[j].CoaCode })
	return out, nil
}

func (m *Memory) RecipientReport(ctx context.Context, from, to string) ([]RecipientReportRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byRecipient := make(map[string]*RecipientReportRow)
	for _, t := range m.transactions {
		if t.Recipient == "" || !inRange(t.TransactionDate, from, to) {
			continue
		}
		row := byRecipient[t.Recipient]
		if row == nil {
			row = &RecipientReportRow{Recipient: t.Recipient}
			byRecipient[t.Recipient] = row
		}
		row.TxCount++
		row.Total = row.Total.Add(t.Amount)
	}

	out := make([]RecipientReportRow, 0, len(byRecipient))
	for _, row := range byRecipient {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Recipient < out[j].Recipient })
	return out, nil
}

// inRange checks an inclusive YYYY-MM-DD range; empty bounds are open.
func inRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}
