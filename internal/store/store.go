// Package store is the boundary to the transactional storage collaborator.
//
// The core pipeline only reads through it (alias suggestions, active COA
// options) and bulk-inserts committed transactions; the CRUD surface backs
// the bookkeeping screens.
package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/lfmotta/livrocaixa/internal/models"
)

var (
	// ErrNotFound reports a missing entity; handlers map it to 404.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness violation, e.g. a duplicate alias.
	ErrConflict = errors.New("already exists")
	// ErrInvalid reports a referential violation, e.g. a missing COA
	// parent or a parent cycle.
	ErrInvalid = errors.New("invalid reference")
)

// AliasSuggestion is one row of the bulk alias lookup: an alias joined to
// its recipient's primary COA link and the COA entry name.
type AliasSuggestion struct {
	Alias   string `json:"alias"`
	CoaCode string `json:"coaCode"`
	CoaName string `json:"coaName"`
}

// TransactionFilter narrows a transaction listing. Date bounds are
// inclusive YYYY-MM-DD strings; empty fields are ignored.
type TransactionFilter struct {
	AccountID string
	CoaCode   string
	From      string
	To        string
}

// OrphanRecipient aggregates committed transactions whose recipient string
// has no alias row yet, with a modal COA code from past manual tagging and
// a fuzzy nearest-recipient-name hint for the cleanup screen.
type OrphanRecipient struct {
	Recipient        string          `json:"recipient"`
	TxCount          int             `json:"txCount"`
	Total            decimal.Decimal `json:"total"`
	SuggestedCoaCode string          `json:"suggestedCoaCode,omitempty"`
	SuggestedCoaName string          `json:"suggestedCoaName,omitempty"`
	ClosestRecipient string          `json:"closestRecipient,omitempty"`
}

// CoaReportRow is one grouped sum of the COA report.
type CoaReportRow struct {
	CoaCode string          `json:"coaCode"`
	CoaName string          `json:"coaName"`
	Type    models.CoaType  `json:"type"`
	TxCount int             `json:"txCount"`
	Total   decimal.Decimal `json:"total"`
}

// RecipientReportRow is one grouped sum of the recipient report.
type RecipientReportRow struct {
	Recipient string          `json:"recipient"`
	TxCount   int             `json:"txCount"`
	Total     decimal.Decimal `json:"total"`
}

// CoaStore manages the chart of accounts.
type CoaStore interface {
	ListCoa(ctx context.Context) ([]models.CoaAccount, error)
	CreateCoa(ctx context.Context, coa models.CoaAccount) (models.CoaAccount, error)
	UpdateCoa(ctx context.Context, code string, coa models.CoaAccount) (models.CoaAccount, error)
	DeleteCoa(ctx context.Context, code string) error
	// ActiveCoaOptions lists code/name pairs of active entries, the option
	// set offered to the AI classifier and the review UI.
	ActiveCoaOptions(ctx context.Context) ([]models.CoaOption, error)
}

// RecipientStore manages recipients, their aliases and COA links.
type RecipientStore interface {
	ListRecipients(ctx context.Context) ([]models.RecipientDetail, error)
	GetRecipient(ctx context.Context, id string) (models.RecipientDetail, error)
	CreateRecipient(ctx context.Context, r models.Recipient) (models.Recipient, error)
	UpdateRecipient(ctx context.Context, id string, r models.Recipient) (models.Recipient, error)
	DeleteRecipient(ctx context.Context, id string) error

	AddAlias(ctx context.Context, recipientID, alias string) (models.Alias, error)
	RemoveAlias(ctx context.Context, alias string) error

	AddCoaLink(ctx context.Context, recipientID, coaCode string, isPrimary bool) (models.CoaLink, error)
	SetPrimaryCoaLink(ctx context.Context, recipientID, linkID string) (models.CoaLink, error)
	RemoveCoaLink(ctx context.Context, linkID string) error

	// MergeRecipients moves every alias and COA link of source onto target
	// and deletes source.
	MergeRecipients(ctx context.Context, sourceID, targetID string) error
	OrphanRecipients(ctx context.Context) ([]OrphanRecipient, error)

	// FindAliasSuggestions is the single bulk lookup behind alias
	// resolution: alias → recipient → primary COA link → COA name, for
	// every description in one imported batch.
	FindAliasSuggestions(ctx context.Context, descriptions []string) (map[string]AliasSuggestion, error)
}

// AccountStore manages financial accounts.
type AccountStore interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	GetAccount(ctx context.Context, id string) (models.Account, error)
	CreateAccount(ctx context.Context, a models.Account) (models.Account, error)
	UpdateAccount(ctx context.Context, id string, a models.Account) (models.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// BalanceStore manages manual balance snapshots.
type BalanceStore interface {
	ListBalances(ctx context.Context, accountID string) ([]models.Balance, error)
	CreateBalance(ctx context.Context, b models.Balance) (models.Balance, error)
	UpdateBalance(ctx context.Context, id string, b models.Balance) (models.Balance, error)
	DeleteBalance(ctx context.Context, id string) error
}

// TransactionStore manages committed transactions and the grouped-sum
// reports over them.
type TransactionStore interface {
	ListTransactions(ctx context.Context, f TransactionFilter) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, t models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	// InsertTransactions is the bulk insert behind import commit.
	InsertTransactions(ctx context.Context, ts []models.Transaction) (int, error)

	CoaReport(ctx context.Context, from, to string) ([]CoaReportRow, error)
	RecipientReport(ctx context.Context, from, to string) ([]RecipientReportRow, error)
}

// Store is the full storage surface the server wires together.
type Store interface {
	CoaStore
	RecipientStore
	AccountStore
	BalanceStore
	TransactionStore
}
