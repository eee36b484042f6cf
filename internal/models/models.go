package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are serialized as JSON numbers, matching what the review UI
	// and the import/execute payload exchange.
	decimal.MarshalJSONWithoutQuotes = true
}

// SuggestionSource tags where a suggested COA code came from.
type SuggestionSource string

const (
	SourceAlias SuggestionSource = "alias"
	SourceAI    SuggestionSource = "ai"
)

// ParsedRow is one normalized statement line produced by a parser.
// It lives only for the duration of one import session: parsed, enriched
// with a COA suggestion, reviewed by the user, then discarded.
type ParsedRow struct {
	TempID           string           `json:"tempId"`
	Date             string           `json:"date"` // YYYY-MM-DD
	Description      string           `json:"description"`
	Amount           decimal.Decimal  `json:"amount"`
	SuggestedCoaCode string           `json:"suggestedCoaCode,omitempty"`
	SuggestedCoaName string           `json:"suggestedCoaName,omitempty"`
	SuggestionSource SuggestionSource `json:"suggestionSource,omitempty"`
}

// CoaType is the accounting nature of a chart-of-accounts entry.
type CoaType string

const (
	CoaAsset     CoaType = "asset"
	CoaLiability CoaType = "liability"
	CoaEquity    CoaType = "equity"
	CoaIncome    CoaType = "income"
	CoaExpense   CoaType = "expense"
)

// ValidCoaType reports whether t is one of the five account natures.
func ValidCoaType(t CoaType) bool {
	switch t {
	case CoaAsset, CoaLiability, CoaEquity, CoaIncome, CoaExpense:
		return true
	}
	return false
}

// CoaAccount is one entry of the chart of accounts. Codes are hierarchical
// by convention ("5.1.3" under "5.1"); ParentCode must reference an
// existing code.
type CoaAccount struct {
	Code        string    `json:"code"`
	ParentCode  string    `json:"parentCode,omitempty"`
	Name        string    `json:"name"`
	Type        CoaType   `json:"type"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CoaOption is the code/name pair offered to the AI classifier and to the
// review UI's COA picker.
type CoaOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// AccountType is the kind of financial account.
type AccountType string

const (
	AccountSavings    AccountType = "savings"
	AccountChecking   AccountType = "checking"
	AccountCreditCard AccountType = "credit_card"
	AccountInvestment AccountType = "investment"
	AccountBenefits   AccountType = "benefits"
	AccountOther      AccountType = "other"
)

// Account is a financial account statements are imported into.
type Account struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	Institution    string          `json:"institution,omitempty"`
	Owner          string          `json:"owner,omitempty"`
	AccountNumber  string          `json:"accountNumber,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Notes          string          `json:"notes,omitempty"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Transaction is a committed financial event. AccountID and CoaCode are
// soft references: indexed lookups, no enforced foreign keys.
type Transaction struct {
	ID              string          `json:"id"`
	TransactionDate string          `json:"transactionDate"` // YYYY-MM-DD
	AccountingDate  string          `json:"accountingDate,omitempty"`
	AccountID       string          `json:"accountId"`
	CoaCode         string          `json:"coaCode,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Recipient       string          `json:"recipient,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Balance is a manual balance snapshot for one account on one date.
type Balance struct {
	ID        string          `json:"id"`
	AccountID string          `json:"accountId"`
	Date      string          `json:"date"` // YYYY-MM-DD
	Balance   decimal.Decimal `json:"balance"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Recipient is a canonical payee identity.
type Recipient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Alias maps one exact uppercase description string to a recipient.
// Alias strings are unique across the whole system.
type Alias struct {
	Alias       string    `json:"alias"`
	RecipientID string    `json:"recipientId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CoaLink associates a recipient with a COA code. At most one link per
// recipient is primary; the primary link drives auto-suggestion.
type CoaLink struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipientId"`
	CoaCode     string    `json:"coaCode"`
	IsPrimary   bool      `json:"isPrimary"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RecipientDetail is a recipient with its aliases and COA links expanded.
type RecipientDetail struct {
	Recipient
	Aliases []Alias         `json:"aliases"`
	Coas    []CoaLinkDetail `json:"coas"`
}

// CoaLinkDetail is a CoaLink joined with the COA entry name.
type CoaLinkDetail struct {
	CoaLink
	CoaName string `json:"coaName,omitempty"`
}
