package writer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/lfmotta/livrocaixa/internal/models"
)

// CSVWriter serializes committed transactions for download. Account ids
// are replaced by account names when a name is known.
type CSVWriter struct {
	AccountNames map[string]string
}

// Write writes the transactions in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, txs []models.Transaction) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"Date", "Accounting Date", "Account", "COA Code", "Recipient", "Amount", "Notes"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txs {
		account := txn.AccountID
		if name, ok := w.AccountNames[txn.AccountID]; ok {
			account = name
		}
		row := []string{
			txn.TransactionDate,
			txn.AccountingDate,
			account,
			txn.CoaCode,
			txn.Recipient,
			txn.Amount.StringFixed(2),
			txn.Notes,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
