package api

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lfmotta/livrocaixa/internal/models"
)

// ParseResponse is the JSON response from /api/import/parse. Rows are
// session-scoped: nothing is persisted until /api/import/execute.
type ParseResponse struct {
	Rows       []models.ParsedRow `json:"rows"`
	ParserName string             `json:"parserName"`
}

type executeRow struct {
	Date             string          `json:"date"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	SuggestedCoaCode string          `json:"suggestedCoaCode"`
}

type executeRequest struct {
	AccountID string       `json:"accountId"`
	Rows      []executeRow `json:"rows"`
}

type executeResponse struct {
	Inserted int `json:"inserted"`
}

func (h *Handler) HandleListParsers(c *fiber.Ctx) error {
	return c.JSON(h.Registry.Meta())
}

func (h *Handler) HandleImportParse(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded, use form field 'file'")
	}
	parserID := c.FormValue("parserId")
	if parserID == "" {
		return writeError(c, fiber.StatusBadRequest, "parserId is required")
	}
	p, ok := h.Registry.Lookup(parserID)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, "unknown parserId: "+parserID)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "could not open uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "could not read uploaded file")
	}

	rows, err := p.Parse(c.UserContext(), data)
	if err != nil {
		h.Log.Warn("statement parse failed",
			zap.String("parser", parserID),
			zap.String("file", fileHeader.Filename),
			zap.Error(err))
		return writeError(c, fiber.StatusUnprocessableEntity, "could not parse file")
	}

	rows = h.Suggester.Enrich(c.UserContext(), rows)
	if rows == nil {
		rows = []models.ParsedRow{}
	}

	h.Log.Info("statement parsed",
		zap.String("parser", parserID),
		zap.String("file", fileHeader.Filename),
		zap.Int("rows", len(rows)))

	return c.JSON(ParseResponse{Rows: rows, ParserName: p.Name()})
}

func (h *Handler) HandleImportExecute(c *fiber.Ctx) error {
	var req executeRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.AccountID == "" {
		return writeError(c, fiber.StatusBadRequest, "accountId is required")
	}
	if len(req.Rows) == 0 {
		return writeError(c, fiber.StatusBadRequest, "rows must not be empty")
	}
	if _, err := h.Store.GetAccount(c.UserContext(), req.AccountID); err != nil {
		return writeError(c, fiber.StatusBadRequest, "unknown accountId: "+req.AccountID)
	}

	txs := make([]models.Transaction, 0, len(req.Rows))
	for _, r := range req.Rows {
		txs = append(txs, models.Transaction{
			TransactionDate: r.Date,
			AccountingDate:  r.Date,
			AccountID:       req.AccountID,
			CoaCode:         r.SuggestedCoaCode,
			Amount:          r.Amount,
			Recipient:       strings.ToUpper(strings.TrimSpace(r.Description)),
		})
	}

	n, err := h.Store.InsertTransactions(c.UserContext(), txs)
	if err != nil {
		return storeError(c, err)
	}

	h.Log.Info("statement import committed",
		zap.String("accountId", req.AccountID),
		zap.Int("inserted", n))

	return c.JSON(executeResponse{Inserted: n})
}
