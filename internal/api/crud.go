package api

import (
	"bytes"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/lfmotta/livrocaixa/internal/models"
	"github.com/lfmotta/livrocaixa/internal/store"
	"github.com/lfmotta/livrocaixa/internal/writer"
)

// ---------------------------------------------------------------------------
// Chart of accounts
// ---------------------------------------------------------------------------

func (h *Handler) HandleListCoa(c *fiber.Ctx) error {
	coa, err := h.Store.ListCoa(c.UserContext())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(coa)
}

func (h *Handler) HandleCreateCoa(c *fiber.Ctx) error {
	var coa models.CoaAccount
	if err := c.BodyParser(&coa); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	created, err := h.Store.CreateCoa(c.UserContext(), coa)
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) HandleUpdateCoa(c *fiber.Ctx) error {
	var coa models.CoaAccount
	if err := c.BodyParser(&coa); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	updated, err := h.Store.UpdateCoa(c.UserContext(), c.Params("code"), coa)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) HandleDeleteCoa(c *fiber.Ctx) error {
	if err := h.Store.DeleteCoa(c.UserContext(), c.Params("code")); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Recipients
// ---------------------------------------------------------------------------

func (h *Handler) HandleListRecipients(c *fiber.Ctx) error {
	recipients, err := h.Store.ListRecipients(c.UserContext())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(recipients)
}

func (h *Handler) HandleGetRecipient(c *fiber.Ctx) error {
	d, err := h.Store.GetRecipient(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(d)
}

func (h *Handler) HandleCreateRecipient(c *fiber.Ctx) error {
	var r models.Recipient
	if err := c.BodyParser(&r); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	created, err := h.Store.CreateRecipient(c.UserContext(), r)
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) HandleUpdateRecipient(c *fiber.Ctx) error {
	var r models.Recipient
	if err := c.BodyParser(&r); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	updated, err := h.Store.UpdateRecipient(c.UserContext(), c.Params("id"), r)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) HandleDeleteRecipient(c *fiber.Ctx) error {
	if err := h.Store.DeleteRecipient(c.UserContext(), c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) HandleAddAlias(c *fiber.Ctx) error {
	var body struct {
		Alias string `json:"alias"`
	}
	if err := c.BodyParser(&body); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	a, err := h.Store.AddAlias(c.UserContext(), c.Params("id"), body.Alias)
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *Handler) HandleRemoveAlias(c *fiber.Ctx) error {
	// Aliases can contain spaces, so they arrive percent-encoded.
	alias, err := url.PathUnescape(c.Params("alias"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid alias parameter")
	}
	if err := h.Store.RemoveAlias(c.UserContext(), alias); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) HandleAddCoaLink(c *fiber.Ctx) error {
	var body struct {
		CoaCode   string `json:"coaCode"`
		IsPrimary bool   `json:"isPrimary"`
	}
	if err := c.BodyParser(&body); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	l, err := h.Store.AddCoaLink(c.UserContext(), c.Params("id"), body.CoaCode, body.IsPrimary)
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(l)
}

func (h *Handler) HandleSetPrimaryCoaLink(c *fiber.Ctx) error {
	l, err := h.Store.SetPrimaryCoaLink(c.UserContext(), c.Params("id"), c.Params("linkId"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(l)
}

func (h *Handler) HandleRemoveCoaLink(c *fiber.Ctx) error {
	if err := h.Store.RemoveCoaLink(c.UserContext(), c.Params("linkId")); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) HandleMergeRecipients(c *fiber.Ctx) error {
	var body struct {
		TargetID string `json:"targetId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	if err := h.Store.MergeRecipients(c.UserContext(), c.Params("id"), body.TargetID); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) HandleOrphanRecipients(c *fiber.Ctx) error {
	orphans, err := h.Store.OrphanRecipients(c.UserContext())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(orphans)
}

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

func (h *Handler) HandleListAccounts(c *fiber.Ctx) error {
	accounts, err := h.Store.ListAccounts(c.UserContext())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(accounts)
}

func (h *Handler) HandleGetAccount(c *fiber.Ctx) error {
	a, err := h.Store.GetAccount(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(a)
}

func (h *Handler) HandleCreateAccount(c *fiber.Ctx) error {
	var a models.Account
	if err := c.BodyParser(&a); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	created, err := h.Store.CreateAccount(c.UserContext(), a)
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) HandleUpdateAccount(c *fiber.Ctx) error {
	var a models.Account
	if err := c.BodyParser(&a); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	updated, err := h.Store.UpdateAccount(c.UserContext(), c.Params("id"), a)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) HandleDeleteAccount(c *fiber.Ctx) error {
	if err := h.Store.DeleteAccount(c.UserContext(), c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Balances
// ---------------------------------------------------------------------------

func (h *Handler) HandleListBalances(c *fiber.Ctx) error {
	balances, err := h.Store.ListBalances(c.UserContext(), c.Query("accountId"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(balances)
}

func (h *Handler) HandleCreateBalance(c *fiber.Ctx) error {
	var b models.Balance
	if err := c.BodyParser(&b); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	created, err := h.Store.CreateBalance(c.UserContext(), b)
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) HandleUpdateBalance(c *fiber.Ctx) error {
	var b models.Balance
	if err := c.BodyParser(&b); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	updated, err := h.Store.UpdateBalance(c.UserContext(), c.Params("id"), b)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) HandleDeleteBalance(c *fiber.Ctx) error {
	if err := h.Store.DeleteBalance(c.UserContext(), c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

func transactionFilter(c *fiber.Ctx) store.TransactionFilter {
	return store.TransactionFilter{
		AccountID: c.Query("accountId"),
		CoaCode:   c.Query("coaCode"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}
}

func (h *Handler) HandleListTransactions(c *fiber.Ctx) error {
	txs, err := h.Store.ListTransactions(c.UserContext(), transactionFilter(c))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(txs)
}

func (h *Handler) HandleCreateTransaction(c *fiber.Ctx) error {
	var t models.Transaction
	if err := c.BodyParser(&t); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	created, err := h.Store.CreateTransaction(c.UserContext(), t)
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) HandleUpdateTransaction(c *fiber.Ctx) error {
	var t models.Transaction
	if err := c.BodyParser(&t); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	updated, err := h.Store.UpdateTransaction(c.UserContext(), c.Params("id"), t)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) HandleDeleteTransaction(c *fiber.Ctx) error {
	if err := h.Store.DeleteTransaction(c.UserContext(), c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) HandleExportTransactions(c *fiber.Ctx) error {
	txs, err := h.Store.ListTransactions(c.UserContext(), transactionFilter(c))
	if err != nil {
		return storeError(c, err)
	}
	accounts, err := h.Store.ListAccounts(c.UserContext())
	if err != nil {
		return storeError(c, err)
	}
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	var buf bytes.Buffer
	w := &writer.CSVWriter{AccountNames: names}
	if err := w.Write(&buf, txs); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "CSV generation failed")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	return c.Send(buf.Bytes())
}

// ---------------------------------------------------------------------------
// Reports
// ---------------------------------------------------------------------------

func (h *Handler) HandleCoaReport(c *fiber.Ctx) error {
	report, err := h.Store.CoaReport(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(report)
}

func (h *Handler) HandleRecipientReport(c *fiber.Ctx) error {
	report, err := h.Store.RecipientReport(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(report)
}
