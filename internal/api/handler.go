package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lfmotta/livrocaixa/internal/parser"
	"github.com/lfmotta/livrocaixa/internal/store"
	"github.com/lfmotta/livrocaixa/internal/suggest"
)

const version = "1.0.0"

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Store     store.Store
	Registry  *parser.Registry
	Suggester *suggest.Suggester
	Log       *zap.Logger
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)

	app.Get("/api/parsers", h.HandleListParsers)
	app.Post("/api/import/parse", h.HandleImportParse)
	app.Post("/api/import/execute", h.HandleImportExecute)

	app.Get("/api/coa", h.HandleListCoa)
	app.Post("/api/coa", h.HandleCreateCoa)
	app.Patch("/api/coa/:code", h.HandleUpdateCoa)
	app.Delete("/api/coa/:code", h.HandleDeleteCoa)

	app.Get("/api/recipients", h.HandleListRecipients)
	app.Post("/api/recipients", h.HandleCreateRecipient)
	app.Get("/api/recipients/orphans", h.HandleOrphanRecipients)
	app.Get("/api/recipients/:id", h.HandleGetRecipient)
	app.Patch("/api/recipients/:id", h.HandleUpdateRecipient)
	app.Delete("/api/recipients/:id", h.HandleDeleteRecipient)
	app.Post("/api/recipients/:id/aliases", h.HandleAddAlias)
	app.Delete("/api/recipients/:id/aliases/:alias", h.HandleRemoveAlias)
	app.Post("/api/recipients/:id/coa", h.HandleAddCoaLink)
	app.Patch("/api/recipients/:id/coa/:linkId/primary", h.HandleSetPrimaryCoaLink)
	app.Delete("/api/recipients/:id/coa/:linkId", h.HandleRemoveCoaLink)
	app.Post("/api/recipients/:id/merge", h.HandleMergeRecipients)

	app.Get("/api/accounts", h.HandleListAccounts)
	app.Post("/api/accounts", h.HandleCreateAccount)
	app.Get("/api/accounts/:id", h.HandleGetAccount)
	app.Patch("/api/accounts/:id", h.HandleUpdateAccount)
	app.Delete("/api/accounts/:id", h.HandleDeleteAccount)

	app.Get("/api/balances", h.HandleListBalances)
	app.Post("/api/balances", h.HandleCreateBalance)
	app.Patch("/api/balances/:id", h.HandleUpdateBalance)
	app.Delete("/api/balances/:id", h.HandleDeleteBalance)

	app.Get("/api/transactions", h.HandleListTransactions)
	app.Get("/api/transactions/export", h.HandleExportTransactions)
	app.Post("/api/transactions", h.HandleCreateTransaction)
	app.Patch("/api/transactions/:id", h.HandleUpdateTransaction)
	app.Delete("/api/transactions/:id", h.HandleDeleteTransaction)

	app.Get("/api/reports/coa", h.HandleCoaReport)
	app.Get("/api/reports/recipients", h.HandleRecipientReport)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// storeError maps the store's sentinel errors to HTTP statuses.
func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrConflict):
		return writeError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInvalid):
		return writeError(c, fiber.StatusBadRequest, err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
}
