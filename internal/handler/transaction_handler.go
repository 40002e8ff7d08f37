package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nullsec0x/securebank/internal/authz"
	"github.com/nullsec0x/securebank/internal/cqrs"
	"github.com/nullsec0x/securebank/internal/middleware"
	"github.com/nullsec0x/securebank/internal/models"
)

// TransactionCommander defines the write-side operations used by TransactionHandler.
type TransactionCommander interface {
	CreateTransaction(ctx context.Context, cmd cqrs.CreateTransactionCommand) (*models.Transaction, error)
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	ListAccountTransactions(ctx context.Context, q cqrs.ListAccountTransactionsQuery) ([]models.TransactionView, error)
	ListTransactions(ctx context.Context, q cqrs.ListTransactionsQuery) ([]models.TransactionView, error)
}

// accountLookup resolves an account for the caller-side ownership check
// before a transaction is created.
type accountLookup interface {
	GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error)
}

type TransactionHandler struct {
	commands TransactionCommander
	queries  TransactionQuerier
	accounts accountLookup
}

type CreateTransactionRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Type   string  `json:"type" validate:"required,oneof=DEPOSIT WITHDRAW"`
}

type ListTransactionsResponse struct {
	Transactions []models.TransactionView `json:"transactions"`
}

func NewTransactionHandler(commands TransactionCommander, queries TransactionQuerier, accounts accountLookup) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries, accounts: accounts}
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	accountID, ok := pathID(c, "accountId")
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	// Only the owner records transactions against an account; this is a
	// caller-side check, the service itself does not inspect ownership.
	view, err := h.accounts.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{
		AccountID: accountID,
		Acting:    principal,
	})
	if err != nil {
		if errors.Is(err, models.ErrOwnershipViolation) {
			middleware.RespondWithError(c, http.StatusForbidden, "You can only create transactions for your own accounts")
			return
		}
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}
	if !authz.OwnsAccount(principal, view.UserID) {
		middleware.RespondWithError(c, http.StatusForbidden, "You can only create transactions for your own accounts")
		return
	}

	transaction, err := h.commands.CreateTransaction(c.Request.Context(), cqrs.CreateTransactionCommand{
		AccountID: accountID,
		Amount:    decimal.NewFromFloat(req.Amount),
		Type:      models.TransactionType(req.Type),
		Acting:    principal,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		case errors.Is(err, models.ErrInsufficientFunds):
			middleware.RespondWithError(c, http.StatusUnprocessableEntity, "Insufficient funds")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create transaction")
		}
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

func (h *TransactionHandler) ListAccountTransactions(c *gin.Context) {
	accountID, ok := pathID(c, "accountId")
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	views, err := h.queries.ListAccountTransactions(c.Request.Context(), cqrs.ListAccountTransactionsQuery{
		AccountID: accountID,
		Acting:    principal,
	})
	if err != nil {
		if errors.Is(err, models.ErrOwnershipViolation) {
			middleware.RespondWithError(c, http.StatusForbidden, "You can only view transactions for your own accounts")
			return
		}
		if errors.Is(err, models.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: views})
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	views, err := h.queries.ListTransactions(c.Request.Context(), cqrs.ListTransactionsQuery{Acting: principal})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: views})
}
