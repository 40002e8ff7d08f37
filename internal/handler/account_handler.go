package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nullsec0x/securebank/internal/cqrs"
	"github.com/nullsec0x/securebank/internal/middleware"
	"github.com/nullsec0x/securebank/internal/models"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error)
	DeleteAccount(ctx context.Context, cmd cqrs.DeleteAccountCommand) error
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error)
	GetAccountByNumber(ctx context.Context, q cqrs.GetAccountByNumberQuery) (*models.AccountView, error)
	ListAccounts(ctx context.Context, q cqrs.ListAccountsQuery) ([]models.AccountView, error)
}

// AccountHandler handles account-related HTTP requests. Account creation is
// an admin route; the ownership check before deletion is done here, at the
// caller, not inside the service.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

type CreateAccountRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
}

type ListAccountsResponse struct {
	Accounts []models.AccountView `json:"accounts"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		UserID: req.UserID,
		Acting: principal,
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, account)
}

// ListAccounts lists the principal's accounts, or every account for admins.
// With ?number= it becomes a point lookup by account number instead.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	if number := c.Query("number"); number != "" {
		view, err := h.queries.GetAccountByNumber(c.Request.Context(), cqrs.GetAccountByNumberQuery{
			Number: number,
			Acting: principal,
		})
		if err != nil {
			if errors.Is(err, models.ErrOwnershipViolation) {
				middleware.RespondWithError(c, http.StatusForbidden, "You can only access your own accounts")
				return
			}
			middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
			return
		}
		c.JSON(http.StatusOK, view)
		return
	}

	views, err := h.queries.ListAccounts(c.Request.Context(), cqrs.ListAccountsQuery{Acting: principal})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: views})
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID, ok := pathID(c, "accountId")
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	view, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{
		AccountID: accountID,
		Acting:    principal,
	})
	if err != nil {
		if errors.Is(err, models.ErrOwnershipViolation) {
			middleware.RespondWithError(c, http.StatusForbidden, "You can only access your own accounts")
			return
		}
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountID, ok := pathID(c, "accountId")
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	// Caller-side ownership check: the query rejects accounts the principal
	// neither owns nor administers.
	if _, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{
		AccountID: accountID,
		Acting:    principal,
	}); err != nil {
		if errors.Is(err, models.ErrOwnershipViolation) {
			middleware.RespondWithError(c, http.StatusForbidden, "You can only delete your own accounts")
			return
		}
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	err := h.commands.DeleteAccount(c.Request.Context(), cqrs.DeleteAccountCommand{
		AccountID: accountID,
		Acting:    principal,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		case errors.Is(err, models.ErrNonZeroBalance):
			middleware.RespondWithError(c, http.StatusConflict, "Cannot delete an account with balance greater than zero. Withdraw funds first")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete account")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
