package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nullsec0x/securebank/internal/cqrs"
	"github.com/nullsec0x/securebank/internal/middleware"
	"github.com/nullsec0x/securebank/internal/models"
)

// UserCommander defines the write-side operations used by UserHandler.
type UserCommander interface {
	CreateUser(ctx context.Context, cmd cqrs.CreateUserCommand) (*models.User, error)
	DeleteUser(ctx context.Context, cmd cqrs.DeleteUserCommand) error
	UpdateUserRole(ctx context.Context, cmd cqrs.UpdateUserRoleCommand) (*models.User, error)
}

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.UserView, error)
	ListUsers(ctx context.Context, q cqrs.ListUsersQuery) ([]models.UserView, error)
}

// UserHandler routes requests to the command or query service as appropriate.
// Creation, deletion, role changes and the full listing are admin routes.
type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN USER"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN USER"`
}

type ListUsersResponse struct {
	Users []models.UserView `json:"users"`
}

func NewUserHandler(commands UserCommander, queries UserQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.commands.CreateUser(c.Request.Context(), cqrs.CreateUserCommand{
		Username: req.Username,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateUsername) {
			middleware.RespondWithError(c, http.StatusConflict, "Username already exists")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	view, err := h.queries.GetUser(c.Request.Context(), cqrs.GetUserQuery{
		UserID: userID,
		Acting: principal,
	})
	if err != nil {
		if errors.Is(err, models.ErrOwnershipViolation) {
			middleware.RespondWithError(c, http.StatusForbidden, "You can only access your own user details")
			return
		}
		middleware.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	views, err := h.queries.ListUsers(c.Request.Context(), cqrs.ListUsersQuery{})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, ListUsersResponse{Users: views})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	err := h.commands.DeleteUser(c.Request.Context(), cqrs.DeleteUserCommand{
		UserID: userID,
		Acting: principal,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, models.ErrProtectedRole):
			middleware.RespondWithError(c, http.StatusConflict, "ADMIN users cannot be deleted")
		case errors.Is(err, models.ErrNonZeroBalance):
			middleware.RespondWithError(c, http.StatusConflict, "Cannot delete a user with account balance greater than zero")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	var req UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.commands.UpdateUserRole(c.Request.Context(), cqrs.UpdateUserRoleCommand{
		UserID: userID,
		Role:   models.Role(req.Role),
		Acting: principal,
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update role")
		return
	}

	c.JSON(http.StatusOK, user)
}

// pathID parses a numeric path parameter, responding 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}
