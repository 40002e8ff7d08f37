package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/nullsec0x/securebank/internal/cqrs"
	"github.com/nullsec0x/securebank/internal/models"
)

type mockUserCommander struct {
	createFn     func(ctx context.Context, cmd cqrs.CreateUserCommand) (*models.User, error)
	deleteFn     func(ctx context.Context, cmd cqrs.DeleteUserCommand) error
	updateRoleFn func(ctx context.Context, cmd cqrs.UpdateUserRoleCommand) (*models.User, error)
}

func (m *mockUserCommander) CreateUser(ctx context.Context, cmd cqrs.CreateUserCommand) (*models.User, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockUserCommander) DeleteUser(ctx context.Context, cmd cqrs.DeleteUserCommand) error {
	return m.deleteFn(ctx, cmd)
}

func (m *mockUserCommander) UpdateUserRole(ctx context.Context, cmd cqrs.UpdateUserRoleCommand) (*models.User, error) {
	return m.updateRoleFn(ctx, cmd)
}

type mockUserQuerier struct {
	getFn  func(ctx context.Context, q cqrs.GetUserQuery) (*models.UserView, error)
	listFn func(ctx context.Context, q cqrs.ListUsersQuery) ([]models.UserView, error)
}

func (m *mockUserQuerier) GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.UserView, error) {
	return m.getFn(ctx, q)
}

func (m *mockUserQuerier) ListUsers(ctx context.Context, q cqrs.ListUsersQuery) ([]models.UserView, error) {
	return m.listFn(ctx, q)
}

func TestCreateUserHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		createErr  error
		wantStatus int
	}{
		{
			name:       "created",
			body:       CreateUserRequest{Username: "alice", Password: "password123", Role: "USER"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate username",
			body:       CreateUserRequest{Username: "alice", Password: "password123", Role: "USER"},
			createErr:  models.ErrDuplicateUsername,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "short password",
			body:       CreateUserRequest{Username: "alice", Password: "short", Role: "USER"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown role",
			body:       CreateUserRequest{Username: "alice", Password: "password123", Role: "SUPERUSER"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing username",
			body:       CreateUserRequest{Password: "password123", Role: "USER"},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands := &mockUserCommander{
				createFn: func(ctx context.Context, cmd cqrs.CreateUserCommand) (*models.User, error) {
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &models.User{ID: 10, Username: cmd.Username, Role: cmd.Role, CreatedAt: time.Now()}, nil
				},
			}
			h := NewUserHandler(commands, &mockUserQuerier{})
			router := newTestRouter()
			router.POST("/v1/users", asPrincipal(adminPrincipal), h.CreateUser)

			w := performRequest(t, router, http.MethodPost, "/v1/users", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestGetUserHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		getErr     error
		wantStatus int
	}{
		{name: "found", path: "/v1/users/2", wantStatus: http.StatusOK},
		{name: "ownership violation", path: "/v1/users/3", getErr: models.ErrOwnershipViolation, wantStatus: http.StatusForbidden},
		{name: "not found", path: "/v1/users/99", getErr: models.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "garbage id", path: "/v1/users/abc", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queries := &mockUserQuerier{
				getFn: func(ctx context.Context, q cqrs.GetUserQuery) (*models.UserView, error) {
					if tt.getErr != nil {
						return nil, tt.getErr
					}
					return &models.UserView{ID: q.UserID, Username: "john", Role: models.RoleUser}, nil
				},
			}
			h := NewUserHandler(&mockUserCommander{}, queries)
			router := newTestRouter()
			router.GET("/v1/users/:userId", asPrincipal(userPrincipal), h.GetUser)

			w := performRequest(t, router, http.MethodGet, tt.path, nil)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestDeleteUserHandler(t *testing.T) {
	tests := []struct {
		name       string
		deleteErr  error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "not found", deleteErr: models.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "admin protected", deleteErr: models.ErrProtectedRole, wantStatus: http.StatusConflict},
		{name: "non-zero balance", deleteErr: models.ErrNonZeroBalance, wantStatus: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got cqrs.DeleteUserCommand
			commands := &mockUserCommander{
				deleteFn: func(ctx context.Context, cmd cqrs.DeleteUserCommand) error {
					got = cmd
					return tt.deleteErr
				},
			}
			h := NewUserHandler(commands, &mockUserQuerier{})
			router := newTestRouter()
			router.DELETE("/v1/users/:userId", asPrincipal(adminPrincipal), h.DeleteUser)

			w := performRequest(t, router, http.MethodDelete, "/v1/users/5", nil)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if got.UserID != 5 {
				t.Errorf("command user id = %d, want 5", got.UserID)
			}
			if got.Acting != adminPrincipal {
				t.Errorf("acting principal = %+v, want %+v", got.Acting, adminPrincipal)
			}
		})
	}
}

func TestUpdateUserRoleHandler(t *testing.T) {
	commands := &mockUserCommander{
		updateRoleFn: func(ctx context.Context, cmd cqrs.UpdateUserRoleCommand) (*models.User, error) {
			return &models.User{ID: cmd.UserID, Username: "john", Role: cmd.Role}, nil
		},
	}
	h := NewUserHandler(commands, &mockUserQuerier{})
	router := newTestRouter()
	router.PATCH("/v1/users/:userId/role", asPrincipal(adminPrincipal), h.UpdateUserRole)

	w := performRequest(t, router, http.MethodPatch, "/v1/users/2/role", UpdateUserRoleRequest{Role: "ADMIN"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var user models.User
	decodeBody(t, w, &user)
	if user.Role != models.RoleAdmin {
		t.Errorf("role = %s, want ADMIN", user.Role)
	}

	w = performRequest(t, router, http.MethodPatch, "/v1/users/2/role", UpdateUserRoleRequest{Role: "OWNER"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status for invalid role = %d, want 400", w.Code)
	}
}

func TestListUsersHandler(t *testing.T) {
	queries := &mockUserQuerier{
		listFn: func(ctx context.Context, q cqrs.ListUsersQuery) ([]models.UserView, error) {
			return []models.UserView{
				{ID: 1, Username: "admin", Role: models.RoleAdmin},
				{ID: 2, Username: "john", Role: models.RoleUser},
			}, nil
		},
	}
	h := NewUserHandler(&mockUserCommander{}, queries)
	router := newTestRouter()
	router.GET("/v1/users", asPrincipal(adminPrincipal), h.ListUsers)

	w := performRequest(t, router, http.MethodGet, "/v1/users", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp ListUsersResponse
	decodeBody(t, w, &resp)
	if len(resp.Users) != 2 {
		t.Errorf("users = %d, want 2", len(resp.Users))
	}
}
