// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_portfolio/internal/feature/auth/domain/entity"
	"stock_portfolio/internal/feature/auth/transport/http/dto"
	"stock_portfolio/internal/feature/auth/usecase"
	jwtmw "stock_portfolio/internal/platform/jwt"
	"stock_portfolio/internal/shared/apperr"
)

// Registrar creates accounts.
// Following Go convention, the interface is defined by the consumer (handler), not the provider (usecase).
type Registrar interface {
	Register(ctx context.Context, username, password, email, displayName string, role entity.Role) (uint, error)
}

// SessionManager logs accounts in and out.
type SessionManager interface {
	Login(ctx context.Context, username, password string) (*entity.Account, error)
	Logout()
}

// AccountFinder loads an account by id.
type AccountFinder interface {
	FindByID(ctx context.Context, id uint) (*entity.Account, error)
}

// TokenIssuer mints bearer tokens for a logged-in account.
type TokenIssuer interface {
	GenerateToken(userID uint, username, role string) (string, error)
}

// AuthHandler handles signup, login, logout and the current-account lookup.
type AuthHandler struct {
	registrar Registrar
	sessions  SessionManager
	accounts  AccountFinder
	tokens    TokenIssuer
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(registrar Registrar, sessions SessionManager, accounts AccountFinder, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		registrar: registrar,
		sessions:  sessions,
		accounts:  accounts,
		tokens:    tokens,
	}
}

// Signup registers a TRADER account.
// - 400 on a malformed body or a rejected field
// - 409 when username or email is taken
// - 201 with the new id on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.registrar.Register(c.Request.Context(), req.Username, req.Password, req.Email, req.DisplayName, entity.RoleTrader)
	if err != nil {
		switch {
		case apperr.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrDuplicateUsername), errors.Is(err, usecase.ErrDuplicateEmail):
			slog.Warn("signup conflict", "username", req.Username, "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			slog.Error("signup failed", "username", req.Username, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{ID: id})
}

// Login verifies the credentials and returns a bearer token.
// A rejected login never says whether the username or the password was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		slog.Error("login failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
		return
	}

	token, err := h.tokens.GenerateToken(account.ID, account.Username, string(account.Role))
	if err != nil {
		slog.Error("failed to issue token", "account_id", account.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token, Account: dto.NewAccountResponse(account)})
}

// Logout clears the process principal. Tokens stay valid until they expire;
// the client is expected to drop its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// Me returns the account behind the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	account, err := h.accounts.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		slog.Error("failed to load account", "account_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}
