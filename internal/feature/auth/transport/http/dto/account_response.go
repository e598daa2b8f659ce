package dto

import (
	"time"

	"stock_portfolio/internal/feature/auth/domain/entity"
)

// AccountResponse is the public view of an account. It never carries the hash.
type AccountResponse struct {
	ID                   uint       `json:"id"`
	Username             string     `json:"username"`
	Email                string     `json:"email"`
	DisplayName          string     `json:"display_name"`
	Role                 string     `json:"role"`
	CanManageCatalog     bool       `json:"can_manage_catalog"`
	CanViewAllPortfolios bool       `json:"can_view_all_portfolios"`
	CreatedAt            time.Time  `json:"created_at"`
	LastLoginAt          *time.Time `json:"last_login_at,omitempty"`
}

// NewAccountResponse maps an account to its public view.
func NewAccountResponse(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:                   a.ID,
		Username:             a.Username,
		Email:                a.Email,
		DisplayName:          a.DisplayName,
		Role:                 string(a.Role),
		CanManageCatalog:     a.CanManageCatalog(),
		CanViewAllPortfolios: a.CanViewAllPortfolios(),
		CreatedAt:            a.CreatedAt,
		LastLoginAt:          a.LastLoginAt,
	}
}
