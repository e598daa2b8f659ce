// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// LoginReq represents the request body for the /login endpoint.
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}
