package dto

// SignupReq represents the request body for the /signup endpoint.
// Length rules are enforced by the credential store so its messages reach the client.
type SignupReq struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required"`
}

// SignupResponse carries the id of the new account.
type SignupResponse struct {
	ID uint `json:"id"`
}
