package model

// Scope is the per-request caller identity resolved by the auth middleware.
type Scope struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
