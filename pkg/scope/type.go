package scope

// Payload carries the verified claims of a request token.
type Payload struct {
	UserID    string
	Username  string
	Role      string
	Subject   string
	Issuer    string
	Id        string
	IssuedAt  int64
	ExpiresAt int64
}

// Manager verifies request tokens into payloads.
type Manager interface {
	Verify(token string) (Payload, error)
}
