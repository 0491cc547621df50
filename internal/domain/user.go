package domain

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
}

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	UserID string
	Role   string
}
