package auth

import (
	"time"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner

	accessTTL  time.Duration
	refreshTTL time.Duration
}

type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner, cfg Config) *Service {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,

		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Tokens is the common token output for handlers/DTO mapping.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}
