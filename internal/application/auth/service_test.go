package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thorryuk/Sekai---Backend/internal/domain"
)

type fakeUserRepo struct {
	users map[string]domain.User
	err   error
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

type fakeHasher struct{}

func (fakeHasher) Compare(hash string, password string) error {
	if hash == "hashed:"+password {
		return nil
	}
	return errors.New("mismatch")
}

type fakeSigner struct {
	signErr error
}

func (f *fakeSigner) Sign(kind TokenKind, userID string, role string, _ time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return string(kind) + ":" + userID + ":" + role, nil
}

func (f *fakeSigner) Verify(token string, kind TokenKind) (TokenClaims, error) {
	return TokenClaims{}, domain.ErrTokenInvalid()
}

func newTestService(signErr error) *Service {
	repo := &fakeUserRepo{users: map[string]domain.User{
		"test": {ID: "1", Username: "test", PasswordHash: "hashed:coba2128", Role: "admin"},
	}}
	return NewService(repo, fakeHasher{}, &fakeSigner{signErr: signErr}, Config{})
}

func TestService_Login(t *testing.T) {
	t.Run("success issues both tokens", func(t *testing.T) {
		svc := newTestService(nil)

		toks, err := svc.Login(context.Background(), "test", "coba2128")
		require.NoError(t, err)
		assert.Equal(t, "access:1:admin", toks.AccessToken)
		assert.Equal(t, "refresh:1:admin", toks.RefreshToken)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		svc := newTestService(nil)

		_, errUnknown := svc.Login(context.Background(), "ghost", "coba2128")
		_, errWrongPw := svc.Login(context.Background(), "test", "wrong")

		require.Error(t, errUnknown)
		require.Error(t, errWrongPw)
		assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
		assert.True(t, domain.Is(errUnknown, "invalid_credentials"))
	})

	t.Run("empty fields rejected as invalid credentials", func(t *testing.T) {
		svc := newTestService(nil)

		_, err := svc.Login(context.Background(), "", "pw")
		assert.True(t, domain.Is(err, "invalid_credentials"))

		_, err = svc.Login(context.Background(), "test", "")
		assert.True(t, domain.Is(err, "invalid_credentials"))
	})

	t.Run("username whitespace trimmed", func(t *testing.T) {
		svc := newTestService(nil)

		toks, err := svc.Login(context.Background(), "  test  ", "coba2128")
		require.NoError(t, err)
		assert.NotEmpty(t, toks.AccessToken)
	})

	t.Run("sign failure surfaces", func(t *testing.T) {
		svc := newTestService(domain.ErrTokenSignFailed(errors.New("bad key")))

		_, err := svc.Login(context.Background(), "test", "coba2128")
		assert.True(t, domain.Is(err, "token_sign_failed"))
	})

	t.Run("store failure is not masked as bad credentials", func(t *testing.T) {
		repo := &fakeUserRepo{err: domain.ErrUpstream("connection to database failed", nil)}
		svc := NewService(repo, fakeHasher{}, &fakeSigner{}, Config{})

		_, err := svc.Login(context.Background(), "test", "coba2128")
		require.Error(t, err)
		assert.True(t, domain.Is(err, "upstream_error"))

		var de *domain.Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.KindUpstream, de.Kind)
		assert.Equal(t, "connection to database failed", de.Message)
	})
}

func TestService_RefreshAccess(t *testing.T) {
	t.Run("issues new access token for identity", func(t *testing.T) {
		svc := newTestService(nil)

		tok, err := svc.RefreshAccess(context.Background(), domain.Identity{UserID: "1", Role: "admin"})
		require.NoError(t, err)
		assert.Equal(t, "access:1:admin", tok)
	})

	t.Run("sign failure surfaces", func(t *testing.T) {
		svc := newTestService(domain.ErrTokenSignFailed(errors.New("bad key")))

		_, err := svc.RefreshAccess(context.Background(), domain.Identity{UserID: "1", Role: "admin"})
		assert.True(t, domain.Is(err, "token_sign_failed"))
	})
}
