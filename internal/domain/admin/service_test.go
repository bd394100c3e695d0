package admin

import (
	"testing"
	"time"

	"formgate/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, password string) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService("admin", string(hash), jwt.New("test-secret", time.Hour))
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t, "s3cret")

	res, err := svc.Login(&LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "admin", res.Username)
	assert.Equal(t, "admin", res.Role)

	claims, err := jwt.New("test-secret", time.Hour).ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, "s3cret")

	_, err := svc.Login(&LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc := newTestService(t, "s3cret")

	_, err := svc.Login(&LoginRequest{Username: "root", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
