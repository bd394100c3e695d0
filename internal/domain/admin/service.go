package admin

import (
	"formgate/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

const roleAdmin = "admin"

// Service authenticates the single configured admin account.
type Service struct {
	username     string
	passwordHash string
	jwtService   *jwt.Service
}

func NewService(username, passwordHash string, jwtService *jwt.Service) *Service {
	return &Service{
		username:     username,
		passwordHash: passwordHash,
		jwtService:   jwtService,
	}
}

// Login checks the credentials against the configured account and
// issues a signed token. The same error covers unknown username and
// wrong password so responses don't leak which one failed.
func (s *Service) Login(req *LoginRequest) (*LoginResponse, error) {
	if req.Username != s.username {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(s.username, roleAdmin)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:    token,
		Username: s.username,
		Role:     roleAdmin,
	}, nil
}
