package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

type ClientProfile struct {
	ClientID  string    `json:"client_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ClientService issues the tokens that stand in for a browser's storage
// origin. Holding a token is holding that client's local data.
type ClientService struct {
	jwt *util.JWTManager
}

func NewClientService(jwt *util.JWTManager) *ClientService {
	return &ClientService{jwt: jwt}
}

func (s *ClientService) Issue() (*ClientProfile, error) {
	id := uuid.New()
	token, expiresAt, err := s.jwt.Generate(id)
	if err != nil {
		return nil, err
	}
	return &ClientProfile{ClientID: id.String(), Token: token, ExpiresAt: expiresAt}, nil
}

func (s *ClientService) Resolve(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidClientToken
	}
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return "", ErrInvalidClientToken
	}
	return claims.ClientID.String(), nil
}
