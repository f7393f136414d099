package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
	"github.com/njprem/TravelWisata_BackEnd/internal/localstore"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

// SessionStore owns the registered accounts and the single active session
// of one client profile.
type SessionStore struct {
	client *localstore.Client
	opts   StoreOptions
	admins map[string]struct{}
}

func (s *SessionStore) Register(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	var problems []string
	if name == "" {
		problems = append(problems, "name is required")
	}
	if email == "" {
		problems = append(problems, "email is required")
	}
	if password == "" {
		problems = append(problems, "password is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrAccountValidation, strings.Join(problems, "; "))
	}

	s.client.Lock()
	accounts, err := s.accounts(ctx)
	if err != nil {
		s.client.Unlock()
		return err
	}
	for _, acc := range accounts {
		if acc.Email == email {
			s.client.Unlock()
			return ErrEmailAlreadyUsed
		}
	}
	cred, err := util.NewPasswordCredential(password)
	if err != nil {
		s.client.Unlock()
		return fmt.Errorf("hash password: %w", err)
	}
	account := domain.Account{
		ID:           s.opts.IDs.Next(),
		Name:         name,
		Email:        email,
		PasswordHash: cred.Hash,
		PasswordSalt: cred.Salt,
	}
	accounts = append(accounts, account)
	err = s.client.WriteJSON(ctx, localstore.KeyAccounts, accounts)
	s.client.Unlock()
	if err != nil {
		return err
	}

	publish(ctx, s.opts, s.client.ID(), domain.EventAccountRegistered, map[string]any{
		"account_id": account.ID,
		"email":      account.Email,
	})
	return nil
}

// Login replaces the active session only when the credentials match; a
// failed attempt leaves any existing session in place.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	s.client.Lock()
	accounts, err := s.accounts(ctx)
	if err != nil {
		s.client.Unlock()
		return nil, err
	}
	var matched *domain.Account
	for i := range accounts {
		if accounts[i].Email == email {
			matched = &accounts[i]
			break
		}
	}
	if matched == nil || !(util.PasswordCredential{Hash: matched.PasswordHash, Salt: matched.PasswordSalt}).Matches(password) {
		s.client.Unlock()
		return nil, ErrInvalidCredentials
	}
	session := matched.Session()
	err = s.client.WriteJSON(ctx, localstore.KeySession, session)
	s.client.Unlock()
	if err != nil {
		return nil, err
	}

	publish(ctx, s.opts, s.client.ID(), domain.EventSessionLogin, map[string]any{"user_id": session.ID})
	return &session, nil
}

// Logout is idempotent.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.client.Lock()
	current, err := s.current(ctx)
	if err != nil {
		s.client.Unlock()
		return err
	}
	err = s.client.Remove(ctx, localstore.KeySession)
	s.client.Unlock()
	if err != nil {
		return err
	}

	if current != nil {
		publish(ctx, s.opts, s.client.ID(), domain.EventSessionLogout, map[string]any{"user_id": current.ID})
	}
	return nil
}

// Current returns nil when nobody is logged in.
func (s *SessionStore) Current(ctx context.Context) (*domain.Session, error) {
	return s.current(ctx)
}

func (s *SessionStore) IsAdmin(session *domain.Session) bool {
	if session == nil {
		return false
	}
	_, ok := s.admins[session.Email]
	return ok
}

// Accounts lists the registered accounts without credential material.
func (s *SessionStore) Accounts(ctx context.Context) ([]domain.Session, error) {
	accounts, err := s.accounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, len(accounts))
	for i, acc := range accounts {
		out[i] = acc.Session()
	}
	return out, nil
}

func (s *SessionStore) current(ctx context.Context) (*domain.Session, error) {
	var session domain.Session
	ok, err := s.client.ReadJSON(ctx, localstore.KeySession, &session)
	if err != nil {
		return nil, err
	}
	if !ok || session.ID == "" {
		return nil, nil
	}
	return &session, nil
}

func (s *SessionStore) accounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if _, err := s.client.ReadJSON(ctx, localstore.KeyAccounts, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}
