// Package services contains application services for the ResQSync client.
// Each service is a thin layer over api.Client that applies the client-side
// rules (credential handling, profile and role gates) before calling out.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/resqsync/internal/client/api"
	"github.com/dmitrijs2005/resqsync/internal/client/models"
	"github.com/dmitrijs2005/resqsync/internal/client/session"
	"github.com/mcnijman/go-emailaddress"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange email/password for a token and persist it with its expiry.
//   - Signup: create an account on the server. Does not sign in.
//   - Logout: remove the stored credential.
//   - Purge: wipe the whole local store and report how many entries it held.
type AuthService interface {
	Login(ctx context.Context, email, password string) (session.Credential, error)
	Signup(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context) error
	Purge(ctx context.Context) (int, error)
}

type authService struct {
	client  api.Client
	session *session.Session
}

func NewAuthService(client api.Client, s *session.Session) AuthService {
	return &authService{client: client, session: s}
}

func (a *authService) Login(ctx context.Context, email, password string) (session.Credential, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return session.Credential{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	tok, err := a.client.Login(ctx, email, password)
	if err != nil {
		return session.Credential{}, fmt.Errorf("login error: %w", err)
	}

	cred, err := a.session.Save(ctx, tok)
	if err != nil {
		return session.Credential{}, fmt.Errorf("credential saving error: %w", err)
	}
	return cred, nil
}

func (a *authService) Signup(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if _, err := emailaddress.Parse(email); err != nil {
		return fmt.Errorf("%w: email %q", ErrInvalidInput, email)
	}

	return a.client.Signup(ctx, models.Signup{Username: username, Email: email, Password: password})
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) Purge(ctx context.Context) (int, error) {
	return a.session.Reset(ctx)
}
