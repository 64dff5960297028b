package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/resqsync/internal/client/api"
	"github.com/dmitrijs2005/resqsync/internal/client/models"
	"github.com/dmitrijs2005/resqsync/internal/client/profile"
	"github.com/dmitrijs2005/resqsync/internal/client/session"
)

// Target selects which manager-owned records a verification applies to.
type Target string

const (
	TargetVolunteers Target = "volunteers"
	TargetHospitals  Target = "hospitals"
)

// ParseTarget accepts the plural or singular form.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "volunteers", "volunteer":
		return TargetVolunteers, nil
	case "hospitals", "hospital":
		return TargetHospitals, nil
	}
	return "", fmt.Errorf("%w: unknown target %q", ErrInvalidInput, s)
}

// VerificationService is the single place where managers list and
// verify/unverify volunteers and hospitals.
type VerificationService interface {
	Volunteers(ctx context.Context) ([]models.Volunteer, error)
	Hospitals(ctx context.Context) ([]models.Hospital, error)
	SetVerified(ctx context.Context, target Target, email string, verified bool) error
}

type verificationService struct {
	client   api.Client
	profiles ProfileLoader
}

func NewVerificationService(client api.Client, profiles ProfileLoader) VerificationService {
	return &verificationService{client: client, profiles: profiles}
}

// manager returns the signed-in manager's email.
func (s *verificationService) manager(ctx context.Context) (string, error) {
	res, err := s.profiles.Fetch(ctx)
	if err != nil {
		return "", err
	}
	if res.State != profile.StateLoaded {
		return "", session.ErrNotAuthenticated
	}
	if !res.HasRole(models.RoleManager) {
		return "", ErrNotManager
	}
	return res.Profile.Email, nil
}

func (s *verificationService) Volunteers(ctx context.Context) ([]models.Volunteer, error) {
	email, err := s.manager(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.ManagerVolunteers(ctx, email)
}

func (s *verificationService) Hospitals(ctx context.Context) ([]models.Hospital, error) {
	email, err := s.manager(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.ManagerHospitals(ctx, email)
}

func (s *verificationService) SetVerified(ctx context.Context, target Target, email string, verified bool) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := s.manager(ctx); err != nil {
		return err
	}

	var err error
	switch target {
	case TargetVolunteers:
		err = s.client.SetVolunteerVerified(ctx, email, verified)
	case TargetHospitals:
		err = s.client.SetHospitalVerified(ctx, email, verified)
	default:
		return fmt.Errorf("%w: unknown target %q", ErrInvalidInput, target)
	}
	if err != nil {
		action := "unverify"
		if verified {
			action = "verify"
		}
		return fmt.Errorf("%s %s %s: %w", action, target, email, err)
	}
	return nil
}
