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

// ProfileLoader is satisfied by *profile.Fetcher.
type ProfileLoader interface {
	Fetch(ctx context.Context) (profile.Result, error)
}

// RequestService submits help requests and volunteer applications. Both are
// blocked until the profile is complete, and the two roles exclude each
// other. The server has the final say.
type RequestService interface {
	SubmitHelpRequest(ctx context.Context, req models.HelpRequest) error
	JoinVolunteers(ctx context.Context, app models.VolunteerApplication) error
	LeaveVolunteers(ctx context.Context) error
}

type requestService struct {
	client   api.Client
	profiles ProfileLoader
}

func NewRequestService(client api.Client, profiles ProfileLoader) RequestService {
	return &requestService{client: client, profiles: profiles}
}

// loadProfile fetches a fresh profile and checks completeness.
func (s *requestService) loadProfile(ctx context.Context) (profile.Result, error) {
	res, err := s.profiles.Fetch(ctx)
	if err != nil {
		return res, err
	}
	if res.State != profile.StateLoaded {
		return res, session.ErrNotAuthenticated
	}
	return res, nil
}

func incomplete(missing []string) error {
	return fmt.Errorf("%w: missing %s", ErrProfileIncomplete, strings.Join(missing, ", "))
}

func (s *requestService) SubmitHelpRequest(ctx context.Context, req models.HelpRequest) error {
	if strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: category and description are required", ErrInvalidInput)
	}

	res, err := s.loadProfile(ctx)
	if err != nil {
		return err
	}
	if !res.CanRequestHelp {
		return ErrAlreadyVolunteer
	}
	if len(res.MissingFields) > 0 {
		return incomplete(res.MissingFields)
	}

	if req.Area == "" {
		req.Area = res.Profile.Area
	}
	if req.Phone == "" {
		req.Phone = res.Profile.Phone
	}
	if err := s.client.SubmitHelpRequest(ctx, req); err != nil {
		return fmt.Errorf("submit help request: %w", err)
	}
	return nil
}

func (s *requestService) JoinVolunteers(ctx context.Context, app models.VolunteerApplication) error {
	if strings.TrimSpace(app.Skills) == "" {
		return fmt.Errorf("%w: skills are required", ErrInvalidInput)
	}

	res, err := s.loadProfile(ctx)
	if err != nil {
		return err
	}
	if !res.CanVolunteer {
		return ErrAlreadyHelpRequester
	}
	if len(res.MissingFields) > 0 {
		return incomplete(res.MissingFields)
	}

	if app.Area == "" {
		app.Area = res.Profile.Area
	}
	if err := s.client.AddVolunteer(ctx, app); err != nil {
		return fmt.Errorf("volunteer application: %w", err)
	}
	return nil
}

func (s *requestService) LeaveVolunteers(ctx context.Context) error {
	if err := s.client.DeleteVolunteerRole(ctx); err != nil {
		return fmt.Errorf("leave volunteers: %w", err)
	}
	return nil
}
