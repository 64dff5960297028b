package api

import (
	"context"

	"github.com/dmitrijs2005/resqsync/internal/client/models"
)

// Client is the ResQSync API contract consumed by services and the CLI.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, req models.Signup) error

	Profile(ctx context.Context) (*models.UserProfile, error)

	Hospitals(ctx context.Context) ([]models.Hospital, error)
	News(ctx context.Context) ([]models.NewsItem, error)
	Reports(ctx context.Context) ([]models.Report, error)

	SubmitHelpRequest(ctx context.Context, req models.HelpRequest) error
	AddVolunteer(ctx context.Context, req models.VolunteerApplication) error
	DeleteVolunteerRole(ctx context.Context) error

	ManagerVolunteers(ctx context.Context, managerEmail string) ([]models.Volunteer, error)
	SetVolunteerVerified(ctx context.Context, email string, verified bool) error
	ManagerHospitals(ctx context.Context, managerEmail string) ([]models.Hospital, error)
	SetHospitalVerified(ctx context.Context, email string, verified bool) error

	Subscribe(ctx context.Context, email string) (*Stream, error)
}

// TokenSource yields the bearer token for authenticated calls. It returns an
// error when no usable credential exists.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }
