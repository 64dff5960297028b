package services

import (
	"context"

	"github.com/dmitrijs2005/resqsync/internal/client/api"
	"github.com/dmitrijs2005/resqsync/internal/client/models"
	"github.com/dmitrijs2005/resqsync/internal/client/profile"
)

// fakeClient implements api.Client for service unit tests.
type fakeClient struct {
	LoginRet string
	LoginErr error

	SignupErr error

	ProfileRet *models.UserProfile
	ProfileErr error

	ReportsRet []models.Report
	ReportsErr error

	SubmitErr error
	AddErr    error
	DeleteErr error

	VolunteersRet []models.Volunteer
	HospitalsRet  []models.Hospital
	VerifyErr     error

	// for argument checks
	LastLoginEmail    string
	LastLoginPassword string
	LastSignup        models.Signup
	LastHelpRequest   *models.HelpRequest
	LastApplication   *models.VolunteerApplication
	DeleteCalls       int
	LastManagerEmail  string
	Verified          []string
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(_ context.Context, email, password string) (string, error) {
	f.LastLoginEmail, f.LastLoginPassword = email, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Signup(_ context.Context, req models.Signup) error {
	f.LastSignup = req
	return f.SignupErr
}

func (f *fakeClient) Profile(context.Context) (*models.UserProfile, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) Hospitals(context.Context) ([]models.Hospital, error) { return nil, nil }
func (f *fakeClient) News(context.Context) ([]models.NewsItem, error)      { return nil, nil }

func (f *fakeClient) Reports(context.Context) ([]models.Report, error) {
	return f.ReportsRet, f.ReportsErr
}

func (f *fakeClient) SubmitHelpRequest(_ context.Context, req models.HelpRequest) error {
	f.LastHelpRequest = &req
	return f.SubmitErr
}

func (f *fakeClient) AddVolunteer(_ context.Context, app models.VolunteerApplication) error {
	f.LastApplication = &app
	return f.AddErr
}

func (f *fakeClient) DeleteVolunteerRole(context.Context) error {
	f.DeleteCalls++
	return f.DeleteErr
}

func (f *fakeClient) ManagerVolunteers(_ context.Context, managerEmail string) ([]models.Volunteer, error) {
	f.LastManagerEmail = managerEmail
	return f.VolunteersRet, nil
}

func (f *fakeClient) SetVolunteerVerified(_ context.Context, email string, verified bool) error {
	f.record("volunteer", email, verified)
	return f.VerifyErr
}

func (f *fakeClient) ManagerHospitals(_ context.Context, managerEmail string) ([]models.Hospital, error) {
	f.LastManagerEmail = managerEmail
	return f.HospitalsRet, nil
}

func (f *fakeClient) SetHospitalVerified(_ context.Context, email string, verified bool) error {
	f.record("hospital", email, verified)
	return f.VerifyErr
}

func (f *fakeClient) record(kind, email string, verified bool) {
	action := "unverify"
	if verified {
		action = "verify"
	}
	f.Verified = append(f.Verified, kind+" "+action+" "+email)
}

func (f *fakeClient) Subscribe(context.Context, string) (*api.Stream, error) { return nil, nil }

// fakeProfiles implements ProfileLoader.
type fakeProfiles struct {
	res profile.Result
	err error
}

func loaded(p *models.UserProfile) *fakeProfiles { return &fakeProfiles{res: profile.Derive(p)} }

func (f *fakeProfiles) Fetch(context.Context) (profile.Result, error) { return f.res, f.err }

func complete(roles ...models.Role) *models.UserProfile {
	return &models.UserProfile{
		Name:  "Asha",
		Email: "asha@x.org",
		Roles: roles,
		Phone: "+91 555",
		Area:  "North",
		Bio:   "nurse",
	}
}
