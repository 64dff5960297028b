package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/resqsync/internal/client/models"
	"github.com/dmitrijs2005/resqsync/internal/common"
)

const (
	pathLogin               = "/api/auth/login"
	pathSignup              = "/api/auth/signup"
	pathProfile             = "/api/user/profile"
	pathHospitals           = "/api/hospitals/data"
	pathNews                = "/api/news/pandemic"
	pathReports             = "/api/reports"
	pathHelpSubmit          = "/api/help-requests/submit"
	pathVolunteerAdd        = "/api/volunteers/add"
	pathVolunteerRoleDelete = "/api/volunteers/deletevolunteerrole"
	pathManagerVolunteers   = "/api/manager/volunteers"
	pathManagerHospitals    = "/api/manager/hospitals"
	pathSubscribe           = "/api/notifications/subscribe"
)

func emailQuery(email string) url.Values {
	return url.Values{"email": []string{email}}
}

// Login exchanges credentials for a bearer token, read from the
// Authorization response header.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	resp, cancel, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   pathLogin,
		body:   models.Credentials{Email: email, Password: password},
	})
	if err != nil {
		return "", err
	}
	defer cancel()
	defer resp.Body.Close()

	tok := strings.TrimSpace(resp.Header.Get(common.AuthorizationHeaderName))
	tok = strings.TrimSpace(strings.TrimPrefix(tok, common.BearerPrefix))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

func (c *HTTPClient) Signup(ctx context.Context, req models.Signup) error {
	return c.call(ctx, request{method: http.MethodPost, path: pathSignup, body: req}, nil)
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := c.call(ctx, request{method: http.MethodGet, path: pathProfile, authed: true}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Hospitals(ctx context.Context) ([]models.Hospital, error) {
	var out []models.Hospital
	if err := c.call(ctx, request{method: http.MethodGet, path: pathHospitals}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) News(ctx context.Context) ([]models.NewsItem, error) {
	var out []models.NewsItem
	if err := c.call(ctx, request{method: http.MethodGet, path: pathNews}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Reports(ctx context.Context) ([]models.Report, error) {
	var out []models.Report
	if err := c.call(ctx, request{method: http.MethodGet, path: pathReports, authed: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SubmitHelpRequest(ctx context.Context, req models.HelpRequest) error {
	return c.call(ctx, request{method: http.MethodPost, path: pathHelpSubmit, body: req, authed: true}, nil)
}

func (c *HTTPClient) AddVolunteer(ctx context.Context, req models.VolunteerApplication) error {
	return c.call(ctx, request{method: http.MethodPost, path: pathVolunteerAdd, body: req, authed: true}, nil)
}

func (c *HTTPClient) DeleteVolunteerRole(ctx context.Context) error {
	return c.call(ctx, request{method: http.MethodDelete, path: pathVolunteerRoleDelete, authed: true}, nil)
}

func (c *HTTPClient) ManagerVolunteers(ctx context.Context, managerEmail string) ([]models.Volunteer, error) {
	var out []models.Volunteer
	r := request{method: http.MethodGet, path: pathManagerVolunteers, query: emailQuery(managerEmail), authed: true}
	if err := c.call(ctx, r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SetVolunteerVerified(ctx context.Context, email string, verified bool) error {
	return c.setVerified(ctx, pathManagerVolunteers, email, verified)
}

func (c *HTTPClient) ManagerHospitals(ctx context.Context, managerEmail string) ([]models.Hospital, error) {
	var out []models.Hospital
	r := request{method: http.MethodGet, path: pathManagerHospitals, query: emailQuery(managerEmail), authed: true}
	if err := c.call(ctx, r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SetHospitalVerified(ctx context.Context, email string, verified bool) error {
	return c.setVerified(ctx, pathManagerHospitals, email, verified)
}

func (c *HTTPClient) setVerified(ctx context.Context, base, email string, verified bool) error {
	action := "/unverify"
	if verified {
		action = "/verify"
	}
	r := request{method: http.MethodPost, path: base + action, query: emailQuery(email), authed: true}
	return c.call(ctx, r, nil)
}
