package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/resqsync/internal/client/api"
	"github.com/dmitrijs2005/resqsync/internal/client/config"
	"github.com/dmitrijs2005/resqsync/internal/client/metrics"
	"github.com/dmitrijs2005/resqsync/internal/client/models"
	"github.com/dmitrijs2005/resqsync/internal/client/repositories/kv"
	"github.com/dmitrijs2005/resqsync/internal/client/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeClient implements api.Client for command tests.
type fakeClient struct {
	LoginRet string
	LoginErr error

	ProfileRet *models.UserProfile
	ProfileErr error

	HospitalsRet  []models.Hospital
	HospitalsErr  error
	NewsRet       []models.NewsItem
	ReportsRet    []models.Report
	VolunteersRet []models.Volunteer

	SubmitErr error

	// stream returned by Subscribe
	Stream       io.ReadCloser
	SubscribeErr error

	LastSignup      models.Signup
	LastHelpRequest *models.HelpRequest
	LastApplication *models.VolunteerApplication
	DeleteCalls     int
	Verified        []string
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(context.Context, string, string) (string, error) {
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Signup(_ context.Context, req models.Signup) error {
	f.LastSignup = req
	return nil
}

func (f *fakeClient) Profile(context.Context) (*models.UserProfile, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) Hospitals(context.Context) ([]models.Hospital, error) {
	return f.HospitalsRet, f.HospitalsErr
}

func (f *fakeClient) News(context.Context) ([]models.NewsItem, error)  { return f.NewsRet, nil }
func (f *fakeClient) Reports(context.Context) ([]models.Report, error) { return f.ReportsRet, nil }

func (f *fakeClient) SubmitHelpRequest(_ context.Context, req models.HelpRequest) error {
	f.LastHelpRequest = &req
	return f.SubmitErr
}

func (f *fakeClient) AddVolunteer(_ context.Context, app models.VolunteerApplication) error {
	f.LastApplication = &app
	return nil
}

func (f *fakeClient) DeleteVolunteerRole(context.Context) error {
	f.DeleteCalls++
	return nil
}

func (f *fakeClient) ManagerVolunteers(context.Context, string) ([]models.Volunteer, error) {
	return f.VolunteersRet, nil
}

func (f *fakeClient) SetVolunteerVerified(_ context.Context, email string, verified bool) error {
	f.Verified = append(f.Verified, "volunteer "+email+" "+yesNo(verified))
	return nil
}

func (f *fakeClient) ManagerHospitals(context.Context, string) ([]models.Hospital, error) {
	return f.HospitalsRet, nil
}

func (f *fakeClient) SetHospitalVerified(_ context.Context, email string, verified bool) error {
	f.Verified = append(f.Verified, "hospital "+email+" "+yesNo(verified))
	return nil
}

func (f *fakeClient) Subscribe(context.Context, string) (*api.Stream, error) {
	if f.SubscribeErr != nil {
		return nil, f.SubscribeErr
	}
	return api.NewStream(f.Stream, nil), nil
}

type testApp struct {
	*App
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "asha@x.org",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return tok
}

// newTestApp builds an App over fc with an in-memory session. input feeds
// interactive prompts.
func newTestApp(t *testing.T, fc *fakeClient, signedIn bool, input string) *testApp {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = t.TempDir()

	sess := session.New(kv.NewMemoryRepository())
	if signedIn {
		_, err := sess.Save(context.Background(), validToken(t))
		require.NoError(t, err)
	}

	var out, errOut bytes.Buffer
	a := newApp(cfg, nil, sess, fc, metrics.New(), strings.NewReader(input), &out, &errOut)
	return &testApp{App: a, out: &out, errOut: &errOut}
}

func completeProfile(roles ...models.Role) *models.UserProfile {
	return &models.UserProfile{
		Name:  "Asha",
		Email: "asha@x.org",
		Roles: roles,
		Phone: "+91 555",
		Area:  "North",
		Bio:   "nurse",
	}
}

// stubPassword replaces the terminal prompt for the test's duration.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := getPassword
	getPassword = func(string, io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = old })
}
