package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-course-catalog/internal/authz"
	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/service"
	"github.com/MKhiriev/go-course-catalog/internal/session"
	"github.com/MKhiriev/go-course-catalog/internal/utils"
	"github.com/MKhiriev/go-course-catalog/models"
	"github.com/stretchr/testify/require"
)

// ---- service mocks ----

type authServiceMock struct {
	LoadPrincipalFn func(ctx context.Context, username string) (models.Principal, error)
	AuthenticateFn  func(ctx context.Context, username, password string) (models.Principal, error)
}

func (m *authServiceMock) LoadPrincipal(ctx context.Context, username string) (models.Principal, error) {
	return m.LoadPrincipalFn(ctx, username)
}

func (m *authServiceMock) Authenticate(ctx context.Context, username, password string) (models.Principal, error) {
	return m.AuthenticateFn(ctx, username, password)
}

type registrationServiceMock struct {
	RegisterFn func(ctx context.Context, payload models.RegistrationPayload) (models.User, error)
}

func (m *registrationServiceMock) Register(ctx context.Context, payload models.RegistrationPayload) (models.User, error) {
	return m.RegisterFn(ctx, payload)
}

type userServiceMock struct {
	ListFn          func(ctx context.Context) ([]models.User, error)
	GetFn           func(ctx context.Context, id int64) (models.User, error)
	UpdateFn        func(ctx context.Context, id int64, payload models.UserPayload) (models.User, error)
	DeleteFn        func(ctx context.Context, id int64) error
	CreateAdminFn   func(ctx context.Context, payload models.RegistrationPayload) (models.User, error)
	ResetPasswordFn func(ctx context.Context, username, password string) error
}

func (m *userServiceMock) List(ctx context.Context) ([]models.User, error) { return m.ListFn(ctx) }

func (m *userServiceMock) Get(ctx context.Context, id int64) (models.User, error) {
	return m.GetFn(ctx, id)
}

func (m *userServiceMock) Update(ctx context.Context, id int64, payload models.UserPayload) (models.User, error) {
	return m.UpdateFn(ctx, id, payload)
}

func (m *userServiceMock) Delete(ctx context.Context, id int64) error { return m.DeleteFn(ctx, id) }

func (m *userServiceMock) CreateAdmin(ctx context.Context, payload models.RegistrationPayload) (models.User, error) {
	return m.CreateAdminFn(ctx, payload)
}

func (m *userServiceMock) ResetPassword(ctx context.Context, username, password string) error {
	return m.ResetPasswordFn(ctx, username, password)
}

type courseServiceMock struct {
	ListFn   func(ctx context.Context) ([]models.Course, error)
	GetFn    func(ctx context.Context, id int64) (models.Course, error)
	CountFn  func(ctx context.Context) (int64, error)
	CreateFn func(ctx context.Context, payload models.CoursePayload, actor string) (models.Course, error)
	UpdateFn func(ctx context.Context, id int64, payload models.CoursePayload, actor string) (models.Course, error)
	DeleteFn func(ctx context.Context, id int64) (models.Course, error)
	EnrollFn func(ctx context.Context, id int64, principal models.Principal) (models.Course, error)
}

func (m *courseServiceMock) List(ctx context.Context) ([]models.Course, error) { return m.ListFn(ctx) }

func (m *courseServiceMock) Get(ctx context.Context, id int64) (models.Course, error) {
	return m.GetFn(ctx, id)
}

func (m *courseServiceMock) Count(ctx context.Context) (int64, error) { return m.CountFn(ctx) }

func (m *courseServiceMock) Create(ctx context.Context, payload models.CoursePayload, actor string) (models.Course, error) {
	return m.CreateFn(ctx, payload, actor)
}

func (m *courseServiceMock) Update(ctx context.Context, id int64, payload models.CoursePayload, actor string) (models.Course, error) {
	return m.UpdateFn(ctx, id, payload, actor)
}

func (m *courseServiceMock) Delete(ctx context.Context, id int64) (models.Course, error) {
	return m.DeleteFn(ctx, id)
}

func (m *courseServiceMock) Enroll(ctx context.Context, id int64, principal models.Principal) (models.Course, error) {
	return m.EnrollFn(ctx, id, principal)
}

type appInfoServiceMock struct {
	info models.AppInfo
}

func (m *appInfoServiceMock) Info(_ context.Context) models.AppInfo {
	return m.info
}

// ---- fixtures ----

const testSignKey = "test-sign-key-0123456789abcdef"

var (
	studentPrincipal = models.Principal{UserID: 1, Username: "king", Role: models.RoleStudent, Enabled: true}
	adminPrincipal   = models.Principal{UserID: 2, Username: "user", Role: models.RoleAdmin, Enabled: true}
)

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			PostLoginRedirect: "/courses",
			Version:           "1.0.0-test",
		},
		Security: config.Security{
			SessionSignKey:         testSignKey,
			SessionIssuer:          "go-course-catalog",
			SessionIdleTimeout:     30 * time.Minute,
			SessionAbsoluteTimeout: 12 * time.Hour,
		},
	}
}

func newTestHandler(t *testing.T, services *service.Services, csrfExempt ...string) *Handler {
	t.Helper()

	policy, err := authz.NewCatalogPolicy(csrfExempt)
	require.NoError(t, err)

	cfg := testConfig()
	h, err := NewHandler(services, session.NewMemoryStore(cfg.Security, nil), policy, cfg, logger.Nop())
	require.NoError(t, err)
	return h
}

// testClient is a browser bound to one session.
type testClient struct {
	cookie  *http.Cookie
	session *session.Session
}

// newClient opens a session, authenticated as principal when it is not nil.
func newClient(t *testing.T, h *Handler, principal *models.Principal) *testClient {
	t.Helper()

	s, err := h.sessions.Create()
	require.NoError(t, err)
	if principal != nil {
		require.NoError(t, h.sessions.Authenticate(s, *principal))
	}

	token, err := utils.GenerateSessionToken(h.security.SessionIssuer, s.ID(), s.CreatedAt(), time.Hour, h.security.SessionSignKey)
	require.NoError(t, err)

	return &testClient{
		cookie:  &http.Cookie{Name: sessionCookieName, Value: token},
		session: s,
	}
}

func (c *testClient) csrf() string {
	return c.session.CSRFToken()
}

// form returns values with the client's CSRF token added.
func (c *testClient) form(kv ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Add(kv[i], kv[i+1])
	}
	v.Set(csrfFormField, c.csrf())
	return v
}

// do sends a request through the full router. c may be nil for a client
// without cookies; form may be nil for requests without a body.
func do(router http.Handler, c *testClient, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c != nil {
		req.AddCookie(c.cookie)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// sessionCookieFrom returns the session cookie set by the response, if any.
func sessionCookieFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}
