package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tinymarket/market/internal/api/middleware"
	"github.com/tinymarket/market/internal/api/view"
	"github.com/tinymarket/market/internal/core/domain"
	"github.com/tinymarket/market/internal/core/ports"
	"github.com/tinymarket/market/internal/session"
)

// --- stubs ---

type stubAuthService struct {
	registerErr error
	loginUser   *domain.User
	loginErr    error
	gotUsername string
}

func (s *stubAuthService) Register(_ context.Context, username, _ string) (*domain.User, error) {
	s.gotUsername = username
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{ID: "u-1", Username: username}, nil
}

func (s *stubAuthService) Login(_ context.Context, username, _ string) (*domain.User, error) {
	s.gotUsername = username
	return s.loginUser, s.loginErr
}

type stubProductService struct {
	products []*domain.Product
	created  ports.CreateProductInput
	query    string
}

func (s *stubProductService) CreateProduct(_ context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	s.created = in
	return &domain.Product{ID: "p-1", Title: in.Title, Price: in.Price, SellerID: in.SellerID}, nil
}

func (s *stubProductService) ListProducts(context.Context) ([]*domain.Product, error) {
	return s.products, nil
}

func (s *stubProductService) SearchProducts(_ context.Context, q string) ([]*domain.Product, error) {
	s.query = q
	return s.products, nil
}

type stubProfileService struct {
	user   *domain.User
	err    error
	bio    string
	userID string
}

func (s *stubProfileService) GetProfile(_ context.Context, id string) (*domain.User, error) {
	s.userID = id
	return s.user, s.err
}

func (s *stubProfileService) UpdateBio(_ context.Context, id, bio string) error {
	s.userID, s.bio = id, bio
	return s.err
}

type stubReportService struct {
	got ports.SubmitReportInput
}

func (s *stubReportService) SubmitReport(_ context.Context, in ports.SubmitReportInput) (*domain.Report, error) {
	s.got = in
	return &domain.Report{ID: "r-1", ReporterID: in.ReporterID, TargetID: in.TargetID, Reason: in.Reason}, nil
}

// --- helpers ---

func newEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = view.MustNew()
	e.Validator = NewValidator()
	return e
}

func newContext(e *echo.Echo, method, target string, form url.Values, s *session.Session) (echo.Context, *httptest.ResponseRecorder) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.SessionContextKey, s)
	return c, rec
}

func loggedIn(id string) *session.Session {
	s := &session.Session{}
	s.SetUser(id)
	return s
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected Location %q, got %q", location, got)
	}
}

func assertFlashes(t *testing.T, s *session.Session, want ...string) {
	t.Helper()
	got := s.PopFlashes()
	if len(got) != len(want) {
		t.Fatalf("expected flashes %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected flashes %v, got %v", want, got)
		}
	}
}

// --- auth ---

func TestRegister_Success(t *testing.T) {
	e := newEcho()
	svc := &stubAuthService{}
	s := &session.Session{}
	c, rec := newContext(e, http.MethodPost, "/register", url.Values{"username": {"alice"}, "password": {"pw1"}}, s)

	if err := NewAuthHandler(svc).Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	assertRedirect(t, rec, "/login")
	assertFlashes(t, s, msgRegistered)
	if svc.gotUsername != "alice" {
		t.Fatalf("expected username alice, got %q", svc.gotUsername)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	e := newEcho()
	s := &session.Session{}
	c, rec := newContext(e, http.MethodPost, "/register", url.Values{"username": {"alice"}, "password": {"pw1"}}, s)

	err := NewAuthHandler(&stubAuthService{registerErr: domain.ErrUserExists}).Register(c)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	assertRedirect(t, rec, "/register")
	assertFlashes(t, s, msgUsernameTaken)
}

func TestRegister_MissingFields(t *testing.T) {
	e := newEcho()
	svc := &stubAuthService{}
	s := &session.Session{}
	c, rec := newContext(e, http.MethodPost, "/register", url.Values{"username": {"alice"}}, s)

	if err := NewAuthHandler(svc).Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	assertRedirect(t, rec, "/register")
	assertFlashes(t, s, msgCredentialsMissing)
	if svc.gotUsername != "" {
		t.Fatalf("service should not be called")
	}
}

func TestRegister_PasswordTooLong(t *testing.T) {
	e := newEcho()
	s := &session.Session{}
	c, rec := newContext(e, http.MethodPost, "/register", url.Values{"username": {"alice"}, "password": {strings.Repeat("a", 73)}}, s)

	err := NewAuthHandler(&stubAuthService{registerErr: domain.ErrPasswordTooLong}).Register(c)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	assertRedirect(t, rec, "/register")
	assertFlashes(t, s, msgPasswordTooLong)
}

func TestLogin_Success(t *testing.T) {
	e := newEcho()
	s := &session.Session{}
	svc := &stubAuthService{loginUser: &domain.User{ID: "u-9", Username: "alice"}}
	c, rec := newContext(e, http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"pw1"}}, s)

	if err := NewAuthHandler(svc).Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	assertRedirect(t, rec, "/products")
	if s.UserID() != "u-9" {
		t.Fatalf("expected session user u-9, got %q", s.UserID())
	}
	assertFlashes(t, s, msgLoginOK)
}

func TestLogin_FailureRendersForm(t *testing.T) {
	for _, loginErr := range []error{domain.ErrInvalidCredentials, domain.ErrTooManyAttempts} {
		t.Run(loginErr.Error(), func(t *testing.T) {
			e := newEcho()
			s := &session.Session{}
			c, rec := newContext(e, http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"bad"}}, s)

			if err := NewAuthHandler(&stubAuthService{loginErr: loginErr}).Login(c); err != nil {
				t.Fatalf("Login: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), msgLoginFailed) {
				t.Fatalf("expected failure message in body")
			}
			if s.IsAuthenticated() {
				t.Fatalf("session must stay anonymous")
			}
		})
	}
}

func TestLogin_UnexpectedErrorPropagates(t *testing.T) {
	e := newEcho()
	boom := errors.New("db down")
	c, _ := newContext(e, http.MethodPost, "/login", url.Values{"username": {"a"}, "password": {"b"}}, &session.Session{})

	if err := NewAuthHandler(&stubAuthService{loginErr: boom}).Login(c); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}

func TestLogout(t *testing.T) {
	e := newEcho()
	s := loggedIn("u-1")
	c, rec := newContext(e, http.MethodGet, "/logout", nil, s)

	if err := NewAuthHandler(&stubAuthService{}).Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	assertRedirect(t, rec, "/")
	if s.IsAuthenticated() {
		t.Fatalf("expected anonymous session after logout")
	}
	assertFlashes(t, s, msgLoggedOut)
}

// --- products ---

func TestProductCreate_UsesSessionSeller(t *testing.T) {
	e := newEcho()
	svc := &stubProductService{}
	s := loggedIn("u-1")
	form := url.Values{"title": {"Lamp"}, "description": {"Brass"}, "price": {"twelve"}}
	c, rec := newContext(e, http.MethodPost, "/product/new", form, s)

	if err := NewProductHandler(svc).Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	assertRedirect(t, rec, "/products")
	if svc.created.SellerID != "u-1" || svc.created.Price != "twelve" {
		t.Fatalf("unexpected input: %+v", svc.created)
	}
}

func TestProductList_RendersProducts(t *testing.T) {
	e := newEcho()
	svc := &stubProductService{products: []*domain.Product{{ID: "p-1", Title: "Lamp", Price: "10"}}}
	c, rec := newContext(e, http.MethodGet, "/products", nil, loggedIn("u-1"))

	if err := NewProductHandler(svc).List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Lamp") {
		t.Fatalf("expected product in page, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestProductSearch_EscapesQuery(t *testing.T) {
	e := newEcho()
	svc := &stubProductService{products: []*domain.Product{}}
	c, rec := newContext(e, http.MethodGet, "/search?query=%3Cb%3Ex", nil, &session.Session{})

	if err := NewProductHandler(svc).Search(c); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if svc.query != "<b>x" {
		t.Fatalf("expected raw query passed through, got %q", svc.query)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<b>x") || !strings.Contains(body, "&lt;b&gt;x") {
		t.Fatalf("query not escaped in page")
	}
}

// --- profile ---

func TestProfileShow(t *testing.T) {
	e := newEcho()
	bio := "hello there"
	svc := &stubProfileService{user: &domain.User{ID: "u-1", Username: "alice", Bio: &bio}}
	c, rec := newContext(e, http.MethodGet, "/profile", nil, loggedIn("u-1"))

	if err := NewProfileHandler(svc).Show(c); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if svc.userID != "u-1" {
		t.Fatalf("expected lookup for u-1, got %q", svc.userID)
	}
	if !strings.Contains(rec.Body.String(), "hello there") {
		t.Fatalf("bio missing from page")
	}
}

func TestProfileShow_StaleSession(t *testing.T) {
	e := newEcho()
	s := loggedIn("gone")
	c, rec := newContext(e, http.MethodGet, "/profile", nil, s)

	if err := NewProfileHandler(&stubProfileService{err: domain.ErrUserNotFound}).Show(c); err != nil {
		t.Fatalf("Show: %v", err)
	}
	assertRedirect(t, rec, "/login")
	if s.IsAuthenticated() {
		t.Fatalf("stale identity should be cleared")
	}
}

func TestProfileUpdate(t *testing.T) {
	e := newEcho()
	svc := &stubProfileService{}
	s := loggedIn("u-1")
	c, rec := newContext(e, http.MethodPost, "/profile", url.Values{"bio": {"new bio"}}, s)

	if err := NewProfileHandler(svc).Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	assertRedirect(t, rec, "/profile")
	if svc.userID != "u-1" || svc.bio != "new bio" {
		t.Fatalf("unexpected update: %q %q", svc.userID, svc.bio)
	}
	assertFlashes(t, s, msgProfileUpdated)
}

// --- report ---

func TestReportSubmit(t *testing.T) {
	e := newEcho()
	svc := &stubReportService{}
	c, rec := newContext(e, http.MethodPost, "/report", url.Values{"target_id": {"u-2"}, "reason": {"spam"}}, loggedIn("u-1"))

	if err := NewReportHandler(svc).Submit(c); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	assertRedirect(t, rec, "/products")
	want := ports.SubmitReportInput{ReporterID: "u-1", TargetID: "u-2", Reason: "spam"}
	if svc.got != want {
		t.Fatalf("expected %+v, got %+v", want, svc.got)
	}
}

func TestRender_ConsumesFlashes(t *testing.T) {
	e := newEcho()
	s := &session.Session{}
	s.AddFlash("Registration complete.")
	c, rec := newContext(e, http.MethodGet, "/login", nil, s)

	if err := NewAuthHandler(&stubAuthService{}).LoginForm(c); err != nil {
		t.Fatalf("LoginForm: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Registration complete.") {
		t.Fatalf("flash not rendered")
	}
	if len(s.PopFlashes()) != 0 {
		t.Fatalf("flash should be consumed")
	}
}
