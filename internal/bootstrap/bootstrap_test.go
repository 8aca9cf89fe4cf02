package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/session"
	"github.com/yigit/schooladmin/internal/config"
)

const testSessionID = "test-session"

// fakeBackend answers the GraphQL documents the console sends and counts them.
type fakeBackend struct {
	mu       sync.Mutex
	calls    map[string]int
	students []models.Student
	authFail bool
}

func (b *fakeBackend) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *fakeBackend) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	op := "unknown"
	for _, name := range []string{"GetStudent", "Students", "CreateStudent", "UpdateStudent", "Login", "Signup"} {
		if strings.Contains(req.Query, name) {
			op = name
			break
		}
	}

	b.mu.Lock()
	b.calls[op]++
	authFail := b.authFail
	students := b.students
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if authFail {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Not authenticated"}]}`))
		return
	}

	var data interface{}
	switch op {
	case "Students":
		data = map[string]interface{}{"students": map[string]interface{}{"status": 200, "data": students}}
	case "GetStudent":
		id, _ := req.Variables["studentId"].(float64)
		var found *models.Student
		for i := range students {
			if students[i].StudentID == int64(id) {
				found = &students[i]
			}
		}
		data = map[string]interface{}{"student": map[string]interface{}{"status": 200, "data": found}}
	case "Login":
		data = map[string]interface{}{"login": map[string]interface{}{
			"token": "login-token",
			"user":  map[string]interface{}{"id": 3, "name": "Admin User", "email": req.Variables["email"], "role": "admin"},
		}}
	default:
		data = nil
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

type testApp struct {
	router  *gin.Engine
	store   *session.MemoryStore
	backend *fakeBackend
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &fakeBackend{calls: map[string]int{}}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.GraphQL.URL = srv.URL
	cfg.GraphQL.Timeout = "5s"
	cfg.Session.CookieName = "sa_session"
	cfg.Session.TTL = "1h"

	store := session.NewMemoryStore()
	deps, err := BuildDependencies(cfg, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildDependencies: %v", err)
	}

	return &testApp{
		router:  SetupRouter(cfg, deps, zerolog.Nop()),
		store:   store,
		backend: backend,
	}
}

// signIn stores an authenticated session that requests can refer to by cookie.
func (a *testApp) signIn(t *testing.T) {
	t.Helper()
	now := time.Now()
	err := a.store.Set(context.Background(), &session.Session{
		ID:        testSessionID,
		Token:     "opaque-token",
		User:      &models.User{ID: "1", Email: "admin@school.test", Role: models.RoleAdmin},
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}, time.Hour)
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	req.AddCookie(&http.Cookie{Name: "sa_session", Value: testSessionID})
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func studentForm() url.Values {
	return url.Values{
		"firstName":     {"Ana"},
		"lastName":      {"Silva"},
		"gender":        {"Female"},
		"dateOfBirth":   {"2008-04-11"},
		"mobileNumber":  {"9876543210"},
		"address":       {"12 Park Street"},
		"class":         {"1st year"},
		"section":       {"A"},
		"rollNumber":    {"bca101"},
		"admissionDate": {"2024-06-01"},
		"status":        {"Active"},
	}
}

func TestCreateWithBlankFirstNameNeverReachesBackend(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t)

	form := studentForm()
	form.Set("firstName", "")
	req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := app.do(req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
	if !strings.Contains(w.Body.String(), "First name is required") {
		t.Fatalf("expected inline first name error in body")
	}
	if n := app.backend.total(); n != 0 {
		t.Fatalf("expected no backend calls, got %d", n)
	}
}

func TestEditPrepopulatesForm(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t)
	app.backend.students = []models.Student{{StudentID: 42, FirstName: "Ana", LastName: "Silva", Status: "Active"}}

	w := app.do(httptest.NewRequest(http.MethodGet, "/students/42", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `value="Ana"`) || !strings.Contains(body, "Update Student") {
		t.Fatalf("expected edit form seeded with the record")
	}
	if app.backend.count("GetStudent") != 1 {
		t.Fatalf("expected one GetStudent call, got %d", app.backend.count("GetStudent"))
	}
}

func TestEditMissingStudentStaysLoading(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/students/7", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Loading student...") {
		t.Fatalf("expected loading page")
	}
}

func TestExportWithNoStudentsFlashesWarning(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/students/export", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/students" {
		t.Fatalf("expected redirect to /students, got %q", loc)
	}
	if ct := w.Header().Get("Content-Type"); strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected no file download")
	}

	s, err := app.store.Get(context.Background(), testSessionID)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if len(s.Flashes) != 1 || s.Flashes[0].Message != "No students to export" || s.Flashes[0].Level != session.FlashWarning {
		t.Fatalf("expected warning flash, got %+v", s.Flashes)
	}
}

func TestExportDownloadsCSV(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t)
	app.backend.students = []models.Student{{StudentID: 1, FirstName: "Ana", LastName: "Silva"}}

	w := app.do(httptest.NewRequest(http.MethodGet, "/students/export", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "students.csv") {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "studentId,firstName,") {
		t.Fatalf("expected CSV header row, got %q", w.Body.String())
	}
}

func TestRejectedSessionRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t)
	app.backend.authFail = true

	w := app.do(httptest.NewRequest(http.MethodGet, "/students", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if _, err := app.store.Get(context.Background(), testSessionID); err == nil {
		t.Fatalf("expected session to be dropped")
	}
}

func TestProtectedPageRequiresSession(t *testing.T) {
	app := newTestApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/students", nil))

	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if app.backend.total() != 0 {
		t.Fatalf("expected no backend calls")
	}
}

func TestAPIRequiresCredentials(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students", nil)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestAPIListWithBearer(t *testing.T) {
	app := newTestApp(t)
	app.backend.students = []models.Student{{StudentID: 5, FirstName: "Ben", LastName: "Okafor"}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students?q=ben", nil)
	req.Header.Set("Authorization", "Bearer api-token")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"fullName":"Ben Okafor"`) {
		t.Fatalf("expected student in response, got %s", w.Body.String())
	}
}

func TestLoginStartsSessionAndRedirects(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"email": {"admin@school.test"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %d %q", w.Code, w.Header().Get("Location"))
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "sa_session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatalf("expected session cookie")
	}
	s, err := app.store.Get(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if s.Token != "login-token" || s.User == nil || s.User.Name != "Admin User" {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestLoginValidationRendersInline(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=&password="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}
	if app.backend.total() != 0 {
		t.Fatalf("expected no backend calls")
	}
}

func TestAPIMalformedBodyIsBadRequest(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/students/validate", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"code":"BAD_REQUEST"`) || !strings.Contains(body, "Invalid request format") {
		t.Fatalf("unexpected body %s", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/students", strings.NewReader("[]"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer api-token")
	w = httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Invalid student data") {
		t.Fatalf("expected 400 invalid student data, got %d %s", w.Code, w.Body.String())
	}
	if app.backend.total() != 0 {
		t.Fatalf("expected no backend calls")
	}
}
