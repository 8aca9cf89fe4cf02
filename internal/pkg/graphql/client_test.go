package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
)

type fakeSession struct {
	mu          sync.Mutex
	token       string
	invalidated int
}

func (f *fakeSession) Token(context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeSession) Invalidate(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	f.token = ""
}

func newTestClient(t *testing.T, handler http.HandlerFunc, sess SessionProvider) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{Endpoint: srv.URL, Session: sess, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	if _, err := NewClient(Options{Endpoint: "  "}); !errors.Is(err, apperrors.ErrNotConfig) {
		t.Fatalf("expected ErrNotConfig, got %v", err)
	}
}

func TestDoSendsQueryVariablesAndBearer(t *testing.T) {
	sess := &fakeSession{token: "tok-123"}
	var got Request
	var auth, contentType string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		writeJSON(w, http.StatusOK, `{"data":{"student":{"data":{"studentId":42,"firstName":"Ana"}}}}`)
	}, sess)

	var out struct {
		Student struct {
			Data struct {
				StudentID int64  `json:"studentId"`
				FirstName string `json:"firstName"`
			} `json:"data"`
		} `json:"student"`
	}
	err := client.Do(context.Background(), Request{
		Query:     "query GetStudent($studentId: Int!) { student(studentId: $studentId) { data { studentId } } }",
		Variables: map[string]interface{}{"studentId": 42},
	}, &out)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if auth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", auth)
	}
	if contentType != "application/json" {
		t.Fatalf("expected application/json, got %q", contentType)
	}
	if got.Variables["studentId"] != float64(42) {
		t.Fatalf("expected studentId variable 42, got %v", got.Variables["studentId"])
	}
	if out.Student.Data.StudentID != 42 || out.Student.Data.FirstName != "Ana" {
		t.Fatalf("unexpected decoded data: %+v", out)
	}
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("expected no Authorization header, got %q", h)
		}
		writeJSON(w, http.StatusOK, `{"data":{}}`)
	}, &fakeSession{})

	if err := client.Do(context.Background(), Request{Query: "query { students { status } }"}, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestAuthFailureIsDetectedOnBothChannels(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"transport 401", http.StatusUnauthorized, `{"message":"jwt expired"}`},
		{"message on 200", http.StatusOK, `{"data":null,"errors":[{"message":"Not authenticated"}]}`},
		{"unauthorized message", http.StatusOK, `{"errors":[{"message":"Unauthorized"}]}`},
		{"extension code", http.StatusOK, `{"errors":[{"message":"Session expired","extensions":{"code":"UNAUTHENTICATED"}}]}`},
		{"auth error after another error", http.StatusOK, `{"errors":[{"message":"boom"},{"message":"Not authenticated"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess := &fakeSession{token: "stale"}
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, tc.body)
			}, sess)

			err := client.Do(context.Background(), Request{Query: "query { students { status } }"}, nil)
			if !errors.Is(err, apperrors.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
			if sess.invalidated != 1 {
				t.Fatalf("expected session invalidated once, got %d", sess.invalidated)
			}
		})
	}
}

func TestGraphQLErrorSurfacesFirstMessage(t *testing.T) {
	sess := &fakeSession{token: "ok"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":null,"errors":[{"message":"Roll number already taken"},{"message":"second"}]}`)
	}, sess)

	err := client.Do(context.Background(), Request{Query: "mutation CreateStudent { createStudent { status } }"}, nil)

	var gqlErr *apperrors.GraphQLError
	if !errors.As(err, &gqlErr) {
		t.Fatalf("expected GraphQLError, got %T %v", err, err)
	}
	if err.Error() != "Roll number already taken" {
		t.Fatalf("expected first message verbatim, got %q", err.Error())
	}
	if len(gqlErr.Errors) != 2 {
		t.Fatalf("expected both errors kept, got %d", len(gqlErr.Errors))
	}
	if !errors.Is(err, apperrors.ErrGraphQL) {
		t.Fatalf("expected error to match ErrGraphQL")
	}
	if sess.invalidated != 0 {
		t.Fatalf("expected session untouched, got %d invalidations", sess.invalidated)
	}
}

func TestNon2xxIsTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `upstream exploded`)
	}, nil)

	err := client.Do(context.Background(), Request{Query: "query { students { status } }"}, nil)

	var tErr *apperrors.TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected TransportError, got %T %v", err, err)
	}
	if tErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", tErr.StatusCode)
	}
	if tErr.Body != "upstream exploded" {
		t.Fatalf("expected body snippet, got %q", tErr.Body)
	}
	if !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected error to match ErrTransport")
	}
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	client, err := NewClient(Options{Endpoint: endpoint, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	err = client.Do(context.Background(), Request{Query: "query { students { status } }"}, nil)
	if !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestMalformedBodyIsTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `<html>not json</html>`)
	}, nil)

	err := client.Do(context.Background(), Request{Query: "query { students { status } }"}, nil)
	if !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestExecuteExposesBackendCookies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: TokenCookieName, Value: "cookie-token"})
		writeJSON(w, http.StatusOK, `{"data":{"login":{"token":""}}}`)
	}, nil)

	resp, err := client.Execute(context.Background(), Request{Query: "mutation Login { login { token } }"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	c, ok := resp.Cookie(TokenCookieName)
	if !ok || c.Value != "cookie-token" {
		t.Fatalf("expected token cookie, got %v", c)
	}
}

func TestOperationName(t *testing.T) {
	cases := map[string]string{
		"query Students { students { status } }": "Students",
		"\n  mutation CreateStudent($a: String!) {}": "CreateStudent",
		"mutation { logout }":                      "mutation",
		"{ students { status } }":                  "anonymous",
	}
	for query, want := range cases {
		if got := operationName(query); got != want {
			t.Fatalf("operationName(%q): expected %q, got %q", query, want, got)
		}
	}
}
