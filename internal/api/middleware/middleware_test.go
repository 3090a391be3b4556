package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/internal/integrations/userservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUsers struct {
	users map[string]string
	err   error
}

func (f *fakeUsers) GetUser(_ context.Context, userID string) (*userservice.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return &userservice.User{ID: userID, Role: role}, nil
}

func serveAuth(t *testing.T, users *fakeUsers, userID string) (*httptest.ResponseRecorder, *domain.Capability) {
	t.Helper()

	var seen *domain.Capability
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capability, ok := GetCapability(r.Context())
		require.True(t, ok)
		seen = &capability
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/capacity", nil)
	if userID != "" {
		req.Header.Set(UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	Auth(users, domain.RoleInstructor, domain.RoleAdmin, nopLogger{})(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestAuth(t *testing.T) {
	users := &fakeUsers{users: map[string]string{
		"admin-1":      "admin",
		"instructor-1": "instructor",
		"student-1":    "student",
		"odd-1":        "janitor",
	}}

	tests := []struct {
		name    string
		userID  string
		status  int
		canEdit bool
	}{
		{name: "missing header", userID: "", status: http.StatusUnauthorized},
		{name: "unknown user", userID: "ghost", status: http.StatusUnauthorized},
		{name: "below view role", userID: "student-1", status: http.StatusForbidden},
		{name: "unknown role", userID: "odd-1", status: http.StatusForbidden},
		{name: "viewer", userID: "instructor-1", status: http.StatusNoContent, canEdit: false},
		{name: "editor", userID: "admin-1", status: http.StatusNoContent, canEdit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, capability := serveAuth(t, users, tt.userID)
			assert.Equal(t, tt.status, rec.Code)

			if tt.status == http.StatusNoContent {
				require.NotNil(t, capability)
				assert.Equal(t, tt.userID, capability.UserID)
				assert.Equal(t, tt.canEdit, capability.CanEdit)
			} else {
				assert.Nil(t, capability)
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestAuth_UserServiceDown(t *testing.T) {
	users := &fakeUsers{err: fmt.Errorf("%w: dial tcp: connection refused", userservice.ErrUnavailable)}

	rec, capability := serveAuth(t, users, "admin-1")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Nil(t, capability)
}

func TestAuth_UserServiceBadResponse(t *testing.T) {
	users := &fakeUsers{err: fmt.Errorf("%w: unexpected status code 500", userservice.ErrInvalidResponse)}

	rec, _ := serveAuth(t, users, "admin-1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

type observed struct {
	method string
	route  string
	status int
}

type fakeHTTPMetrics struct {
	calls []observed
}

func (m *fakeHTTPMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	m.calls = append(m.calls, observed{method: method, route: route, status: status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}

	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/api/v1/capacity/{source}/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/capacity/agency/A1", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, observed{
		method: http.MethodPatch,
		route:  "/api/v1/capacity/{source}/{id}",
		status: http.StatusNotFound,
	}, m.calls[0])
}
