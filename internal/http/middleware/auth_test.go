package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/domain"
	"github.com/taskhive/taskhive/pkg/tenant"
)

type fakeUserStore map[uuid.UUID]*domain.User

func (s fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

type fakeOrgStore map[uuid.UUID]*domain.Organization

func (s fakeOrgStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Organization, error) {
	org, ok := s[id]
	if !ok {
		return nil, domain.ErrOrganizationNotFound
	}
	return org, nil
}

func newGate(t *testing.T) (func(http.Handler) http.Handler, *auth.TokenService, *domain.User, *domain.Organization) {
	t.Helper()

	org := &domain.Organization{ID: uuid.New(), Name: "Rzabka"}
	user := &domain.User{ID: uuid.New(), Username: "janusz", OrganizationID: org.ID, Active: true}

	tokens := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte("test-secret"),
		Issuer: "taskhive",
		TTL:    time.Hour,
	})
	identity := auth.NewIdentityService(
		fakeUserStore{user.ID: user},
		fakeOrgStore{org.ID: org},
	)

	return Auth(tokens, identity, nil), tokens, user, org
}

func TestAuth_Success(t *testing.T) {
	gate, tokens, user, org := newGate(t)

	token, _, err := tokens.Issue(user.ID, time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var gotUser *domain.User
	var gotOrg *domain.Organization
	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = GetUser(r.Context())
		gotOrg, _ = tenant.OrganizationFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/v1/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if gotUser == nil || gotUser.ID != user.ID {
		t.Error("authenticated user not bound to request context")
	}
	if gotOrg == nil || gotOrg.ID != org.ID {
		t.Error("organization not bound to request context")
	}
}

func TestAuth_FailuresAreUniform(t *testing.T) {
	gate, tokens, user, _ := newGate(t)

	expiredTokens := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte("test-secret"),
		Issuer: "taskhive",
		TTL:    time.Hour,
	})
	expired, _, err := expiredTokens.Issue(user.ID, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	wrongKey := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte("other-secret"),
		Issuer: "taskhive",
		TTL:    time.Hour,
	})
	forged, _, err := wrongKey.Issue(user.ID, time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	unknownUser, _, err := tokens.Issue(uuid.New(), time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + forged},
		{"valid token for unknown user", "Bearer " + unknownUser},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			}))

			req := httptest.NewRequest("GET", "/v1/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rr.Code)
			}
			if nextCalled {
				t.Error("handler must not run on an authentication failure")
			}

			body, _ := io.ReadAll(rr.Body)
			bodies = append(bodies, string(body))

			var resp map[string]string
			if err := json.Unmarshal(body, &resp); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if resp["error"] != "unauthorized" {
				t.Errorf("error = %q, want %q", resp["error"], "unauthorized")
			}
		})
	}

	// Every failure kind produces the byte-identical response body.
	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Errorf("failure responses differ: %q vs %q", bodies[0], bodies[i])
		}
	}
}

func TestAuth_InactiveUserRejected(t *testing.T) {
	org := &domain.Organization{ID: uuid.New(), Name: "Rzabka"}
	user := &domain.User{ID: uuid.New(), Username: "janusz", OrganizationID: org.ID, Active: false}

	tokens := auth.NewTokenService(auth.TokenConfig{Secret: []byte("test-secret"), TTL: time.Hour})
	identity := auth.NewIdentityService(fakeUserStore{user.ID: user}, fakeOrgStore{org.ID: org})
	gate := Auth(tokens, identity, nil)

	token, _, err := tokens.Issue(user.ID, time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for an inactive user")
	}))

	req := httptest.NewRequest("GET", "/v1/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestAuth_NoTenantContextOnFailure(t *testing.T) {
	gate, _, _, _ := newGate(t)

	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest("GET", "/v1/tasks", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	// The failing request's context never gains an organization.
	if _, ok := tenant.OrganizationFromContext(req.Context()); ok {
		t.Error("tenant context must stay unbound on authentication failure")
	}
}
