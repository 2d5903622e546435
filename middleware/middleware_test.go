package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, userID string, roles []string, expiresAt time.Time) string {
	t.Helper()

	claims := &Claims{
		Username: "tester",
		UserID:   userID,
		Role:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthenticatePutsIdentityInContext(t *testing.T) {
	var gotUserID string
	var gotRoles []string

	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRoles, _ = r.Context().Value(globals.RoleKey).([]string)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u42", []string{"user"}, time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if gotUserID != "u42" {
		t.Fatalf("userID in context = %q; want u42", gotUserID)
	}
	if len(gotRoles) != 1 || gotRoles[0] != "user" {
		t.Fatalf("roles in context = %v; want [user]", gotRoles)
	}
}

func TestAuthenticateRejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"not bearer", "Basic abcdefgh", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}

	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})

	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		rec := httptest.NewRecorder()

		handler(rec, req, nil)

		if rec.Code != c.status {
			t.Fatalf("%s: status = %d; want %d", c.name, rec.Code, c.status)
		}
	}
}

// decodeEnvelope parses the standard error body {success, message}.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (bool, string) {
	t.Helper()

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("body %q is not the error envelope: %v", rec.Body.String(), err)
	}
	return body.Success, body.Message
}

func TestAuthenticateExpiredTokenMessage(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u42", []string{"user"}, time.Now().Add(-time.Hour)))
	rec := httptest.NewRecorder()

	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", rec.Code)
	}
	if success, message := decodeEnvelope(t, rec); success || message != "Token expired" {
		t.Fatalf("envelope = success:%v message:%q; want distinct expiry message", success, message)
	}
}

func TestAuthenticateErrorsUseJSONEnvelope(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q; want application/json", ct)
	}
	if success, message := decodeEnvelope(t, rec); success || message == "" {
		t.Fatalf("envelope = success:%v message:%q; want success false and a message", success, message)
	}
}

func TestRequireRole(t *testing.T) {
	allowed := false
	inner := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		allowed = true
		w.WriteHeader(http.StatusOK)
	}

	// admin token passes an admin gate
	handler := Authenticate(RequireRole("admin", inner))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin", []string{"admin"}, time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if !allowed || rec.Code != http.StatusOK {
		t.Fatalf("admin should pass admin gate: allowed=%v status=%d", allowed, rec.Code)
	}

	// plain user token does not
	allowed = false
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u42", []string{"user"}, time.Now().Add(time.Hour)))
	rec = httptest.NewRecorder()
	handler(rec, req, nil)

	if allowed {
		t.Fatal("user token passed admin gate")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d; want 403", rec.Code)
	}
}

func TestValidateJWT(t *testing.T) {
	good := "Bearer " + signToken(t, "u42", []string{"user"}, time.Now().Add(time.Hour))

	claims, err := ValidateJWT(good)
	if err != nil {
		t.Fatalf("ValidateJWT rejected a valid token: %v", err)
	}
	if claims.UserID != "u42" {
		t.Fatalf("claims.UserID = %q; want u42", claims.UserID)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no bearer prefix", signToken(t, "u42", []string{"user"}, time.Now().Add(time.Hour))},
		{"garbage", "Bearer not.a.jwt"},
		{"expired", "Bearer " + signToken(t, "u42", []string{"user"}, time.Now().Add(-time.Hour))},
	}
	for _, c := range cases {
		if _, err := ValidateJWT(c.token); err == nil {
			t.Errorf("%s: ValidateJWT accepted %q", c.name, c.token)
		}
	}
}

func TestOptionalAuthPassesWithoutToken(t *testing.T) {
	called := false
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
		if uid, _ := r.Context().Value(globals.UserIDKey).(string); uid != "" {
			t.Fatalf("unexpected user id %q without token", uid)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("optional auth blocked an anonymous request: called=%v status=%d", called, rec.Code)
	}
}
