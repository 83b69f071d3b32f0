package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap/zaptest"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	a, err := NewAuthenticator("test-secret", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create authenticator: %v", err)
	}
	return a
}

func TestNewAuthenticator_RequiresSecret(t *testing.T) {
	if _, err := NewAuthenticator("", zaptest.NewLogger(t)); err == nil {
		t.Error("Expected error for empty secret")
	}
}

func TestGenerateAndValidate(t *testing.T) {
	a := newTestAuthenticator(t)

	token, err := a.GenerateClientToken("frontend", time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.Role != ClientRole {
		t.Errorf("Expected role %s, got %s", ClientRole, claims.Role)
	}
	if claims.Subject != "frontend" {
		t.Errorf("Expected subject frontend, got %s", claims.Subject)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	a := newTestAuthenticator(t)
	other, _ := NewAuthenticator("other-secret", zaptest.NewLogger(t))

	token, _ := other.GenerateClientToken("x", time.Hour)
	if _, err := a.ValidateToken(token); err == nil {
		t.Error("Expected validation to fail with a different secret")
	}
}

func TestMiddleware(t *testing.T) {
	a := newTestAuthenticator(t)

	valid, _ := a.GenerateClientToken("frontend", time.Hour)
	expiredClaims := &JWTClaims{Role: ClientRole, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString(a.secret)
	wrongRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{Role: "device"}).SignedString(a.secret)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"malformed", "Bearer not-a-token", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong role", "Bearer " + wrongRole, http.StatusForbidden},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
	}

	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(ClientIDKey).(string))
	}, a.Middleware())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("Expected status %d, got %d (%s)", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
