package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ErlanBelekov/authapi/internal/identity"
	"github.com/ErlanBelekov/authapi/internal/token"
	"github.com/ErlanBelekov/authapi/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine builds a minimal gin engine with the Auth middleware protecting GET /protected.
// The handler writes the userID from both contexts so we can assert they were set.
func newEngine() *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(token.NewService([]byte(testKey), 0)), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.String(http.StatusOK, "%v|%s", userID, identity.UserIDFromContext(c.Request.Context()))
	})
	return r
}

func makeJWT(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString(key)
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return s
}

func serve(authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	newEngine().ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	w := serve("")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_BearerWithoutToken_Returns401(t *testing.T) {
	for _, h := range []string{"Bearer", "Bearer ", "Bearer    "} {
		if w := serve(h); w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", h, w.Code)
		}
	}
}

func TestAuth_NonBearerScheme_Returns401(t *testing.T) {
	w := serve("Basic dXNlcjpwYXNz")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_InvalidToken_Returns400(t *testing.T) {
	w := serve("Bearer not.a.jwt")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAuth_WrongSigningKey_Returns400(t *testing.T) {
	tok := makeJWT(t, []byte("different-key-that-is-32-chars!!"), jwt.MapClaims{
		"sub": "user-1",
		"iat": time.Now().Unix(),
	})

	if w := serve("Bearer " + tok); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAuth_ExpiredToken_Returns400(t *testing.T) {
	tok := makeJWT(t, []byte(testKey), jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	})

	if w := serve("Bearer " + tok); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAuth_TokenWithoutExpiry_Passes(t *testing.T) {
	tok := makeJWT(t, []byte(testKey), jwt.MapClaims{
		"sub": "user-1",
		"iat": time.Now().Add(-365 * 24 * time.Hour).Unix(),
	})

	if w := serve("Bearer " + tok); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuth_ValidToken_PassesAndSetsUserID(t *testing.T) {
	const userID = "user-abc"
	tok := makeJWT(t, []byte(testKey), jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
	})

	w := serve("bearer " + tok)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got, want := w.Body.String(), fmt.Sprintf("%s|%s", userID, userID); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestAuth_Rejected_DoesNotRunHandler(t *testing.T) {
	called := false
	r := gin.New()
	r.GET("/protected", middleware.Auth(token.NewService([]byte(testKey), 0)), func(c *gin.Context) {
		called = true
	})

	for _, h := range []string{"", "Bearer garbage"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if h != "" {
			req.Header.Set("Authorization", h)
		}
		r.ServeHTTP(w, req)
	}

	if called {
		t.Error("downstream handler ran for a rejected request")
	}
}
