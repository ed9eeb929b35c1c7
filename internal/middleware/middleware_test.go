package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secreto = "test-secret-at-least-32-characters-long"

func init() {
	gin.SetMode(gin.TestMode)
}

func firmar(t *testing.T, secret, rol string, exp time.Time) string {
	t.Helper()
	claims := JWTClaims{
		UserID:   uuid.NewString(),
		Username: "ana",
		Rol:      rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protegido(roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/x", JWTAuth(secreto), RequireRole(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, UsuarioID(c).String())
	})
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := protegido("administrador", "cajero")

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"sin token", "", http.StatusUnauthorized},
		{"firma ajena", firmar(t, "otro-secreto-otro-secreto-otro-secreto", "cajero", time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"vencido", firmar(t, secreto, "cajero", time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"rol no permitido", firmar(t, secreto, "taller", time.Now().Add(time.Hour)), http.StatusForbidden},
		{"ok", firmar(t, secreto, "cajero", time.Now().Add(time.Hour)), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, get(r, tt.token).Code)
		})
	}
}

func TestUsuarioID(t *testing.T) {
	w := get(protegido("cajero"), firmar(t, secreto, "cajero", time.Now().Add(time.Hour)))
	require.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uuid.Nil, UsuarioID(c))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestLimiter_VentanaFija(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	l := &limiter{
		nombre:  "test",
		limit:   2,
		window:  time.Minute,
		entries: make(map[string]*ventana),
		now:     func() time.Time { return now },
	}

	ok, _ := l.permitir("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.permitir("10.0.0.1")
	assert.True(t, ok)
	ok, fin := l.permitir("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, now.Add(time.Minute), fin)

	ok, _ = l.permitir("10.0.0.2")
	assert.True(t, ok, "cada IP tiene su ventana")

	now = now.Add(61 * time.Second)
	ok, _ = l.permitir("10.0.0.1")
	assert.True(t, ok)
}

func TestLimiter_Handler429(t *testing.T) {
	now := time.Now()
	l := &limiter{
		nombre:  "test",
		limit:   1,
		window:  time.Minute,
		mensaje: "basta",
		entries: make(map[string]*ventana),
		now:     func() time.Time { return now },
	}
	r := gin.New()
	r.GET("/x", l.handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "").Code)
	w := get(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "61", w.Header().Get("Retry-After"))
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
