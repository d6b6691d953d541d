package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokakpati/shelter-api/internal/utils"
)

const testSecret = "test-secret"

func runGate(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/pets", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, reached
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "ayse", 1440)
	require.NoError(t, err)

	rec, reached := runGate(t, "Bearer "+tok.Token)
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	// The 24h default keeps the credential usable for a full day.
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), tok.Exp, time.Minute)
}

func TestJWTAuthInjectsIdentity(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "ayse", 60)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	c := e.NewContext(req, httptest.NewRecorder())

	h := JWTAuth(testSecret)(func(c echo.Context) error {
		assert.Equal(t, uint64(42), c.Get("admin_id"))
		assert.Equal(t, "ayse", c.Get("username"))
		return nil
	})
	require.NoError(t, h(c))
}

func TestJWTAuthRejectsUniformly(t *testing.T) {
	expired, err := utils.NewAccessToken(testSecret, 42, "ayse", -5)
	require.NoError(t, err)
	wrongKey, err := utils.NewAccessToken("other-secret", 42, "ayse", 60)
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":  "",
		"not bearer":      "Basic abc",
		"garbage token":   "Bearer not.a.jwt",
		"expired token":   "Bearer " + expired.Token,
		"wrong signature": "Bearer " + wrongKey.Token,
	}
	var bodies []string
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, reached := runGate(t, header)
			assert.False(t, reached, "handler must not run")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}
	for _, b := range bodies {
		assert.Equal(t, bodies[0], b, "all rejections share one body")
	}
}
