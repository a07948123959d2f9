package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxy-server/internal/shared/config"
)

func TestSetAndClearAuthCookie(t *testing.T) {
	s := Settings{
		Auth: config.AuthConfig{
			TokenExpiration: 2 * time.Hour,
			CookieSecure:    true,
			CookieSameSite:  "Strict",
		},
		FrontendURL: "https://galaxy.example.com:8443",
	}

	rec := httptest.NewRecorder()
	SetAuthCookie(rec, s, "tok")
	set := rec.Result().Cookies()
	require.Len(t, set, 1)
	assert.Equal(t, AuthCookieName, set[0].Name)
	assert.Equal(t, "tok", set[0].Value)
	assert.Equal(t, 7200, set[0].MaxAge)
	assert.Equal(t, "galaxy.example.com", set[0].Domain)
	assert.True(t, set[0].HttpOnly)
	assert.True(t, set[0].Secure)
	assert.Equal(t, http.SameSiteStrictMode, set[0].SameSite)

	rec = httptest.NewRecorder()
	ClearAuthCookie(rec, s)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestExtractDomain(t *testing.T) {
	assert.Empty(t, extractDomain("http://localhost:3000"))
	assert.Empty(t, extractDomain("http://127.0.0.1"))
	assert.Empty(t, extractDomain("::bad"))
	assert.Equal(t, "app.example.org", extractDomain("https://app.example.org"))
}

func TestParseSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteNoneMode, parseSameSite("none"))
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite(""))
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite("lax"))
}
