package cookies

import (
	"net/http"
	"net/url"
	"strings"

	"galaxy-server/internal/shared/config"
)

const AuthCookieName = "auth_token"

// Settings holds what the auth cookie needs from the configuration.
type Settings struct {
	Auth        config.AuthConfig
	FrontendURL string
}

func SetAuthCookie(w http.ResponseWriter, s Settings, token string) {
	cookie := createAuthCookie(s)
	cookie.Value = token
	cookie.MaxAge = int(s.Auth.TokenExpiration.Seconds())

	http.SetCookie(w, cookie)
}

func ClearAuthCookie(w http.ResponseWriter, s Settings) {
	cookie := createAuthCookie(s)
	cookie.Value = ""
	cookie.MaxAge = -1

	http.SetCookie(w, cookie)
}

func createAuthCookie(s Settings) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Path:     "/",
		Domain:   extractDomain(s.FrontendURL),
		HttpOnly: true,
		Secure:   s.Auth.CookieSecure,
		SameSite: parseSameSite(s.Auth.CookieSameSite),
	}
}

func extractDomain(frontendURL string) string {
	parsedURL, err := url.Parse(frontendURL)
	if err != nil || parsedURL.Host == "" {
		return ""
	}

	host := parsedURL.Hostname()
	if host == "localhost" || host == "127.0.0.1" {
		return ""
	}

	return host
}

func parseSameSite(sameSite string) http.SameSite {
	switch strings.ToLower(sameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
