package admin

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/promptops/console/internal/platform/errors"
	"github.com/promptops/console/internal/platform/requestctx"
	"github.com/promptops/console/internal/services/admin/routepath"
	"github.com/promptops/console/internal/services/admin/storage"
	"github.com/promptops/console/internal/services/shared/htmx"
	sharedi18n "github.com/promptops/console/internal/services/shared/i18nhttp"
)

// tokenCookieName is the cookie set by the login service.
const tokenCookieName = "promptops_token"

// AuthConfig enables access token verification.
type AuthConfig struct {
	// Secret is the HS256 signing key shared with the login service.
	Secret string
	// Issuer, when set, must match the token iss claim.
	Issuer string
	// LoginURL receives browsers without a valid token.
	LoginURL string
}

// accessClaims are the claims read from console access tokens.
type accessClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// tokenVerifier validates HS256 access tokens.
type tokenVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func newTokenVerifier(cfg AuthConfig) (*tokenVerifier, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("auth secret is required")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer := strings.TrimSpace(cfg.Issuer); issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &tokenVerifier{secret: []byte(cfg.Secret), parser: jwt.NewParser(opts...)}, nil
}

// Verify parses raw and returns its claims when the signature and
// registered claims are valid and a subject is present.
func (v *tokenVerifier) Verify(raw string) (*accessClaims, error) {
	claims := &accessClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnauthenticated, "verify access token", err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "access token has no subject")
	}
	return claims, nil
}

// requireAuth wraps next with access token verification. Static assets and
// the health check stay public.
func requireAuth(next http.Handler, verifier *tokenVerifier, loginURL string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isAuthExempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		raw := accessToken(r)
		if raw == "" {
			denyAccess(w, r, loginURL, apperrors.New(apperrors.CodeUnauthenticated, "missing access token"))
			return
		}
		claims, err := verifier.Verify(raw)
		if err != nil {
			log.Printf("admin auth: %v", err)
			denyAccess(w, r, loginURL, err)
			return
		}

		ctx := requestctx.WithUserID(r.Context(), claims.Subject)
		if claims.Role != "" {
			ctx = requestctx.WithRole(ctx, claims.Role)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessToken reads the bearer token, falling back to the login cookie.
func accessToken(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(tokenCookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

// denyAccess sends browsers to the login page. HTMX swaps and API clients
// get a 401 instead; HTMX additionally receives HX-Redirect.
func denyAccess(w http.ResponseWriter, r *http.Request, loginURL string, err error) {
	login := loginRedirectURL(loginURL, r)
	if htmx.IsHTMXRequest(r) {
		if login != "" {
			w.Header().Set(htmx.RedirectHeader, login)
		}
		tag, _ := sharedi18n.ResolveTag(r)
		renderError(w, err, tag.String())
		return
	}
	if login == "" || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		tag, _ := sharedi18n.ResolveTag(r)
		renderError(w, err, tag.String())
		return
	}
	http.Redirect(w, r, login, http.StatusFound)
}

// loginRedirectURL appends the requested URL as next so the login service
// can return the user.
func loginRedirectURL(loginURL string, r *http.Request) string {
	loginURL = strings.TrimSpace(loginURL)
	if loginURL == "" {
		return ""
	}
	separator := "?"
	if strings.Contains(loginURL, "?") {
		separator = "&"
	}
	next := fmt.Sprintf("%s://%s%s", requestScheme(r), r.Host, r.URL.RequestURI())
	return loginURL + separator + "next=" + url.QueryEscape(next)
}

// isAuthExempt returns true for paths that should bypass authentication.
func isAuthExempt(path string) bool {
	return strings.HasPrefix(path, routepath.StaticPrefix) || path == routepath.Health
}

// canWrite reports whether the request may create records. Without auth
// there is no role and writes are allowed.
func canWrite(r *http.Request) bool {
	role := requestctx.RoleFromContext(r.Context())
	if role == "" {
		return true
	}
	parsed, ok := storage.ParseRole(role)
	return ok && parsed != storage.RoleViewer
}
