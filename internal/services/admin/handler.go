package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	apperrors "github.com/promptops/console/internal/platform/errors"
	"github.com/promptops/console/internal/platform/requestctx"
	"github.com/promptops/console/internal/platform/timeouts"
	"github.com/promptops/console/internal/services/admin/module/prompts"
	"github.com/promptops/console/internal/services/admin/module/users"
	"github.com/promptops/console/internal/services/admin/nav"
	"github.com/promptops/console/internal/services/admin/routepath"
	"github.com/promptops/console/internal/services/admin/storage"
	"github.com/promptops/console/internal/services/admin/tables"
	"github.com/promptops/console/internal/services/admin/templates"
	"github.com/promptops/console/internal/services/shared/htmx"
	sharedi18n "github.com/promptops/console/internal/services/shared/i18nhttp"
	"golang.org/x/text/message"
)

// Table element ids swapped by HTMX.
const (
	usersTableID   = "users-table"
	promptsTableID = "prompts-table"
)

// Handler routes admin console requests.
type Handler struct {
	store   storage.Store
	menu    nav.Menu
	users   *tableSurface[storage.User]
	prompts *tableSurface[storage.Prompt]
}

// NewHandler builds the HTTP handler for the admin console. pageSize sets
// the default rows per page of every table.
func NewHandler(store storage.Store, pageSize int) (http.Handler, error) {
	h, err := newHandler(store, pageSize)
	if err != nil {
		return nil, err
	}
	return h.routes(), nil
}

func newHandler(store storage.Store, pageSize int) (*Handler, error) {
	if store == nil {
		return nil, errors.New("admin store is required")
	}
	menu, err := nav.Default()
	if err != nil {
		return nil, fmt.Errorf("load sidebar: %w", err)
	}

	userColumns, err := tables.Users()
	if err != nil {
		return nil, fmt.Errorf("users columns: %w", err)
	}
	usersSurface, err := newTableSurface(usersTableID, routepath.Users, routepath.UsersTable, userColumns, pageSize)
	if err != nil {
		return nil, err
	}
	usersSurface.valueLabel = func(loc *message.Printer, columnID, value string) string {
		if columnID != tables.UserRole {
			return value
		}
		return templates.T(loc, "role."+value)
	}

	promptColumns, err := tables.Prompts()
	if err != nil {
		return nil, fmt.Errorf("prompts columns: %w", err)
	}
	promptsSurface, err := newTableSurface(promptsTableID, routepath.Prompts, routepath.PromptsTable, promptColumns, pageSize)
	if err != nil {
		return nil, err
	}

	return &Handler{
		store:   store,
		menu:    menu,
		users:   usersSurface,
		prompts: promptsSurface,
	}, nil
}

// routes wires the HTTP routes for the admin handler.
func (h *Handler) routes() http.Handler {
	mux := http.NewServeMux()
	users.RegisterRoutes(mux, h)
	prompts.RegisterRoutes(mux, h)
	mux.HandleFunc(routepath.Root, h.handleRoot)
	return mux
}

// handleRoot sends the console root to the prompts page.
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routepath.Root {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, routepath.Prompts, http.StatusFound)
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := sharedi18n.ResolveTag(r)
	if persist {
		sharedi18n.SetLanguageCookie(w, tag)
	}
	return sharedi18n.Printer(tag), tag.String()
}

func (h *Handler) pageContext(lang string, loc *message.Printer, r *http.Request) templates.PageContext {
	return templates.PageContext{
		Lang:         lang,
		Loc:          loc,
		CurrentPath:  r.URL.Path,
		CurrentQuery: r.URL.RawQuery,
		Nav:          h.menu.Resolve(r.URL.Path),
		UserID:       requestctx.UserIDFromContext(r.Context()),
	}
}

// storeContext bounds a storage call made on behalf of r.
func storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), timeouts.StoreQuery)
}

// renderError writes a localized error response.
func renderError(w http.ResponseWriter, err error, lang string) {
	http.Error(w, apperrors.LocalizedMessage(err, lang), apperrors.HTTPStatus(err))
}

// tableResponse writes a table fragment. HTMX swaps get the canonical page
// URL pushed to history; plain requests are redirected to the page.
func tableResponse(w http.ResponseWriter, r *http.Request, pageURL string, rendered tableRender, loc *message.Printer) {
	location := rendered.CanonicalURL(pageURL)
	if !htmx.IsHTMXRequest(r) {
		http.Redirect(w, r, location, http.StatusSeeOther)
		return
	}
	htmx.PushURL(w, location)
	templ.Handler(templates.Table(rendered.View, loc)).ServeHTTP(w, r)
}

// allowMethods rejects requests whose method is not listed.
func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, method := range methods {
		if r.Method == method {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

// requireSameOrigin rejects form posts that did not come from this host.
func requireSameOrigin(w http.ResponseWriter, r *http.Request, lang string) bool {
	forbidden := func() bool {
		renderError(w, apperrors.New(apperrors.CodePermissionDenied, "cross-origin request"), lang)
		return false
	}
	if r == nil {
		return forbidden()
	}
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		if !sameOrigin(origin, r) {
			return forbidden()
		}
		return true
	}
	if referer := strings.TrimSpace(r.Referer()); referer != "" {
		if !sameOrigin(referer, r) {
			return forbidden()
		}
		return true
	}
	return forbidden()
}

func sameOrigin(rawURL string, r *http.Request) bool {
	if rawURL == "" || rawURL == "null" || r == nil {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	if !strings.EqualFold(parsed.Host, r.Host) {
		return false
	}
	if parsed.Scheme != "" {
		return strings.EqualFold(parsed.Scheme, requestScheme(r))
	}
	return true
}

func requestScheme(r *http.Request) string {
	if r == nil {
		return "http"
	}
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		parts := strings.Split(proto, ",")
		return strings.ToLower(strings.TrimSpace(parts[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func logRequestError(r *http.Request, op string, err error) {
	log.Printf("%s %s: %s: %v", r.Method, r.URL.Path, op, err)
}
