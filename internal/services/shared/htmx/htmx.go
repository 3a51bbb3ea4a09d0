// Package htmx renders pages for full loads and HTMX swaps.
package htmx

import (
	"bytes"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// HTMX request and response headers.
const (
	RequestHeader  = "HX-Request"
	TargetHeader   = "HX-Target"
	PushURLHeader  = "HX-Push-Url"
	RedirectHeader = "HX-Redirect"
)

// responseBuffer captures component rendering for HTMX responses.
type responseBuffer struct {
	header      http.Header
	statusCode  int
	body        bytes.Buffer
	headerWrote bool
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func (w *responseBuffer) Header() http.Header {
	return w.header
}

func (w *responseBuffer) WriteHeader(status int) {
	if w.headerWrote {
		return
	}
	w.headerWrote = true
	w.statusCode = status
}

func (w *responseBuffer) Write(body []byte) (int, error) {
	return w.body.Write(body)
}

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeader), "true")
}

// Target returns the id of the element HTMX will swap, if any.
func Target(r *http.Request) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Header.Get(TargetHeader))
}

// PushURL asks HTMX to push target into the browser history so the address
// bar reflects the swapped content.
func PushURL(w http.ResponseWriter, target string) {
	if w == nil || strings.TrimSpace(target) == "" {
		return
	}
	w.Header().Set(PushURLHeader, target)
}

// Redirect sends the client to location. HTMX requests get an HX-Redirect
// header with status 200 since a plain 3xx would be followed inside the swap.
func Redirect(w http.ResponseWriter, r *http.Request, location string, status int) {
	if IsHTMXRequest(r) {
		w.Header().Set(RedirectHeader, location)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, location, status)
}

// TitleTag formats an escaped `<title>` element.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

// RenderPage renders a page for normal or HTMX requests.
//
// fragment is used for HTMX responses while full is used for non-HTMX
// responses. When only full is given, HTMX responses carry its <main>
// content.
func RenderPage(w http.ResponseWriter, r *http.Request, fragment templ.Component, full templ.Component, htmxTitle string) {
	if !IsHTMXRequest(r) {
		if full == nil {
			full = fragment
		}
		if full != nil {
			templ.Handler(full).ServeHTTP(w, r)
		}
		return
	}

	target, fromFull := fragment, false
	if target == nil {
		target, fromFull = full, true
	}
	if target == nil {
		return
	}
	capture := newResponseBuffer()
	templ.Handler(target).ServeHTTP(capture, r)

	body := capture.body.Bytes()
	if fromFull {
		if mainContent, ok := extractMainContent(body); ok {
			body = mainContent
		}
	}
	body = addTitleIfMissing(body, htmxTitle)

	copyHeaders(w.Header(), capture.Header())
	if capture.headerWrote && capture.statusCode != http.StatusOK {
		w.WriteHeader(capture.statusCode)
	}
	_, _ = w.Write(body)
}

func addTitleIfMissing(body []byte, title string) []byte {
	if strings.TrimSpace(title) == "" {
		return body
	}
	if bytes.Contains(bytes.ToLower(body), []byte("<title")) {
		return body
	}
	return append([]byte(title), body...)
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if strings.EqualFold(key, "Set-Cookie") {
			for _, value := range values {
				dst.Add(key, value)
			}
			continue
		}
		// Single-valued headers must not accumulate duplicates.
		for _, value := range values {
			dst.Set(key, value)
		}
	}
}

func extractMainContent(body []byte) ([]byte, bool) {
	start := bytes.Index(body, []byte("<main"))
	if start < 0 {
		return nil, false
	}
	openClose := bytes.IndexByte(body[start:], '>')
	if openClose < 0 {
		return nil, false
	}
	contentStart := start + openClose + 1
	end := bytes.Index(body[contentStart:], []byte("</main>"))
	if end < 0 {
		return nil, false
	}
	return body[contentStart : contentStart+end], true
}
