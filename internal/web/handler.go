package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/fueldepot/depot"
	"github.com/fueldepot/depot/internal/session"
	"github.com/fueldepot/depot/internal/view"
)

// Handler serves browser pages.
type Handler struct {
	browser  *depot.Browser
	renderer *view.Renderer
	logger   *slog.Logger
}

// requestCookies reads cookies from a request.
type requestCookies struct {
	r *http.Request
}

func (c requestCookies) Cookie(name string) string {
	ck, err := c.r.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}

// RouteParams splits the path below the landing page into its flat
// parameter list. Empty segments are dropped and each one is unescaped.
func RouteParams(escapedPath string) ([]string, error) {
	rest := strings.TrimPrefix(escapedPath, depot.LandingPath)
	var params []string
	for _, seg := range strings.Split(rest, "/") {
		if seg == "" {
			continue
		}
		v, err := url.PathUnescape(seg)
		if err != nil {
			return nil, err
		}
		params = append(params, v)
	}
	return params, nil
}

// fragments are the page slots that can be requested on their own.
var fragments = map[string]bool{
	"constantlist": true,
	"functionlist": true,
	"classlist":    true,
	"details":      true,
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// browse renders a page. The fragment query parameter narrows the output to
// one slot: constantlist, functionlist, classlist or details.
func (h *Handler) browse(w http.ResponseWriter, r *http.Request) {
	fragment := r.URL.Query().Get("fragment")
	if fragment != "" && !fragments[fragment] {
		http.Error(w, "unknown fragment", http.StatusBadRequest)
		return
	}

	params, err := RouteParams(r.URL.EscapedPath())
	if err != nil {
		http.Error(w, "bad path", http.StatusBadRequest)
		return
	}

	sess := session.FromContext(r.Context())
	if sess == nil {
		h.fail(w, r, errors.New("no session in request context"))
		return
	}

	page, err := h.browser.Browse(r.Context(), depot.Request{
		Params:  params,
		Session: sess,
		Cookies: requestCookies{r},
	})
	if err != nil {
		if errors.Is(err, depot.ErrOddParams) || errors.Is(err, depot.ErrBadVersion) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.fail(w, r, err)
		return
	}

	switch page.Outcome {
	case depot.OutcomeRedirect:
		http.Redirect(w, r, page.Redirect, http.StatusFound)
		return
	case depot.OutcomeNoVersions:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if fragment != "" {
			err = h.renderer.NoVersionsMessage(w)
		} else {
			err = h.renderer.NoVersions(w)
		}
		if err != nil {
			h.fail(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	switch fragment {
	case "":
		err = h.renderer.Page(w, page)
	case "constantlist":
		err = h.renderer.Tree(w, page.Trees.Constants)
	case "functionlist":
		err = h.renderer.Tree(w, page.Trees.Functions)
	case "classlist":
		err = h.renderer.Tree(w, page.Trees.Classes)
	case "details":
		err = h.renderer.Details(w, page)
	}
	if err != nil {
		h.fail(w, r, err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("browse failed",
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
