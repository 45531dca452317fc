// Package view renders browser pages and their fragments as HTML.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"

	"github.com/fueldepot/depot"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the page templates. It is safe for concurrent use.
type Renderer struct {
	tmpl   *template.Template
	policy *bluemonday.Policy
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{policy: bluemonday.UGCPolicy()}
	tmpl, err := template.New("depot").Funcs(template.FuncMap{
		"comma":       func(n int) string { return humanize.Comma(int64(n)) },
		"sanitize":    r.sanitize,
		"selected":    selected,
		"signature":   Signature,
		"versionPath": depot.VersionPath,
		"join":        strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Page renders a full browser page.
func (r *Renderer) Page(w io.Writer, p *depot.Page) error {
	return r.execute(w, "page", p)
}

// NoVersions renders the page shown when no versions exist.
func (r *Renderer) NoVersions(w io.Writer) error {
	return r.execute(w, "novers", nil)
}

// NoVersionsMessage renders only the no-versions notice, for fragment
// requests.
func (r *Renderer) NoVersionsMessage(w io.Writer) error {
	return r.execute(w, "noversions", nil)
}

// Tree renders one navigation tree.
func (r *Renderer) Tree(w io.Writer, nodes []depot.TreeNode) error {
	return r.execute(w, "tree", nodes)
}

// Details renders the detail pane: the selected file, or the version
// introduction when nothing is selected.
func (r *Renderer) Details(w io.Writer, p *depot.Page) error {
	return r.execute(w, "details", p)
}

// execute buffers the output so a failing template writes nothing.
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// sanitize strips docblock markup down to what user content may carry.
func (r *Renderer) sanitize(s string) template.HTML {
	return template.HTML(r.policy.Sanitize(s))
}

func selected(d *depot.Detail, kind, name string) bool {
	return d.Selected(depot.Kind(kind), name)
}

// Signature returns the declared signature of a function or method, or one
// built from its arguments.
func Signature(s depot.Symbol) string {
	if s.Signature != "" {
		return s.Signature
	}
	args := make([]string, len(s.Arguments))
	for i, a := range s.Arguments {
		var b strings.Builder
		if a.Type != "" {
			b.WriteString(a.Type)
			b.WriteByte(' ')
		}
		b.WriteString(a.Name)
		if a.Default != "" {
			b.WriteString(" = ")
			b.WriteString(a.Default)
		}
		args[i] = b.String()
	}
	return s.Name + "(" + strings.Join(args, ", ") + ")"
}
