// Package views renders the dashboard widgets and pages as templ components.
//
// Markup lives in embedded html/template files; each exported constructor
// wraps one named template so handlers and the CLI can render any widget on
// its own or composed into a full page.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
	"github.com/jonathan/cover-letter-dashboard/internal/dashboard"
	"github.com/jonathan/cover-letter-dashboard/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("views").
	Funcs(template.FuncMap{"static": StaticPath}).
	ParseFS(templateFS, "templates/*.html"))

// FormState is what the generate form is rendered from.
type FormState struct {
	Values types.CoverLetterRequest
	Errors map[string]string // field name -> message
	Notice string
}

// Error returns the message for a field, or "" if the field is valid.
func (f FormState) Error(field string) string {
	return f.Errors[field]
}

// GettingStarted renders the "fill out your work profile" prompt card.
func GettingStarted() templ.Component {
	return named("getting_started", nil)
}

// Stats renders one card per stat, in order.
func Stats(stats []dashboard.Stat) templ.Component {
	return named("stats", stats)
}

// History renders the previous cover letters table, one row per entry.
func History(rows []dashboard.HistoryRow) templ.Component {
	return named("history", rows)
}

// DashboardHome renders the getting started card, stats and history.
func DashboardHome(data *dashboard.Data) templ.Component {
	return named("dashboard", data)
}

// GenerateLetterForm renders the job description form.
func GenerateLetterForm(form FormState) templ.Component {
	return named("generate_form", form)
}

type pageData struct {
	Title string
	Body  template.HTML
}

// Page wraps body in the full HTML document.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html, err := templ.ToGoHTML(ctx, body)
		if err != nil {
			return err
		}
		return templates.ExecuteTemplate(w, "layout", pageData{Title: title, Body: html})
	})
}

func named(name string, data any) templ.Component {
	return templ.FromGoHTML(templates.Lookup(name), data)
}
