package views

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/jonathan/cover-letter-dashboard/internal/dashboard"
	"github.com/jonathan/cover-letter-dashboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Helpers
// =============================================================================

func render(t *testing.T, c templ.Component) (string, *goquery.Document) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return buf.String(), doc
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// =============================================================================
// Widgets
// =============================================================================

func TestStats_RendersOneCardPerStat(t *testing.T) {
	data := dashboard.MustLoad()

	_, doc := render(t, Stats(data.Stats))

	assert.Equal(t, "Stats", text(doc.Find("h3")))
	cards := doc.Find("dl > div")
	require.Equal(t, 3, cards.Length())

	cards.Each(func(i int, card *goquery.Selection) {
		assert.Equal(t, data.Stats[i].Name, text(card.Find("dt")))
		assert.Equal(t, data.Stats[i].Stat, text(card.Find("dd")))
	})
}

func TestStats_Empty(t *testing.T) {
	_, doc := render(t, Stats(nil))
	assert.Equal(t, 0, doc.Find("dl > div").Length())
}

func TestHistory_RendersOneRowPerEntry(t *testing.T) {
	data := dashboard.MustLoad()

	_, doc := render(t, History(data.History))

	assert.Equal(t, "Previous Cover Letters", text(doc.Find("h1")))

	var headers []string
	doc.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, text(th))
	})
	assert.Equal(t, []string{"Company", "Job Title", "Date", "Actions"}, headers)

	rows := doc.Find("tbody tr")
	require.Equal(t, 3, rows.Length())

	rows.Each(func(i int, row *goquery.Selection) {
		want := data.History[i]
		cells := row.Find("td")
		require.Equal(t, 4, cells.Length())
		assert.Equal(t, want.Name, text(cells.Eq(0)))
		assert.Equal(t, want.Title, text(cells.Eq(1)))
		assert.Equal(t, want.Date, text(cells.Eq(2)))
		assert.Equal(t, "View", text(cells.Eq(3).Find("button")))

		key, ok := row.Attr("data-key")
		assert.True(t, ok)
		assert.Equal(t, want.Key, key)
	})
}

func TestHistory_EscapesCellText(t *testing.T) {
	rows := []dashboard.HistoryRow{
		{Name: `<script>alert("x")</script>`, Title: "R&D", Date: "01/01/2026", Key: "x"},
	}

	body, doc := render(t, History(rows))

	assert.NotContains(t, body, "<script>")
	assert.Equal(t, 0, doc.Find("tbody script").Length())
	assert.Equal(t, `<script>alert("x")</script>`, text(doc.Find("tbody td").Eq(0)))
	assert.Equal(t, "R&D", text(doc.Find("tbody td").Eq(1)))
}

func TestGettingStarted(t *testing.T) {
	_, doc := render(t, GettingStarted())

	assert.Equal(t, "Getting Started", text(doc.Find("h3")))
	assert.Equal(t, "Fill out your work profile to get started", text(doc.Find("p")))
	assert.Equal(t, "Fill out work profile", text(doc.Find("button")))
}

func TestDashboardHome_ComposesWidgetsInOrder(t *testing.T) {
	_, doc := render(t, DashboardHome(dashboard.MustLoad()))

	var ids []string
	doc.Find("#getting-started, #stats, #cover-letter-history").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
	})
	assert.Equal(t, []string{"getting-started", "stats", "cover-letter-history"}, ids)
	assert.Equal(t, 3, doc.Find("#stats dl > div").Length())
	assert.Equal(t, 3, doc.Find("#cover-letter-history tbody tr").Length())
}

// =============================================================================
// Form
// =============================================================================

func TestGenerateLetterForm_Empty(t *testing.T) {
	_, doc := render(t, GenerateLetterForm(FormState{}))

	form := doc.Find("form#generate-letter-form")
	require.Equal(t, 1, form.Length())
	method, _ := form.Attr("method")
	assert.Equal(t, "post", method)

	tests := []struct {
		id          string
		label       string
		placeholder string
	}{
		{id: "company_name", label: "Company Name", placeholder: "Enter Name"},
		{id: "job_title", label: "Job Title", placeholder: "Enter Title"},
		{id: "job_description", label: "Job Description", placeholder: "Paste the job posting here."},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.label, text(doc.Find(`label[for="`+tt.id+`"]`)))
			field := doc.Find("#" + tt.id)
			require.Equal(t, 1, field.Length())
			name, _ := field.Attr("name")
			assert.Equal(t, tt.id, name)
			placeholder, _ := field.Attr("placeholder")
			assert.Equal(t, tt.placeholder, placeholder)
		})
	}

	rows, _ := doc.Find("textarea").Attr("rows")
	assert.Equal(t, "4", rows)
	assert.Equal(t, "Generate Cover Letter", text(doc.Find(`button[type="submit"]`)))
	assert.Equal(t, 0, doc.Find("#form-notice").Length())
	assert.Equal(t, 0, doc.Find("p.text-red-600").Length())
}

func TestGenerateLetterForm_ValuesAndErrors(t *testing.T) {
	form := FormState{
		Values: types.CoverLetterRequest{
			CompanyName:    `Acme "Rockets"`,
			JobDescription: "<b>Ship</b> things",
		},
		Errors: map[string]string{"job_title": "Job Title is required"},
		Notice: "Please fix the errors below.",
	}

	body, doc := render(t, GenerateLetterForm(form))

	value, _ := doc.Find("#company_name").Attr("value")
	assert.Equal(t, `Acme "Rockets"`, value)
	assert.Equal(t, "<b>Ship</b> things", doc.Find("#job_description").Text())
	assert.NotContains(t, body, "<b>Ship</b>")

	errs := doc.Find("p.text-red-600")
	require.Equal(t, 1, errs.Length())
	assert.Equal(t, "Job Title is required", text(errs))
	assert.Equal(t, "Please fix the errors below.", text(doc.Find("#form-notice")))
}

func TestFormState_Error(t *testing.T) {
	assert.Empty(t, FormState{}.Error("company_name"))
	f := FormState{Errors: map[string]string{"company_name": "required"}}
	assert.Equal(t, "required", f.Error("company_name"))
}

// =============================================================================
// Page & static assets
// =============================================================================

func TestPage_WrapsBody(t *testing.T) {
	body, doc := render(t, Page("Dashboard", GettingStarted()))

	assert.True(t, strings.HasPrefix(body, "<!doctype html>"))
	assert.Equal(t, "Dashboard - Cover Letter Generator", text(doc.Find("title")))
	assert.Equal(t, 1, doc.Find("main#ui-content #getting-started").Length())
}

func TestStaticHandler_ServesLogo(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, StaticPath("logo-white.svg"), nil)
	rec := httptest.NewRecorder()

	StaticHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "image/svg+xml")
	assert.Contains(t, rec.Header().Get("Cache-Control"), "immutable")
	assert.Contains(t, rec.Body.String(), "<svg")
}

func TestStaticHandler_NotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/static/missing.png", nil)
	rec := httptest.NewRecorder()

	StaticHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
