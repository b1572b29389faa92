package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/cover-letter-dashboard/internal/server/middleware"
	"github.com/jonathan/cover-letter-dashboard/internal/types"
	"github.com/jonathan/cover-letter-dashboard/internal/views"
)

const (
	dashboardTitle = "Dashboard"
	generateTitle  = "Generate Cover Letter"
)

// handleDashboard renders the dashboard home page
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, dashboardTitle, views.DashboardHome(s.data))
}

// handleGenerateForm renders an empty generate form
func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, generateTitle, views.GenerateLetterForm(views.FormState{}))
}

// handleGenerateSubmit validates the submitted form and re-renders it with
// either field errors or a notice.
func (s *Server) handleGenerateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, r, http.StatusBadRequest, generateTitle, views.GenerateLetterForm(views.FormState{
			Notice: "The form could not be read. Please try again.",
		}))
		return
	}

	req := types.CoverLetterRequest{
		CompanyName:    r.PostFormValue("company_name"),
		JobTitle:       r.PostFormValue("job_title"),
		JobDescription: r.PostFormValue("job_description"),
	}

	err := s.requestCoverLetter(r, &req)
	form := views.FormState{Values: req}

	var verr *ErrValidation
	if errors.As(err, &verr) {
		form.Errors = verr.Fields
	} else if err != nil {
		form.Notice = err.Error()
	}

	s.renderPage(w, r, HTTPStatus(err), generateTitle, views.GenerateLetterForm(form))
}

// requestCoverLetter normalizes and validates req. A valid request still
// fails with ErrGenerationUnavailable since nothing generates letters yet.
func (s *Server) requestCoverLetter(r *http.Request, req *types.CoverLetterRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		fields := types.FieldErrors(err)
		if fields == nil {
			return err
		}
		return &ErrValidation{Fields: fields}
	}

	s.logger.Info("cover letter requested",
		"request_id", middleware.GetRequestID(r.Context()),
		"company_name", req.CompanyName,
		"job_title", req.JobTitle,
		"job_description_length", len(req.JobDescription),
	)
	return &ErrGenerationUnavailable{}
}
