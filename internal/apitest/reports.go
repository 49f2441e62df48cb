package apitest

import (
	"net/http"
	"slices"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

// reportInput is the create and update body of /reports.
type reportInput struct {
	Title         *string        `json:"title"`
	Summary       *string        `json:"summary"`
	Content       *string        `json:"content"`
	FileURL       *string        `json:"file_url"`
	PDFURL        *string        `json:"pdf_url"`
	CoverImageURL *string        `json:"cover_image_url"`
	Tags          []string       `json:"tags"`
	Status        *models.Status `json:"status"`
	ReadingTime   *int           `json:"reading_time"`
	Author        *string        `json:"author"`
	RichTemplate  *bool          `json:"rich_template"`
	PublishedDate *time.Time     `json:"published_date"`
}

func (in reportInput) validate(create bool) problems {
	var p problems
	nonEmpty(&p, "title", in.Title, create)
	nonEmpty(&p, "summary", in.Summary, create)
	if in.Status != nil && !validStatus(*in.Status) {
		p.add("body", "status", "Input should be 'draft', 'published' or 'archived'")
	}
	if in.ReadingTime != nil && *in.ReadingTime < 1 {
		p.add("body", "reading_time", "Input should be greater than or equal to 1")
	}
	return p
}

func (in reportInput) apply(rep *models.Report) {
	setString(&rep.Title, in.Title)
	setString(&rep.Summary, in.Summary)
	setString(&rep.Content, in.Content)
	setString(&rep.FileURL, in.FileURL)
	setString(&rep.PDFURL, in.PDFURL)
	setString(&rep.CoverImageURL, in.CoverImageURL)
	setString(&rep.Author, in.Author)
	if in.Tags != nil {
		rep.Tags = in.Tags
	}
	if in.Status != nil {
		rep.Status = *in.Status
	}
	if in.ReadingTime != nil {
		rep.ReadingTime = *in.ReadingTime
	}
	if in.RichTemplate != nil {
		rep.RichTemplate = *in.RichTemplate
	}
	if in.PublishedDate != nil {
		rep.PublishedDate = in.PublishedDate.UTC()
	}
}

func (s *Server) listReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size, p := pageParams(q, 10)
	if len(p) > 0 {
		writeProblems(w, p)
		return
	}
	tag, search, status := q.Get("tag"), q.Get("search"), q.Get("status")

	s.mu.Lock()
	var matched []models.Report
	for _, rep := range s.reports {
		switch {
		case !statusVisible(r, rep.Status, status):
		case tag != "" && !slices.Contains(rep.Tags, tag):
		case search != "" && !anyContainsFold(search, rep.Title, rep.Summary, rep.Content):
		default:
			matched = append(matched, rep)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PublishedDate.After(matched[j].PublishedDate)
	})
	writeJSON(w, http.StatusOK, paginate(matched, page, size))
}

func (s *Server) reportTags(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	seen := make(map[string]bool)
	tags := []string{}
	for _, rep := range s.reports {
		for _, t := range rep.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	s.mu.Unlock()
	sort.Strings(tags)
	writeJSON(w, http.StatusOK, models.Tags{Tags: tags})
}

func (s *Server) findReport(id string) int {
	for i := range s.reports {
		if s.reports[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "report") {
		return
	}
	s.mu.Lock()
	i := s.findReport(id)
	var rep models.Report
	if i >= 0 {
		rep = s.reports[i]
	}
	s.mu.Unlock()

	if i < 0 || (!isAdmin(r) && rep.Status != models.StatusPublished) {
		writeDetail(w, http.StatusNotFound, "Report not found")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) createReport(w http.ResponseWriter, r *http.Request) {
	var in reportInput
	if !decodeBody(w, r, &in) {
		return
	}
	if p := in.validate(true); len(p) > 0 {
		writeProblems(w, p)
		return
	}
	rep := models.Report{
		Status:    models.StatusDraft,
		Tags:      []string{},
		CreatedBy: principalID(r),
	}
	in.apply(&rep)
	writeJSON(w, http.StatusCreated, s.AddReport(rep))
}

func (s *Server) updateReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "report") {
		return
	}
	var in reportInput
	if !decodeBody(w, r, &in) {
		return
	}
	if p := in.validate(false); len(p) > 0 {
		writeProblems(w, p)
		return
	}

	s.mu.Lock()
	i := s.findReport(id)
	var rep models.Report
	if i >= 0 {
		in.apply(&s.reports[i])
		now := s.now().UTC()
		s.reports[i].UpdatedAt = &now
		rep = s.reports[i]
	}
	s.mu.Unlock()

	if i < 0 {
		writeDetail(w, http.StatusNotFound, "Report not found")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) deleteReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "report") {
		return
	}
	s.mu.Lock()
	i := s.findReport(id)
	if i >= 0 {
		s.reports = append(s.reports[:i], s.reports[i+1:]...)
	}
	s.mu.Unlock()

	if i < 0 {
		writeDetail(w, http.StatusNotFound, "Report not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleReportStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "report") {
		return
	}
	s.mu.Lock()
	i := s.findReport(id)
	var rep models.Report
	if i >= 0 {
		now := s.now().UTC()
		s.reports[i].Status = toggled(s.reports[i].Status)
		s.reports[i].UpdatedAt = &now
		rep = s.reports[i]
	}
	s.mu.Unlock()

	if i < 0 {
		writeDetail(w, http.StatusNotFound, "Report not found")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
