package apitest

import (
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

// newsInput is the create and update body of /news. Nil fields are left
// untouched on update.
type newsInput struct {
	Title              *string        `json:"title"`
	Description        *string        `json:"description"`
	Summary            *string        `json:"summary"`
	Source             *string        `json:"source"`
	SourceURL          *string        `json:"source_url"`
	ImageURL           *string        `json:"image_url"`
	Category           *string        `json:"category"`
	Tier               *models.Tier   `json:"tier"`
	Status             *models.Status `json:"status"`
	Tags               []string       `json:"tags"`
	AffectedRoles      []string       `json:"affected_roles"`
	Companies          []string       `json:"companies"`
	KeyStatValue       *string        `json:"key_stat_value"`
	KeyStatLabel       *string        `json:"key_stat_label"`
	SecondaryStatValue *string        `json:"secondary_stat_value"`
	SecondaryStatLabel *string        `json:"secondary_stat_label"`
	PublishedDate      *time.Time     `json:"published_date"`
}

func (in newsInput) validate(create bool) problems {
	var p problems
	nonEmpty(&p, "title", in.Title, create)
	nonEmpty(&p, "description", in.Description, create)
	if in.Tier != nil && !validTier(*in.Tier) {
		p.add("body", "tier", "Input should be 'tier_1', 'tier_2' or 'tier_3'")
	}
	if in.Status != nil && !validStatus(*in.Status) {
		p.add("body", "status", "Input should be 'draft', 'published' or 'archived'")
	}
	return p
}

func (in newsInput) apply(n *models.NewsItem) {
	setString(&n.Title, in.Title)
	setString(&n.Description, in.Description)
	setString(&n.Summary, in.Summary)
	setString(&n.Source, in.Source)
	setString(&n.SourceURL, in.SourceURL)
	setString(&n.ImageURL, in.ImageURL)
	setString(&n.Category, in.Category)
	if in.Tier != nil {
		n.Tier = *in.Tier
	}
	if in.Status != nil {
		n.Status = *in.Status
	}
	if in.Tags != nil {
		n.Tags = in.Tags
	}
	if in.AffectedRoles != nil {
		n.AffectedRoles = in.AffectedRoles
	}
	if in.Companies != nil {
		n.Companies = in.Companies
	}
	n.KeyStat = mergeStat(n.KeyStat, in.KeyStatValue, in.KeyStatLabel, nil)
	n.SecondaryStat = mergeStat(n.SecondaryStat, in.SecondaryStatValue, in.SecondaryStatLabel, nil)
	if in.PublishedDate != nil {
		n.PublishedDate = in.PublishedDate.UTC()
	}
}

func (s *Server) listNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size, p := pageParams(q, 10)
	if len(p) > 0 {
		writeProblems(w, p)
		return
	}
	category, tier, search, status := q.Get("category"), q.Get("tier"), q.Get("search"), q.Get("status")

	s.mu.Lock()
	var matched []models.NewsItem
	for _, n := range s.news {
		switch {
		case !statusVisible(r, n.Status, status):
		case category != "" && n.Category != category:
		case tier != "" && string(n.Tier) != tier:
		case search != "" && !anyContainsFold(search, n.Title, n.Description, n.Summary):
		default:
			matched = append(matched, n)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PublishedDate.After(matched[j].PublishedDate)
	})
	writeJSON(w, http.StatusOK, paginate(matched, page, size))
}

func (s *Server) newsCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	seen := make(map[string]bool)
	categories := []string{}
	for _, n := range s.news {
		if n.Category != "" && !seen[n.Category] {
			seen[n.Category] = true
			categories = append(categories, n.Category)
		}
	}
	s.mu.Unlock()
	sort.Strings(categories)
	writeJSON(w, http.StatusOK, models.Categories{Categories: categories})
}

// findNews returns the index of id, or -1. Callers hold s.mu.
func (s *Server) findNews(id string) int {
	for i := range s.news {
		if s.news[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) getNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "news") {
		return
	}
	s.mu.Lock()
	i := s.findNews(id)
	var n models.NewsItem
	if i >= 0 {
		n = s.news[i]
	}
	s.mu.Unlock()

	if i < 0 || (!isAdmin(r) && n.Status != models.StatusPublished) {
		writeDetail(w, http.StatusNotFound, "News not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) createNews(w http.ResponseWriter, r *http.Request) {
	var in newsInput
	if !decodeBody(w, r, &in) {
		return
	}
	if p := in.validate(true); len(p) > 0 {
		writeProblems(w, p)
		return
	}
	n := models.NewsItem{
		Category:      "General",
		Tier:          models.Tier2,
		Status:        models.StatusDraft,
		Tags:          []string{},
		AffectedRoles: []string{},
		Companies:     []string{},
		CreatedBy:     principalID(r),
	}
	in.apply(&n)
	writeJSON(w, http.StatusCreated, s.AddNews(n))
}

func (s *Server) updateNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "news") {
		return
	}
	var in newsInput
	if !decodeBody(w, r, &in) {
		return
	}
	if p := in.validate(false); len(p) > 0 {
		writeProblems(w, p)
		return
	}

	s.mu.Lock()
	i := s.findNews(id)
	var n models.NewsItem
	if i >= 0 {
		in.apply(&s.news[i])
		now := s.now().UTC()
		s.news[i].UpdatedAt = &now
		n = s.news[i]
	}
	s.mu.Unlock()

	if i < 0 {
		writeDetail(w, http.StatusNotFound, "News not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) deleteNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "news") {
		return
	}
	s.mu.Lock()
	i := s.findNews(id)
	if i >= 0 {
		s.news = append(s.news[:i], s.news[i+1:]...)
	}
	s.mu.Unlock()

	if i < 0 {
		writeDetail(w, http.StatusNotFound, "News not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleNewsStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "news") {
		return
	}
	s.mu.Lock()
	i := s.findNews(id)
	var n models.NewsItem
	if i >= 0 {
		now := s.now().UTC()
		s.news[i].Status = toggled(s.news[i].Status)
		s.news[i].UpdatedAt = &now
		n = s.news[i]
	}
	s.mu.Unlock()

	if i < 0 {
		writeDetail(w, http.StatusNotFound, "News not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}
