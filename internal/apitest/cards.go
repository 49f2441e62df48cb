package apitest

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

// cardInput is the create and update body of /intelligence-cards. Stats
// travel flattened as statN_value / statN_label / stat2_type.
type cardInput struct {
	Title           *string        `json:"title"`
	TitleHighlight  *string        `json:"title_highlight"`
	Company         *string        `json:"company"`
	CompanyIcon     *string        `json:"company_icon"`
	CompanyGradient *string        `json:"company_gradient"`
	CompanyLogo     *string        `json:"company_logo"`
	Category        *string        `json:"category"`
	Excerpt         *string        `json:"excerpt"`
	Tier            *models.Tier   `json:"tier"`
	TierLabel       *string        `json:"tier_label"`
	Status          *models.Status `json:"status"`
	Stat1Value      *string        `json:"stat1_value"`
	Stat1Label      *string        `json:"stat1_label"`
	Stat2Value      *string        `json:"stat2_value"`
	Stat2Label      *string        `json:"stat2_label"`
	Stat2Type       *string        `json:"stat2_type"`
	Stat3Value      *string        `json:"stat3_value"`
	Stat3Label      *string        `json:"stat3_label"`
	RPIScore        *string        `json:"rpi_score"`
	JobsAffected    *string        `json:"jobs_affected"`
	AIInvestment    *string        `json:"ai_investment"`
	ReportID        *string        `json:"report_id"`
	AnalysisURL     *string        `json:"analysis_url"`
	IsFeatured      *bool          `json:"is_featured"`
	DisplayOrder    *int           `json:"display_order"`
	Industry        *string        `json:"industry"`
	Tags            []string       `json:"tags"`
	PublishedDate   *time.Time     `json:"published_date"`
}

func (in cardInput) validate(create bool) problems {
	var p problems
	nonEmpty(&p, "title", in.Title, create)
	nonEmpty(&p, "company", in.Company, create)
	if in.Tier != nil && !validTier(*in.Tier) {
		p.add("body", "tier", "Input should be 'tier_1', 'tier_2' or 'tier_3'")
	}
	if in.Status != nil && !validStatus(*in.Status) {
		p.add("body", "status", "Input should be 'draft', 'published' or 'archived'")
	}
	return p
}

func (in cardInput) apply(c *models.IntelligenceCard) {
	setString(&c.Title, in.Title)
	setString(&c.TitleHighlight, in.TitleHighlight)
	setString(&c.Company, in.Company)
	setString(&c.CompanyIcon, in.CompanyIcon)
	setString(&c.CompanyGradient, in.CompanyGradient)
	setString(&c.CompanyLogo, in.CompanyLogo)
	setString(&c.Category, in.Category)
	setString(&c.Excerpt, in.Excerpt)
	setString(&c.TierLabel, in.TierLabel)
	setString(&c.RPIScore, in.RPIScore)
	setString(&c.JobsAffected, in.JobsAffected)
	setString(&c.AIInvestment, in.AIInvestment)
	setString(&c.ReportID, in.ReportID)
	setString(&c.AnalysisURL, in.AnalysisURL)
	setString(&c.Industry, in.Industry)
	if in.Tier != nil {
		c.Tier = *in.Tier
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.IsFeatured != nil {
		c.IsFeatured = *in.IsFeatured
	}
	if in.DisplayOrder != nil {
		c.DisplayOrder = *in.DisplayOrder
	}
	if in.Tags != nil {
		c.Tags = in.Tags
	}
	c.Stat1 = mergeStat(c.Stat1, in.Stat1Value, in.Stat1Label, nil)
	c.Stat2 = mergeStat(c.Stat2, in.Stat2Value, in.Stat2Label, in.Stat2Type)
	c.Stat3 = mergeStat(c.Stat3, in.Stat3Value, in.Stat3Label, nil)
	if in.PublishedDate != nil {
		c.PublishedDate = in.PublishedDate.UTC()
	}
}

// dateRange resolves a date_filter value to a [from, to) window. Unknown
// values do not filter.
func dateRange(filter string, now time.Time) (from, to time.Time, ok bool) {
	switch filter {
	case "7d":
		return now.AddDate(0, 0, -7), time.Time{}, true
	case "30d":
		return now.AddDate(0, 0, -30), time.Time{}, true
	case "90d":
		return now.AddDate(0, 0, -90), time.Time{}, true
	}
	if len(filter) == 4 {
		if year, err := strconv.Atoi(filter); err == nil {
			from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			return from, from.AddDate(1, 0, 0), true
		}
	}
	return time.Time{}, time.Time{}, false
}

// magnitude reads display figures such as "87", "12.5K" or "$2.1B".
func magnitude(s string) float64 {
	s = strings.TrimSpace(strings.ToUpper(s))
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "K"):
		mult = 1e3
	case strings.HasSuffix(s, "M"):
		mult = 1e6
	case strings.HasSuffix(s, "B"):
		mult = 1e9
	}
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return f * mult
}

var cardOrders = map[string]func(a, b models.IntelligenceCard) bool{
	"newest": func(a, b models.IntelligenceCard) bool { return a.PublishedDate.After(b.PublishedDate) },
	"oldest": func(a, b models.IntelligenceCard) bool { return a.PublishedDate.Before(b.PublishedDate) },
	"rpi-high": func(a, b models.IntelligenceCard) bool {
		return byFigure(magnitude(a.RPIScore), magnitude(b.RPIScore), a, b, true)
	},
	"rpi-low": func(a, b models.IntelligenceCard) bool {
		return byFigure(magnitude(a.RPIScore), magnitude(b.RPIScore), a, b, false)
	},
	"jobs": func(a, b models.IntelligenceCard) bool {
		return byFigure(magnitude(a.JobsAffected), magnitude(b.JobsAffected), a, b, true)
	},
}

func byFigure(x, y float64, a, b models.IntelligenceCard, desc bool) bool {
	if x != y {
		if desc {
			return x > y
		}
		return x < y
	}
	return a.PublishedDate.After(b.PublishedDate)
}

func (s *Server) listCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size, p := pageParams(q, 12)
	sortBy := q.Get("sort_by")
	if sortBy == "" {
		sortBy = "newest"
	}
	less, ok := cardOrders[sortBy]
	if !ok {
		p.add("query", "sort_by", "String should match pattern '^(newest|oldest|rpi-high|rpi-low|jobs)$'")
	}
	if len(p) > 0 {
		writeProblems(w, p)
		return
	}

	company, tier, category, industry := q.Get("company"), q.Get("tier"), q.Get("category"), q.Get("industry")
	search, status := q.Get("search"), q.Get("status")
	from, to, dated := dateRange(q.Get("date_filter"), s.now().UTC())

	s.mu.Lock()
	var matched []models.IntelligenceCard
	for _, c := range s.cards {
		switch {
		case !statusVisible(r, c.Status, status):
		case company != "" && !containsFold(c.Company, company):
		case tier != "" && string(c.Tier) != tier:
		case category != "" && !containsFold(c.Category, category):
		case industry != "" && !containsFold(c.Industry, industry):
		case dated && c.PublishedDate.Before(from):
		case dated && !to.IsZero() && !c.PublishedDate.Before(to):
		case search != "" && !anyContainsFold(search, c.Title, c.Company, c.Excerpt, c.Category):
		default:
			matched = append(matched, c)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	writeJSON(w, http.StatusOK, paginate(matched, page, size))
}

func (s *Server) published() []models.IntelligenceCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.IntelligenceCard
	for _, c := range s.cards {
		if c.Status == models.StatusPublished {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) landingCards(w http.ResponseWriter, r *http.Request) {
	limit := 8
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 20 {
			var p problems
			p.add("query", "limit", "Input should be between 1 and 20")
			writeProblems(w, p)
			return
		}
		limit = n
	}

	cards := s.published()
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].DisplayOrder != cards[j].DisplayOrder {
			return cards[i].DisplayOrder < cards[j].DisplayOrder
		}
		return cards[i].PublishedDate.After(cards[j].PublishedDate)
	})
	if len(cards) > limit {
		cards = cards[:limit]
	}
	if cards == nil {
		cards = []models.IntelligenceCard{}
	}
	writeJSON(w, http.StatusOK, cards)
}

// featuredCard answers the featured published card, falling back to the
// most recent published one, or null.
func (s *Server) featuredCard(w http.ResponseWriter, r *http.Request) {
	var best *models.IntelligenceCard
	for _, c := range s.published() {
		if c.IsFeatured {
			writeJSON(w, http.StatusOK, c)
			return
		}
		if best == nil || c.PublishedDate.After(best.PublishedDate) {
			best = &c
		}
	}
	writeJSON(w, http.StatusOK, best)
}

func (s *Server) platformStats(w http.ResponseWriter, r *http.Request) {
	cards := s.published()
	companies := make(map[string]bool)
	for _, c := range cards {
		companies[c.Company] = true
	}
	writeJSON(w, http.StatusOK, models.PlatformStats{
		TotalAnalyses:      len(cards),
		TotalRolesAssessed: 285000,
		AICapitalTracked:   "412B",
		JobsImpacted:       "847K",
		TotalCompanies:     len(companies),
		AccuracyRate:       "94%",
	})
}

func (s *Server) adminStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var st models.AdminStats
	for _, c := range s.cards {
		st.TotalCards++
		switch c.Status {
		case models.StatusPublished:
			st.PublishedCards++
		case models.StatusDraft:
			st.DraftCards++
		}
		if c.IsFeatured {
			st.FeaturedCards++
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) findCard(id string) int {
	for i := range s.cards {
		if s.cards[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) getCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "card") {
		return
	}
	s.mu.Lock()
	i := s.findCard(id)
	var c models.IntelligenceCard
	if i >= 0 {
		c = s.cards[i]
	}
	s.mu.Unlock()

	if i < 0 || (!isAdmin(r) && c.Status != models.StatusPublished) {
		writeDetail(w, http.StatusNotFound, "Card not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) createCard(w http.ResponseWriter, r *http.Request) {
	var in cardInput
	if !decodeBody(w, r, &in) {
		return
	}
	if p := in.validate(true); len(p) > 0 {
		writeProblems(w, p)
		return
	}
	c := models.IntelligenceCard{
		Category:  "General",
		Tier:      models.Tier2,
		TierLabel: "Tier 2 Elevated",
		Status:    models.StatusDraft,
		Tags:      []string{},
		CreatedBy: principalID(r),
	}
	in.apply(&c)
	writeJSON(w, http.StatusOK, s.AddCard(c))
}

func (s *Server) updateCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "card") {
		return
	}
	var in cardInput
	if !decodeBody(w, r, &in) {
		return
	}
	if p := in.validate(false); len(p) > 0 {
		writeProblems(w, p)
		return
	}
	s.mutateCard(w, id, func(c *models.IntelligenceCard, now time.Time) {
		in.apply(c)
	})
}

func (s *Server) deleteCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "card") {
		return
	}
	s.mu.Lock()
	i := s.findCard(id)
	if i >= 0 {
		s.cards = append(s.cards[:i], s.cards[i+1:]...)
	}
	s.mu.Unlock()

	if i < 0 {
		writeDetail(w, http.StatusNotFound, "Card not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Card deleted successfully"})
}

func (s *Server) toggleCardStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "card") {
		return
	}
	s.mutateCard(w, id, func(c *models.IntelligenceCard, now time.Time) {
		c.Status = toggled(c.Status)
		if c.Status == models.StatusPublished {
			c.PublishedDate = now
		}
	})
}

// toggleCardFeatured flips the featured flag; featuring a card unfeatures
// every other one.
func (s *Server) toggleCardFeatured(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !checkID(w, id, "card") {
		return
	}
	s.mutateCard(w, id, func(c *models.IntelligenceCard, now time.Time) {
		c.IsFeatured = !c.IsFeatured
		if !c.IsFeatured {
			return
		}
		for i := range s.cards {
			if s.cards[i].ID != c.ID {
				s.cards[i].IsFeatured = false
			}
		}
	})
}

// mutateCard applies fn to card id under the lock and answers the result.
func (s *Server) mutateCard(w http.ResponseWriter, id string, fn func(c *models.IntelligenceCard, now time.Time)) {
	s.mu.Lock()
	i := s.findCard(id)
	var c models.IntelligenceCard
	if i >= 0 {
		now := s.now().UTC()
		fn(&s.cards[i], now)
		s.cards[i].UpdatedAt = &now
		c = s.cards[i]
	}
	s.mu.Unlock()

	if i < 0 {
		writeDetail(w, http.StatusNotFound, "Card not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}
