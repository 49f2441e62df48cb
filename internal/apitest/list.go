package apitest

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

const maxPageSize = 100

// pageParams reads page and size, defaulting size to defSize.
func pageParams(q url.Values, defSize int) (page, size int, p problems) {
	page, size = 1, defSize
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			p.add("query", "page", "Input should be greater than or equal to 1")
		}
		page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageSize {
			p.add("query", "size", "Input should be between 1 and 100")
		}
		size = n
	}
	return page, size, p
}

// paginate cuts one page out of items. Pages is at least 1, so an empty
// result still reports a single page.
func paginate[T any](items []T, page, size int) models.ListResult[T] {
	total := len(items)
	pages := 1
	if total > 0 {
		pages = (total + size - 1) / size
	}
	start := min((page-1)*size, total)
	end := min(start+size, total)

	out := make([]T, end-start)
	copy(out, items[start:end])
	return models.ListResult[T]{Items: out, Total: total, Page: page, Size: size, Pages: pages}
}

// statusVisible applies the publication rule shared by every collection:
// anonymous and regular users see published records only; admins see all,
// optionally narrowed by the status query.
func statusVisible(r *http.Request, s models.Status, want string) bool {
	if !isAdmin(r) {
		return s == models.StatusPublished
	}
	return want == "" || string(s) == want
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyContainsFold(substr string, fields ...string) bool {
	for _, f := range fields {
		if containsFold(f, substr) {
			return true
		}
	}
	return false
}

// checkID answers 400 for ids the API could never have issued.
func checkID(w http.ResponseWriter, id, kind string) bool {
	if _, err := uuid.Parse(id); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid "+kind+" ID format")
		return false
	}
	return true
}

func validTier(t models.Tier) bool {
	switch t {
	case models.Tier1, models.Tier2, models.Tier3:
		return true
	}
	return false
}

func validStatus(s models.Status) bool {
	switch s {
	case models.StatusDraft, models.StatusPublished, models.StatusArchived:
		return true
	}
	return false
}

// toggled returns the status a toggle moves s to: draft publishes,
// anything else returns to draft.
func toggled(s models.Status) models.Status {
	if s == models.StatusDraft {
		return models.StatusPublished
	}
	return models.StatusDraft
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// mergeStat applies flat stat fields onto the nested stat record.
func mergeStat(cur *models.Stat, value, label, typ *string) *models.Stat {
	if value == nil && label == nil && typ == nil {
		return cur
	}
	next := models.Stat{}
	if cur != nil {
		next = *cur
	}
	setString(&next.Value, value)
	setString(&next.Label, label)
	setString(&next.Type, typ)
	if next == (models.Stat{}) {
		return nil
	}
	return &next
}

func nonEmpty(p *problems, field string, v *string, required bool) {
	if v == nil {
		if required {
			p.add("body", field, "Field required")
		}
		return
	}
	if strings.TrimSpace(*v) == "" {
		p.add("body", field, "String should have at least 1 character")
	}
}
