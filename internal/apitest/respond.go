package apitest

import (
	"encoding/json"
	"net/http"

	"github.com/dheerendra45/news-analyzer/internal/middleware"
)

// fieldError is one entry of a 422 validation body.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type problems []fieldError

func (p *problems) add(where, field, msg string) {
	*p = append(*p, fieldError{Loc: []string{where, field}, Msg: msg, Type: "value_error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	middleware.WriteDetail(w, status, msg)
}

func writeProblems(w http.ResponseWriter, p problems) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]problems{"detail": p})
}

// decodeBody decodes the JSON body into v, answering 422 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var p problems
		p.add("body", "", "Invalid JSON body: "+err.Error())
		writeProblems(w, p)
		return false
	}
	return true
}

func isAdmin(r *http.Request) bool {
	p, ok := middleware.PrincipalFromContext(r.Context())
	return ok && p.IsAdmin()
}

func principalID(r *http.Request) string {
	p, _ := middleware.PrincipalFromContext(r.Context())
	return p.UserID
}
