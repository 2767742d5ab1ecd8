package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tesfafund/api/internal/model"
)

// dateOnly is accepted for date query parameters besides RFC 3339.
const dateOnly = "2006-01-02"

// pathID reads the {id} path parameter in canonical form and rejects
// anything but a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !model.IsValidID(id) {
		WriteError(w, model.NewBadRequestError("id must be a valid UUID"))
		return "", false
	}
	return model.CanonicalID(id), true
}

// queryParser collects query-string conversion failures.
type queryParser struct {
	values url.Values
	errors []model.FieldError
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{values: r.URL.Query()}
}

func (p *queryParser) str(name string) string {
	return strings.TrimSpace(p.values.Get(name))
}

func (p *queryParser) id(name string) string {
	v := p.str(name)
	if v != "" && !model.IsValidID(v) {
		p.errors = append(p.errors, model.FieldError{Field: name, Message: name + " must be a valid UUID"})
		return ""
	}
	return model.CanonicalID(v)
}

func (p *queryParser) int(name string) *int {
	v := p.str(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errors = append(p.errors, model.FieldError{Field: name, Message: name + " must be an integer"})
		return nil
	}
	return &n
}

func (p *queryParser) time(name string) *time.Time {
	v := p.str(name)
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.UTC()
		return &t
	}
	if t, err := time.Parse(dateOnly, v); err == nil {
		return &t
	}
	p.errors = append(p.errors, model.FieldError{Field: name, Message: name + " must be a date (YYYY-MM-DD) or RFC 3339 timestamp"})
	return nil
}

// problem returns a 400 describing every bad parameter, or nil.
func (p *queryParser) problem() *model.ProblemDetails {
	if len(p.errors) == 0 {
		return nil
	}
	pd := model.NewBadRequestError("invalid query parameters")
	pd.Errors = p.errors
	return pd
}
