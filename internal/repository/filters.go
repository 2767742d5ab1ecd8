package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/tesfafund/api/internal/model"
)

// whereBuilder collects AND-ed SurrealQL predicates and their variables.
type whereBuilder struct {
	clauses []string
	vars    map[string]interface{}
}

func newWhereBuilder() *whereBuilder {
	return &whereBuilder{vars: make(map[string]interface{})}
}

// contains adds a case-insensitive substring match on field.
func (b *whereBuilder) contains(field, value string) {
	if value == "" {
		return
	}
	b.clauses = append(b.clauses, fmt.Sprintf("string::lowercase(%s ?? '') CONTAINS $%s", field, field))
	b.vars[field] = strings.ToLower(value)
}

func (b *whereBuilder) equals(field, value string) {
	if value == "" {
		return
	}
	b.clauses = append(b.clauses, fmt.Sprintf("%s = $%s", field, field))
	b.vars[field] = value
}

func (b *whereBuilder) intBound(field, param, op string, value *int) {
	if value == nil {
		return
	}
	b.clauses = append(b.clauses, fmt.Sprintf("%s %s $%s", field, op, param))
	b.vars[param] = *value
}

func (b *whereBuilder) timeBound(field, param, op string, value time.Time) {
	b.clauses = append(b.clauses, fmt.Sprintf("%s %s <datetime> $%s", field, op, param))
	b.vars[param] = formatTime(value)
}

// build returns " WHERE a AND b" or "" when nothing was added.
func (b *whereBuilder) build() (string, map[string]interface{}) {
	if len(b.clauses) == 0 {
		return "", b.vars
	}
	return " WHERE " + strings.Join(b.clauses, " AND "), b.vars
}

func recipientWhere(f *model.RecipientFilter) (string, map[string]interface{}) {
	b := newWhereBuilder()
	if f != nil {
		b.contains("first_name", f.FirstName)
		b.contains("middle_name", f.MiddleName)
		b.contains("last_name", f.LastName)
		b.contains("email", f.Email)
	}
	return b.build()
}

func campaignWhere(f *model.CampaignFilter) (string, map[string]interface{}) {
	b := newWhereBuilder()
	if f != nil {
		b.contains("title", f.Title)
		b.equals("recipient_id", f.RecipientID)
		b.intBound("fundraising_goal", "min_goal", ">=", f.MinFundraisingGoal)
		b.intBound("fundraising_goal", "max_goal", "<=", f.MaxFundraisingGoal)
	}
	return b.build()
}

func donationWhere(f *model.DonationFilter) (string, map[string]interface{}) {
	b := newWhereBuilder()
	if f != nil {
		b.equals("campaign_id", f.CampaignID)
		b.intBound("amount", "min_amount", ">=", f.MinAmount)
		b.intBound("amount", "max_amount", "<=", f.MaxAmount)
		if f.StartDate != nil {
			b.timeBound("timestamp", "start_date", ">=", *f.StartDate)
		}
		if end, ok := f.EndBound(); ok {
			b.timeBound("timestamp", "end_date", "<=", end)
		}
	}
	return b.build()
}
