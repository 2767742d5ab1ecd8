package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/tesfafund/api/internal/database"
)

// isMissingReferenceError checks if a guarded write was cancelled because
// its referenced record was absent.
func isMissingReferenceError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, database.ErrMissingReference) ||
		strings.Contains(err.Error(), database.MissingReferenceMarker)
}

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, database.ErrDuplicate) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// recordKey returns the key part of a SurrealDB record id, so
// recipient:⟨3f1c...⟩ becomes 3f1c....
func recordKey(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return stripTable(v)
	case models.RecordID:
		return fmt.Sprintf("%v", v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%v", v.ID)
		}
		return ""
	case map[string]interface{}:
		if idVal, ok := v["id"]; ok {
			return extractIDValue(idVal)
		}
		if idVal, ok := v["ID"]; ok {
			return extractIDValue(idVal)
		}
	}
	return stripTable(fmt.Sprintf("%v", id))
}

func stripTable(s string) string {
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimPrefix(s, "⟨")
	s = strings.TrimSuffix(s, "⟩")
	return strings.Trim(s, "`")
}

func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		if s, ok := m["String"].(string); ok {
			return s
		}
		if s, ok := m["string"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// statementRecords returns the record maps produced by the statement at
// index in a multi-statement query result.
func statementRecords(results []interface{}, index int) []map[string]interface{} {
	if index < 0 || index >= len(results) {
		return nil
	}
	resp, ok := results[index].(map[string]interface{})
	if !ok {
		return nil
	}
	var items []interface{}
	switch r := resp["result"].(type) {
	case []interface{}:
		items = r
	case map[string]interface{}:
		items = []interface{}{r}
	default:
		return nil
	}
	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			records = append(records, m)
		}
	}
	return records
}

// formatTime renders t for a <datetime> cast in SurrealQL.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getStringPtr extracts an optional string value from a map
func getStringPtr(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

// getInt extracts an int value from a map
func getInt(m map[string]interface{}, key string) int {
	return toInt(m[key])
}

func toInt(v interface{}) int {
	switch c := v.(type) {
	case float64:
		return int(c)
	case float32:
		return int(c)
	case int:
		return c
	case int64:
		return int(c)
	case uint64:
		return int(c)
	case int32:
		return int(c)
	case uint32:
		return int(c)
	}
	return 0
}

// getTime extracts a time value from a map
func getTime(m map[string]interface{}, key string) time.Time {
	switch v := m[key].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t.UTC()
		}
	case time.Time:
		return v.UTC()
	case models.CustomDateTime:
		return v.Time.UTC()
	case *models.CustomDateTime:
		if v != nil {
			return v.Time.UTC()
		}
	}
	return time.Time{}
}

// ptrToNone converts a string pointer to either the string value or nil,
// which SurrealDB receives as NONE.
func ptrToNone(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
