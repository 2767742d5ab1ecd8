package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tesfafund/api/internal/database"
	"github.com/tesfafund/api/internal/model"
)

// RecipientRepository handles recipient data access
type RecipientRepository struct {
	db database.Database
}

// NewRecipientRepository creates a new recipient repository
func NewRecipientRepository(db database.Database) *RecipientRepository {
	return &RecipientRepository{db: db}
}

const recipientCreateQuery = `
	CREATE type::thing("recipient", $id) CONTENT {
		first_name: $first_name,
		middle_name: IF $middle_name IS NOT NULL THEN $middle_name ELSE NONE END,
		last_name: $last_name,
		email: $email,
		password_hash: IF $password_hash IS NOT NULL THEN $password_hash ELSE NONE END,
		created_on: time::now(),
		updated_on: time::now()
	}
`

// CreateQuery returns the statement and variables that insert rec. Used
// directly by Create and by batch loaders.
func (r *RecipientRepository) CreateQuery(rec *model.Recipient) (string, map[string]interface{}) {
	return recipientCreateQuery, map[string]interface{}{
		"id":            rec.ID,
		"first_name":    rec.FirstName,
		"middle_name":   ptrToNone(rec.MiddleName),
		"last_name":     rec.LastName,
		"email":         rec.Email,
		"password_hash": ptrToNone(rec.PasswordHash),
	}
}

// Create inserts a new recipient. rec.ID must already be set.
func (r *RecipientRepository) Create(ctx context.Context, rec *model.Recipient) error {
	query, vars := r.CreateQuery(rec)

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: recipient %s already exists", database.ErrDuplicate, rec.ID)
		}
		return err
	}

	records := statementRecords(results, 0)
	if len(records) == 0 {
		return errors.New("no result returned")
	}
	created := parseRecipient(records[0])
	rec.CreatedOn = created.CreatedOn
	rec.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a recipient by ID. Returns (nil, nil) when absent.
func (r *RecipientRepository) GetByID(ctx context.Context, id string) (*model.Recipient, error) {
	query := `SELECT * FROM type::thing("recipient", $id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return parseRecipient(data), nil
}

// Replace overwrites the profile fields of an existing recipient and
// returns the number of documents changed. The stored password hash is kept
// when rec.PasswordHash is nil.
func (r *RecipientRepository) Replace(ctx context.Context, rec *model.Recipient) (int, error) {
	query := `
		UPDATE recipient SET
			first_name = $first_name,
			middle_name = IF $middle_name IS NOT NULL THEN $middle_name ELSE NONE END,
			last_name = $last_name,
			email = $email,
			password_hash = IF $password_hash IS NOT NULL THEN $password_hash ELSE password_hash END,
			updated_on = time::now()
		WHERE id = type::thing("recipient", $id)
	`
	vars := map[string]interface{}{
		"id":            rec.ID,
		"first_name":    rec.FirstName,
		"middle_name":   ptrToNone(rec.MiddleName),
		"last_name":     rec.LastName,
		"email":         rec.Email,
		"password_hash": ptrToNone(rec.PasswordHash),
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return 0, err
	}

	records := statementRecords(results, 0)
	if len(records) > 0 {
		updated := parseRecipient(records[0])
		rec.PasswordHash = updated.PasswordHash
		rec.CreatedOn = updated.CreatedOn
		rec.UpdatedOn = updated.UpdatedOn
	}
	return len(records), nil
}

// Delete removes a recipient and returns the number of documents removed.
func (r *RecipientRepository) Delete(ctx context.Context, id string) (int, error) {
	query := `DELETE recipient WHERE id = type::thing("recipient", $id) RETURN BEFORE`
	vars := map[string]interface{}{"id": id}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return 0, err
	}
	return len(statementRecords(results, 0)), nil
}

// List returns recipients matching the filter, oldest first.
func (r *RecipientRepository) List(ctx context.Context, filter *model.RecipientFilter) ([]*model.Recipient, error) {
	where, vars := recipientWhere(filter)
	query := "SELECT * FROM recipient" + where + " ORDER BY created_on ASC"

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := statementRecords(results, 0)
	recipients := make([]*model.Recipient, 0, len(records))
	for _, data := range records {
		recipients = append(recipients, parseRecipient(data))
	}
	return recipients, nil
}

func parseRecipient(data map[string]interface{}) *model.Recipient {
	return &model.Recipient{
		ID:           recordKey(data["id"]),
		FirstName:    getString(data, "first_name"),
		MiddleName:   getStringPtr(data, "middle_name"),
		LastName:     getString(data, "last_name"),
		Email:        getString(data, "email"),
		PasswordHash: getStringPtr(data, "password_hash"),
		CreatedOn:    getTime(data, "created_on"),
		UpdatedOn:    getTime(data, "updated_on"),
	}
}
