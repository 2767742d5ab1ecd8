package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tesfafund/api/internal/database"
	"github.com/tesfafund/api/internal/model"
)

// CampaignRepository handles campaign data access
type CampaignRepository struct {
	db database.Database
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db database.Database) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// recipientGuard aborts the surrounding transaction when the recipient is gone.
const recipientGuard = `
	IF array::len((SELECT VALUE id FROM type::thing("recipient", $recipient_id))) = 0 {
		THROW "missing reference: recipient"
	}
`

const campaignCreateQuery = `
	CREATE type::thing("campaign", $id) CONTENT {
		title: $title,
		description: $description,
		fundraising_goal: $fundraising_goal,
		recipient_id: $recipient_id,
		created_on: time::now(),
		updated_on: time::now()
	}
`

// CreateQuery returns the unguarded insert statement for c.
func (r *CampaignRepository) CreateQuery(c *model.Campaign) (string, map[string]interface{}) {
	return campaignCreateQuery, campaignVars(c)
}

// Create inserts a new campaign. The recipient is re-checked inside the
// same transaction; a missing recipient yields database.ErrMissingReference.
func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	vars := campaignVars(c)

	tb := database.NewTxBuilder()
	tb.Add(recipientGuard, map[string]interface{}{"recipient_id": c.RecipientID})
	tb.Add(campaignCreateQuery, vars)

	results, err := database.ExecuteTransaction(ctx, r.db, tb)
	if err != nil {
		if isMissingReferenceError(err) {
			return fmt.Errorf("%w: recipient %s", database.ErrMissingReference, c.RecipientID)
		}
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: campaign %s already exists", database.ErrDuplicate, c.ID)
		}
		return err
	}

	records := statementRecords(results, 1)
	if len(records) == 0 {
		return errors.New("no result returned")
	}
	created := parseCampaign(records[0])
	c.CreatedOn = created.CreatedOn
	c.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a campaign by ID. Returns (nil, nil) when absent.
func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	query := `SELECT * FROM type::thing("campaign", $id)`
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
	return parseCampaign(data), nil
}

// Replace overwrites an existing campaign and returns the number of
// documents changed. The recipient is re-checked in the same transaction.
func (r *CampaignRepository) Replace(ctx context.Context, c *model.Campaign) (int, error) {
	query := `
		UPDATE campaign SET
			title = $title,
			description = $description,
			fundraising_goal = $fundraising_goal,
			recipient_id = $recipient_id,
			updated_on = time::now()
		WHERE id = type::thing("campaign", $id)
	`

	tb := database.NewTxBuilder()
	tb.Add(recipientGuard, map[string]interface{}{"recipient_id": c.RecipientID})
	tb.Add(query, campaignVars(c))

	results, err := database.ExecuteTransaction(ctx, r.db, tb)
	if err != nil {
		if isMissingReferenceError(err) {
			return 0, fmt.Errorf("%w: recipient %s", database.ErrMissingReference, c.RecipientID)
		}
		return 0, err
	}

	records := statementRecords(results, 1)
	if len(records) > 0 {
		updated := parseCampaign(records[0])
		c.CreatedOn = updated.CreatedOn
		c.UpdatedOn = updated.UpdatedOn
	}
	return len(records), nil
}

// Delete removes a campaign together with its donations in one transaction.
// The returned count covers campaign documents only.
func (r *CampaignRepository) Delete(ctx context.Context, id string) (int, error) {
	vars := map[string]interface{}{"campaign_id": id}

	tb := database.NewTxBuilder()
	tb.Add(`DELETE donation WHERE campaign_id = $campaign_id`, vars)
	tb.Add(`DELETE campaign WHERE id = type::thing("campaign", $campaign_id) RETURN BEFORE`, vars)

	results, err := database.ExecuteTransaction(ctx, r.db, tb)
	if err != nil {
		return 0, err
	}
	return len(statementRecords(results, 1)), nil
}

// List returns campaigns matching the filter, oldest first.
func (r *CampaignRepository) List(ctx context.Context, filter *model.CampaignFilter) ([]*model.Campaign, error) {
	where, vars := campaignWhere(filter)
	query := "SELECT * FROM campaign" + where + " ORDER BY created_on ASC"

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := statementRecords(results, 0)
	campaigns := make([]*model.Campaign, 0, len(records))
	for _, data := range records {
		campaigns = append(campaigns, parseCampaign(data))
	}
	return campaigns, nil
}

func campaignVars(c *model.Campaign) map[string]interface{} {
	return map[string]interface{}{
		"id":               c.ID,
		"title":            c.Title,
		"description":      c.Description,
		"fundraising_goal": c.FundraisingGoal,
		"recipient_id":     c.RecipientID,
	}
}

func parseCampaign(data map[string]interface{}) *model.Campaign {
	return &model.Campaign{
		ID:              recordKey(data["id"]),
		Title:           getString(data, "title"),
		Description:     getString(data, "description"),
		FundraisingGoal: getInt(data, "fundraising_goal"),
		RecipientID:     getString(data, "recipient_id"),
		CreatedOn:       getTime(data, "created_on"),
		UpdatedOn:       getTime(data, "updated_on"),
	}
}
