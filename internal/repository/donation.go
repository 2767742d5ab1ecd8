package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tesfafund/api/internal/database"
	"github.com/tesfafund/api/internal/model"
)

// DonationRepository handles donation data access
type DonationRepository struct {
	db database.Database
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db database.Database) *DonationRepository {
	return &DonationRepository{db: db}
}

const campaignGuard = `
	IF array::len((SELECT VALUE id FROM type::thing("campaign", $campaign_id))) = 0 {
		THROW "missing reference: campaign"
	}
`

const donationCreateQuery = `
	CREATE type::thing("donation", $id) CONTENT {
		amount: $amount,
		timestamp: <datetime> $timestamp,
		campaign_id: $campaign_id
	}
`

// CreateQuery returns the unguarded insert statement for d.
func (r *DonationRepository) CreateQuery(d *model.Donation) (string, map[string]interface{}) {
	return donationCreateQuery, map[string]interface{}{
		"id":          d.ID,
		"amount":      d.Amount,
		"timestamp":   formatTime(d.TimeStamp),
		"campaign_id": d.CampaignID,
	}
}

// Create inserts a donation. Campaign existence is re-checked at write time
// so a campaign removed after the caller's check cancels the insert with
// database.ErrMissingReference.
func (r *DonationRepository) Create(ctx context.Context, d *model.Donation) error {
	query, vars := r.CreateQuery(d)

	tb := database.NewTxBuilder()
	tb.Add(campaignGuard, map[string]interface{}{"campaign_id": d.CampaignID})
	tb.Add(query, vars)

	results, err := database.ExecuteTransaction(ctx, r.db, tb)
	if err != nil {
		if isMissingReferenceError(err) {
			return fmt.Errorf("%w: campaign %s", database.ErrMissingReference, d.CampaignID)
		}
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: donation %s already exists", database.ErrDuplicate, d.ID)
		}
		return err
	}

	records := statementRecords(results, 1)
	if len(records) == 0 {
		return errors.New("no result returned")
	}
	d.TimeStamp = parseDonation(records[0]).TimeStamp
	return nil
}

// GetByID retrieves a donation by ID. Returns (nil, nil) when absent.
func (r *DonationRepository) GetByID(ctx context.Context, id string) (*model.Donation, error) {
	query := `SELECT * FROM type::thing("donation", $id)`
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
	return parseDonation(data), nil
}

// List returns donations matching the filter in timestamp order.
func (r *DonationRepository) List(ctx context.Context, filter *model.DonationFilter) ([]*model.Donation, error) {
	where, vars := donationWhere(filter)
	query := "SELECT * FROM donation" + where + " ORDER BY timestamp ASC"

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := statementRecords(results, 0)
	donations := make([]*model.Donation, 0, len(records))
	for _, data := range records {
		donations = append(donations, parseDonation(data))
	}
	return donations, nil
}

// SumByCampaign totals the donation amounts of one campaign.
// A campaign with no donations sums to 0.
func (r *DonationRepository) SumByCampaign(ctx context.Context, campaignID string) (int, error) {
	query := `SELECT math::sum(amount) AS total FROM donation WHERE campaign_id = $campaign_id GROUP ALL`
	vars := map[string]interface{}{"campaign_id": campaignID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if data, ok := result.(map[string]interface{}); ok {
		return getInt(data, "total"), nil
	}
	return 0, nil
}

func parseDonation(data map[string]interface{}) *model.Donation {
	return &model.Donation{
		ID:         recordKey(data["id"]),
		Amount:     getInt(data, "amount"),
		TimeStamp:  getTime(data, "timestamp"),
		CampaignID: getString(data, "campaign_id"),
	}
}
