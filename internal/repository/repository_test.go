package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesfafund/api/internal/database"
	"github.com/tesfafund/api/internal/model"
)

// stubDB answers every query with the configured results.
type stubDB struct {
	queries []string
	vars    []map[string]interface{}
	results []interface{}
	err     error
}

func (d *stubDB) Connect(context.Context) error { return nil }
func (d *stubDB) Close() error                  { return nil }
func (d *stubDB) Ping(context.Context) error    { return nil }

func (d *stubDB) Query(_ context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	d.queries = append(d.queries, query)
	d.vars = append(d.vars, vars)
	return d.results, d.err
}

func (d *stubDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := d.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return database.FirstRecord(results)
}

func (d *stubDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := d.Query(ctx, query, vars)
	return err
}

func (d *stubDB) lastQuery() string {
	if len(d.queries) == 0 {
		return ""
	}
	return d.queries[len(d.queries)-1]
}

func ok(records ...interface{}) map[string]interface{} {
	if records == nil {
		records = []interface{}{}
	}
	return map[string]interface{}{"status": "OK", "result": records}
}

const (
	recipientKey = "0b6f9e57-8a44-4c1e-9d3a-5f2b7c8e1a90"
	campaignKey  = "7d2e4c11-0f3a-4b6d-8e9f-1a2b3c4d5e6f"
	donationKey  = "c4a1e2b3-9f8d-4e7c-a6b5-d4c3b2a1f0e9"
)

func TestRecipientRepository_Create_CopiesTimestamps(t *testing.T) {
	created := "2022-01-01T10:00:00Z"
	db := &stubDB{results: []interface{}{ok(map[string]interface{}{
		"id":         "recipient:" + recipientKey,
		"first_name": "Abebe",
		"created_on": created,
		"updated_on": created,
	})}}
	repo := NewRecipientRepository(db)

	rec := &model.Recipient{ID: recipientKey, FirstName: "Abebe", LastName: "Kebede", Email: "abebe@example.com"}
	require.NoError(t, repo.Create(context.Background(), rec))

	assert.Equal(t, time.Date(2022, 1, 1, 10, 0, 0, 0, time.UTC), rec.CreatedOn)
	assert.Equal(t, rec.CreatedOn, rec.UpdatedOn)
	require.Len(t, db.vars, 1)
	assert.Equal(t, recipientKey, db.vars[0]["id"])
	assert.Nil(t, db.vars[0]["middle_name"])
}

func TestRecipientRepository_Create_Duplicate(t *testing.T) {
	db := &stubDB{err: database.ErrDuplicate}
	repo := NewRecipientRepository(db)

	err := repo.Create(context.Background(), &model.Recipient{ID: recipientKey})
	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestRecipientRepository_GetByID_NotFoundIsNil(t *testing.T) {
	db := &stubDB{results: []interface{}{ok()}}
	repo := NewRecipientRepository(db)

	rec, err := repo.GetByID(context.Background(), recipientKey)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRecipientRepository_GetByID_ParsesRecord(t *testing.T) {
	db := &stubDB{results: []interface{}{ok(map[string]interface{}{
		"id":            "recipient:⟨" + recipientKey + "⟩",
		"first_name":    "Abebe",
		"middle_name":   "Tesfaye",
		"last_name":     "Kebede",
		"email":         "abebe@example.com",
		"password_hash": "$2a$12$hash",
	})}}
	repo := NewRecipientRepository(db)

	rec, err := repo.GetByID(context.Background(), recipientKey)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, recipientKey, rec.ID)
	assert.Equal(t, "Kebede", rec.LastName)
	require.NotNil(t, rec.MiddleName)
	assert.Equal(t, "Tesfaye", *rec.MiddleName)
	require.NotNil(t, rec.PasswordHash)
}

func TestRecipientRepository_Replace_CountsChangedDocuments(t *testing.T) {
	db := &stubDB{results: []interface{}{ok()}}
	repo := NewRecipientRepository(db)

	n, err := repo.Replace(context.Background(), &model.Recipient{ID: recipientKey})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	db.results = []interface{}{ok(map[string]interface{}{"id": recipientKey, "password_hash": "kept"})}
	rec := &model.Recipient{ID: recipientKey}
	n, err = repo.Replace(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NotNil(t, rec.PasswordHash)
	assert.Equal(t, "kept", *rec.PasswordHash)
}

func TestRecipientRepository_List_AppliesFilter(t *testing.T) {
	db := &stubDB{results: []interface{}{ok(
		map[string]interface{}{"id": "recipient:a", "first_name": "Abebe"},
		map[string]interface{}{"id": "recipient:b", "first_name": "Abel"},
	)}}
	repo := NewRecipientRepository(db)

	list, err := repo.List(context.Background(), &model.RecipientFilter{FirstName: "Ab"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Contains(t, db.lastQuery(), "WHERE string::lowercase(first_name ?? '') CONTAINS $first_name")
	assert.True(t, strings.HasSuffix(db.lastQuery(), "ORDER BY created_on ASC"))
}

func TestCampaignRepository_Create_GuardsRecipient(t *testing.T) {
	db := &stubDB{results: []interface{}{
		ok(),
		ok(map[string]interface{}{"id": "campaign:" + campaignKey, "created_on": "2022-01-01T00:00:00Z"}),
	}}
	repo := NewCampaignRepository(db)

	c := &model.Campaign{ID: campaignKey, Title: "Well", FundraisingGoal: 1000, RecipientID: recipientKey}
	require.NoError(t, repo.Create(context.Background(), c))

	q := db.lastQuery()
	assert.True(t, strings.HasPrefix(q, "BEGIN TRANSACTION;"))
	assert.Less(t, strings.Index(q, "THROW"), strings.Index(q, "CREATE type::thing(\"campaign\""))
	assert.False(t, c.CreatedOn.IsZero())
}

func TestCampaignRepository_Create_MissingRecipient(t *testing.T) {
	db := &stubDB{err: errors.New("An error occurred: missing reference: recipient")}
	repo := NewCampaignRepository(db)

	err := repo.Create(context.Background(), &model.Campaign{ID: campaignKey, RecipientID: recipientKey})
	assert.ErrorIs(t, err, database.ErrMissingReference)
	assert.Contains(t, err.Error(), recipientKey)
}

func TestCampaignRepository_Replace_MissingRecipient(t *testing.T) {
	db := &stubDB{err: database.ErrMissingReference}
	repo := NewCampaignRepository(db)

	_, err := repo.Replace(context.Background(), &model.Campaign{ID: campaignKey, RecipientID: recipientKey})
	assert.ErrorIs(t, err, database.ErrMissingReference)
}

func TestCampaignRepository_Delete_CascadesDonations(t *testing.T) {
	db := &stubDB{results: []interface{}{
		ok(map[string]interface{}{"id": "donation:1"}, map[string]interface{}{"id": "donation:2"}),
		ok(map[string]interface{}{"id": "campaign:" + campaignKey}),
	}}
	repo := NewCampaignRepository(db)

	n, err := repo.Delete(context.Background(), campaignKey)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "count covers campaigns only")

	q := db.lastQuery()
	assert.Less(t, strings.Index(q, "DELETE donation"), strings.Index(q, "DELETE campaign"))
}

func TestCampaignRepository_Delete_Absent(t *testing.T) {
	db := &stubDB{results: []interface{}{ok(), ok()}}
	repo := NewCampaignRepository(db)

	n, err := repo.Delete(context.Background(), campaignKey)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCampaignRepository_List_ParsesGoal(t *testing.T) {
	db := &stubDB{results: []interface{}{ok(map[string]interface{}{
		"id":               "campaign:" + campaignKey,
		"title":            "Well",
		"fundraising_goal": float64(10000),
		"recipient_id":     recipientKey,
	})}}
	repo := NewCampaignRepository(db)

	list, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 10000, list[0].FundraisingGoal)
	assert.Equal(t, recipientKey, list[0].RecipientID)
	assert.Equal(t, "SELECT * FROM campaign ORDER BY created_on ASC", db.lastQuery())
}

func TestDonationRepository_Create_FormatsTimestamp(t *testing.T) {
	ts := time.Date(2022, 1, 2, 9, 15, 0, 0, time.FixedZone("EAT", 3*60*60))
	db := &stubDB{results: []interface{}{
		ok(),
		ok(map[string]interface{}{"id": "donation:" + donationKey, "timestamp": "2022-01-02T06:15:00Z"}),
	}}
	repo := NewDonationRepository(db)

	d := &model.Donation{ID: donationKey, Amount: 50, TimeStamp: ts, CampaignID: campaignKey}
	require.NoError(t, repo.Create(context.Background(), d))

	_, vars := repo.CreateQuery(d)
	assert.Equal(t, "2022-01-02T06:15:00Z", vars["timestamp"])
	assert.True(t, d.TimeStamp.Equal(ts))
	assert.Contains(t, db.lastQuery(), `THROW "missing reference: campaign"`)
}

func TestDonationRepository_Create_MissingCampaign(t *testing.T) {
	db := &stubDB{err: database.ErrMissingReference}
	repo := NewDonationRepository(db)

	err := repo.Create(context.Background(), &model.Donation{ID: donationKey, CampaignID: campaignKey})
	assert.ErrorIs(t, err, database.ErrMissingReference)
	assert.Contains(t, err.Error(), "campaign "+campaignKey)
}

func TestDonationRepository_SumByCampaign(t *testing.T) {
	t.Run("totals amounts", func(t *testing.T) {
		db := &stubDB{results: []interface{}{ok(map[string]interface{}{"total": float64(300)})}}
		total, err := NewDonationRepository(db).SumByCampaign(context.Background(), campaignKey)
		require.NoError(t, err)
		assert.Equal(t, 300, total)
		assert.Contains(t, db.lastQuery(), "math::sum(amount)")
	})

	t.Run("no donations sums to zero", func(t *testing.T) {
		db := &stubDB{results: []interface{}{ok()}}
		total, err := NewDonationRepository(db).SumByCampaign(context.Background(), campaignKey)
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		db := &stubDB{err: database.ErrConnection}
		_, err := NewDonationRepository(db).SumByCampaign(context.Background(), campaignKey)
		assert.ErrorIs(t, err, database.ErrConnection)
	})
}

func TestDonationRepository_List_OrdersByTimestamp(t *testing.T) {
	db := &stubDB{results: []interface{}{ok(
		map[string]interface{}{"id": "donation:1", "amount": float64(100), "campaign_id": campaignKey},
	)}}
	repo := NewDonationRepository(db)

	list, err := repo.List(context.Background(), &model.DonationFilter{CampaignID: campaignKey})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 100, list[0].Amount)
	assert.Equal(t, "SELECT * FROM donation WHERE campaign_id = $campaign_id ORDER BY timestamp ASC", db.lastQuery())
}
