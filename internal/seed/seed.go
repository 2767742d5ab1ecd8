package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/tesfafund/api/internal/database"
	"github.com/tesfafund/api/internal/model"
	"github.com/tesfafund/api/internal/repository"
)

// File is the on-disk layout of a seed document
type File struct {
	Recipients []Recipient `yaml:"recipients"`
	Campaigns  []Campaign  `yaml:"campaigns"`
	Donations  []Donation  `yaml:"donations"`
}

// Recipient is a seeded recipient. Password is stored hashed.
type Recipient struct {
	ID         string `yaml:"id"`
	FirstName  string `yaml:"first_name"`
	MiddleName string `yaml:"middle_name"`
	LastName   string `yaml:"last_name"`
	Email      string `yaml:"email"`
	Password   string `yaml:"password"`
}

// Campaign is a seeded campaign
type Campaign struct {
	ID              string `yaml:"id"`
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	FundraisingGoal int    `yaml:"fundraising_goal"`
	RecipientID     string `yaml:"recipient_id"`
}

// Donation is a seeded donation. ID and Timestamp are optional.
type Donation struct {
	ID         string    `yaml:"id"`
	Amount     int       `yaml:"amount"`
	CampaignID string    `yaml:"campaign_id"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// Summary counts what a seed run inserted
type Summary struct {
	Recipients int
	Campaigns  int
	Donations  int
}

// LoadFile reads and parses a seed document from path
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &file, nil
}

// Validate applies the API's field rules to every entry and checks that
// campaigns and donations only reference entries defined in the same file.
func (f *File) Validate() error {
	var errs []error
	recipients := make(map[string]bool, len(f.Recipients))
	campaigns := make(map[string]bool, len(f.Campaigns))
	donations := make(map[string]bool, len(f.Donations))

	for i, r := range f.Recipients {
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("recipients[%d]: id is required", i))
		}
		req := model.CreateRecipientRequest{
			ID:         optional(r.ID),
			FirstName:  r.FirstName,
			MiddleName: optional(r.MiddleName),
			LastName:   r.LastName,
			Email:      r.Email,
			Password:   optional(r.Password),
		}
		errs = appendFieldErrors(errs, fmt.Sprintf("recipients[%d]", i), req.Validate())
		errs = checkDuplicate(errs, recipients, "recipients", i, r.ID)
	}

	for i, c := range f.Campaigns {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("campaigns[%d]: id is required", i))
		}
		req := model.CreateCampaignRequest{
			ID:              optional(c.ID),
			Title:           c.Title,
			Description:     c.Description,
			FundraisingGoal: c.FundraisingGoal,
			RecipientID:     c.RecipientID,
		}
		errs = appendFieldErrors(errs, fmt.Sprintf("campaigns[%d]", i), req.Validate())
		errs = checkDuplicate(errs, campaigns, "campaigns", i, c.ID)
		if c.RecipientID != "" && !recipients[canonical(c.RecipientID)] {
			errs = append(errs, fmt.Errorf("campaigns[%d]: recipient %s is not defined", i, c.RecipientID))
		}
	}

	for i, d := range f.Donations {
		req := model.CreateDonationRequest{
			ID:         optional(d.ID),
			Amount:     d.Amount,
			CampaignID: d.CampaignID,
		}
		errs = appendFieldErrors(errs, fmt.Sprintf("donations[%d]", i), req.Validate())
		if d.ID != "" {
			errs = checkDuplicate(errs, donations, "donations", i, d.ID)
		}
		if d.CampaignID != "" && !campaigns[canonical(d.CampaignID)] {
			errs = append(errs, fmt.Errorf("donations[%d]: campaign %s is not defined", i, d.CampaignID))
		}
	}

	return errors.Join(errs...)
}

// Loader inserts seed documents through the repositories' insert statements
type Loader struct {
	db         database.Database
	recipients *repository.RecipientRepository
	campaigns  *repository.CampaignRepository
	donations  *repository.DonationRepository
	bcryptCost int
	now        func() time.Time
}

// NewLoader creates a loader writing to db
func NewLoader(db database.Database, bcryptCost int) *Loader {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Loader{
		db:         db,
		recipients: repository.NewRecipientRepository(db),
		campaigns:  repository.NewCampaignRepository(db),
		donations:  repository.NewDonationRepository(db),
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Apply validates f and inserts everything in a single transaction, so a
// failing entry leaves the store untouched.
func (l *Loader) Apply(ctx context.Context, f *File) (Summary, error) {
	if err := f.Validate(); err != nil {
		return Summary{}, fmt.Errorf("invalid seed data: %w", err)
	}

	batch := database.NewAtomicBatch()

	for _, r := range f.Recipients {
		rec := &model.Recipient{
			ID:         canonical(r.ID),
			FirstName:  strings.TrimSpace(r.FirstName),
			MiddleName: optional(strings.TrimSpace(r.MiddleName)),
			LastName:   strings.TrimSpace(r.LastName),
			Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		}
		if r.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), l.bcryptCost)
			if err != nil {
				return Summary{}, fmt.Errorf("hash password for recipient %s: %w", r.ID, err)
			}
			h := string(hash)
			rec.PasswordHash = &h
		}
		batch.Add(l.recipients.CreateQuery(rec))
	}

	for _, c := range f.Campaigns {
		batch.Add(l.campaigns.CreateQuery(&model.Campaign{
			ID:              canonical(c.ID),
			Title:           strings.TrimSpace(c.Title),
			Description:     c.Description,
			FundraisingGoal: c.FundraisingGoal,
			RecipientID:     canonical(c.RecipientID),
		}))
	}

	for _, d := range f.Donations {
		id := canonical(d.ID)
		if id == "" {
			id = uuid.NewString()
		}
		ts := d.Timestamp
		if ts.IsZero() {
			ts = l.now()
		}
		batch.Add(l.donations.CreateQuery(&model.Donation{
			ID:         id,
			Amount:     d.Amount,
			TimeStamp:  ts.UTC(),
			CampaignID: canonical(d.CampaignID),
		}))
	}

	summary := Summary{
		Recipients: len(f.Recipients),
		Campaigns:  len(f.Campaigns),
		Donations:  len(f.Donations),
	}

	if err := batch.Execute(ctx, l.db); err != nil {
		return Summary{}, fmt.Errorf("apply seed data: %w", err)
	}

	slog.Info("seed data applied",
		slog.Int("recipients", summary.Recipients),
		slog.Int("campaigns", summary.Campaigns),
		slog.Int("donations", summary.Donations),
	)
	return summary, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// canonical lower-cases a UUID the way the API stores it. Invalid input is
// returned unchanged for Validate to report.
func canonical(id string) string {
	return model.CanonicalID(id)
}

func checkDuplicate(errs []error, seen map[string]bool, section string, i int, id string) []error {
	key := canonical(id)
	if key == "" {
		return errs
	}
	if seen[key] {
		return append(errs, fmt.Errorf("%s[%d]: duplicate id %s", section, i, id))
	}
	seen[key] = true
	return errs
}

func appendFieldErrors(errs []error, prefix string, fields []model.FieldError) []error {
	for _, fe := range fields {
		errs = append(errs, fmt.Errorf("%s.%s: %s", prefix, fe.Field, fe.Message))
	}
	return errs
}
