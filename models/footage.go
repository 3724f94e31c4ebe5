package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// FootagePageSize is the fixed page size for category listings.
const FootagePageSize = 10

var (
	ErrURLTaken = errors.New("url already taken")
	ErrNotFound = errors.New("not found")
)

type Category string

const (
	CategoryValorant      Category = "VAL"
	CategoryCounterStrike Category = "CSGO"
	CategoryFortnite      Category = "FTN"
	CategoryApex          Category = "APX"
	CategoryOverwatch     Category = "OW"
)

// Categories is the closed set of supported game titles.
var Categories = []Category{
	CategoryValorant,
	CategoryCounterStrike,
	CategoryFortnite,
	CategoryApex,
	CategoryOverwatch,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

type Footage struct {
	tableName struct{} `pg:"footage"`

	FootageID     uuid.UUID `pg:"footage_id,pk,type:uuid,default:uuid_generate_v4()" json:"footage_id"`
	UserID        uuid.UUID `pg:"user_id,notnull" json:"user_id"`
	URL           string    `pg:"url,notnull,unique" json:"url"`
	Category      Category  `pg:"category,notnull" json:"category"`
	IsAnalyzed    bool      `pg:"is_analyzed,notnull,use_zero" json:"is_analyzed"`
	IsGameFootage bool      `pg:"is_game_footage,notnull,use_zero" json:"is_game_footage"`
	CreatedAt     time.Time `pg:"created_at,default:now()" json:"created_at"`

	User *User `pg:"rel:has-one,fk:user_id" json:"-"`
}

// PageOffset translates a 1-based page number into a row offset
// for the fixed page size.
func PageOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return page*FootagePageSize - FootagePageSize
}

// CreateFootage inserts a new footage row. A URL collision surfaces
// as ErrURLTaken so concurrent submissions of the same URL cannot both
// succeed.
func CreateFootage(ctx context.Context, db *pg.DB, f *Footage) error {
	if f.FootageID == uuid.Nil {
		f.FootageID = uuid.New()
	}
	_, err := db.Model(f).
		Context(ctx).
		Insert()
	if err != nil {
		if pgErr, ok := err.(pg.Error); ok && pgErr.IntegrityViolation() {
			return ErrURLTaken
		}
		return errors.Wrap(err, "failed to create footage")
	}
	return nil
}

func GetFootage(ctx context.Context, db *pg.DB, id uuid.UUID) (*Footage, error) {
	f := &Footage{}
	err := db.Model(f).
		Context(ctx).
		Where("footage_id = ?", id).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get footage")
	}
	return f, nil
}

// FootageURLExists reports whether any footage row already claims the URL.
func FootageURLExists(ctx context.Context, db *pg.DB, url string) (bool, error) {
	exists, err := db.Model((*Footage)(nil)).
		Context(ctx).
		Where("url = ?", url).
		Exists()
	if err != nil {
		return false, errors.Wrap(err, "failed to check footage url")
	}
	return exists, nil
}

func GetUserFootage(ctx context.Context, db *pg.DB, userID uuid.UUID) ([]*Footage, error) {
	var fs []*Footage
	err := db.Model(&fs).
		Context(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user footage")
	}
	return fs, nil
}

func GetFootageByCategory(ctx context.Context, db *pg.DB, category Category, page int) ([]*Footage, error) {
	var fs []*Footage
	err := db.Model(&fs).
		Context(ctx).
		Where("category = ?", category).
		Order("created_at DESC").
		Offset(PageOffset(page)).
		Limit(FootagePageSize).
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list footage by category")
	}
	return fs, nil
}

// UpdateFootage writes the whitelisted columns only. Anything else on
// the row is left untouched no matter what the caller mutated.
func UpdateFootage(ctx context.Context, db *pg.DB, f *Footage) error {
	res, err := db.Model(f).
		Context(ctx).
		Column("category", "is_analyzed", "is_game_footage").
		WherePK().
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to update footage")
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFootage removes the footage row together with its clips and
// votes. The child deletes are explicit, there is no cascade in the
// schema to rely on.
func DeleteFootage(ctx context.Context, db *pg.DB, id uuid.UUID) error {
	return db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		if _, err := tx.Model((*Clip)(nil)).
			Context(ctx).
			Where("footage_id = ?", id).
			Delete(); err != nil {
			return errors.Wrap(err, "failed to delete footage clips")
		}
		if _, err := tx.Model((*Vote)(nil)).
			Context(ctx).
			Where("footage_id = ?", id).
			Delete(); err != nil {
			return errors.Wrap(err, "failed to delete footage votes")
		}
		res, err := tx.Model((*Footage)(nil)).
			Context(ctx).
			Where("footage_id = ?", id).
			Delete()
		if err != nil {
			return errors.Wrap(err, "failed to delete footage")
		}
		if res.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}
