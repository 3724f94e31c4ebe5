package models

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrAlreadyVoted = errors.New("already voted")

// Vote is a peer judgment on whether footage is genuine gameplay of
// the asserted category. One vote per (user, footage), enforced by a
// unique constraint rather than an application-level existence check.
type Vote struct {
	tableName struct{} `pg:"vote"`

	VoteID        uuid.UUID `pg:"vote_id,pk,type:uuid,default:uuid_generate_v4()" json:"vote_id"`
	FootageID     uuid.UUID `pg:"footage_id,notnull" json:"footage_id"`
	UserID        uuid.UUID `pg:"user_id,notnull" json:"user_id"`
	IsGameFootage bool      `pg:"is_game_footage,notnull,use_zero" json:"is_game_footage"`
	Category      Category  `pg:"category,notnull" json:"category"`
	CreatedAt     time.Time `pg:"created_at,default:now()" json:"created_at"`

	Footage *Footage `pg:"rel:has-one,fk:footage_id" json:"-"`
}

func CreateVote(ctx context.Context, db *pg.DB, v *Vote) error {
	if v.VoteID == uuid.Nil {
		v.VoteID = uuid.New()
	}
	_, err := db.Model(v).
		Context(ctx).
		Insert()
	if err != nil {
		return voteInsertError(err)
	}
	return nil
}

// voteInsertError maps constraint failures on vote insert to domain
// errors. A duplicate (footage, user) pair is a repeat vote, a broken
// footage reference means the row was deleted under the voter.
func voteInsertError(err error) error {
	if pgErr, ok := err.(pg.Error); ok && pgErr.IntegrityViolation() {
		switch pgErr.Field('C') {
		case "23505":
			return ErrAlreadyVoted
		case "23503":
			return ErrNotFound
		}
	}
	return errors.Wrap(err, "failed to create vote")
}

func DeleteFootageVotes(ctx context.Context, db *pg.DB, footageID uuid.UUID) error {
	_, err := db.Model((*Vote)(nil)).
		Context(ctx).
		Where("footage_id = ?", footageID).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete footage votes")
	}
	return nil
}

// reviewSortKeys is the fixed set of sort key/direction combinations
// the review sampler draws from. Combined with a random offset this
// gives an approximately-random pick, not a uniform one.
var reviewSortKeys = []string{
	"created_at ASC",
	"created_at DESC",
	"url ASC",
	"url DESC",
}

// PickUnvotedFootage selects one footage row the user has not voted
// on yet, or nil when none is eligible.
func PickUnvotedFootage(ctx context.Context, db *pg.DB, userID uuid.UUID) (*Footage, error) {
	q := db.Model((*Footage)(nil)).
		Context(ctx).
		Where("user_id != ?", userID).
		Where("not exists (select 1 from vote v where v.footage_id = footage.footage_id and v.user_id = ?)", userID)
	count, err := q.Count()
	if err != nil {
		return nil, errors.Wrap(err, "failed to count unvoted footage")
	}
	if count == 0 {
		return nil, nil
	}
	f := &Footage{}
	err = db.Model(f).
		Context(ctx).
		Where("user_id != ?", userID).
		Where("not exists (select 1 from vote v where v.footage_id = footage.footage_id and v.user_id = ?)", userID).
		OrderExpr(reviewSortKeys[rand.Intn(len(reviewSortKeys))]).
		Offset(rand.Intn(count)).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to pick unvoted footage")
	}
	return f, nil
}
