package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Clip is a sub-segment extracted from footage by the external
// extractor. Clips are only ever created in bulk after an extraction
// run, never directly by API callers.
type Clip struct {
	tableName struct{} `pg:"clip"`

	ClipID    uuid.UUID `pg:"clip_id,pk,type:uuid,default:uuid_generate_v4()" json:"clip_id"`
	FootageID uuid.UUID `pg:"footage_id,notnull" json:"footage_id"`
	Path      string    `pg:"path,notnull" json:"path"`
	CreatedAt time.Time `pg:"created_at,default:now()" json:"created_at"`

	Footage *Footage `pg:"rel:has-one,fk:footage_id" json:"-"`
}

func CreateClips(ctx context.Context, db *pg.DB, clips []*Clip) error {
	if len(clips) == 0 {
		return nil
	}
	for _, c := range clips {
		if c.ClipID == uuid.Nil {
			c.ClipID = uuid.New()
		}
	}
	_, err := db.Model(&clips).
		Context(ctx).
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to create clips")
	}
	return nil
}

func GetFootageClips(ctx context.Context, db *pg.DB, footageID uuid.UUID) ([]*Clip, error) {
	var clips []*Clip
	err := db.Model(&clips).
		Context(ctx).
		Where("footage_id = ?", footageID).
		Order("created_at ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list footage clips")
	}
	return clips, nil
}
