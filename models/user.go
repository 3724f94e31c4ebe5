package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Rank orders roles by privilege. Unknown roles rank below everything.
func (r Role) Rank() int {
	switch r {
	case RoleUser:
		return 0
	case RoleModerator:
		return 1
	case RoleAdmin:
		return 2
	default:
		return -1
	}
}

type User struct {
	tableName   struct{}  `pg:"user"`
	UserID      uuid.UUID `pg:"user_id,pk,type:uuid,default:uuid_generate_v4()"`
	Email       string
	Role        Role `pg:"role,notnull,default:'user'"`
	Blacklisted bool `pg:"blacklisted,notnull,use_zero"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GetOrCreateUser finds a user by email or creates one with the
// default role. Role and blacklist flag are owned by the external
// auth collaborator and refreshed here when they drift.
func GetOrCreateUser(ctx context.Context, db *pg.DB, email string, role Role, blacklisted bool) (*User, bool, error) {
	user := &User{}
	err := db.Model(user).
		Context(ctx).
		Where("email = ?", email).
		Limit(1).
		Select()
	if err == nil {
		if user.Role != role || user.Blacklisted != blacklisted {
			user.Role = role
			user.Blacklisted = blacklisted
			user.UpdatedAt = time.Now()
			if _, uerr := db.Model(user).
				Context(ctx).
				Column("role", "blacklisted", "updated_at").
				WherePK().
				Update(); uerr != nil {
				return nil, false, uerr
			}
		}
		return user, false, nil
	}
	if !errors.Is(err, pg.ErrNoRows) {
		return nil, false, err
	}

	user.UserID = uuid.New()
	user.Email = email
	user.Role = role
	user.Blacklisted = blacklisted
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	_, err = db.Model(user).
		Context(ctx).
		Insert()
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
