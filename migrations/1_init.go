package migrations

import (
	"github.com/go-pg/migrations/v8"
)

func Init(col *migrations.Collection) {
	col.MustRegisterTx(func(db migrations.DB) error {
		_, err := db.Exec(`
			CREATE EXTENSION IF NOT EXISTS "uuid-ossp";
			CREATE TABLE IF NOT EXISTS "user" (
				user_id uuid PRIMARY KEY DEFAULT uuid_generate_v4(),
				email text NOT NULL UNIQUE,
				role text NOT NULL DEFAULT 'user',
				blacklisted boolean NOT NULL DEFAULT false,
				created_at timestamptz NOT NULL DEFAULT now(),
				updated_at timestamptz NOT NULL DEFAULT now()
			);
			CREATE TABLE IF NOT EXISTS footage (
				footage_id uuid PRIMARY KEY DEFAULT uuid_generate_v4(),
				user_id uuid NOT NULL REFERENCES "user" (user_id),
				url text NOT NULL UNIQUE,
				category text NOT NULL,
				is_analyzed boolean NOT NULL DEFAULT false,
				is_game_footage boolean NOT NULL DEFAULT false,
				created_at timestamptz NOT NULL DEFAULT now()
			);
			CREATE INDEX IF NOT EXISTS footage_user_id_idx ON footage (user_id);
			CREATE INDEX IF NOT EXISTS footage_category_created_at_idx ON footage (category, created_at DESC);
			CREATE TABLE IF NOT EXISTS clip (
				clip_id uuid PRIMARY KEY DEFAULT uuid_generate_v4(),
				footage_id uuid NOT NULL REFERENCES footage (footage_id),
				path text NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now()
			);
			CREATE INDEX IF NOT EXISTS clip_footage_id_idx ON clip (footage_id);
			CREATE TABLE IF NOT EXISTS vote (
				vote_id uuid PRIMARY KEY DEFAULT uuid_generate_v4(),
				footage_id uuid NOT NULL REFERENCES footage (footage_id),
				user_id uuid NOT NULL REFERENCES "user" (user_id),
				is_game_footage boolean NOT NULL DEFAULT false,
				category text NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now(),
				UNIQUE (footage_id, user_id)
			);
		`)
		return err
	}, func(db migrations.DB) error {
		_, err := db.Exec(`
			DROP TABLE IF EXISTS vote;
			DROP TABLE IF EXISTS clip;
			DROP TABLE IF EXISTS footage;
			DROP TABLE IF EXISTS "user";
		`)
		return err
	})
}
