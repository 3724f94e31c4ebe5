package perm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/playproof-io/footage-web/models"
)

// A blacklisted caller is denied no matter the role, the level or
// who owns the resource.
func TestEvaluateBlacklistAlwaysDenies(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	roles := gen.OneConstOf(models.RoleUser, models.RoleModerator, models.RoleAdmin, models.Role("weird"))
	levels := gen.OneConstOf(LevelOwner, LevelModerator, LevelAdmin)

	properties.Property("blacklist denies", prop.ForAll(
		func(role models.Role, level Level, sameOwner bool) bool {
			caller := uuid.New()
			owner := caller
			if !sameOwner {
				owner = uuid.New()
			}
			return !Evaluate(caller, role, owner, true, level)
		},
		roles,
		levels,
		gen.Bool(),
	))

	properties.TestingRun(t)
}
