// file: internals/helpers/auth/principal.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nccnexus_backend/internals/constants"
)

// Principal is the authenticated identity as carried by the token claims. The
// college is deliberately absent: it is resolved against the store per
// request, never trusted from the client.
type Principal struct {
	UserID       uuid.UUID
	Role         string
	Rank         string
	RegimentalNo string
}

// IsUnitLeader reports whether the principal is a cadet holding the command
// rank. Derived at authorization time from the rank attribute; the flag is
// never stored, so a rank change takes effect on the next request.
func (p Principal) IsUnitLeader() bool {
	return p.Role == constants.RoleCadet &&
		strings.EqualFold(strings.TrimSpace(p.Rank), constants.UnitLeaderRank)
}

func (p Principal) IsOfficer() bool {
	return p.Role == constants.RoleOfficer
}

// IsPlainCadet is a cadet without the unit-leader rank. Leave submission and
// the self-service attendance view are restricted to this capability.
func (p Principal) IsPlainCadet() bool {
	return p.Role == constants.RoleCadet && !p.IsUnitLeader()
}

// PrincipalFromLocals reads the identity stored by the auth middleware.
func PrincipalFromLocals(c *fiber.Ctx) (Principal, error) {
	raw, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return Principal{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user identity")
	}

	role, _ := c.Locals("role").(string)
	rank, _ := c.Locals("rank").(string)
	regNo, _ := c.Locals("regimental_no").(string)

	return Principal{
		UserID:       id,
		Role:         strings.TrimSpace(role),
		Rank:         strings.TrimSpace(rank),
		RegimentalNo: strings.TrimSpace(regNo),
	}, nil
}
