package constants

// Account roles as stored on users.role.
const (
	RoleCadet   = "CADET"
	RoleOfficer = "ANO" // Associate NCC Officer, the college staff role
)

// UnitLeaderRank marks a cadet with command authority (SUO). It is a rank on
// the cadet profile, not a role: compare case-insensitively and never persist
// the derived flag.
const UnitLeaderRank = "Senior Under Officer"

// Error message templates for role guards.
const (
	ErrUnitLeaderOnly   = "SUO access required."
	ErrOfficerOrLeader  = "ANO or SUO access required."
	ErrCadetOnly        = "Cadet access required."
	ErrNotLinkedCollege = "User is not linked to a college."
)
