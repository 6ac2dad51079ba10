// Package scope implements the jurisdiction model: the (district, mandal,
// school) triple that bounds what an official may see or modify, the
// containment check applied to every protected write, and the resolver that
// turns caller identity plus query parameters into effective read filters.
package scope

import (
	"github.com/praja-edu/results-portal-api/internal/models"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
)

// Scope is a possibly-partial jurisdiction position. Nil fields mean "not
// specified at this level".
type Scope struct {
	DistrictID *string
	MandalID   *string
	SchoolID   *string
}

// FromClaims extracts the caller's jurisdiction from JWT claims.
func FromClaims(claims *models.JWTClaims) Scope {
	if claims == nil {
		return Scope{}
	}
	return Scope{
		DistrictID: claims.DistrictID,
		MandalID:   claims.MandalID,
		SchoolID:   claims.SchoolID,
	}
}

// FromQuery builds a target/filter scope from raw query values, treating
// empty strings as unset.
func FromQuery(districtID, mandalID, schoolID string) Scope {
	s := Scope{}
	if districtID != "" {
		s.DistrictID = &districtID
	}
	if mandalID != "" {
		s.MandalID = &mandalID
	}
	if schoolID != "" {
		s.SchoolID = &schoolID
	}
	return s
}

// roleLevels orders roles by seniority; lower is more senior. This table and
// the grading bands are the only authority configuration in the system.
var roleLevels = map[models.UserRole]int{
	models.RoleAdmin:       1,
	models.RoleDEO:         2,
	models.RoleMEO:         3,
	models.RoleSchoolAdmin: 4,
}

// Level returns the hierarchy level for a role, or 0 for unknown roles.
func Level(role models.UserRole) int {
	return roleLevels[role]
}

// CanManage reports whether creator may create or modify a user holding
// target. The creator must be strictly more senior; peers and seniors are
// off-limits. Unknown roles are never manageable.
func CanManage(creator, target models.UserRole) bool {
	cl, ok := roleLevels[creator]
	if !ok {
		return false
	}
	tl, ok := roleLevels[target]
	if !ok {
		return false
	}
	return cl < tl
}

// Authorize decides whether a caller may act on a target position. A level
// is checked only when both sides specify it; either side omitting a level
// passes that level through. An admin carries an empty scope, so full
// containment falls out without a role switch. The partial-payload
// permissiveness is contractual: callers that only know a school id are
// checked against the school level alone.
func Authorize(caller, target Scope) error {
	if caller.DistrictID != nil && target.DistrictID != nil && *caller.DistrictID != *target.DistrictID {
		return appErrors.ErrOutsideDistrict
	}
	if caller.MandalID != nil && target.MandalID != nil && *caller.MandalID != *target.MandalID {
		return appErrors.ErrOutsideMandal
	}
	if caller.SchoolID != nil && target.SchoolID != nil && *caller.SchoolID != *target.SchoolID {
		return appErrors.ErrOutsideSchool
	}
	return nil
}

// Resolve computes the effective read filter. At each level the caller's own
// scope wins unconditionally; query parameters only narrow levels the caller
// is senior to (or all levels, for an admin).
func Resolve(caller, query Scope) Scope {
	out := Scope{}
	if caller.DistrictID != nil {
		out.DistrictID = caller.DistrictID
	} else {
		out.DistrictID = query.DistrictID
	}
	if caller.MandalID != nil {
		out.MandalID = caller.MandalID
	} else {
		out.MandalID = query.MandalID
	}
	if caller.SchoolID != nil {
		out.SchoolID = caller.SchoolID
	} else {
		out.SchoolID = query.SchoolID
	}
	return out
}

// Filter flattens a resolved scope into the string triple repositories
// consume, with empty strings for unset levels.
func (s Scope) Filter() (districtID, mandalID, schoolID string) {
	if s.DistrictID != nil {
		districtID = *s.DistrictID
	}
	if s.MandalID != nil {
		mandalID = *s.MandalID
	}
	if s.SchoolID != nil {
		schoolID = *s.SchoolID
	}
	return
}
