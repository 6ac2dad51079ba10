package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praja-edu/results-portal-api/internal/models"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
)

func strptr(s string) *string { return &s }

func TestAuthorizeAdminBypass(t *testing.T) {
	caller := Scope{}
	target := Scope{DistrictID: strptr("d2"), MandalID: strptr("m2"), SchoolID: strptr("s2")}
	assert.NoError(t, Authorize(caller, target))
}

func TestAuthorizeDistrictMismatch(t *testing.T) {
	caller := Scope{DistrictID: strptr("d1")}
	target := Scope{DistrictID: strptr("d2")}
	err := Authorize(caller, target)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrOutsideDistrict, err)
}

func TestAuthorizeMatchingDistrict(t *testing.T) {
	caller := Scope{DistrictID: strptr("d1")}
	assert.NoError(t, Authorize(caller, Scope{DistrictID: strptr("d1")}))
}

func TestAuthorizeOmittedLevelPassesThrough(t *testing.T) {
	// A target that omits the district is not checked at that level.
	caller := Scope{DistrictID: strptr("d1"), MandalID: strptr("m1")}
	target := Scope{SchoolID: strptr("s9")}
	assert.NoError(t, Authorize(caller, target))
}

func TestAuthorizeMandalAndSchoolLevels(t *testing.T) {
	caller := Scope{DistrictID: strptr("d1"), MandalID: strptr("m1"), SchoolID: strptr("s1")}

	err := Authorize(caller, Scope{DistrictID: strptr("d1"), MandalID: strptr("m2")})
	assert.Equal(t, appErrors.ErrOutsideMandal, err)

	err = Authorize(caller, Scope{SchoolID: strptr("s2")})
	assert.Equal(t, appErrors.ErrOutsideSchool, err)

	assert.NoError(t, Authorize(caller, Scope{DistrictID: strptr("d1"), MandalID: strptr("m1"), SchoolID: strptr("s1")}))
}

func TestResolveCallerScopeWins(t *testing.T) {
	caller := Scope{DistrictID: strptr("d1"), MandalID: strptr("m1")}
	query := Scope{DistrictID: strptr("d9"), MandalID: strptr("m9"), SchoolID: strptr("s5")}

	eff := Resolve(caller, query)
	district, mandal, school := eff.Filter()
	assert.Equal(t, "d1", district)
	assert.Equal(t, "m1", mandal)
	// A mandal officer may still narrow to one school inside their mandal.
	assert.Equal(t, "s5", school)
}

func TestResolveAdminUsesQueryParams(t *testing.T) {
	eff := Resolve(Scope{}, FromQuery("d3", "", "s7"))
	district, mandal, school := eff.Filter()
	assert.Equal(t, "d3", district)
	assert.Equal(t, "", mandal)
	assert.Equal(t, "s7", school)
}

func TestResolveNoFilters(t *testing.T) {
	district, mandal, school := Resolve(Scope{}, Scope{}).Filter()
	assert.Empty(t, district)
	assert.Empty(t, mandal)
	assert.Empty(t, school)
}

func TestCanManage(t *testing.T) {
	assert.True(t, CanManage(models.RoleAdmin, models.RoleDEO))
	assert.True(t, CanManage(models.RoleMEO, models.RoleSchoolAdmin))
	assert.False(t, CanManage(models.RoleMEO, models.RoleMEO))
	assert.False(t, CanManage(models.RoleMEO, models.RoleDEO))
	assert.False(t, CanManage(models.RoleSchoolAdmin, models.RoleSchoolAdmin))
	assert.False(t, CanManage(models.UserRole("clerk"), models.RoleSchoolAdmin))
	assert.False(t, CanManage(models.RoleAdmin, models.UserRole("clerk")))
}

func TestFromClaims(t *testing.T) {
	claims := &models.JWTClaims{DistrictID: strptr("d1"), SchoolID: strptr("s1")}
	s := FromClaims(claims)
	assert.Equal(t, "d1", *s.DistrictID)
	assert.Nil(t, s.MandalID)
	assert.Equal(t, "s1", *s.SchoolID)

	assert.Equal(t, Scope{}, FromClaims(nil))
}
