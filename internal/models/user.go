package models

import "time"

// UserRole represents the hierarchy positions an official can hold.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleDEO         UserRole = "deo"
	RoleMEO         UserRole = "meo"
	RoleSchoolAdmin UserRole = "school_admin"
)

// User represents a portal official stored in the users table. The scope
// columns are denormalised down the hierarchy: a school_admin carries its
// school's mandal and district ids as well.
type User struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	DistrictID   *string    `db:"district_id" json:"district_id,omitempty"`
	MandalID     *string    `db:"mandal_id" json:"mandal_id,omitempty"`
	SchoolID     *string    `db:"school_id" json:"school_id,omitempty"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// ScopeNames carries the display names of an official's jurisdiction,
// resolved for the dashboard header at login.
type ScopeNames struct {
	DistrictName *string `db:"district_name"`
	MandalName   *string `db:"mandal_name"`
	SchoolName   *string `db:"school_name"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role       *UserRole
	Active     *bool
	DistrictID string
	MandalID   string
	SchoolID   string
	Search     string
	Page       int
	PageSize   int
}

// CreateUserRequest provisions a subordinate account. The scope ids name the
// jurisdiction the new official is posted to; for a school_admin the mandal
// and district are filled in from the school's parentage.
type CreateUserRequest struct {
	Username   string   `json:"username" validate:"required,min=3,max=64"`
	Password   string   `json:"password" validate:"required,min=8"`
	FullName   string   `json:"full_name" validate:"required"`
	Role       UserRole `json:"role" validate:"required,oneof=admin deo meo school_admin"`
	DistrictID *string  `json:"district_id" validate:"omitempty,uuid"`
	MandalID   *string  `json:"mandal_id" validate:"omitempty,uuid"`
	SchoolID   *string  `json:"school_id" validate:"omitempty,uuid"`
}

// UpdateUserRequest patches the mutable account fields.
type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Active   *bool   `json:"active"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
