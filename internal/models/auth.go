package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating an official.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and the identity payload embedded in it.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        UserInfo  `json:"user"`
}

// UserInfo describes the authenticated official, including jurisdiction
// display names for the dashboard header.
type UserInfo struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	FullName     string   `json:"full_name"`
	Role         UserRole `json:"role"`
	DistrictID   *string  `json:"district_id,omitempty"`
	MandalID     *string  `json:"mandal_id,omitempty"`
	SchoolID     *string  `json:"school_id,omitempty"`
	DistrictName *string  `json:"district_name,omitempty"`
	MandalName   *string  `json:"mandal_name,omitempty"`
	SchoolName   *string  `json:"school_name,omitempty"`
}

// JWTClaims represents the JWT payload for access tokens. Role and scope ride
// in the token so every request can be jurisdiction-checked without a lookup.
type JWTClaims struct {
	UserID     string   `json:"user_id"`
	Username   string   `json:"username"`
	FullName   string   `json:"full_name"`
	Role       UserRole `json:"role"`
	DistrictID *string  `json:"district_id,omitempty"`
	MandalID   *string  `json:"mandal_id,omitempty"`
	SchoolID   *string  `json:"school_id,omitempty"`
	jwt.RegisteredClaims
}
