// Package repository contains the PostgreSQL data access layer. Repositories
// return raw database errors (including sql.ErrNoRows) and leave mapping to
// API errors to the service layer.
package repository

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
