package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/praja-edu/results-portal-api/internal/models"
)

// UserRepository handles portal account persistence.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, password_hash, full_name, role, district_id, mandal_id, school_id, active, last_login, created_at, updated_at`

// FindByUsername fetches an account by its login name, active or not.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID fetches an account by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// ScopeNames resolves the display names of the account's jurisdiction.
func (r *UserRepository) ScopeNames(ctx context.Context, userID string) (*models.ScopeNames, error) {
	const query = `SELECT d.name AS district_name, mn.name AS mandal_name, sch.name AS school_name
        FROM users u
        LEFT JOIN districts d ON d.id = u.district_id
        LEFT JOIN mandals mn ON mn.id = u.mandal_id
        LEFT JOIN schools sch ON sch.id = u.school_id
        WHERE u.id = $1`
	var names models.ScopeNames
	if err := r.db.GetContext(ctx, &names, query, userID); err != nil {
		return nil, err
	}
	return &names, nil
}

// Create inserts a new account.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	const query = `INSERT INTO users (id, username, password_hash, full_name, role, district_id, mandal_id, school_id, active, created_at, updated_at)
        VALUES (:id, :username, :password_hash, :full_name, :role, :district_id, :mandal_id, :school_id, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update rewrites the mutable account fields.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	const query = `UPDATE users SET full_name = :full_name, role = :role, district_id = :district_id,
        mandal_id = :mandal_id, school_id = :school_id, active = :active, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, passwordHash, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

// Deactivate soft-deletes an account; the row survives for audit.
func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE users SET active = false, updated_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	return nil
}

// UpdateLastLogin stamps a successful login.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	const query = `UPDATE users SET last_login = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// List returns accounts matching the filter, newest first, plus the total
// count for pagination.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		where += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		where += fmt.Sprintf(" AND active = $%d", len(args))
	}
	if filter.DistrictID != "" {
		args = append(args, filter.DistrictID)
		where += fmt.Sprintf(" AND district_id = $%d", len(args))
	}
	if filter.MandalID != "" {
		args = append(args, filter.MandalID)
		where += fmt.Sprintf(" AND mandal_id = $%d", len(args))
	}
	if filter.SchoolID != "" {
		args = append(args, filter.SchoolID)
		where += fmt.Sprintf(" AND school_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (username ILIKE $%d OR full_name ILIKE $%d)", len(args), len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY created_at DESC`, userColumns, where)
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		args = append(args, filter.PageSize)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, (page-1)*filter.PageSize)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// CountByRole returns account counts keyed by role, for the admin overview.
func (r *UserRepository) CountByRole(ctx context.Context) (map[string]int, error) {
	const query = `SELECT role, COUNT(*) AS count FROM users WHERE active = true GROUP BY role`
	rows := []struct {
		Role  string `db:"role"`
		Count int    `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}
