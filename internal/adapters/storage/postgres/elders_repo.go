package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"care-companion/internal/domain/accounts"
	"care-companion/internal/domain/elders"
	"care-companion/internal/platform/apperr"
)

type EldersRepo struct {
	db *sql.DB
}

func NewEldersRepo(db *sql.DB) *EldersRepo {
	return &EldersRepo{db: db}
}

// CreateLinked: cuenta + perfil + link en una transacción.
func (r *EldersRepo) CreateLinked(ctx context.Context, e elders.Elder, l elders.Link) error {
	health, err := json.Marshal(e.Health)
	if err != nil {
		return fmt.Errorf("encode health profile: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var role string
	err = tx.QueryRowContext(ctx, `SELECT role FROM accounts WHERE id = $1 FOR UPDATE`, l.CaregiverID).Scan(&role)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperr.NotFound("family member not found")
		}
		return err
	}
	if accounts.Role(role) != accounts.RoleFamily {
		return apperr.NotFound("family member not found")
	}

	if err := insertAccount(ctx, tx, e.Account); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO elder_profiles (account_id, health_profile) VALUES ($1, $2)
	`, e.Account.ID, health); err != nil {
		return mapError(err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO caregiver_links (caregiver_id, person_id, relationship, created_at)
		VALUES ($1, $2, $3, $4)
	`, l.CaregiverID, l.PersonID, l.Relationship, l.CreatedAt); err != nil {
		return mapError(err)
	}

	return mapError(tx.Commit())
}

func (r *EldersRepo) GetByID(ctx context.Context, id string) (elders.Elder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return elders.Elder{}, apperr.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			a.id, a.role, a.name, a.email, a.phone_number, a.password_hash,
			a.created_at, a.updated_at,
			p.health_profile
		FROM accounts a
		JOIN elder_profiles p ON p.account_id = a.id
		WHERE a.id = $1 AND a.role = 'elderly'
	`, id)

	var e elders.Elder
	var role string
	var health []byte
	if err := row.Scan(
		&e.Account.ID,
		&role,
		&e.Account.Name,
		&e.Account.Email,
		&e.Account.PhoneNumber,
		&e.Account.PasswordHash,
		&e.Account.CreatedAt,
		&e.Account.UpdatedAt,
		&health,
	); err != nil {
		return elders.Elder{}, mapError(err)
	}
	e.Account.Role = accounts.Role(role)

	if err := json.Unmarshal(health, &e.Health); err != nil {
		return elders.Elder{}, fmt.Errorf("decode health profile %s: %w", id, err)
	}
	return e, nil
}

func (r *EldersRepo) Update(ctx context.Context, e elders.Elder) error {
	health, err := json.Marshal(e.Health)
	if err != nil {
		return fmt.Errorf("encode health profile: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET
			name = $2,
			email = $3,
			password_hash = $4,
			updated_at = $5
		WHERE id = $1 AND role = 'elderly'
	`,
		e.Account.ID,
		e.Account.Name,
		accounts.NormalizeEmail(e.Account.Email),
		e.Account.PasswordHash,
		e.Account.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE elder_profiles SET health_profile = $2 WHERE account_id = $1
	`, e.Account.ID, health); err != nil {
		return mapError(err)
	}

	return mapError(tx.Commit())
}

func (r *EldersRepo) ListLinks(ctx context.Context, caregiverID string) ([]elders.Link, error) {
	caregiverID = strings.TrimSpace(caregiverID)
	if caregiverID == "" {
		return []elders.Link{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT caregiver_id, person_id, relationship, created_at
		FROM caregiver_links
		WHERE caregiver_id = $1
		ORDER BY id ASC
	`, caregiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]elders.Link, 0)
	for rows.Next() {
		var l elders.Link
		if err := rows.Scan(&l.CaregiverID, &l.PersonID, &l.Relationship, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *EldersRepo) LinkedCaregivers(ctx context.Context, personID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT caregiver_id
		FROM caregiver_links
		WHERE person_id = $1
	`, strings.TrimSpace(personID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
