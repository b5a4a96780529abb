package sqlite

import (
	"context"
	"time"

	"github.com/traintrack-app/traintrack/internal/auth/domain"
)

type profilesRepo struct {
	db dbtx
}

func (r *profilesRepo) Create(ctx context.Context, p domain.Profile) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, now, now)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *profilesRepo) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	var p domain.Profile
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at, updated_at FROM profiles WHERE user_id = ?`,
		userID)
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return p, nil
}

func (r *profilesRepo) UpdateName(ctx context.Context, userID string, name string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET name = ?, updated_at = ? WHERE user_id = ?`,
		name, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
