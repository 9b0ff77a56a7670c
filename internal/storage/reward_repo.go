package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type RewardRepo struct {
	db DBTX
}

func NewRewardRepo(db DBTX) *RewardRepo {
	return &RewardRepo{db: db}
}

type RewardInsert struct {
	ID          string
	Title       string
	Description string
	Cost        int
	Icon        string
	Category    string
}

func (r *RewardRepo) Insert(ctx context.Context, in RewardInsert) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rewards (id, title, description, cost, icon, category)
		VALUES (?, ?, ?, ?, ?, ?)
	`, in.ID, in.Title, in.Description, in.Cost, in.Icon, in.Category)
	if err != nil {
		return fmt.Errorf("reward insert: %w", err)
	}
	return nil
}

func (r *RewardRepo) Get(ctx context.Context, id string) (*Reward, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, cost, icon, category, redeemed, redeemed_at, created_at
		FROM rewards WHERE id = ?
	`, id)
	return scanReward(row)
}

func (r *RewardRepo) GetByPrefix(ctx context.Context, prefix string) (*Reward, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, cost, icon, category, redeemed, redeemed_at, created_at
		FROM rewards WHERE id LIKE ? LIMIT 2
	`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("reward prefix query: %w", err)
	}
	defer rows.Close()

	var matches []*Reward
	for rows.Next() {
		rw, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reward prefix rows: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("reward id prefix %q is ambiguous", prefix)
	}
}

func (r *RewardRepo) ListAll(ctx context.Context) ([]Reward, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, cost, icon, category, redeemed, redeemed_at, created_at
		FROM rewards ORDER BY cost ASC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("reward list: %w", err)
	}
	defer rows.Close()

	var out []Reward
	for rows.Next() {
		rw, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reward rows: %w", err)
	}
	return out, nil
}

func (r *RewardRepo) MarkRedeemed(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE rewards SET redeemed = 1, redeemed_at = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("reward mark redeemed: %w", err)
	}
	return nil
}

func (r *RewardRepo) Update(ctx context.Context, id string, in RewardInsert) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE rewards SET title = ?, description = ?, cost = ?, icon = ?, category = ?
		WHERE id = ?
	`, in.Title, in.Description, in.Cost, in.Icon, in.Category, id)
	if err != nil {
		return fmt.Errorf("reward update: %w", err)
	}
	return nil
}

func (r *RewardRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rewards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("reward delete: %w", err)
	}
	return nil
}

func scanReward(row scanner) (*Reward, error) {
	var (
		rw         Reward
		redeemed   int
		redeemedAt sql.NullTime
	)
	if err := row.Scan(&rw.ID, &rw.Title, &rw.Description, &rw.Cost, &rw.Icon, &rw.Category, &redeemed, &redeemedAt, &rw.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("reward scan: %w", err)
	}
	rw.Redeemed = redeemed != 0
	if redeemedAt.Valid {
		v := redeemedAt.Time
		rw.RedeemedAt = &v
	}
	return &rw, nil
}
