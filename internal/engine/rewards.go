package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MookeeHugo/kiddo-habit-app/internal/logger"
	"github.com/MookeeHugo/kiddo-habit-app/internal/storage"
)

type CreateRewardInput struct {
	Title       string
	Description string
	Cost        int
	Icon        string
	Category    RewardCategory
}

func (s *Service) CreateReward(ctx context.Context, in CreateRewardInput) (*storage.Reward, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if in.Cost <= 0 {
		return nil, fmt.Errorf("cost must be positive, got %d", in.Cost)
	}
	if !in.Category.IsValid() {
		in.Category = CategoryActivity
	}
	icon := in.Icon
	if icon == "" {
		icon = "🎁"
	}

	id := uuid.NewString()
	err = s.rewards.Insert(ctx, storage.RewardInsert{
		ID:          id,
		Title:       title,
		Description: in.Description,
		Cost:        in.Cost,
		Icon:        icon,
		Category:    string(in.Category),
	})
	if err != nil {
		return nil, err
	}
	return s.rewards.Get(ctx, id)
}

func (s *Service) UpdateReward(ctx context.Context, id string, in CreateRewardInput) error {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return err
	}
	rw, err := resolveReward(ctx, s.rewards, id)
	if err != nil {
		return err
	}
	if rw == nil {
		return ErrRewardNotFound
	}
	return s.rewards.Update(ctx, rw.ID, storage.RewardInsert{
		Title:       title,
		Description: in.Description,
		Cost:        in.Cost,
		Icon:        in.Icon,
		Category:    string(in.Category),
	})
}

func (s *Service) DeleteReward(ctx context.Context, id string) error {
	rw, err := resolveReward(ctx, s.rewards, id)
	if err != nil {
		return err
	}
	if rw == nil {
		return ErrRewardNotFound
	}
	return s.rewards.Delete(ctx, rw.ID)
}

type RedeemResult struct {
	RewardID        string
	Title           string
	Cost            int
	PointsRemaining int
}

// RedeemReward spends available points on a reward. The check and the debit
// happen in the same transaction; an insufficient balance rejects the whole
// operation with no state change.
func (s *Service) RedeemReward(ctx context.Context, id string) (*RedeemResult, error) {
	return s.RedeemRewardAt(ctx, id, time.Now())
}

func (s *Service) RedeemRewardAt(ctx context.Context, id string, now time.Time) (*RedeemResult, error) {
	var res *RedeemResult

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		rewards := storage.NewRewardRepo(tx)
		users := storage.NewUserRepo(tx)

		rw, err := resolveReward(ctx, rewards, id)
		if err != nil {
			return err
		}
		if rw == nil {
			return ErrRewardNotFound
		}
		if rw.Redeemed {
			return AlreadyRedeemedError{RewardID: rw.ID}
		}

		u, err := users.GetOrCreateDefault(ctx)
		if err != nil {
			return err
		}
		if u.AvailablePoints < rw.Cost {
			return InsufficientPointsError{Cost: rw.Cost, Available: u.AvailablePoints}
		}

		u.AvailablePoints -= rw.Cost
		if err := users.Update(ctx, u); err != nil {
			return err
		}
		if err := rewards.MarkRedeemed(ctx, rw.ID, now); err != nil {
			return err
		}

		res = &RedeemResult{
			RewardID:        rw.ID,
			Title:           rw.Title,
			Cost:            rw.Cost,
			PointsRemaining: u.AvailablePoints,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("reward redeemed", zap.String("reward_id", res.RewardID), zap.Int("cost", res.Cost))
	return res, nil
}

func resolveReward(ctx context.Context, repo *storage.RewardRepo, id string) (*storage.Reward, error) {
	rw, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rw != nil {
		return rw, nil
	}
	return repo.GetByPrefix(ctx, id)
}
