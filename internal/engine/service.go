package engine

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/MookeeHugo/kiddo-habit-app/internal/storage"
)

// Service orchestrates the progression rules over the storage repos. Every
// logical update (completion, reset, redemption) is applied as one
// transaction so partial credit is never observable.
type Service struct {
	db           *sql.DB
	users        *storage.UserRepo
	tasks        *storage.TaskRepo
	rewards      *storage.RewardRepo
	achievements *storage.AchievementRepo
	history      *storage.HistoryRepo
	meta         *storage.MetaRepo
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:           db,
		users:        storage.NewUserRepo(db),
		tasks:        storage.NewTaskRepo(db),
		rewards:      storage.NewRewardRepo(db),
		achievements: storage.NewAchievementRepo(db),
		history:      storage.NewHistoryRepo(db),
		meta:         storage.NewMetaRepo(db),
	}
}

func (s *Service) UserRepo() *storage.UserRepo               { return s.users }
func (s *Service) TaskRepo() *storage.TaskRepo               { return s.tasks }
func (s *Service) RewardRepo() *storage.RewardRepo           { return s.rewards }
func (s *Service) AchievementRepo() *storage.AchievementRepo { return s.achievements }
func (s *Service) HistoryRepo() *storage.HistoryRepo         { return s.history }

// EnsureSeeded creates the default user row and the static achievement
// definitions on first run. Safe to call on every startup.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	u, err := s.users.GetOrCreateDefault(ctx)
	if err != nil {
		return err
	}
	if err := s.users.TouchLogin(ctx, u.ID, time.Now()); err != nil {
		return err
	}
	for _, def := range BuiltinAchievements() {
		err := s.achievements.Upsert(ctx, storage.Achievement{
			ID:             def.ID,
			Title:          def.Title,
			Description:    def.Description,
			Icon:           def.Icon,
			ConditionType:  string(def.Condition),
			ConditionValue: def.Threshold,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

// resolveTask finds a task by exact id or unambiguous prefix.
func resolveTask(ctx context.Context, repo *storage.TaskRepo, id string) (*storage.Task, error) {
	t, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t != nil {
		return t, nil
	}
	return repo.GetByPrefix(ctx, id)
}
