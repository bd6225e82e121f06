package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"coachdesk/internal/domain/subscription"
	vo "coachdesk/internal/domain/subscription/valueobjects"
	apperrors "coachdesk/internal/shared/errors"
	"coachdesk/internal/shared/logger"
)

// planSeed is one plan entry in the seed file. Prices are in centavos.
type planSeed struct {
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description"`
	PlanType         string   `yaml:"plan_type"`
	MonthlyPrice     uint64   `yaml:"monthly_price"`
	AnnualPrice      *uint64  `yaml:"annual_price"`
	MaxStudents      uint     `yaml:"max_students"`
	Features         []string `yaml:"features"`
	VisibleOnLanding bool     `yaml:"visible_on_landing"`
}

type seedFile struct {
	Plans []planSeed `yaml:"plans"`
}

// PlanSeeder loads an initial plan catalog from a YAML file. Plans are
// matched by name; existing plans are left untouched, so reruns are safe.
type PlanSeeder struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewPlanSeeder(planRepo subscription.PlanRepository, log logger.Interface) *PlanSeeder {
	return &PlanSeeder{
		planRepo: planRepo,
		logger:   log,
	}
}

// Seed reads the file and creates every plan that does not exist yet.
// Returns the number of plans created.
func (s *PlanSeeder) Seed(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	existing, err := s.existingNames(ctx)
	if err != nil {
		return 0, err
	}

	maxOrder, err := s.planRepo.MaxDisplayOrder(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get max display order: %w", err)
	}

	created := 0
	for _, entry := range file.Plans {
		if existing[entry.Name] {
			s.logger.Debugw("plan already exists, skipping", "name", entry.Name)
			continue
		}

		planType, err := vo.NewPlanType(entry.PlanType)
		if err != nil {
			return created, fmt.Errorf("seed plan %q: %w", entry.Name, err)
		}

		maxOrder++
		plan, err := subscription.NewPlan(entry.Name, entry.Description, planType,
			entry.MonthlyPrice, entry.AnnualPrice, entry.MaxStudents, entry.Features,
			entry.VisibleOnLanding, maxOrder)
		if err != nil {
			return created, fmt.Errorf("seed plan %q: %w", entry.Name, err)
		}

		if err := s.planRepo.Create(ctx, plan); err != nil {
			return created, fmt.Errorf("failed to create seed plan %q: %w", entry.Name, err)
		}

		s.logger.Infow("seeded plan", "name", entry.Name, "sid", plan.SID())
		created++
	}

	return created, nil
}

func (s *PlanSeeder) existingNames(ctx context.Context) (map[string]bool, error) {
	names := make(map[string]bool)

	filter := subscription.PlanFilter{Page: 1, PageSize: 200}
	for {
		plans, total, err := s.planRepo.List(ctx, filter)
		if err != nil {
			if apperrors.IsAppError(err) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to list existing plans: %w", err)
		}

		for _, p := range plans {
			names[p.Name()] = true
		}

		if int64(filter.Page*filter.PageSize) >= total {
			return names, nil
		}
		filter.Page++
	}
}
