package usecases

import (
	"context"
	"fmt"

	"coachdesk/internal/application/subscription/dto"
	"coachdesk/internal/domain/subscription"
	"coachdesk/internal/domain/trainer"
	"coachdesk/internal/shared/logger"
)

type ListHistoryQuery struct {
	TrainerSID string
	Page       int
	PageSize   int
}

type ListHistoryUseCase struct {
	trainerRepo trainer.Repository
	historyRepo subscription.HistoryRepository
	logger      logger.Interface
}

func NewListHistoryUseCase(
	trainerRepo trainer.Repository,
	historyRepo subscription.HistoryRepository,
	logger logger.Interface,
) *ListHistoryUseCase {
	return &ListHistoryUseCase{
		trainerRepo: trainerRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// Execute returns a trainer's subscription timeline, newest first.
func (uc *ListHistoryUseCase) Execute(ctx context.Context, query ListHistoryQuery) (*dto.HistoryListDTO, error) {
	tr, err := uc.trainerRepo.FindBySID(ctx, query.TrainerSID)
	if err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	entries, total, err := uc.historyRepo.ListByTrainerID(ctx, tr.ID(), page, pageSize)
	if err != nil {
		uc.logger.Errorw("failed to list subscription history", "error", err, "trainer_sid", query.TrainerSID)
		return nil, fmt.Errorf("failed to list subscription history: %w", err)
	}

	return &dto.HistoryListDTO{
		Entries:  dto.ToHistoryDTOList(entries),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
