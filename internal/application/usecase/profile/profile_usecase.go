package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/internal/application/service"
	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/logger"
)

const msgNoProfile = "There is no profile for this user"

// ProfileUseCase orchestrates validation, ownership checks and repository
// calls for every profile route.
type ProfileUseCase struct {
	profileRepo profile.Repository
	userRepo    user.Repository
	events      service.EventPublisher
	cache       service.ProfileCache
	logger      logger.Logger
}

func NewProfileUseCase(
	profileRepo profile.Repository,
	userRepo user.Repository,
	events service.EventPublisher,
	cache service.ProfileCache,
	log logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		events:      events,
		cache:       cache,
		logger:      log,
	}
}

func (uc *ProfileUseCase) publishEvent(ctx context.Context, eventType string, userID uuid.UUID, handle string) {
	event := service.ProfileEvent{
		Type:       eventType,
		UserID:     userID,
		Handle:     handle,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.events.PublishProfileEvent(ctx, event); err != nil {
		uc.logger.Warn("failed to publish profile event",
			zap.String("type", eventType), zap.String("user_id", userID.String()), zap.Error(err))
	}
}
