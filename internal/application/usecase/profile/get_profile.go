package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/pkg/apperror"
)

// GetOwnProfile loads the caller's profile, enriched with the owner's
// name/avatar by the repository join.
func (uc *ProfileUseCase) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("profile", userID.String()).
				WithFields(map[string]string{"noprofile": msgNoProfile})
		}
		return nil, fmt.Errorf("get own profile failed: %w", err)
	}
	return p, nil
}

func (uc *ProfileUseCase) GetProfileByHandle(ctx context.Context, handle string) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("profile", handle).
				WithFields(map[string]string{"noprofile": msgNoProfile})
		}
		return nil, fmt.Errorf("get profile by handle failed: %w", err)
	}
	return p, nil
}

func (uc *ProfileUseCase) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("profile", userID.String()).
				WithFields(map[string]string{"noprofile": msgNoProfile})
		}
		return nil, fmt.Errorf("get profile by user id failed: %w", err)
	}
	return p, nil
}
