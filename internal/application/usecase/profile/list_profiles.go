package profile

import (
	"context"
	"fmt"

	"github.com/khoahotran/devconnect/internal/domain/profile"
)

// ListProfiles returns every profile with owner enrichment. An empty result
// is success with an empty list, never an error.
func (uc *ProfileUseCase) ListProfiles(ctx context.Context) ([]*profile.Profile, error) {
	if cached, ok := uc.cache.GetProfileList(ctx); ok {
		return cached, nil
	}

	profiles, err := uc.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles failed: %w", err)
	}

	uc.cache.SetProfileList(ctx, profiles)
	return profiles, nil
}
