package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnect/internal/application/service"
)

// DeleteAccount removes the caller's profile and then the user record.
// The profile goes first since it references the user. Both deletes are
// no-ops when the row is already gone, so a repeated call succeeds.
func (uc *ProfileUseCase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := uc.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete profile failed: %w", err)
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}

	uc.publishEvent(ctx, service.ProfileEventDeleted, userID, "")
	uc.cache.InvalidateProfileList(ctx)
	return nil
}
