package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnect/internal/application/service"
	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/internal/validation"
	"github.com/khoahotran/devconnect/pkg/apperror"
)

type AddExperienceInput struct {
	UserID      uuid.UUID
	Title       string
	Company     string
	Location    *string
	From        string
	To          *string
	Current     bool
	Description *string
}

// AddExperience validates the entry, assigns it a fresh id and prepends it
// so the newest entry sits at index 0.
func (uc *ProfileUseCase) AddExperience(ctx context.Context, in AddExperienceInput) (*profile.Profile, error) {
	fieldErrs, ok := validation.ValidateExperienceInput(validation.ExperienceInput{
		Title:   in.Title,
		Company: in.Company,
		From:    in.From,
		To:      in.To,
	})
	if !ok {
		return nil, apperror.NewValidation(fieldErrs)
	}

	p, err := uc.fetchOwnProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	from, _ := validation.ParseDate(in.From)
	entry := profile.Experience{
		ID:          uuid.New(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		Current:     in.Current,
		Description: in.Description,
	}
	if in.To != nil {
		if to, err := validation.ParseDate(*in.To); err == nil {
			entry.To = &to
		}
	}

	p.PrependExperience(entry)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.SetExperience(ctx, in.UserID, p.Experience); err != nil {
		return nil, fmt.Errorf("add experience failed: %w", err)
	}

	uc.publishEvent(ctx, service.ProfileEventUpdated, in.UserID, p.Handle)
	uc.cache.InvalidateProfileList(ctx)
	return p, nil
}

// RemoveExperience deletes the entry with the given id. A miss is a no-op
// and the unchanged profile is returned.
func (uc *ProfileUseCase) RemoveExperience(ctx context.Context, userID, experienceID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.fetchOwnProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveExperience(experienceID) {
		return p, nil
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.SetExperience(ctx, userID, p.Experience); err != nil {
		return nil, fmt.Errorf("remove experience failed: %w", err)
	}

	uc.publishEvent(ctx, service.ProfileEventUpdated, userID, p.Handle)
	uc.cache.InvalidateProfileList(ctx)
	return p, nil
}

func (uc *ProfileUseCase) fetchOwnProfile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("profile", userID.String()).
				WithFields(map[string]string{"noprofile": msgNoProfile})
		}
		return nil, fmt.Errorf("fetch profile failed: %w", err)
	}
	return p, nil
}
