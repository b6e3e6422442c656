package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnect/internal/application/service"
	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/internal/validation"
	"github.com/khoahotran/devconnect/pkg/apperror"
)

type AddEducationInput struct {
	UserID       uuid.UUID
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           *string
	Current      bool
	Description  *string
}

func (uc *ProfileUseCase) AddEducation(ctx context.Context, in AddEducationInput) (*profile.Profile, error) {
	fieldErrs, ok := validation.ValidateEducationInput(validation.EducationInput{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
	})
	if !ok {
		return nil, apperror.NewValidation(fieldErrs)
	}

	p, err := uc.fetchOwnProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	from, _ := validation.ParseDate(in.From)
	entry := profile.Education{
		ID:           uuid.New(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		Current:      in.Current,
		Description:  in.Description,
	}
	if in.To != nil {
		if to, err := validation.ParseDate(*in.To); err == nil {
			entry.To = &to
		}
	}

	p.PrependEducation(entry)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.SetEducation(ctx, in.UserID, p.Education); err != nil {
		return nil, fmt.Errorf("add education failed: %w", err)
	}

	uc.publishEvent(ctx, service.ProfileEventUpdated, in.UserID, p.Handle)
	uc.cache.InvalidateProfileList(ctx)
	return p, nil
}

// RemoveEducation matches strictly on the education entry id from its own
// route parameter; a miss leaves the sequence unchanged.
func (uc *ProfileUseCase) RemoveEducation(ctx context.Context, userID, educationID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.fetchOwnProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveEducation(educationID) {
		return p, nil
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.SetEducation(ctx, userID, p.Education); err != nil {
		return nil, fmt.Errorf("remove education failed: %w", err)
	}

	uc.publishEvent(ctx, service.ProfileEventUpdated, userID, p.Handle)
	uc.cache.InvalidateProfileList(ctx)
	return p, nil
}
