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

type UpsertProfileInput struct {
	UserID         uuid.UUID
	Handle         string
	Status         string
	Skills         string
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	GithubUsername *string
	Youtube        *string
	Twitter        *string
	Facebook       *string
	Linkedin       *string
	Instagram      *string
}

func (in UpsertProfileInput) social() profile.Social {
	return profile.Social{
		Youtube:   in.Youtube,
		Twitter:   in.Twitter,
		Facebook:  in.Facebook,
		Linkedin:  in.Linkedin,
		Instagram: in.Instagram,
	}
}

var handleTakenFields = map[string]string{"handle": "That handle already exists"}

// UpsertProfile creates the caller's profile on first write and partially
// updates it afterwards. The created flag tells the handler whether to
// answer 201 or 200. Experience and education are never touched here.
func (uc *ProfileUseCase) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*profile.Profile, bool, error) {
	fieldErrs, ok := validation.ValidateProfileInput(validation.ProfileInput{
		Handle:    in.Handle,
		Status:    in.Status,
		Skills:    in.Skills,
		Website:   in.Website,
		Youtube:   in.Youtube,
		Twitter:   in.Twitter,
		Facebook:  in.Facebook,
		Linkedin:  in.Linkedin,
		Instagram: in.Instagram,
	})
	if !ok {
		return nil, false, apperror.NewValidation(fieldErrs)
	}

	skills := validation.SplitSkills(in.Skills)
	now := time.Now().UTC()

	existing, err := uc.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, false, fmt.Errorf("upsert profile lookup failed: %w", err)
	}

	if existing != nil {
		existing.Handle = in.Handle
		existing.Status = in.Status
		existing.Skills = skills
		existing.Social = in.social()
		if in.Company != nil {
			existing.Company = in.Company
		}
		if in.Website != nil {
			existing.Website = in.Website
		}
		if in.Location != nil {
			existing.Location = in.Location
		}
		if in.Bio != nil {
			existing.Bio = in.Bio
		}
		if in.GithubUsername != nil {
			existing.GithubUsername = in.GithubUsername
		}
		existing.UpdatedAt = now

		if err := uc.profileRepo.UpdateFields(ctx, existing); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				return nil, false, apperror.NewConflict("profile", "handle", in.Handle).WithFields(handleTakenFields)
			}
			return nil, false, fmt.Errorf("update profile failed: %w", err)
		}

		uc.publishEvent(ctx, service.ProfileEventUpdated, in.UserID, in.Handle)
		uc.cache.InvalidateProfileList(ctx)
		return existing, false, nil
	}

	// First write for this user: the handle must not belong to anyone else.
	// This lookup gives the friendly field error; the unique index on the
	// handle column is the actual guarantee under concurrency.
	if _, err := uc.profileRepo.GetByHandle(ctx, in.Handle); err == nil {
		return nil, false, apperror.NewConflict("profile", "handle", in.Handle).WithFields(handleTakenFields)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, false, fmt.Errorf("upsert handle lookup failed: %w", err)
	}

	created := &profile.Profile{
		ID:             uuid.New(),
		UserID:         in.UserID,
		Handle:         in.Handle,
		Status:         in.Status,
		Skills:         skills,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Experience:     []profile.Experience{},
		Education:      []profile.Education{},
		Social:         in.social(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.profileRepo.Create(ctx, created); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, false, apperror.NewConflict("profile", "handle", in.Handle).WithFields(handleTakenFields)
		}
		return nil, false, fmt.Errorf("create profile failed: %w", err)
	}

	uc.publishEvent(ctx, service.ProfileEventCreated, in.UserID, in.Handle)
	uc.cache.InvalidateProfileList(ctx)
	return created, true, nil
}
