package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/devconnect/internal/application/service"
	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

// In-memory fakes standing in for the Postgres repositories. GetByUserID
// returns copies the way a real scan would, so use-case mutations never
// alias stored state.

type memProfileRepo struct {
	byUser map[uuid.UUID]*profile.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{byUser: map[uuid.UUID]*profile.Profile{}}
}

func copyProfile(p *profile.Profile) *profile.Profile {
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	cp.Experience = append([]profile.Experience(nil), p.Experience...)
	cp.Education = append([]profile.Education(nil), p.Education...)
	return &cp
}

func (r *memProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, apperror.NewNotFound("profile", userID.String())
	}
	return copyProfile(p), nil
}

func (r *memProfileRepo) GetByHandle(_ context.Context, handle string) (*profile.Profile, error) {
	for _, p := range r.byUser {
		if p.Handle == handle {
			return copyProfile(p), nil
		}
	}
	return nil, apperror.NewNotFound("profile", handle)
}

func (r *memProfileRepo) List(_ context.Context) ([]*profile.Profile, error) {
	profiles := make([]*profile.Profile, 0, len(r.byUser))
	for _, p := range r.byUser {
		profiles = append(profiles, copyProfile(p))
	}
	return profiles, nil
}

func (r *memProfileRepo) Create(_ context.Context, p *profile.Profile) error {
	if _, ok := r.byUser[p.UserID]; ok {
		return apperror.NewConflict("profile", "user_id", p.UserID.String())
	}
	for _, existing := range r.byUser {
		if existing.Handle == p.Handle {
			return apperror.NewConflict("profile", "handle", p.Handle)
		}
	}
	r.byUser[p.UserID] = copyProfile(p)
	return nil
}

func (r *memProfileRepo) UpdateFields(_ context.Context, p *profile.Profile) error {
	stored, ok := r.byUser[p.UserID]
	if !ok {
		return apperror.NewNotFound("profile", p.UserID.String())
	}
	stored.Handle = p.Handle
	stored.Status = p.Status
	stored.Skills = append([]string(nil), p.Skills...)
	stored.Social = p.Social
	stored.Company = p.Company
	stored.Website = p.Website
	stored.Location = p.Location
	stored.Bio = p.Bio
	stored.GithubUsername = p.GithubUsername
	stored.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *memProfileRepo) SetExperience(_ context.Context, userID uuid.UUID, entries []profile.Experience) error {
	stored, ok := r.byUser[userID]
	if !ok {
		return apperror.NewNotFound("profile", userID.String())
	}
	stored.Experience = append([]profile.Experience(nil), entries...)
	return nil
}

func (r *memProfileRepo) SetEducation(_ context.Context, userID uuid.UUID, entries []profile.Education) error {
	stored, ok := r.byUser[userID]
	if !ok {
		return apperror.NewNotFound("profile", userID.String())
	}
	stored.Education = append([]profile.Education(nil), entries...)
	return nil
}

func (r *memProfileRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	delete(r.byUser, userID)
	return nil
}

type fakeUserRepo struct {
	deleted []uuid.UUID
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return nil, apperror.NewNotFound("user", id.String())
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	return nil
}

type fakePublisher struct {
	events []service.ProfileEvent
}

func (p *fakePublisher) PublishProfileEvent(_ context.Context, event service.ProfileEvent) error {
	p.events = append(p.events, event)
	return nil
}

type fakeCache struct {
	invalidations int
}

func (c *fakeCache) GetProfileList(context.Context) ([]*profile.Profile, bool) { return nil, false }
func (c *fakeCache) SetProfileList(context.Context, []*profile.Profile)       {}
func (c *fakeCache) InvalidateProfileList(context.Context)                    { c.invalidations++ }

func newTestUseCase(t *testing.T) (*ProfileUseCase, *memProfileRepo, *fakeUserRepo, *fakePublisher, *fakeCache) {
	t.Helper()
	repo := newMemProfileRepo()
	users := &fakeUserRepo{}
	events := &fakePublisher{}
	cache := &fakeCache{}
	uc := NewProfileUseCase(repo, users, events, cache, logger.NewZapLogger("development"))
	return uc, repo, users, events, cache
}

func strPtr(s string) *string { return &s }

func validUpsert(userID uuid.UUID) UpsertProfileInput {
	return UpsertProfileInput{
		UserID: userID,
		Handle: "johndoe",
		Status: "Developer",
		Skills: "node,react,mongo",
	}
}

func Test_UpsertProfile_CreatesOnFirstWrite(t *testing.T) {
	uc, repo, _, events, cache := newTestUseCase(t)
	userID := uuid.New()

	p, created, err := uc.UpsertProfile(context.Background(), validUpsert(userID))

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, []string{"node", "react", "mongo"}, p.Skills)
	assert.Equal(t, profile.Social{}, p.Social)
	assert.Empty(t, p.Experience)
	assert.Empty(t, p.Education)
	assert.Nil(t, p.Company)

	stored, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "johndoe", stored.Handle)

	require.Len(t, events.events, 1)
	assert.Equal(t, service.ProfileEventCreated, events.events[0].Type)
	assert.Equal(t, 1, cache.invalidations)
}

func Test_UpsertProfile_ValidationAccumulatesBeforeWrite(t *testing.T) {
	uc, repo, _, _, _ := newTestUseCase(t)

	_, _, err := uc.UpsertProfile(context.Background(), UpsertProfileInput{UserID: uuid.New()})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "handle")
	assert.Contains(t, appErr.Fields, "status")
	assert.Contains(t, appErr.Fields, "skills")
	assert.Empty(t, repo.byUser)
}

func Test_UpsertProfile_PartialUpdateKeepsUnspecifiedFields(t *testing.T) {
	uc, repo, _, _, _ := newTestUseCase(t)
	userID := uuid.New()

	first := validUpsert(userID)
	first.Company = strPtr("Acme")
	first.Bio = strPtr("hello")
	_, _, err := uc.UpsertProfile(context.Background(), first)
	require.NoError(t, err)

	// Seed an experience entry directly so we can assert the upsert leaves
	// sub-collections alone.
	entry := profile.Experience{ID: uuid.New(), Title: "Engineer", Company: "Acme"}
	require.NoError(t, repo.SetExperience(context.Background(), userID, []profile.Experience{entry}))

	second := validUpsert(userID)
	second.Status = "Senior Developer"
	second.Location = strPtr("Hanoi")
	p, created, err := uc.UpsertProfile(context.Background(), second)

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Senior Developer", p.Status)
	require.NotNil(t, p.Company)
	assert.Equal(t, "Acme", *p.Company)
	require.NotNil(t, p.Bio)
	assert.Equal(t, "hello", *p.Bio)
	require.NotNil(t, p.Location)
	assert.Equal(t, "Hanoi", *p.Location)

	stored, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, stored.Experience, 1)
	assert.Equal(t, entry.ID, stored.Experience[0].ID)
}

func Test_UpsertProfile_SocialBuiltFromPresentKeysOnly(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)

	in := validUpsert(uuid.New())
	in.Twitter = strPtr("https://twitter.com/johndoe")
	p, _, err := uc.UpsertProfile(context.Background(), in)

	require.NoError(t, err)
	require.NotNil(t, p.Social.Twitter)
	assert.Equal(t, "https://twitter.com/johndoe", *p.Social.Twitter)
	assert.Nil(t, p.Social.Youtube)
	assert.Nil(t, p.Social.Facebook)
}

func Test_UpsertProfile_DuplicateHandleConflicts(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)

	_, _, err := uc.UpsertProfile(context.Background(), validUpsert(uuid.New()))
	require.NoError(t, err)

	_, _, err = uc.UpsertProfile(context.Background(), validUpsert(uuid.New()))

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "That handle already exists", appErr.Fields["handle"])
}

func Test_AddExperience_PrependsWithFreshID(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)
	userID := uuid.New()
	_, _, err := uc.UpsertProfile(context.Background(), validUpsert(userID))
	require.NoError(t, err)

	p, err := uc.AddExperience(context.Background(), AddExperienceInput{
		UserID: userID, Title: "Engineer", Company: "Acme", From: "2020-01-01",
	})
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Engineer", p.Experience[0].Title)
	assert.NotEqual(t, uuid.Nil, p.Experience[0].ID)

	p, err = uc.AddExperience(context.Background(), AddExperienceInput{
		UserID: userID, Title: "Senior Engineer", Company: "Acme", From: "2022-06-01",
	})
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "Senior Engineer", p.Experience[0].Title)
	assert.Equal(t, "Engineer", p.Experience[1].Title)
}

func Test_AddExperience_NoProfileIsNotFound(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)

	_, err := uc.AddExperience(context.Background(), AddExperienceInput{
		UserID: uuid.New(), Title: "Engineer", Company: "Acme", From: "2020-01-01",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "noprofile")
}

func Test_AddExperience_InvalidInputReturnsAllErrors(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)

	_, err := uc.AddExperience(context.Background(), AddExperienceInput{UserID: uuid.New()})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Len(t, appErr.Fields, 3)
}

func Test_RemoveExperience_ByIDAndNoOpOnMiss(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)
	userID := uuid.New()
	_, _, err := uc.UpsertProfile(context.Background(), validUpsert(userID))
	require.NoError(t, err)

	p, err := uc.AddExperience(context.Background(), AddExperienceInput{
		UserID: userID, Title: "Engineer", Company: "Acme", From: "2020-01-01",
	})
	require.NoError(t, err)
	expID := p.Experience[0].ID

	// Unknown id: removal is a no-op over an unchanged sequence.
	p, err = uc.RemoveExperience(context.Background(), userID, uuid.New())
	require.NoError(t, err)
	assert.Len(t, p.Experience, 1)

	p, err = uc.RemoveExperience(context.Background(), userID, expID)
	require.NoError(t, err)
	assert.Empty(t, p.Experience)
}

func Test_AddAndRemoveEducation(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)
	userID := uuid.New()
	_, _, err := uc.UpsertProfile(context.Background(), validUpsert(userID))
	require.NoError(t, err)

	p, err := uc.AddEducation(context.Background(), AddEducationInput{
		UserID: userID, School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01",
	})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)
	assert.Equal(t, "MIT", p.Education[0].School)

	eduID := p.Education[0].ID
	p, err = uc.RemoveEducation(context.Background(), userID, eduID)
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func Test_DeleteAccount_ProfileThenUser_Idempotent(t *testing.T) {
	uc, repo, users, events, _ := newTestUseCase(t)
	userID := uuid.New()
	_, _, err := uc.UpsertProfile(context.Background(), validUpsert(userID))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteAccount(context.Background(), userID))
	assert.Empty(t, repo.byUser)
	assert.Equal(t, []uuid.UUID{userID}, users.deleted)

	// Second call must not error even though nothing is left to delete.
	require.NoError(t, uc.DeleteAccount(context.Background(), userID))

	deletedEvents := 0
	for _, e := range events.events {
		if e.Type == service.ProfileEventDeleted {
			deletedEvents++
		}
	}
	assert.Equal(t, 2, deletedEvents)
}

func Test_GetProfileByHandle_NotFound(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)

	_, err := uc.GetProfileByHandle(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "noprofile")
}

func Test_ListProfiles_EmptyIsSuccess(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase(t)

	profiles, err := uc.ListProfiles(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
}
