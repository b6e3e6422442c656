package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const pgUniqueViolation = "23505"

var profileColumns = []string{
	"p.id", "p.user_id", "p.handle", "p.company", "p.website", "p.location",
	"p.bio", "p.github_username", "p.status", "p.skills", "p.experience",
	"p.education", "p.social", "p.created_at", "p.updated_at",
	"u.name", "u.avatar",
}

func selectProfiles() sq.SelectBuilder {
	return psqlProfile.Select(profileColumns...).
		From("profiles p").
		Join("users u ON u.id = p.user_id")
}

func scanProfile(row pgx.Row, l logger.Logger) (*profile.Profile, error) {
	p := &profile.Profile{}
	owner := &profile.Owner{}
	var skillsBytes, experienceBytes, educationBytes, socialBytes []byte

	err := row.Scan(
		&p.ID, &p.UserID, &p.Handle, &p.Company, &p.Website, &p.Location,
		&p.Bio, &p.GithubUsername, &p.Status, &skillsBytes, &experienceBytes,
		&educationBytes, &socialBytes, &p.CreatedAt, &p.UpdatedAt,
		&owner.Name, &owner.Avatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", "")
		}
		return nil, apperror.NewInternal("failed to scan profile row", err)
	}
	p.Owner = owner

	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		l.Warn("Failed to unmarshal skills", zap.String("profile_id", p.ID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		l.Warn("Failed to unmarshal experience", zap.String("profile_id", p.ID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		l.Warn("Failed to unmarshal education", zap.String("profile_id", p.ID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		l.Warn("Failed to unmarshal social", zap.String("profile_id", p.ID.String()), zap.Error(err))
		p.Social = profile.Social{}
	}

	return p, nil
}

func (r *postgresProfileRepo) getOne(ctx context.Context, pred any, args ...any) (*profile.Profile, error) {
	query, queryArgs, err := selectProfiles().Where(pred, args...).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile query", err)
	}
	return scanProfile(r.db.QueryRow(ctx, query, queryArgs...), r.logger)
}

func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := r.getOne(ctx, sq.Eq{"p.user_id": userID})
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("profile", userID.String())
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresProfileRepo) GetByHandle(ctx context.Context, handle string) (*profile.Profile, error) {
	p, err := r.getOne(ctx, sq.Eq{"p.handle": handle})
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("profile", handle)
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	query, args, err := selectProfiles().OrderBy("p.created_at DESC").ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows, r.logger)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return profiles, nil
}

func marshalProfileJSON(p *profile.Profile) (skills, experience, education, social []byte, err error) {
	if skills, err = json.Marshal(p.Skills); err != nil {
		return nil, nil, nil, nil, apperror.NewInternal("failed to marshal skills", err)
	}
	if experience, err = json.Marshal(p.Experience); err != nil {
		return nil, nil, nil, nil, apperror.NewInternal("failed to marshal experience", err)
	}
	if education, err = json.Marshal(p.Education); err != nil {
		return nil, nil, nil, nil, apperror.NewInternal("failed to marshal education", err)
	}
	if social, err = json.Marshal(p.Social); err != nil {
		return nil, nil, nil, nil, apperror.NewInternal("failed to marshal social", err)
	}
	return skills, experience, education, social, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	skillsBytes, experienceBytes, educationBytes, socialBytes, err := marshalProfileJSON(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (id, user_id, handle, company, website, location, bio,
			github_username, status, skills, experience, education, social,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.UserID, p.Handle, p.Company, p.Website, p.Location, p.Bio,
		p.GithubUsername, p.Status, skillsBytes, experienceBytes, educationBytes,
		socialBytes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("profile", "handle", p.Handle)
		}
		return apperror.NewInternal("failed to create profile", err)
	}
	return nil
}

// UpdateFields writes the scalar columns, skills and the social record.
// Experience and education columns are deliberately left alone.
func (r *postgresProfileRepo) UpdateFields(ctx context.Context, p *profile.Profile) error {
	skillsBytes, err := json.Marshal(p.Skills)
	if err != nil {
		return apperror.NewInternal("failed to marshal skills", err)
	}
	socialBytes, err := json.Marshal(p.Social)
	if err != nil {
		return apperror.NewInternal("failed to marshal social", err)
	}

	query, args, err := psqlProfile.Update("profiles").
		Set("handle", p.Handle).
		Set("company", p.Company).
		Set("website", p.Website).
		Set("location", p.Location).
		Set("bio", p.Bio).
		Set("github_username", p.GithubUsername).
		Set("status", p.Status).
		Set("skills", skillsBytes).
		Set("social", socialBytes).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"user_id": p.UserID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile update", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("profile", "handle", p.Handle)
		}
		return apperror.NewInternal("failed to update profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", p.UserID.String())
	}
	return nil
}

func (r *postgresProfileRepo) SetExperience(ctx context.Context, userID uuid.UUID, entries []profile.Experience) error {
	experienceBytes, err := json.Marshal(entries)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience", err)
	}

	query := `UPDATE profiles SET experience = $2, updated_at = NOW() WHERE user_id = $1`
	cmdTag, err := r.db.Exec(ctx, query, userID, experienceBytes)
	if err != nil {
		return apperror.NewInternal("failed to set experience", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", userID.String())
	}
	return nil
}

func (r *postgresProfileRepo) SetEducation(ctx context.Context, userID uuid.UUID, entries []profile.Education) error {
	educationBytes, err := json.Marshal(entries)
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}

	query := `UPDATE profiles SET education = $2, updated_at = NOW() WHERE user_id = $1`
	cmdTag, err := r.db.Exec(ctx, query, userID, educationBytes)
	if err != nil {
		return apperror.NewInternal("failed to set education", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", userID.String())
	}
	return nil
}

// DeleteByUserID removes the profile row if present. Absence is fine, the
// delete-account route must succeed on a second call.
func (r *postgresProfileRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM profiles WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	return nil
}
