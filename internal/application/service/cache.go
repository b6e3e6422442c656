package service

import (
	"context"

	"github.com/khoahotran/devconnect/internal/domain/profile"
)

// ProfileCache caches the public profile list. A miss (or any backend
// failure) reports ok=false and the caller falls through to the repository.
type ProfileCache interface {
	GetProfileList(ctx context.Context) ([]*profile.Profile, bool)
	SetProfileList(ctx context.Context, profiles []*profile.Profile)
	InvalidateProfileList(ctx context.Context)
}
