package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Experience is an embedded career entry owned by its Profile. Entries are
// kept newest-first; new ones are prepended.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    *string    `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description *string    `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  *string    `json:"description,omitempty"`
}

// Social holds optional profile links. Absent keys stay absent, they are
// never defaulted to empty strings.
type Social struct {
	Youtube   *string `json:"youtube,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Linkedin  *string `json:"linkedin,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
}

// Owner is the joined name/avatar of the user account a profile belongs to.
type Owner struct {
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
}

type Profile struct {
	ID             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"user"`
	Owner          *Owner       `json:"owner,omitempty"`
	Handle         string       `json:"handle"`
	Company        *string      `json:"company,omitempty"`
	Website        *string      `json:"website,omitempty"`
	Location       *string      `json:"location,omitempty"`
	Bio            *string      `json:"bio,omitempty"`
	GithubUsername *string      `json:"githubusername,omitempty"`
	Status         string       `json:"status"`
	Skills         []string     `json:"skills"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Social         Social       `json:"social"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// PrependExperience inserts e as the newest entry.
func (p *Profile) PrependExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

func (p *Profile) PrependEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

// RemoveExperience drops the entry with the given id. Returns false and
// leaves the sequence unchanged when no entry matches.
func (p *Profile) RemoveExperience(id uuid.UUID) bool {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Profile) RemoveEducation(id uuid.UUID) bool {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	GetByHandle(ctx context.Context, handle string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Create(ctx context.Context, p *Profile) error
	// UpdateFields writes the scalar columns and the social record only.
	// Experience and education are never touched by a profile upsert.
	UpdateFields(ctx context.Context, p *Profile) error
	SetExperience(ctx context.Context, userID uuid.UUID, entries []Experience) error
	SetEducation(ctx context.Context, userID uuid.UUID, entries []Education) error
	// DeleteByUserID is a no-op (not an error) when no profile exists.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
