package ports

import (
	"context"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

// WizardStore caches in-progress wizard state per user. The cached form is
// the working copy; nothing reaches the profile table until the active
// step's Next.
type WizardStore interface {
	Get(ctx context.Context, userID string) (domain.WizardState, bool, error)
	Save(ctx context.Context, userID string, state domain.WizardState) error
	Delete(ctx context.Context, userID string) error
}

// StepInput is the form subset submitted with a step's next(). Only the
// fields of the active step are applied.
type StepInput struct {
	FullName   *string
	Phone      *string
	Location   *string
	Experience []domain.ExperienceEntry
	Education  []domain.EducationEntry
	Skills     []string
	OtherSkill *string
}

// ListEditInput is a single local edit of a list-typed form field. Exactly
// one operation applies per call; nothing is persisted.
type ListEditInput struct {
	Op    string // add_experience, remove_experience, add_education, remove_education, toggle_skill
	Index int
	Skill string
}

// WizardService drives the profile wizard for the session's user.
type WizardService interface {
	State(ctx context.Context, session *domain.Session) (domain.WizardState, error)
	Next(ctx context.Context, session *domain.Session, input StepInput) (domain.WizardState, error)
	Back(ctx context.Context, session *domain.Session) (domain.WizardState, error)
	Reset(ctx context.Context, session *domain.Session) (domain.WizardState, error)
	EditList(ctx context.Context, session *domain.Session, edit ListEditInput) (domain.WizardState, error)
	// AttachResume records the uploaded resume URL on the cached form; the
	// resume step's Next persists it like any other field.
	AttachResume(ctx context.Context, session *domain.Session, url string) (domain.WizardState, error)
}
