package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/yalajobs/jobboard-api/internal/api/metrics"
	"github.com/yalajobs/jobboard-api/internal/core/domain"
	"github.com/yalajobs/jobboard-api/internal/core/ports"
)

// WizardService orchestrates the profile wizard: the working form lives in
// the wizard store, and the profile table is written only when a step's
// next() passes validation (batch-per-step persistence).
type WizardService struct {
	store    ports.WizardStore
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewWizardService(store ports.WizardStore, profiles ports.ProfileRepository, logger zerolog.Logger) *WizardService {
	return &WizardService{store: store, profiles: profiles, logger: logger}
}

// State returns the user's wizard state, seeding it from the persisted
// profile row when no cached state exists yet.
func (s *WizardService) State(ctx context.Context, session *domain.Session) (domain.WizardState, error) {
	return s.load(ctx, session)
}

// Next applies the submitted step fields to the form, validates the current
// step, persists the merged profile and advances. A validation failure
// leaves both the step and the profile row untouched.
func (s *WizardService) Next(ctx context.Context, session *domain.Session, input ports.StepInput) (domain.WizardState, error) {
	state, err := s.load(ctx, session)
	if err != nil {
		return domain.WizardState{}, err
	}

	applyStepInput(&state.Form, input)

	if err := state.Next(); err != nil {
		if errors.Is(err, domain.ErrExperienceRequired) {
			metrics.WizardValidationFailuresTotal.Inc()
			// Keep the edited form so the user can fix the entries, but do
			// not advance and do not persist.
			if saveErr := s.store.Save(ctx, session.UserID, state); saveErr != nil {
				return domain.WizardState{}, saveErr
			}
		}
		return state, err
	}

	if err := s.persist(ctx, session, state.Form); err != nil {
		return domain.WizardState{}, err
	}
	if err := s.store.Save(ctx, session.UserID, state); err != nil {
		return domain.WizardState{}, err
	}

	metrics.WizardTransitionsTotal.WithLabelValues("next").Inc()
	s.logger.Info().Str("user_id", session.UserID).Int("step", int(state.CurrentStep)).
		Bool("completed", state.Completed).Msg("wizard advanced")
	return state, nil
}

// Back moves one step back. Nothing is validated and nothing is persisted;
// the form keeps whatever the user already entered.
func (s *WizardService) Back(ctx context.Context, session *domain.Session) (domain.WizardState, error) {
	state, err := s.load(ctx, session)
	if err != nil {
		return domain.WizardState{}, err
	}
	state.Back()
	if err := s.store.Save(ctx, session.UserID, state); err != nil {
		return domain.WizardState{}, err
	}
	metrics.WizardTransitionsTotal.WithLabelValues("back").Inc()
	return state, nil
}

// Reset discards the cached state and restarts the wizard. The persisted
// profile row is left as it was.
func (s *WizardService) Reset(ctx context.Context, session *domain.Session) (domain.WizardState, error) {
	state := domain.NewWizardState()
	if err := s.store.Save(ctx, session.UserID, state); err != nil {
		return domain.WizardState{}, err
	}
	metrics.WizardTransitionsTotal.WithLabelValues("reset").Inc()
	return state, nil
}

// EditList applies one local list-field edit (add/remove entry, toggle
// skill) to the cached form. Persistence happens on the step's Next only.
func (s *WizardService) EditList(ctx context.Context, session *domain.Session, edit ports.ListEditInput) (domain.WizardState, error) {
	state, err := s.load(ctx, session)
	if err != nil {
		return domain.WizardState{}, err
	}

	switch edit.Op {
	case "add_experience":
		state.AddExperience()
	case "remove_experience":
		if err := state.RemoveExperience(edit.Index); err != nil {
			return state, err
		}
	case "add_education":
		state.AddEducation()
	case "remove_education":
		state.RemoveEducation(edit.Index)
	case "toggle_skill":
		state.ToggleSkill(edit.Skill)
	default:
		return state, errors.New("unknown list edit: " + edit.Op)
	}

	if err := s.store.Save(ctx, session.UserID, state); err != nil {
		return domain.WizardState{}, err
	}
	return state, nil
}

// AttachResume records the uploaded resume URL on the cached form.
func (s *WizardService) AttachResume(ctx context.Context, session *domain.Session, url string) (domain.WizardState, error) {
	state, err := s.load(ctx, session)
	if err != nil {
		return domain.WizardState{}, err
	}
	state.Form.ResumeURL = url
	if err := s.store.Save(ctx, session.UserID, state); err != nil {
		return domain.WizardState{}, err
	}
	return state, nil
}

func (s *WizardService) load(ctx context.Context, session *domain.Session) (domain.WizardState, error) {
	state, ok, err := s.store.Get(ctx, session.UserID)
	if err != nil {
		return domain.WizardState{}, err
	}
	if ok {
		return state, nil
	}

	state = domain.NewWizardState()
	profile, err := s.profiles.Find(ctx, session.Role(), session.UserID)
	if err == nil {
		state.Form = profile.FormSnapshot()
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return domain.WizardState{}, err
	}

	if err := s.store.Save(ctx, session.UserID, state); err != nil {
		return domain.WizardState{}, err
	}
	return state, nil
}

func (s *WizardService) persist(ctx context.Context, session *domain.Session, form domain.WizardForm) error {
	return s.profiles.Upsert(ctx, &domain.JobseekerProfile{
		UserID:     session.UserID,
		Role:       session.Role(),
		Email:      session.Email,
		FullName:   form.FullName,
		Phone:      form.Phone,
		Location:   form.Location,
		Experience: form.Experience,
		Education:  form.Education,
		Skills:     form.Skills,
		OtherSkill: form.OtherSkill,
		ResumeURL:  form.ResumeURL,
		UpdatedAt:  time.Now().UTC(),
	})
}

// applyStepInput merges only the submitted fields into the form; absent
// fields keep their current value.
func applyStepInput(form *domain.WizardForm, input ports.StepInput) {
	if input.FullName != nil {
		form.FullName = *input.FullName
	}
	if input.Phone != nil {
		form.Phone = *input.Phone
	}
	if input.Location != nil {
		form.Location = *input.Location
	}
	if input.Experience != nil {
		form.Experience = input.Experience
	}
	if input.Education != nil {
		form.Education = input.Education
	}
	if input.Skills != nil {
		form.Skills = input.Skills
	}
	if input.OtherSkill != nil {
		form.OtherSkill = *input.OtherSkill
	}
}
