package domain

import (
	"errors"
	"strings"
)

// WizardStep identifies one step of the linear profile-building flow.
type WizardStep int

const (
	StepPersonalInfo WizardStep = 1
	StepExperience   WizardStep = 2
	StepEducation    WizardStep = 3
	StepSkills       WizardStep = 4
	StepResume       WizardStep = 5

	// TotalWizardSteps is fixed for both jobseeker roles.
	TotalWizardSteps = 5
)

var ErrExperienceRequired = errors.New("at least one experience entry with a job title and company is required")
var ErrWizardCompleted = errors.New("profile wizard already completed")
var ErrLastEntry = errors.New("cannot remove the last entry")

// ExperienceEntry is one work-experience row of the wizard form.
type ExperienceEntry struct {
	JobTitle    string `json:"job_title" bson:"job_title"`
	Company     string `json:"company" bson:"company"`
	StartDate   string `json:"start_date" bson:"start_date"`
	EndDate     string `json:"end_date" bson:"end_date"`
	Description string `json:"description" bson:"description"`
}

// Qualifying reports whether the entry satisfies the experience-step rule:
// a non-empty job title and a non-empty company.
func (e ExperienceEntry) Qualifying() bool {
	return strings.TrimSpace(e.JobTitle) != "" && strings.TrimSpace(e.Company) != ""
}

// EducationEntry is one education row of the wizard form.
type EducationEntry struct {
	Degree      string `json:"degree" bson:"degree"`
	Institution string `json:"institution" bson:"institution"`
	Year        string `json:"year" bson:"year"`
}

// WizardForm holds every field the wizard collects. Edits stay in this
// in-memory form until the active step's next() persists them.
type WizardForm struct {
	FullName   string            `json:"full_name" bson:"full_name"`
	Phone      string            `json:"phone" bson:"phone"`
	Location   string            `json:"location" bson:"location"`
	Experience []ExperienceEntry `json:"experience" bson:"experience"`
	Education  []EducationEntry  `json:"education" bson:"education"`
	Skills     []string          `json:"skills" bson:"skills"`
	OtherSkill string            `json:"other_skill" bson:"other_skill"`
	ResumeURL  string            `json:"resume_url" bson:"resume_url"`
}

// NewWizardForm returns the form in its initial shape: one blank experience
// entry and one blank education entry, so list steps always have a row to
// edit.
func NewWizardForm() WizardForm {
	return WizardForm{
		Experience: []ExperienceEntry{{}},
		Education:  []EducationEntry{{}},
		Skills:     []string{},
	}
}

// WizardState is the step machine of the profile wizard. CurrentStep always
// stays within [1, TotalWizardSteps].
type WizardState struct {
	CurrentStep WizardStep `json:"current_step"`
	Completed   bool       `json:"completed"`
	Form        WizardForm `json:"form"`
}

// NewWizardState starts the wizard at the first step with a fresh form.
func NewWizardState() WizardState {
	return WizardState{CurrentStep: StepPersonalInfo, Form: NewWizardForm()}
}

// Next validates the current step and advances. Only the experience step can
// reject: it requires at least one qualifying entry. Advancing past the last
// step marks the wizard completed; further transitions are refused.
func (w *WizardState) Next() error {
	if w.Completed {
		return ErrWizardCompleted
	}
	if err := w.validateStep(); err != nil {
		return err
	}
	if w.CurrentStep >= TotalWizardSteps {
		w.Completed = true
		return nil
	}
	w.CurrentStep++
	return nil
}

// Back moves one step back without validation and without persisting
// anything. It is a no-op on the first step.
func (w *WizardState) Back() {
	if w.Completed || w.CurrentStep <= StepPersonalInfo {
		return
	}
	w.CurrentStep--
}

// Reset discards the wizard back to its initial state.
func (w *WizardState) Reset() {
	*w = NewWizardState()
}

func (w *WizardState) validateStep() error {
	if w.CurrentStep != StepExperience {
		return nil
	}
	for _, e := range w.Form.Experience {
		if e.Qualifying() {
			return nil
		}
	}
	return ErrExperienceRequired
}

// AddExperience appends a blank experience row.
func (w *WizardState) AddExperience() {
	w.Form.Experience = append(w.Form.Experience, ExperienceEntry{})
}

// RemoveExperience deletes the entry at index. The experience list never
// goes empty: the step is mandatory.
func (w *WizardState) RemoveExperience(index int) error {
	if index < 0 || index >= len(w.Form.Experience) {
		return nil
	}
	if len(w.Form.Experience) == 1 {
		return ErrLastEntry
	}
	w.Form.Experience = append(w.Form.Experience[:index], w.Form.Experience[index+1:]...)
	return nil
}

// AddEducation appends a blank education row.
func (w *WizardState) AddEducation() {
	w.Form.Education = append(w.Form.Education, EducationEntry{})
}

// RemoveEducation deletes the entry at index. Education is optional, so the
// list may go empty.
func (w *WizardState) RemoveEducation(index int) {
	if index < 0 || index >= len(w.Form.Education) {
		return
	}
	w.Form.Education = append(w.Form.Education[:index], w.Form.Education[index+1:]...)
}

// ToggleSkill adds the skill if absent and removes it if present.
func (w *WizardState) ToggleSkill(skill string) {
	for i, s := range w.Form.Skills {
		if s == skill {
			w.Form.Skills = append(w.Form.Skills[:i], w.Form.Skills[i+1:]...)
			return
		}
	}
	w.Form.Skills = append(w.Form.Skills, skill)
}
