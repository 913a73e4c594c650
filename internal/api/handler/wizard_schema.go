package handler

import "github.com/yalajobs/jobboard-api/internal/core/domain"

type wizardStepRequest struct {
	FullName   *string                  `json:"full_name,omitempty"`
	Phone      *string                  `json:"phone,omitempty"`
	Location   *string                  `json:"location,omitempty"`
	Experience []domain.ExperienceEntry `json:"experience,omitempty"`
	Education  []domain.EducationEntry  `json:"education,omitempty"`
	Skills     []string                 `json:"skills,omitempty"`
	OtherSkill *string                  `json:"other_skill,omitempty"`
}

type wizardEditRequest struct {
	Op    string `json:"op" validate:"required,oneof=add_experience remove_experience add_education remove_education toggle_skill"`
	Index int    `json:"index,omitempty"`
	Skill string `json:"skill,omitempty"`
}

type wizardStateResponse struct {
	CurrentStep int               `json:"current_step"`
	TotalSteps  int               `json:"total_steps"`
	Completed   bool              `json:"completed"`
	Form        domain.WizardForm `json:"form"`
}

func newWizardStateResponse(state domain.WizardState) wizardStateResponse {
	return wizardStateResponse{
		CurrentStep: int(state.CurrentStep),
		TotalSteps:  domain.TotalWizardSteps,
		Completed:   state.Completed,
		Form:        state.Form,
	}
}
