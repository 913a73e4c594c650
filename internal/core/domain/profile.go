package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

// JobseekerProfile is the persisted profile row of a blue- or white-collar
// user, keyed by the auth account id. The whole document is overwritten on
// every step save (upsert semantics).
type JobseekerProfile struct {
	UserID     string            `json:"user_id" bson:"_id"`
	Role       Role              `json:"role" bson:"role"`
	Email      string            `json:"email" bson:"email"`
	FullName   string            `json:"full_name" bson:"full_name"`
	Phone      string            `json:"phone" bson:"phone"`
	Location   string            `json:"location" bson:"location"`
	Experience []ExperienceEntry `json:"experience" bson:"experience"`
	Education  []EducationEntry  `json:"education" bson:"education"`
	Skills     []string          `json:"skills" bson:"skills"`
	OtherSkill string            `json:"other_skill" bson:"other_skill"`
	ResumeURL  string            `json:"resume_url" bson:"resume_url"`
	UpdatedAt  time.Time         `json:"updated_at" bson:"updated_at"`
}

// FormSnapshot copies the profile fields into a wizard form, used when a
// returning user resumes the wizard.
func (p *JobseekerProfile) FormSnapshot() WizardForm {
	form := WizardForm{
		FullName:   p.FullName,
		Phone:      p.Phone,
		Location:   p.Location,
		Experience: append([]ExperienceEntry(nil), p.Experience...),
		Education:  append([]EducationEntry(nil), p.Education...),
		Skills:     append([]string(nil), p.Skills...),
		OtherSkill: p.OtherSkill,
		ResumeURL:  p.ResumeURL,
	}
	if len(form.Experience) == 0 {
		form.Experience = []ExperienceEntry{{}}
	}
	if len(form.Education) == 0 {
		form.Education = []EducationEntry{{}}
	}
	if form.Skills == nil {
		form.Skills = []string{}
	}
	return form
}
