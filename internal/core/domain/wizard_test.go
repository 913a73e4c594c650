package domain

import "testing"

func qualifyingState() WizardState {
	state := NewWizardState()
	state.Form.Experience = []ExperienceEntry{{JobTitle: "Welder", Company: "SteelCo"}}
	return state
}

func TestWizardState_LinearWalk(t *testing.T) {
	state := qualifyingState()

	for step := 1; step <= TotalWizardSteps; step++ {
		if int(state.CurrentStep) != step {
			t.Fatalf("expected step %d, got %d", step, state.CurrentStep)
		}
		if err := state.Next(); err != nil {
			t.Fatalf("step %d rejected: %v", step, err)
		}
	}
	if !state.Completed {
		t.Fatalf("expected completion after the last step")
	}
	if err := state.Next(); err != ErrWizardCompleted {
		t.Fatalf("expected ErrWizardCompleted, got %v", err)
	}
}

func TestWizardState_ExperienceValidation(t *testing.T) {
	state := NewWizardState()
	if err := state.Next(); err != nil {
		t.Fatalf("personal info step rejected: %v", err)
	}

	// The seeded blank entry does not qualify.
	if err := state.Next(); err != ErrExperienceRequired {
		t.Fatalf("expected ErrExperienceRequired, got %v", err)
	}
	if state.CurrentStep != StepExperience {
		t.Fatalf("rejected step moved to %d", state.CurrentStep)
	}

	// Whitespace-only fields do not qualify either.
	state.Form.Experience = []ExperienceEntry{{JobTitle: "  ", Company: "SteelCo"}}
	if err := state.Next(); err != ErrExperienceRequired {
		t.Fatalf("whitespace title accepted: %v", err)
	}

	// One qualifying entry among blanks is enough.
	state.Form.Experience = append(state.Form.Experience, ExperienceEntry{JobTitle: "Welder", Company: "SteelCo"})
	if err := state.Next(); err != nil {
		t.Fatalf("qualifying entry rejected: %v", err)
	}
}

func TestWizardState_BackBoundaries(t *testing.T) {
	state := qualifyingState()

	state.Back()
	if state.CurrentStep != StepPersonalInfo {
		t.Fatalf("back on first step moved to %d", state.CurrentStep)
	}

	_ = state.Next()
	_ = state.Next()
	state.Back()
	if state.CurrentStep != StepExperience {
		t.Fatalf("expected step 2 after back, got %d", state.CurrentStep)
	}
}

func TestWizardState_BackThenNextKeepsForm(t *testing.T) {
	state := qualifyingState()
	_ = state.Next()
	_ = state.Next()
	if state.CurrentStep != StepEducation {
		t.Fatalf("expected step 3, got %d", state.CurrentStep)
	}

	// Revisiting the experience step and advancing again must not duplicate
	// or grow any list entries.
	state.Back()
	if err := state.Next(); err != nil {
		t.Fatalf("second pass over experience rejected: %v", err)
	}
	if state.CurrentStep != StepEducation {
		t.Fatalf("expected step 3 after revisit, got %d", state.CurrentStep)
	}
	if len(state.Form.Experience) != 1 {
		t.Fatalf("experience list changed on revisit: %+v", state.Form.Experience)
	}
	if len(state.Form.Education) != 1 {
		t.Fatalf("education list changed on revisit: %+v", state.Form.Education)
	}
}

func TestWizardState_ExperienceListNeverEmpty(t *testing.T) {
	state := NewWizardState()

	if err := state.RemoveExperience(0); err != ErrLastEntry {
		t.Fatalf("expected ErrLastEntry, got %v", err)
	}

	state.AddExperience()
	if err := state.RemoveExperience(1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(state.Form.Experience) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(state.Form.Experience))
	}

	// Out-of-range indexes are ignored.
	if err := state.RemoveExperience(5); err != nil {
		t.Fatalf("out-of-range remove errored: %v", err)
	}
}

func TestWizardState_EducationMayGoEmpty(t *testing.T) {
	state := NewWizardState()
	state.RemoveEducation(0)
	if len(state.Form.Education) != 0 {
		t.Fatalf("expected empty education list")
	}
	state.RemoveEducation(0)
}

func TestWizardState_ToggleSkill(t *testing.T) {
	state := NewWizardState()

	state.ToggleSkill("plumbing")
	state.ToggleSkill("wiring")
	if len(state.Form.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %v", state.Form.Skills)
	}

	state.ToggleSkill("plumbing")
	if len(state.Form.Skills) != 1 || state.Form.Skills[0] != "wiring" {
		t.Fatalf("toggle did not remove: %v", state.Form.Skills)
	}
}

func TestWizardState_Reset(t *testing.T) {
	state := qualifyingState()
	_ = state.Next()
	_ = state.Next()
	state.Form.FullName = "someone"

	state.Reset()
	if state.CurrentStep != StepPersonalInfo || state.Completed || state.Form.FullName != "" {
		t.Fatalf("reset incomplete: %+v", state)
	}
	if len(state.Form.Experience) != 1 || len(state.Form.Education) != 1 {
		t.Fatalf("reset must reseed blank entries: %+v", state.Form)
	}
}
