package wizard

import (
	"strings"

	"commbot/model"
)

// Committee wizard steps.
const (
	CommitteeStepCategory = iota + 1
	CommitteeStepBasicInfo
	CommitteeStepSettings
	CommitteeStepMembers
	CommitteeSteps = CommitteeStepMembers
)

// CommitteeForm is the snapshot of the committee wizard's fields. Validators
// read it; the conversation layer writes it one prompt at a time.
type CommitteeForm struct {
	Category     model.CommitteeCategory
	Name         string
	Description  string
	EnableVoting bool
	Public       bool

	// NameAutofilled records that the one-time category default was
	// applied, so the convenience never fires again once the user has
	// typed a name of their own.
	NameAutofilled bool

	touched map[string]bool
}

// Touch marks a field as visited so its validation error may be shown.
func (f *CommitteeForm) Touch(field string) {
	if f.touched == nil {
		f.touched = make(map[string]bool)
	}
	f.touched[field] = true
}

// TouchAll marks every field touched; called on submit so all errors
// surface at once.
func (f *CommitteeForm) TouchAll() {
	for _, field := range []string{"category", "name", "description"} {
		f.Touch(field)
	}
}

func (f *CommitteeForm) Touched(field string) bool { return f.touched[field] }

// EnterBasicInfo applies the category-to-name default when moving from the
// category step to basic info: an empty name is filled from the category
// value exactly once.
func (f *CommitteeForm) EnterBasicInfo() {
	if f.Name == "" && !f.NameAutofilled {
		f.Name = string(f.Category)
		f.NameAutofilled = true
	}
}

// StepValid is the pure per-step predicate for the committee wizard.
func (f *CommitteeForm) StepValid(step int) bool {
	switch step {
	case CommitteeStepCategory:
		return model.ValidCategory(f.Category)
	case CommitteeStepBasicInfo:
		return strings.TrimSpace(f.Name) != ""
	case CommitteeStepSettings, CommitteeStepMembers:
		return true
	default:
		return false
	}
}

// Valid reports whether every step validates, i.e. the form may be
// submitted.
func (f *CommitteeForm) Valid() bool {
	for step := 1; step <= CommitteeSteps; step++ {
		if !f.StepValid(step) {
			return false
		}
	}
	return true
}

// FieldErrors lists the messages for currently-invalid touched fields.
func (f *CommitteeForm) FieldErrors() []string {
	var errs []string
	if f.Touched("category") && !model.ValidCategory(f.Category) {
		errs = append(errs, "category: select one of the listed categories")
	}
	if f.Touched("name") && strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "name: must not be empty")
	}
	return errs
}

// Committee materializes the entity payload from the form.
func (f *CommitteeForm) Committee() model.Committee {
	return model.Committee{
		Name:         strings.TrimSpace(f.Name),
		Description:  strings.TrimSpace(f.Description),
		Category:     f.Category,
		EnableVoting: f.EnableVoting,
		Public:       f.Public,
	}
}

// LoadCommittee pre-populates the form from a fetched entity for the edit
// flow. The loaded name counts as user-provided, so autofill stays off.
func (f *CommitteeForm) LoadCommittee(c model.Committee) {
	f.Category = c.Category
	f.Name = c.Name
	f.Description = c.Description
	f.EnableVoting = c.EnableVoting
	f.Public = c.Public
	f.NameAutofilled = c.Name != ""
}
