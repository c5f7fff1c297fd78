// Package wizard holds the step state machine behind the multi-step
// create/edit conversations and the pure per-step validators for each form.
package wizard

// Mode distinguishes the create flow from editing an existing entity.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Validator reports whether one step's form fields currently validate. It
// must be pure: no side effects, same answer for the same form state.
type Validator func(step int) bool

// Wizard tracks position in an ordered sequence of steps. Steps are
// numbered 1..Total. Backward navigation is always allowed; forward
// navigation requires every earlier step to validate independently.
type Wizard struct {
	current int
	total   int
	mode    Mode
	valid   Validator
}

func New(total int, mode Mode, valid Validator) *Wizard {
	return &Wizard{current: 1, total: total, mode: mode, valid: valid}
}

func (w *Wizard) Current() int { return w.current }
func (w *Wizard) Total() int   { return w.total }
func (w *Wizard) Mode() Mode   { return w.mode }

// OnLastStep reports whether the wizard sits on its final step.
func (w *Wizard) OnLastStep() bool { return w.current == w.total }

// CanNavigateTo reports whether the wizard may move to target. Moving to the
// current step or any earlier one is always permitted; moving forward
// requires isStepValid for every step in [1, target).
func (w *Wizard) CanNavigateTo(target int) bool {
	if target < 1 || target > w.total {
		return false
	}
	if target <= w.current {
		return true
	}
	for step := 1; step < target; step++ {
		if !w.valid(step) {
			return false
		}
	}
	return true
}

// Next advances one step when the guard allows it and reports whether the
// transition happened.
func (w *Wizard) Next() bool {
	return w.GoTo(w.current + 1)
}

// Previous moves one step back; backward navigation is never guarded.
func (w *Wizard) Previous() bool {
	if w.current <= 1 {
		return false
	}
	w.current--
	return true
}

// GoTo jumps to an arbitrary step, subject to CanNavigateTo.
func (w *Wizard) GoTo(target int) bool {
	if !w.CanNavigateTo(target) {
		return false
	}
	w.current = target
	return true
}
