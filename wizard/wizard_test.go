package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commbot/model"
)

func committeeFixture() model.Committee {
	return model.Committee{ID: "c1", Name: "Engineering WG", Category: model.CategoryTechnical}
}

// validUpTo builds a validator where steps 1..n validate and later ones
// don't.
func validUpTo(n int) Validator {
	return func(step int) bool { return step <= n }
}

func TestCanNavigateTo(t *testing.T) {
	t.Run("backward always allowed", func(t *testing.T) {
		w := New(4, ModeCreate, validUpTo(0))
		require.True(t, w.GoTo(1))
		assert.True(t, w.CanNavigateTo(1))
	})

	t.Run("forward requires all earlier steps valid", func(t *testing.T) {
		for firstInvalid := 1; firstInvalid <= 4; firstInvalid++ {
			w := New(4, ModeCreate, validUpTo(firstInvalid-1))
			for target := 2; target <= 4; target++ {
				want := target-1 < firstInvalid
				assert.Equal(t, want, w.CanNavigateTo(target),
					"firstInvalid=%d target=%d", firstInvalid, target)
			}
		}
	})

	t.Run("out of range", func(t *testing.T) {
		w := New(4, ModeCreate, validUpTo(4))
		assert.False(t, w.CanNavigateTo(0))
		assert.False(t, w.CanNavigateTo(5))
	})
}

func TestTransitions(t *testing.T) {
	w := New(3, ModeCreate, validUpTo(1))

	require.True(t, w.Next())
	assert.Equal(t, 2, w.Current())

	// Step 2 does not validate, so step 3 is unreachable.
	assert.False(t, w.Next())
	assert.Equal(t, 2, w.Current())

	require.True(t, w.Previous())
	assert.Equal(t, 1, w.Current())
	assert.False(t, w.Previous(), "no step before the first")
}

func TestGoToJumpChecksEveryEarlierStep(t *testing.T) {
	form := &CommitteeForm{}
	w := New(CommitteeSteps, ModeCreate, form.StepValid)

	// Category unset: nothing past step 1 is reachable.
	assert.False(t, w.GoTo(3))

	form.Category = "Technical"
	form.Name = "Engineering WG"
	require.True(t, w.GoTo(4))
	assert.Equal(t, 4, w.Current())

	// Guard is re-evaluated on the live form: clearing the name blocks a
	// new forward jump but never backward movement.
	form.Name = ""
	require.True(t, w.GoTo(1))
	assert.False(t, w.GoTo(3))
}

func TestCommitteeStepValidation(t *testing.T) {
	form := &CommitteeForm{}
	assert.False(t, form.StepValid(CommitteeStepCategory))
	assert.False(t, form.StepValid(CommitteeStepBasicInfo))
	assert.True(t, form.StepValid(CommitteeStepSettings))
	assert.True(t, form.StepValid(CommitteeStepMembers))

	form.Category = "Technical"
	assert.True(t, form.StepValid(CommitteeStepCategory))

	form.Name = "   "
	assert.False(t, form.StepValid(CommitteeStepBasicInfo), "whitespace-only name is empty")
	form.Name = "Engineering WG"
	assert.True(t, form.StepValid(CommitteeStepBasicInfo))
	assert.True(t, form.Valid())
}

func TestStepValidIsPure(t *testing.T) {
	form := &CommitteeForm{Category: "Technical", Name: "X"}
	for i := 0; i < 5; i++ {
		assert.True(t, form.StepValid(CommitteeStepCategory))
		assert.True(t, form.StepValid(CommitteeStepBasicInfo))
	}
}

func TestNameAutofill(t *testing.T) {
	t.Run("empty name filled from category once", func(t *testing.T) {
		form := &CommitteeForm{Category: "Technical"}
		form.EnterBasicInfo()
		assert.Equal(t, "Technical", form.Name)
		assert.True(t, form.NameAutofilled)
	})

	t.Run("not re-triggered after the user cleared it", func(t *testing.T) {
		form := &CommitteeForm{Category: "Technical"}
		form.EnterBasicInfo()
		form.Name = ""
		form.EnterBasicInfo()
		assert.Empty(t, form.Name)
	})

	t.Run("never overwrites a typed name", func(t *testing.T) {
		form := &CommitteeForm{Category: "Technical", Name: "My WG"}
		form.EnterBasicInfo()
		assert.Equal(t, "My WG", form.Name)
	})

	t.Run("loaded entity counts as typed", func(t *testing.T) {
		form := &CommitteeForm{}
		form.LoadCommittee(committeeFixture())
		form.EnterBasicInfo()
		assert.Equal(t, "Engineering WG", form.Name)
	})
}

func TestFieldErrorsOnlyForTouched(t *testing.T) {
	form := &CommitteeForm{}
	assert.Empty(t, form.FieldErrors(), "untouched fields stay quiet")

	form.TouchAll()
	errs := form.FieldErrors()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "category")
	assert.Contains(t, errs[1], "name")
}

func TestMeetingStepValidation(t *testing.T) {
	form := &MeetingForm{}
	assert.False(t, form.StepValid(MeetingStepBasicInfo))
	assert.False(t, form.StepValid(MeetingStepSchedule))

	form.Title = "Weekly sync"
	form.StartTime = "2026-09-01 15:00"
	form.DurationMinutes = 30
	assert.True(t, form.Valid())

	form.StartTime = "next tuesday"
	assert.False(t, form.StepValid(MeetingStepSchedule))
}
