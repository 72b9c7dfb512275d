package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardStepsForPaidVenue(t *testing.T) {
	w := NewWizard(3, false)
	assert.Equal(t, StepSchedules, w.Step)

	w = w.NextStep()
	assert.Equal(t, StepPayment, w.Step)

	w = w.NextStep()
	assert.Equal(t, StepConfirm, w.Step)

	w = w.NextStep()
	assert.Equal(t, StepConfirm, w.Step)

	w = w.PrevStep()
	assert.Equal(t, StepPayment, w.Step)
}

func TestWizardSkipsPaymentForFreeVenue(t *testing.T) {
	w := NewWizard(3, true).NextStep()
	assert.Equal(t, StepConfirm, w.Step)

	w = w.PrevStep()
	assert.Equal(t, StepSchedules, w.Step)
}

func TestWizardSubmit(t *testing.T) {
	w := NewWizard(3, true)

	_, err := w.Submit()
	assert.ErrorIs(t, err, ErrNotAtConfirmStep)

	w, err = w.NextStep().Submit()
	require.NoError(t, err)
	assert.Equal(t, SubmissionPending, w.Status)

	_, err = w.Submit()
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	// пока идёт отправка, шаги не меняются
	assert.Equal(t, StepConfirm, w.PrevStep().Step)

	failed := w.Fail(errors.New("boom"))
	assert.Equal(t, SubmissionError, failed.Status)
	assert.Equal(t, StepConfirm, failed.Step)

	retried, err := failed.Submit()
	require.NoError(t, err)
	assert.Nil(t, retried.Err)

	done := retried.Succeed(42)
	assert.Equal(t, SubmissionSuccess, done.Status)
	assert.Equal(t, int64(42), done.BookingID)
}
