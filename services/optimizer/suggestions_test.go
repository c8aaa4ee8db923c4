package optimizer

import (
	"testing"
	"time"

	"coachflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOpportunity(bookingID string, benefit int) models.OptimizationOpportunity {
	return models.OptimizationOpportunity{
		BookingID:       bookingID,
		CoachID:         "coach1",
		ClientID:        "c2",
		ClientName:      "Bob",
		LocationType:    "in_person",
		OriginalDate:    "2025-06-01",
		OriginalStart:   660,
		OriginalEnd:     720,
		ProposedDate:    "2025-06-01",
		ProposedStart:   600,
		ProposedEnd:     660,
		SuggestionType:  models.SuggestionTypeCreateBlock,
		GapStart:        600,
		GapEnd:          660,
		MinutesFreed:    60,
		NewBlockSize:    600,
		Reason:          "Move Bob's session from 11:00 to 10:00",
		BenefitScore:    benefit,
		PreferenceScore: 50,
	}
}

// createAccepted persists one suggestion and moves it to accepted.
func createAccepted(t *testing.T, svc *DefaultGapOptimizerService) models.Suggestion {
	t.Helper()
	created, err := svc.CreateSuggestions("coach1", []models.OptimizationOpportunity{sampleOpportunity("b2", 55)})
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.NoError(t, svc.RespondToSuggestion(created[0].ID, true))
	return created[0]
}

func TestCreateSuggestions_PersistsPendingWithExpiry(t *testing.T) {
	suggestions := newFakeSuggestionRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(newFakeBookingRepo(), &fakeClientRepo{}, suggestions, &fakeChecker{})
	svc.Notifier = notifier

	created, err := svc.CreateSuggestions("coach1", []models.OptimizationOpportunity{
		sampleOpportunity("b2", 55),
		sampleOpportunity("b4", 70),
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	for _, s := range created {
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, models.SuggestionStatusPending, s.Status)
		assert.Equal(t, fixedNow, s.CreatedAt)
		assert.Equal(t, fixedNow.Add(7*24*time.Hour), s.ExpiresAt)
		assert.Equal(t, "coach1", s.CoachID)
	}
	assert.Equal(t, 55, created[0].BenefitScore)
	assert.Equal(t, "Bob", created[0].ClientName)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, notifyCall{CoachID: "coach1", Count: 2}, notifier.calls[0])
}

func TestCreateSuggestions_EmptyBatchIsNoop(t *testing.T) {
	suggestions := newFakeSuggestionRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(newFakeBookingRepo(), &fakeClientRepo{}, suggestions, &fakeChecker{})
	svc.Notifier = notifier

	created, err := svc.CreateSuggestions("coach1", nil)
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, notifier.calls)
	assert.Empty(t, suggestions.order)
}

func TestGetPendingSuggestions_SortedAndFiltered(t *testing.T) {
	suggestions := newFakeSuggestionRepo()
	svc := newTestService(newFakeBookingRepo(), &fakeClientRepo{}, suggestions, &fakeChecker{})

	created, err := svc.CreateSuggestions("coach1", []models.OptimizationOpportunity{
		sampleOpportunity("b2", 40),
		sampleOpportunity("b4", 80),
		sampleOpportunity("b6", 60),
	})
	require.NoError(t, err)
	require.NoError(t, svc.RespondToSuggestion(created[2].ID, false)) // rejected, drops out

	pending, err := svc.GetPendingSuggestions("coach1")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, 80, pending[0].BenefitScore)
	assert.Equal(t, 40, pending[1].BenefitScore)
}

func TestRespondToSuggestion_AcceptAndReject(t *testing.T) {
	suggestions := newFakeSuggestionRepo()
	svc := newTestService(newFakeBookingRepo(), &fakeClientRepo{}, suggestions, &fakeChecker{})

	created, err := svc.CreateSuggestions("coach1", []models.OptimizationOpportunity{
		sampleOpportunity("b2", 55),
		sampleOpportunity("b4", 60),
	})
	require.NoError(t, err)

	require.NoError(t, svc.RespondToSuggestion(created[0].ID, true))
	accepted, _ := suggestions.GetByID(created[0].ID)
	assert.Equal(t, models.SuggestionStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.ReviewedAt)
	assert.Equal(t, fixedNow, *accepted.ReviewedAt)

	require.NoError(t, svc.RespondToSuggestion(created[1].ID, false))
	rejected, _ := suggestions.GetByID(created[1].ID)
	assert.Equal(t, models.SuggestionStatusRejected, rejected.Status)
}

func TestRespondToSuggestion_UnknownID(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeClientRepo{}, newFakeSuggestionRepo(), &fakeChecker{})

	err := svc.RespondToSuggestion("missing", true)
	require.Error(t, err)
	assert.Equal(t, CodeSuggestionNotFound, ErrCode(err))
}

func TestRespondToSuggestion_SecondResponseRejected(t *testing.T) {
	suggestions := newFakeSuggestionRepo()
	svc := newTestService(newFakeBookingRepo(), &fakeClientRepo{}, suggestions, &fakeChecker{})
	accepted := createAccepted(t, svc)

	err := svc.RespondToSuggestion(accepted.ID, false)
	require.Error(t, err)
	assert.Equal(t, CodeAlreadyReviewed, ErrCode(err))

	// The original decision stands.
	current, _ := suggestions.GetByID(accepted.ID)
	assert.Equal(t, models.SuggestionStatusAccepted, current.Status)
}

func TestApplySuggestion_MovesBookingWhenSlotStillFree(t *testing.T) {
	bookings := newFakeBookingRepo()
	suggestions := newFakeSuggestionRepo()
	checker := &fakeChecker{available: true}
	svc := newTestService(bookings, &fakeClientRepo{}, suggestions, checker)
	accepted := createAccepted(t, svc)

	require.NoError(t, svc.ApplySuggestion(accepted.ID))

	require.Len(t, bookings.reschedules, 1)
	assert.Equal(t, rescheduleCall{BookingID: "b2", Date: "2025-06-01", Start: 600, End: 660}, bookings.reschedules[0])

	applied, _ := suggestions.GetByID(accepted.ID)
	assert.Equal(t, models.SuggestionStatusApplied, applied.Status)
	require.NotNil(t, applied.AppliedAt)

	// The re-check used the stored proposed slot, excluding the booking itself.
	require.Len(t, checker.calls, 1)
	assert.Equal(t, availCall{"coach1", "2025-06-01", 600, 660, "in_person", "b2"}, checker.calls[0])
}

func TestApplySuggestion_RequiresAccepted(t *testing.T) {
	bookings := newFakeBookingRepo()
	suggestions := newFakeSuggestionRepo()
	svc := newTestService(bookings, &fakeClientRepo{}, suggestions, &fakeChecker{available: true})

	created, err := svc.CreateSuggestions("coach1", []models.OptimizationOpportunity{sampleOpportunity("b2", 55)})
	require.NoError(t, err)

	err = svc.ApplySuggestion(created[0].ID)
	require.Error(t, err)
	assert.Equal(t, CodeNotAccepted, ErrCode(err))
	assert.Empty(t, bookings.reschedules)

	// Rejected suggestions can never be applied either.
	require.NoError(t, svc.RespondToSuggestion(created[0].ID, false))
	err = svc.ApplySuggestion(created[0].ID)
	require.Error(t, err)
	assert.Equal(t, CodeNotAccepted, ErrCode(err))
}

func TestApplySuggestion_UnknownID(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeClientRepo{}, newFakeSuggestionRepo(), &fakeChecker{})

	err := svc.ApplySuggestion("missing")
	require.Error(t, err)
	assert.Equal(t, CodeSuggestionNotFound, ErrCode(err))
}

func TestApplySuggestion_StaleSlotExpiresSuggestion(t *testing.T) {
	bookings := newFakeBookingRepo()
	suggestions := newFakeSuggestionRepo()
	checker := &fakeChecker{available: true}
	svc := newTestService(bookings, &fakeClientRepo{}, suggestions, checker)
	accepted := createAccepted(t, svc)

	// An unrelated process took the slot between accept and apply.
	checker.available = false

	err := svc.ApplySuggestion(accepted.ID)
	require.Error(t, err)
	assert.Equal(t, CodeSlotTaken, ErrCode(err))

	expired, _ := suggestions.GetByID(accepted.ID)
	assert.Equal(t, models.SuggestionStatusExpired, expired.Status)
	assert.Empty(t, bookings.reschedules, "the booking must be left unmodified")
}

func TestExpireOldSuggestions_SweepIsIdempotent(t *testing.T) {
	suggestions := newFakeSuggestionRepo()
	svc := newTestService(newFakeBookingRepo(), &fakeClientRepo{}, suggestions, &fakeChecker{})

	_, err := svc.CreateSuggestions("coach1", []models.OptimizationOpportunity{
		sampleOpportunity("b2", 55),
		sampleOpportunity("b4", 60),
		sampleOpportunity("b6", 65),
	})
	require.NoError(t, err)

	// Jump past the retention window.
	svc.Now = func() time.Time { return fixedNow.Add(8 * 24 * time.Hour) }

	count, err := svc.ExpireOldSuggestions()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	pending, err := svc.GetPendingSuggestions("coach1")
	require.NoError(t, err)
	assert.Empty(t, pending)

	// A second sweep finds nothing left to transition.
	count, err = svc.ExpireOldSuggestions()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGetPendingSuggestions_ExcludesPastExpiry(t *testing.T) {
	suggestions := newFakeSuggestionRepo()
	svc := newTestService(newFakeBookingRepo(), &fakeClientRepo{}, suggestions, &fakeChecker{})

	_, err := svc.CreateSuggestions("coach1", []models.OptimizationOpportunity{sampleOpportunity("b2", 55)})
	require.NoError(t, err)

	// Past expiry but not yet swept: still hidden from the pending list.
	svc.Now = func() time.Time { return fixedNow.Add(8 * 24 * time.Hour) }
	pending, err := svc.GetPendingSuggestions("coach1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}
