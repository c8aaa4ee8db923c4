package optimizer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"coachflow/models"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// dayKey indexes the fake booking store by coach and date.
func dayKey(coachID, date string) string { return coachID + "|" + date }

type rescheduleCall struct {
	BookingID string
	Date      string
	Start     int
	End       int
}

type fakeBookingRepo struct {
	days        map[string][]models.Booking // coachID|date
	history     map[string][]models.Booking // clientID|coachID
	err         error
	historyErr  error
	reschedules []rescheduleCall
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		days:    make(map[string][]models.Booking),
		history: make(map[string][]models.Booking),
	}
}

func (f *fakeBookingRepo) addDay(coachID, date string, bookings ...models.Booking) {
	f.days[dayKey(coachID, date)] = append(f.days[dayKey(coachID, date)], bookings...)
}

func (f *fakeBookingRepo) GetConfirmedByCoachAndDate(coachID, date string) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	bookings := append([]models.Booking(nil), f.days[dayKey(coachID, date)]...)
	sort.SliceStable(bookings, func(i, j int) bool { return bookings[i].Start < bookings[j].Start })
	return bookings, nil
}

func (f *fakeBookingRepo) GetCompletedByClientAndCoach(clientID, coachID string, limit int) ([]models.Booking, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	history := f.history[clientID+"|"+coachID]
	if len(history) > limit {
		history = history[:limit]
	}
	return append([]models.Booking(nil), history...), nil
}

func (f *fakeBookingRepo) CountOverlapping(coachID, date string, start, end int, excludeBookingID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, b := range f.days[dayKey(coachID, date)] {
		if b.ID == excludeBookingID {
			continue
		}
		if b.Start < end && b.End > start {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) GetByID(bookingID string) (*models.Booking, error) {
	for _, bookings := range f.days {
		for i := range bookings {
			if bookings[i].ID == bookingID {
				b := bookings[i]
				return &b, nil
			}
		}
	}
	return nil, fmt.Errorf("booking %s not found", bookingID)
}

func (f *fakeBookingRepo) Reschedule(bookingID, date string, start, end int) error {
	if f.err != nil {
		return f.err
	}
	f.reschedules = append(f.reschedules, rescheduleCall{BookingID: bookingID, Date: date, Start: start, End: end})
	return nil
}

type fakeClientRepo struct {
	names map[string]string
}

func (f *fakeClientRepo) GetByID(clientID string) (*models.Client, error) {
	name, ok := f.names[clientID]
	if !ok {
		return nil, errors.New("client not found")
	}
	return &models.Client{ID: clientID, Name: name}, nil
}

type availCall struct {
	CoachID      string
	Date         string
	Start        int
	End          int
	LocationType string
	Exclude      string
}

type fakeChecker struct {
	available bool
	err       error
	calls     []availCall
}

func (f *fakeChecker) IsAvailable(coachID, date string, start, end int, locationType string, excludeBookingID string) (bool, error) {
	f.calls = append(f.calls, availCall{coachID, date, start, end, locationType, excludeBookingID})
	if f.err != nil {
		return false, f.err
	}
	return f.available, nil
}

type fakeSuggestionRepo struct {
	byID      map[string]*models.Suggestion
	order     []string
	insertErr error
}

func newFakeSuggestionRepo() *fakeSuggestionRepo {
	return &fakeSuggestionRepo{byID: make(map[string]*models.Suggestion)}
}

func (f *fakeSuggestionRepo) InsertMany(suggestions []models.Suggestion) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for i := range suggestions {
		s := suggestions[i]
		f.byID[s.ID] = &s
		f.order = append(f.order, s.ID)
	}
	return nil
}

func (f *fakeSuggestionRepo) GetByID(id string) (*models.Suggestion, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSuggestionRepo) GetPendingByCoach(coachID string, now time.Time) ([]models.Suggestion, error) {
	var out []models.Suggestion
	for _, id := range f.order {
		s := f.byID[id]
		if s.CoachID == coachID && s.Status == models.SuggestionStatusPending && s.ExpiresAt.After(now) {
			out = append(out, *s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].BenefitScore > out[j].BenefitScore })
	return out, nil
}

func (f *fakeSuggestionRepo) MarkReviewed(id, status string, reviewedAt time.Time) error {
	s, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("suggestion %s not found", id)
	}
	s.Status = status
	s.ReviewedAt = &reviewedAt
	return nil
}

func (f *fakeSuggestionRepo) MarkApplied(id string, appliedAt time.Time) error {
	s, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("suggestion %s not found", id)
	}
	s.Status = models.SuggestionStatusApplied
	s.AppliedAt = &appliedAt
	return nil
}

func (f *fakeSuggestionRepo) MarkExpired(id string) error {
	s, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("suggestion %s not found", id)
	}
	s.Status = models.SuggestionStatusExpired
	return nil
}

func (f *fakeSuggestionRepo) ExpireDue(now time.Time) (int64, error) {
	var count int64
	for _, s := range f.byID {
		if s.Status == models.SuggestionStatusPending && !s.ExpiresAt.After(now) {
			s.Status = models.SuggestionStatusExpired
			count++
		}
	}
	return count, nil
}

type notifyCall struct {
	CoachID string
	Count   int
}

type fakeNotifier struct {
	calls []notifyCall
}

func (f *fakeNotifier) NotifyNewSuggestions(_ context.Context, coachID string, count int) error {
	f.calls = append(f.calls, notifyCall{CoachID: coachID, Count: count})
	return nil
}

// confirmed builds a confirmed booking fixture.
func confirmed(id, coachID, clientID, date string, start, end int) models.Booking {
	return models.Booking{
		ID:           id,
		CoachID:      coachID,
		ClientID:     clientID,
		Date:         date,
		Start:        start,
		End:          end,
		Duration:     end - start,
		Status:       models.BookingStatusConfirmed,
		LocationType: "in_person",
	}
}

// completed builds a completed booking fixture for preference history.
func completed(clientID, coachID, date string, start int) models.Booking {
	return models.Booking{
		ID:       "h-" + date,
		CoachID:  coachID,
		ClientID: clientID,
		Date:     date,
		Start:    start,
		End:      start + 60,
		Duration: 60,
		Status:   models.BookingStatusCompleted,
	}
}

func newTestService(bookings *fakeBookingRepo, clients *fakeClientRepo, suggestions *fakeSuggestionRepo, checker *fakeChecker) *DefaultGapOptimizerService {
	return &DefaultGapOptimizerService{
		BookingRepo:    bookings,
		ClientRepo:     clients,
		SuggestionRepo: suggestions,
		Availability:   checker,
		Now:            func() time.Time { return fixedNow },
	}
}
