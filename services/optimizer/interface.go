// Package optimizer analyzes a coach's calendar for idle gaps between
// confirmed sessions and proposes single-booking moves that consolidate the
// schedule into denser blocks. Analysis is read-only; the only writes are the
// suggestion lifecycle operations and the booking update at apply time.
package optimizer

import (
	"time"

	"coachflow/config"
	bookingRepo "coachflow/database/repository/booking"
	clientRepo "coachflow/database/repository/client"
	suggestionRepo "coachflow/database/repository/suggestion"
	"coachflow/models"
	"coachflow/services/availability"
	"coachflow/services/notification"
	"coachflow/utils"

	"github.com/go-redis/redis/v8"
)

// GapOptimizerService defines the schedule optimization surface.
type GapOptimizerService interface {
	// DetectGaps returns idle windows of at least minGapMinutes between
	// consecutive confirmed bookings for the coach on the date. A
	// non-positive minGapMinutes selects the configured default.
	DetectGaps(coachID, date string, minGapMinutes int) []models.GapAnalysis
	// AnalyzeOpportunities walks every date in the inclusive range and
	// returns qualifying opportunities sorted by benefit score descending.
	AnalyzeOpportunities(coachID, startDate, endDate string) []models.OptimizationOpportunity
	// CreateSuggestions persists a batch of opportunities as pending
	// suggestions with an expiry timestamp.
	CreateSuggestions(coachID string, opportunities []models.OptimizationOpportunity) ([]models.Suggestion, error)
	// GetPendingSuggestions returns non-expired pending suggestions for a
	// coach, best first.
	GetPendingSuggestions(coachID string) ([]models.Suggestion, error)
	// RespondToSuggestion accepts or rejects a pending suggestion.
	RespondToSuggestion(id string, accept bool) error
	// ApplySuggestion re-checks availability for an accepted suggestion and,
	// if the slot is still free, moves the underlying booking.
	ApplySuggestion(id string) error
	// ExpireOldSuggestions sweeps pending suggestions past their expiry and
	// returns the count transitioned.
	ExpireOldSuggestions() (int64, error)
}

// DefaultGapOptimizerService is the production implementation. Dependencies
// are injected so each component is unit-testable without a live store; zero
// tunables fall back to package defaults.
type DefaultGapOptimizerService struct {
	BookingRepo    bookingRepo.BookingRepository
	ClientRepo     clientRepo.ClientRepository
	SuggestionRepo suggestionRepo.SuggestionRepository
	Availability   availability.Checker
	Notifier       notification.NotificationService // optional
	CacheClient    *redis.Client                    // optional, caches analysis results

	MinGapMinutes   int // smallest idle window reported as a gap
	MaxGapMinutes   int // largest gap still worth consolidating
	MinBenefitScore int // opportunities below this are not emitted
	DayEndMinutes   int // end-of-day boundary for trailing block size
	RetentionDays   int // pending suggestions expire after this many days
	HistoryLimit    int // completed bookings sampled for preference scoring

	Now func() time.Time // injectable clock
}

// Defaults applied when the corresponding tunable is zero.
const (
	defaultMinGapMinutes   = 30
	defaultMaxGapMinutes   = 90
	defaultMinBenefitScore = 30
	defaultDayEndMinutes   = 1260 // 21:00
	defaultRetentionDays   = 7
	defaultHistoryLimit    = 20
)

// NewDefaultGapOptimizerService wires a service from the loaded app config.
func NewDefaultGapOptimizerService(
	bookings bookingRepo.BookingRepository,
	clients clientRepo.ClientRepository,
	suggestions suggestionRepo.SuggestionRepository,
	checker availability.Checker,
	notifier notification.NotificationService,
	cache *redis.Client,
) *DefaultGapOptimizerService {
	return &DefaultGapOptimizerService{
		BookingRepo:     bookings,
		ClientRepo:      clients,
		SuggestionRepo:  suggestions,
		Availability:    checker,
		Notifier:        notifier,
		CacheClient:     cache,
		MinGapMinutes:   config.AppConfig.MinGapMinutes,
		MaxGapMinutes:   config.AppConfig.MaxGapMinutes,
		MinBenefitScore: config.AppConfig.MinBenefitScore,
		DayEndMinutes:   config.AppConfig.DayEndMinutes,
		RetentionDays:   config.AppConfig.SuggestionRetentionDays,
		HistoryLimit:    config.AppConfig.PreferenceHistoryLimit,
	}
}

const dateLayout = "2006-01-02"

func (svc *DefaultGapOptimizerService) minGap() int {
	if svc.MinGapMinutes > 0 {
		return svc.MinGapMinutes
	}
	return defaultMinGapMinutes
}

func (svc *DefaultGapOptimizerService) maxGap() int {
	if svc.MaxGapMinutes > 0 {
		return svc.MaxGapMinutes
	}
	return defaultMaxGapMinutes
}

func (svc *DefaultGapOptimizerService) minBenefit() int {
	if svc.MinBenefitScore > 0 {
		return svc.MinBenefitScore
	}
	return defaultMinBenefitScore
}

func (svc *DefaultGapOptimizerService) dayEnd() int {
	if svc.DayEndMinutes > 0 {
		return svc.DayEndMinutes
	}
	return defaultDayEndMinutes
}

func (svc *DefaultGapOptimizerService) retention() time.Duration {
	days := svc.RetentionDays
	if days <= 0 {
		days = defaultRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

func (svc *DefaultGapOptimizerService) historyLimit() int {
	if svc.HistoryLimit > 0 {
		return svc.HistoryLimit
	}
	return defaultHistoryLimit
}

func (svc *DefaultGapOptimizerService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}

// clientName resolves a display name, degrading to a generic placeholder
// when the directory lookup fails.
func (svc *DefaultGapOptimizerService) clientName(clientID string) string {
	if svc.ClientRepo == nil {
		return "Client"
	}
	client, err := svc.ClientRepo.GetByID(clientID)
	if err != nil || client == nil || client.Name == "" {
		utils.GetLogger().Debug("client name lookup failed, using placeholder")
		return "Client"
	}
	return client.Name
}
