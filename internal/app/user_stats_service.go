// internal/app/user_stats_service.go
package app

import (
	"context"
	"fmt"
	"log"
	"math"
	"regexp"
	"sort"
	"time"

	"cubicle_notifier/internal/domain/cubicle"
	"cubicle_notifier/internal/domain/reservation"
	"cubicle_notifier/internal/domain/user"
)

// ErrInvalidDateFilter is returned when a date filter is not a real calendar
// day in YYYY-MM-DD form.
var ErrInvalidDateFilter = fmt.Errorf("date filter must be a valid YYYY-MM-DD calendar day")

var dateFilterPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDateFilter checks the YYYY-MM-DD shape and that the value parses to
// a calendar date whose ISO form round-trips (rejects e.g. 2024-02-30).
func ValidateDateFilter(s string) (time.Time, error) {
	if !dateFilterPattern.MatchString(s) {
		return time.Time{}, ErrInvalidDateFilter
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil || t.Format("2006-01-02") != s {
		return time.Time{}, ErrInvalidDateFilter
	}
	return t, nil
}

// UserStatsService derives per-user usage summaries from raw reservation
// records. Summaries are recomputed on every call and never persisted.
type UserStatsService struct {
	reservations reservation.Source
	logger       *log.Logger
}

func NewUserStatsService(src reservation.Source, logger *log.Logger) *UserStatsService {
	return &UserStatsService{reservations: src, logger: logger}
}

// AggregateAll returns one summary per distinct user email, in order of first
// appearance in the store's result set. Returns an empty slice when there are
// no reservations at all.
func (s *UserStatsService) AggregateAll(ctx context.Context) ([]user.Summary, error) {
	records, err := s.reservations.Find(ctx, reservation.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}
	return aggregate(records), nil
}

// AggregateOne computes the summary for a single user id, optionally
// restricted to one calendar day. A nil summary with a nil error means the
// user has no matching reservations; callers must treat that as "no data",
// not as a failure.
func (s *UserStatsService) AggregateOne(ctx context.Context, userID string, dateFilter string) (*user.Summary, error) {
	filter := reservation.Filter{UserID: userID}
	if dateFilter != "" {
		day, err := ValidateDateFilter(dateFilter)
		if err != nil {
			return nil, err
		}
		filter.Day = &day
	}

	records, err := s.reservations.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations for user %s: %w", userID, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	summaries := aggregate(records)
	// All records belong to the requested uid, so aggregation yields one
	// summary (two uids never share one here; the filter is by uid).
	return &summaries[0], nil
}

// UtilizationReport computes overall cubicle usage percentages across all
// reservations, using the cubicle count as capacity.
func (s *UserStatsService) UtilizationReport(ctx context.Context) (user.UtilizationReport, error) {
	capacity, err := s.reservations.CountCubicles(ctx)
	if err != nil {
		return user.UtilizationReport{}, fmt.Errorf("failed to count cubicles: %w", err)
	}

	records, err := s.reservations.Find(ctx, reservation.Filter{})
	if err != nil {
		return user.UtilizationReport{}, fmt.Errorf("failed to fetch reservations: %w", err)
	}

	report := user.UtilizationReport{Capacity: capacity, TotalReservations: len(records)}
	if capacity == 0 || len(records) == 0 {
		return report, nil
	}

	perDay := make(map[string]int)
	for _, rec := range records {
		perDay[rec.Day()]++
	}
	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days) // earliest peak day wins ties

	var sumPct float64
	for _, day := range days {
		pct := float64(perDay[day]) / float64(capacity) * 100
		sumPct += pct
		if pct > report.PeakPct {
			report.PeakPct = pct
			report.PeakDay = day
		}
	}
	report.AveragePct = sumPct / float64(len(days))
	return report, nil
}

// userAccum collects one user's records during aggregation. Section order is
// tracked explicitly so favorite-section ties resolve to the first section
// encountered, reproducibly.
type userAccum struct {
	uid          string
	email        string
	name         string
	total        int
	days         map[string]struct{}
	sectionOrder []string
	sectionCount map[string]int
	entries      []cubicle.Entry
	lastActivity time.Time
}

// aggregate groups records by user email in insertion order and derives one
// summary per group.
func aggregate(records []reservation.Record) []user.Summary {
	accums := make(map[string]*userAccum)
	var order []string

	for _, rec := range records {
		acc, ok := accums[rec.UserEmail]
		if !ok {
			acc = &userAccum{
				uid:          rec.UserID,
				email:        rec.UserEmail,
				name:         rec.UserName,
				days:         make(map[string]struct{}),
				sectionCount: make(map[string]int),
			}
			accums[rec.UserEmail] = acc
			order = append(order, rec.UserEmail)
		}
		acc.total++
		acc.days[rec.Day()] = struct{}{}
		if _, seen := acc.sectionCount[rec.CubicleSection]; !seen {
			acc.sectionOrder = append(acc.sectionOrder, rec.CubicleSection)
		}
		acc.sectionCount[rec.CubicleSection]++
		acc.entries = append(acc.entries, cubicle.Entry{Date: rec.Date, Serial: rec.CubicleSerial})
		if rec.Date.After(acc.lastActivity) {
			acc.lastActivity = rec.Date
		}
	}

	summaries := make([]user.Summary, 0, len(order))
	for _, email := range order {
		acc := accums[email]

		favorite := ""
		best := 0
		for _, section := range acc.sectionOrder {
			if acc.sectionCount[section] > best {
				favorite = section
				best = acc.sectionCount[section]
			}
		}

		avg := 0.0
		if len(acc.days) > 0 {
			avg = round2(float64(acc.total) / float64(len(acc.days)))
		}

		summaries = append(summaries, user.Summary{
			UID:                  acc.uid,
			Email:                acc.email,
			DisplayName:          acc.name,
			TotalReservations:    acc.total,
			DaysActive:           len(acc.days),
			FavoriteSection:      favorite,
			AvgDailyReservations: avg,
			CubicleSequence:      cubicle.Compress(acc.entries),
			LastActivity:         acc.lastActivity,
		})
	}
	return summaries
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
