package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicops/backoffice/internal/backend"
	"github.com/clinicops/backoffice/internal/calendar"
	"github.com/clinicops/backoffice/pkg/logging"
)

// API is the subset of the clinic backend the schedule service needs.
type API interface {
	ListSchedules(ctx context.Context, params backend.ListSchedulesParams) ([]backend.ScheduleEntry, error)
	CreateSchedule(ctx context.Context, req backend.CreateScheduleRequest) (*backend.ScheduleEntry, error)
	UpdateSchedule(ctx context.Context, id string, req backend.UpdateScheduleRequest) (*backend.ScheduleEntry, error)
	DeleteSchedule(ctx context.Context, id string) error
}

// Service produces renderable month views and applies schedule mutations.
// Every mutation re-fetches the affected month before success is reported,
// so a caller never sees a view older than its own change.
type Service struct {
	api    API
	loc    *time.Location
	logger *logging.Logger
}

// NewService creates a schedule service. tz is the clinic's fixed display
// timezone; an unknown name falls back to UTC.
func NewService(api API, tz string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logger.Warn("unknown clinic timezone, using UTC", "tz", tz)
		loc = time.UTC
	}
	return &Service{api: api, loc: loc, logger: logger}
}

// MonthQuery identifies one calendar page: a month plus the filters the
// schedule list is narrowed by.
type MonthQuery struct {
	Year       int
	Month      time.Month
	LocationID string
	PersonType backend.PersonType
	StaffRole  backend.StaffRole
}

// ColoredEntry is a schedule entry with its display color attached.
type ColoredEntry struct {
	backend.ScheduleEntry
	Color calendar.ColorToken `json:"color"`
}

// Cell mirrors calendar.Cell with colored entries.
type Cell struct {
	DayNumber int            `json:"day_number"`
	InMonth   bool           `json:"in_month"`
	Date      string         `json:"date"`
	Entries   []ColoredEntry `json:"entries,omitempty"`
}

// MonthView is the full 42-cell page handed to the front end.
type MonthView struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Cells []Cell     `json:"cells"`
}

// MonthView builds the grid for q.
func (s *Service) MonthView(ctx context.Context, q MonthQuery) (*MonthView, error) {
	first := time.Date(q.Year, q.Month, 1, 0, 0, 0, 0, s.loc)
	last := first.AddDate(0, 1, -1)

	entries, err := s.api.ListSchedules(ctx, backend.ListSchedulesParams{
		LocationID: q.LocationID,
		PersonType: q.PersonType,
		StaffRole:  q.StaffRole,
		From:       first.Format("2006-01-02"),
		To:         last.Format("2006-01-02"),
	})
	if err != nil {
		return nil, fmt.Errorf("schedule: list month: %w", err)
	}

	grid := calendar.BuildGrid(calendar.Month{Year: q.Year, Month: q.Month}, entries, s.loc)

	cells := make([]Cell, len(grid))
	for i, c := range grid {
		cell := Cell{DayNumber: c.DayNumber, InMonth: c.InMonth, Date: c.Date}
		if len(c.Entries) > 0 {
			cell.Entries = make([]ColoredEntry, len(c.Entries))
			for j, e := range c.Entries {
				cell.Entries[j] = ColoredEntry{
					ScheduleEntry: e,
					Color:         calendar.Classify(e, q.PersonType, s.loc),
				}
			}
		}
		cells[i] = cell
	}

	return &MonthView{Year: q.Year, Month: q.Month, Cells: cells}, nil
}

// CreateEntry creates a schedule entry and returns the refreshed month view.
func (s *Service) CreateEntry(ctx context.Context, q MonthQuery, req backend.CreateScheduleRequest) (*MonthView, error) {
	entry, err := s.api.CreateSchedule(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("schedule entry created",
		"entry_id", entry.ID,
		"location_id", entry.LocationID,
		"date", entry.Date,
	)
	return s.MonthView(ctx, q)
}

// UpdateEntry mutates an entry and returns the refreshed month view.
func (s *Service) UpdateEntry(ctx context.Context, q MonthQuery, id string, req backend.UpdateScheduleRequest) (*MonthView, error) {
	if _, err := s.api.UpdateSchedule(ctx, id, req); err != nil {
		return nil, err
	}
	return s.MonthView(ctx, q)
}

// DeleteEntry removes an entry and returns the refreshed month view. A stale
// delete against an already-removed entry just surfaces the server error.
func (s *Service) DeleteEntry(ctx context.Context, q MonthQuery, id string) (*MonthView, error) {
	if err := s.api.DeleteSchedule(ctx, id); err != nil {
		return nil, err
	}
	return s.MonthView(ctx, q)
}
