package presenter

import (
	"fmt"
	"math"

	"hos-route-service/internal/domain"
)

// HOS limits used only to flag summaries, never to reject data.
const (
	maxDrivingHours = 11
	maxOnDutyHours  = 14
)

// dayStartHour is the hour each duty day is anchored at when deriving
// the grid from the day's hour totals.
const dayStartHour = 6

// Logsheet is the presenter output for one trip: an overview plus one
// sheet per daily log.
type Logsheet struct {
	TripID        int64      `json:"trip_id"`
	TotalDistance float64    `json:"total_distance"`
	TotalDuration string     `json:"total_duration"`
	Days          int        `json:"days"`
	Sheets        []DaySheet `json:"sheets"`
}

// DaySheet summarizes one duty day and carries its 24-slot grid.
type DaySheet struct {
	DayNumber int    `json:"day_number"`
	Date      string `json:"date"`

	Driving       string `json:"driving"`
	OnDuty        string `json:"on_duty"`
	OffDuty       string `json:"off_duty"`
	Sleeper       string `json:"sleeper"`
	Total         string `json:"total"`
	DrivingStatus string `json:"driving_status"`
	OnDutyStatus  string `json:"on_duty_status"`

	StartingLocation string `json:"starting_location"`
	EndingLocation   string `json:"ending_location"`
	Notes            string `json:"notes,omitempty"`

	Grid DutyGrid `json:"grid"`
}

// DutyGrid marks which of the 24 hour slots each duty status occupies.
// A slot belongs to exactly one row; sleeper-berth time is not part of
// the computed logs, so its row is always empty.
type DutyGrid struct {
	OffDuty [24]bool `json:"off_duty"`
	Sleeper [24]bool `json:"sleeper"`
	Driving [24]bool `json:"driving"`
	OnDuty  [24]bool `json:"on_duty"`
}

// BuildLogsheet derives the per-day presentation from an externally
// computed trip. It performs no legality checks of its own.
func BuildLogsheet(trip *domain.Trip) *Logsheet {
	if trip == nil {
		return nil
	}

	sheet := &Logsheet{
		TripID:        trip.ID,
		TotalDistance: trip.TotalDistance,
		TotalDuration: FormatHours(trip.TotalDuration),
		Days:          len(trip.DailyLogs),
		Sheets:        make([]DaySheet, 0, len(trip.DailyLogs)),
	}

	for i, dl := range trip.DailyLogs {
		sheet.Sheets = append(sheet.Sheets, buildDaySheet(trip, dl, i))
	}

	return sheet
}

func buildDaySheet(trip *domain.Trip, dl domain.DailyLog, dayIdx int) DaySheet {
	total := dl.DrivingHours + dl.OnDutyHours + dl.OffDutyHours

	return DaySheet{
		DayNumber:     dl.DayNumber,
		Date:          dl.Date,
		Driving:       FormatHours(dl.DrivingHours),
		OnDuty:        FormatHours(dl.OnDutyHours),
		OffDuty:       FormatHours(dl.OffDutyHours),
		Sleeper:       FormatHours(0),
		Total:         FormatHours(total),
		DrivingStatus: statusFor(dl.DrivingHours, maxDrivingHours),
		OnDutyStatus:  statusFor(dl.OnDutyHours, maxOnDutyHours),

		StartingLocation: startingLocation(trip, dayIdx),
		EndingLocation:   endingLocation(trip, dayIdx),
		Notes:            dl.Notes,

		Grid: buildGrid(dl),
	}
}

// buildGrid fills the 24 slots from the day's hour totals: driving
// starts at the day anchor, on-duty time brackets it (pre-trip slot
// first, the remainder after driving ends), and everything left is off
// duty. Placement is deterministic for a given log.
func buildGrid(dl domain.DailyLog) DutyGrid {
	var g DutyGrid

	drivingSlots := clampSlots(dl.DrivingHours)
	onDutySlots := clampSlots(dl.OnDutyHours)

	hour := dayStartHour
	if onDutySlots > 0 && hour > 0 {
		g.OnDuty[hour-1] = true
		onDutySlots--
	}
	for i := 0; i < drivingSlots && hour < 24; i++ {
		g.Driving[hour] = true
		hour++
	}
	for i := 0; i < onDutySlots && hour < 24; i++ {
		g.OnDuty[hour] = true
		hour++
	}

	for h := 0; h < 24; h++ {
		if !g.Driving[h] && !g.OnDuty[h] {
			g.OffDuty[h] = true
		}
	}

	return g
}

func clampSlots(hours float64) int {
	if hours <= 0 {
		return 0
	}
	slots := int(math.Round(hours))
	if slots > 24 {
		return 24
	}
	return slots
}

func startingLocation(trip *domain.Trip, dayIdx int) string {
	if dayIdx == 0 {
		return trip.CurrentLocation
	}
	return "En Route"
}

func endingLocation(trip *domain.Trip, dayIdx int) string {
	switch {
	case dayIdx == len(trip.DailyLogs)-1:
		return trip.DropoffLocation
	case dayIdx == 0:
		return trip.PickupLocation
	default:
		return "En Route"
	}
}

func statusFor(hours, max float64) string {
	pct := hours / max * 100
	switch {
	case pct >= 90:
		return "critical"
	case pct >= 75:
		return "warning"
	default:
		return "ok"
	}
}

// FormatHours renders fractional hours as H:MM.
func FormatHours(hours float64) string {
	whole := int(hours)
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if minutes == 60 {
		whole++
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", whole, minutes)
}
