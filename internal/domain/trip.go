package domain

import "time"

// Trip is the computed trip result supplied by the external trip
// computation service. It is read-only to the composition engine:
// the engine derives map content from it but never mutates it.
type Trip struct {
	ID               int64      `json:"id"`
	CurrentLocation  string     `json:"current_location"`
	PickupLocation   string     `json:"pickup_location"`
	DropoffLocation  string     `json:"dropoff_location"`
	CurrentCycleUsed float64    `json:"current_cycle_used"`
	TotalDistance    float64    `json:"total_distance"`
	TotalDuration    float64    `json:"total_duration"`
	CreatedAt        time.Time  `json:"created_at"`
	DailyLogs        []DailyLog `json:"daily_logs"`
}

// DailyLog is one day of duty-status hours as computed server-side.
// driving + on_duty + off_duty is expected to sum to 24 but is not
// enforced here.
type DailyLog struct {
	ID           int64        `json:"id"`
	DayNumber    int          `json:"day_number"`
	Date         string       `json:"date"`
	DrivingHours float64      `json:"driving_hours"`
	OnDutyHours  float64      `json:"on_duty_hours"`
	OffDutyHours float64      `json:"off_duty_hours"`
	Notes        string       `json:"notes,omitempty"`
	RestPeriods  []RestPeriod `json:"rest_periods,omitempty"`
}

// RestPeriod is a rest event within a day. Duration is a display string
// as provided upstream (e.g. "10 hours").
type RestPeriod struct {
	Duration string `json:"duration,omitempty"`
}

// TripRequest is the submission body forwarded to the trip computation
// service.
type TripRequest struct {
	CurrentLocation  string  `json:"current_location"`
	PickupLocation   string  `json:"pickup_location"`
	DropoffLocation  string  `json:"dropoff_location"`
	CurrentCycleUsed float64 `json:"current_cycle_used"`
}
