package dto

import "time"

type TripSubmissionRequest struct {
	CurrentLocation  string  `json:"current_location"`
	PickupLocation   string  `json:"pickup_location"`
	DropoffLocation  string  `json:"dropoff_location"`
	CurrentCycleUsed float64 `json:"current_cycle_used"`
}

type RestPeriodResponse struct {
	Duration string `json:"duration,omitempty"`
}

type DailyLogResponse struct {
	ID           int64                `json:"id"`
	DayNumber    int                  `json:"day_number"`
	Date         string               `json:"date"`
	DrivingHours float64              `json:"driving_hours"`
	OnDutyHours  float64              `json:"on_duty_hours"`
	OffDutyHours float64              `json:"off_duty_hours"`
	Notes        string               `json:"notes,omitempty"`
	RestPeriods  []RestPeriodResponse `json:"rest_periods,omitempty"`
}

type TripResponse struct {
	ID               int64              `json:"id"`
	CurrentLocation  string             `json:"current_location"`
	PickupLocation   string             `json:"pickup_location"`
	DropoffLocation  string             `json:"dropoff_location"`
	CurrentCycleUsed float64            `json:"current_cycle_used"`
	TotalDistance    float64            `json:"total_distance"`
	TotalDuration    float64            `json:"total_duration"`
	CreatedAt        time.Time          `json:"created_at"`
	DailyLogs        []DailyLogResponse `json:"daily_logs"`
}

type ListTripResponse struct {
	Trips []TripResponse `json:"trips"`
}
