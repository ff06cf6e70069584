package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"hos-route-service/internal/api/dto"
	"hos-route-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func tripToDTO(t *domain.Trip) dto.TripResponse {
	logs := make([]dto.DailyLogResponse, 0, len(t.DailyLogs))
	for _, dl := range t.DailyLogs {
		rests := make([]dto.RestPeriodResponse, 0, len(dl.RestPeriods))
		for _, rp := range dl.RestPeriods {
			rests = append(rests, dto.RestPeriodResponse{Duration: rp.Duration})
		}
		logs = append(logs, dto.DailyLogResponse{
			ID:           dl.ID,
			DayNumber:    dl.DayNumber,
			Date:         dl.Date,
			DrivingHours: dl.DrivingHours,
			OnDutyHours:  dl.OnDutyHours,
			OffDutyHours: dl.OffDutyHours,
			Notes:        dl.Notes,
			RestPeriods:  rests,
		})
	}

	return dto.TripResponse{
		ID:               t.ID,
		CurrentLocation:  t.CurrentLocation,
		PickupLocation:   t.PickupLocation,
		DropoffLocation:  t.DropoffLocation,
		CurrentCycleUsed: t.CurrentCycleUsed,
		TotalDistance:    t.TotalDistance,
		TotalDuration:    t.TotalDuration,
		CreatedAt:        t.CreatedAt,
		DailyLogs:        logs,
	}
}

func tripFromDTO(t *dto.TripResponse) *domain.Trip {
	logs := make([]domain.DailyLog, 0, len(t.DailyLogs))
	for _, dl := range t.DailyLogs {
		rests := make([]domain.RestPeriod, 0, len(dl.RestPeriods))
		for _, rp := range dl.RestPeriods {
			rests = append(rests, domain.RestPeriod{Duration: rp.Duration})
		}
		logs = append(logs, domain.DailyLog{
			ID:           dl.ID,
			DayNumber:    dl.DayNumber,
			Date:         dl.Date,
			DrivingHours: dl.DrivingHours,
			OnDutyHours:  dl.OnDutyHours,
			OffDutyHours: dl.OffDutyHours,
			Notes:        dl.Notes,
			RestPeriods:  rests,
		})
	}

	return &domain.Trip{
		ID:               t.ID,
		CurrentLocation:  t.CurrentLocation,
		PickupLocation:   t.PickupLocation,
		DropoffLocation:  t.DropoffLocation,
		CurrentCycleUsed: t.CurrentCycleUsed,
		TotalDistance:    t.TotalDistance,
		TotalDuration:    t.TotalDuration,
		CreatedAt:        t.CreatedAt,
		DailyLogs:        logs,
	}
}
