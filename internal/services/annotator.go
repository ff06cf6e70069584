package services

import (
	"fmt"

	"hos-route-service/internal/domain"
)

// fuelStopIntervalMiles is the fixed distance between synthetic fuel
// stops.
const fuelStopIntervalMiles = 1000

// AnnotateStops derives synthetic fuel and rest markers from the
// composed polyline and trip metrics.
//
// Placement is a positional approximation, not a distance-accurate one:
// fuel stops divide the coordinate sequence into equal index intervals,
// and rest stops are keyed only to day and rest-period indices with no
// geographic correlation to real rest areas. This is a known
// limitation of the display layer, pending real rest-area coordinate
// data.
//
// The annotator has no failure modes: an empty route, missing daily
// logs, or a zero distance simply yield no additional markers. Rest
// markers in particular need a polyline to attach to; with no route at
// all they are omitted rather than placed on an off-route grid.
func AnnotateStops(route domain.ComposedRoute, totalDistanceMiles float64, dailyLogs []domain.DailyLog) []domain.StopMarker {
	markers := []domain.StopMarker{}
	markers = append(markers, fuelStops(route, totalDistanceMiles)...)
	markers = append(markers, restStops(route, dailyLogs)...)
	return markers
}

// fuelStops places floor(miles/1000) markers at equal index intervals
// along the polyline.
func fuelStops(route domain.ComposedRoute, totalDistanceMiles float64) []domain.StopMarker {
	if route.Empty() || totalDistanceMiles < fuelStopIntervalMiles {
		return nil
	}

	count := int(totalDistanceMiles / fuelStopIntervalMiles)
	interval := len(route.Coordinates) / (count + 1)

	// A polyline shorter than count+1 points still gets all count
	// markers; interval is 0 there and they pile up at the first
	// coordinate.
	markers := make([]domain.StopMarker, 0, count)
	for i := 1; i <= count; i++ {
		idx := i * interval
		markers = append(markers, domain.StopMarker{
			Kind:     domain.MarkerFuel,
			Position: route.Coordinates[idx],
			Label:    fmt.Sprintf("Fuel Stop %d (approximately %d miles)", i, i*fuelStopIntervalMiles),
		})
	}

	return markers
}

// restStops emits one marker per rest period, spaced deterministically
// along the polyline by (day index, rest index).
func restStops(route domain.ComposedRoute, dailyLogs []domain.DailyLog) []domain.StopMarker {
	if route.Empty() || len(dailyLogs) == 0 {
		return nil
	}

	markers := []domain.StopMarker{}
	for dayIdx, dl := range dailyLogs {
		if len(dl.RestPeriods) == 0 {
			continue
		}

		// Each day owns an equal fraction of the polyline; its rest
		// markers spread evenly inside that fraction.
		dayStart := float64(dayIdx) / float64(len(dailyLogs))
		dayWidth := 1.0 / float64(len(dailyLogs))

		for restIdx, rest := range dl.RestPeriods {
			frac := dayStart + dayWidth*float64(restIdx+1)/float64(len(dl.RestPeriods)+1)
			idx := int(frac * float64(len(route.Coordinates)-1))

			duration := rest.Duration
			if duration == "" {
				duration = "10 hours"
			}

			markers = append(markers, domain.StopMarker{
				Kind:     domain.MarkerRest,
				Position: route.Coordinates[idx],
				Label:    fmt.Sprintf("Rest Area, Day %d (%s rest)", dl.DayNumber, duration),
			})
		}
	}

	return markers
}

// EndpointMarkers builds the three trip endpoint markers with their
// descriptive popup labels.
func EndpointMarkers(trip *domain.Trip, endpoints domain.Endpoints) []domain.StopMarker {
	if trip == nil {
		return nil
	}

	return []domain.StopMarker{
		{
			Kind:     domain.MarkerCurrent,
			Position: endpoints.Current,
			Label:    fmt.Sprintf("Current Location: %s (cycle used %.1fh)", trip.CurrentLocation, trip.CurrentCycleUsed),
		},
		{
			Kind:     domain.MarkerPickup,
			Position: endpoints.Pickup,
			Label:    fmt.Sprintf("Pickup Location: %s (est. 1 hour for loading)", trip.PickupLocation),
		},
		{
			Kind:     domain.MarkerDropoff,
			Position: endpoints.Dropoff,
			Label:    fmt.Sprintf("Dropoff Location: %s (est. 1 hour for unloading)", trip.DropoffLocation),
		},
	}
}
