package presenter

import (
	"testing"

	"hos-route-service/internal/domain"
)

func presenterTrip() *domain.Trip {
	return &domain.Trip{
		ID:              7,
		CurrentLocation: "Los Angeles, CA",
		PickupLocation:  "Phoenix, AZ",
		DropoffLocation: "Dallas, TX",
		TotalDistance:   1432.5,
		TotalDuration:   30.5,
		DailyLogs: []domain.DailyLog{
			{DayNumber: 1, Date: "2025-03-01", DrivingHours: 11, OnDutyHours: 2, OffDutyHours: 11},
			{DayNumber: 2, Date: "2025-03-02", DrivingHours: 8.5, OnDutyHours: 1, OffDutyHours: 14.5, Notes: "fuel stop delay"},
			{DayNumber: 3, Date: "2025-03-03", DrivingHours: 4, OnDutyHours: 1, OffDutyHours: 19},
		},
	}
}

func TestFormatHours(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{0, "0:00"},
		{11, "11:00"},
		{8.5, "8:30"},
		{2.25, "2:15"},
		{9.999, "10:00"},
	}
	for _, c := range cases {
		if got := FormatHours(c.hours); got != c.want {
			t.Errorf("FormatHours(%v) = %q, want %q", c.hours, got, c.want)
		}
	}
}

func TestBuildLogsheetOverview(t *testing.T) {
	ls := BuildLogsheet(presenterTrip())

	if ls.TripID != 7 {
		t.Errorf("trip id = %d, want 7", ls.TripID)
	}
	if ls.Days != 3 || len(ls.Sheets) != 3 {
		t.Fatalf("days = %d, sheets = %d, want 3 each", ls.Days, len(ls.Sheets))
	}
	if ls.TotalDuration != "30:30" {
		t.Errorf("total duration = %q, want 30:30", ls.TotalDuration)
	}
}

func TestBuildLogsheetNil(t *testing.T) {
	if ls := BuildLogsheet(nil); ls != nil {
		t.Fatalf("expected nil logsheet, got %+v", ls)
	}

	ls := BuildLogsheet(&domain.Trip{ID: 1})
	if ls == nil || ls.Days != 0 || len(ls.Sheets) != 0 {
		t.Fatalf("expected empty logsheet for trip without logs, got %+v", ls)
	}
}

func TestDaySheetSummaries(t *testing.T) {
	ls := BuildLogsheet(presenterTrip())

	day1 := ls.Sheets[0]
	if day1.Driving != "11:00" || day1.OnDuty != "2:00" || day1.OffDuty != "11:00" {
		t.Errorf("day 1 hours = %s/%s/%s", day1.Driving, day1.OnDuty, day1.OffDuty)
	}
	if day1.Total != "24:00" {
		t.Errorf("day 1 total = %q, want 24:00", day1.Total)
	}
	if day1.Sleeper != "0:00" {
		t.Errorf("sleeper berth = %q, want 0:00", day1.Sleeper)
	}
	if day1.DrivingStatus != "critical" {
		t.Errorf("11h of an 11h limit should be critical, got %q", day1.DrivingStatus)
	}

	day2 := ls.Sheets[1]
	if day2.DrivingStatus != "warning" {
		t.Errorf("8.5h of an 11h limit should be warning, got %q", day2.DrivingStatus)
	}
	if day2.Notes != "fuel stop delay" {
		t.Errorf("day 2 notes = %q", day2.Notes)
	}

	day3 := ls.Sheets[2]
	if day3.DrivingStatus != "ok" || day3.OnDutyStatus != "ok" {
		t.Errorf("day 3 statuses = %s/%s, want ok/ok", day3.DrivingStatus, day3.OnDutyStatus)
	}
}

func TestDaySheetLocations(t *testing.T) {
	ls := BuildLogsheet(presenterTrip())

	if got := ls.Sheets[0].StartingLocation; got != "Los Angeles, CA" {
		t.Errorf("day 1 start = %q", got)
	}
	if got := ls.Sheets[0].EndingLocation; got != "Phoenix, AZ" {
		t.Errorf("day 1 end = %q", got)
	}
	if got := ls.Sheets[1].StartingLocation; got != "En Route" {
		t.Errorf("day 2 start = %q", got)
	}
	if got := ls.Sheets[1].EndingLocation; got != "En Route" {
		t.Errorf("day 2 end = %q", got)
	}
	if got := ls.Sheets[2].EndingLocation; got != "Dallas, TX" {
		t.Errorf("final day end = %q", got)
	}
}

func TestDutyGridCoversAllSlots(t *testing.T) {
	ls := BuildLogsheet(presenterTrip())

	for di, sheet := range ls.Sheets {
		for h := 0; h < 24; h++ {
			n := 0
			if sheet.Grid.OffDuty[h] {
				n++
			}
			if sheet.Grid.Driving[h] {
				n++
			}
			if sheet.Grid.OnDuty[h] {
				n++
			}
			if sheet.Grid.Sleeper[h] {
				t.Errorf("day %d hour %d: sleeper row must stay empty", di+1, h)
			}
			if n != 1 {
				t.Errorf("day %d hour %d: %d statuses, want exactly 1", di+1, h, n)
			}
		}
	}
}

func TestDutyGridPlacement(t *testing.T) {
	ls := BuildLogsheet(presenterTrip())

	// Day 1: 2h on duty, 11h driving anchored at hour 6. Pre-trip slot
	// at hour 5, driving 6..16, remaining on-duty slot at 17.
	g := ls.Sheets[0].Grid
	if !g.OnDuty[5] {
		t.Error("expected pre-trip on-duty slot at hour 5")
	}
	for h := 6; h < 17; h++ {
		if !g.Driving[h] {
			t.Errorf("expected driving at hour %d", h)
		}
	}
	if !g.OnDuty[17] {
		t.Error("expected post-driving on-duty slot at hour 17")
	}
	if !g.OffDuty[0] || !g.OffDuty[23] {
		t.Error("expected off duty at the day edges")
	}
}
