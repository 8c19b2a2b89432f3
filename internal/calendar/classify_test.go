package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/backoffice/internal/backend"
)

func TestIsFulltimeThreshold(t *testing.T) {
	assert.True(t, IsFulltime("08:00", "16:00"), "exactly 8h is fulltime")
	assert.True(t, IsFulltime("08:00", "17:00"))
	assert.False(t, IsFulltime("09:00", "16:30"), "7.5h is part-time")
	assert.False(t, IsFulltime("08:00", "08:00"))
	assert.False(t, IsFulltime("8am", "5pm"), "unparseable times are part-time")
}

func TestClassifyDoctorIgnoresDuration(t *testing.T) {
	odd := backend.ScheduleEntry{Date: "2025-03-05", StartTime: "08:00", EndTime: "09:00"}
	even := backend.ScheduleEntry{Date: "2025-03-06", StartTime: "08:00", EndTime: "17:00"}

	assert.Equal(t, ColorLightBlue, Classify(odd, backend.PersonDoctor, time.UTC))
	assert.Equal(t, ColorLightYellow, Classify(even, backend.PersonDoctor, time.UTC))
}

func TestClassifyParityFollowsBucketedDay(t *testing.T) {
	// An instant-form date that crosses midnight in the clinic zone must be
	// colored by the day it renders in, not its UTC day.
	hcm, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	e := backend.ScheduleEntry{
		PersonType: backend.PersonDoctor,
		Date:       "2025-03-05T18:30:00Z", // 2025-03-06 in Asia/Ho_Chi_Minh
		StartTime:  "08:00",
		EndTime:    "17:00",
	}

	require.Equal(t, "2025-03-06", DayKey(e.Date, hcm))
	assert.Equal(t, ColorLightYellow, Classify(e, backend.PersonDoctor, hcm),
		"entry rendered in the day-6 cell takes even-day color")
	assert.Equal(t, ColorLightBlue, Classify(e, backend.PersonDoctor, time.UTC),
		"same entry bucketed in UTC stays on day 5")
}

func TestClassifyStaffReceptionist(t *testing.T) {
	oddDay := backend.ScheduleEntry{StaffRole: backend.RoleReceptionist, Date: "2025-03-07", StartTime: "08:00", EndTime: "12:00"}
	assert.Equal(t, ColorLightBlue, Classify(oddDay, backend.PersonStaff, time.UTC))

	// Receptionist on an even day falls through to the gray pair.
	evenFull := backend.ScheduleEntry{StaffRole: backend.RoleReceptionist, Date: "2025-03-08", StartTime: "08:00", EndTime: "17:00"}
	evenPart := backend.ScheduleEntry{StaffRole: backend.RoleReceptionist, Date: "2025-03-08", StartTime: "08:00", EndTime: "12:00"}
	assert.Equal(t, ColorGrayDark, Classify(evenFull, backend.PersonStaff, time.UTC))
	assert.Equal(t, ColorGrayLight, Classify(evenPart, backend.PersonStaff, time.UTC))
}

func TestClassifyStaffStorekeeper(t *testing.T) {
	evenDay := backend.ScheduleEntry{StaffRole: backend.RoleStorekeeper, Date: "2025-03-10", StartTime: "08:00", EndTime: "12:00"}
	assert.Equal(t, ColorLightYellow, Classify(evenDay, backend.PersonStaff, time.UTC))

	// Storekeeper on an odd day never gets the yellow token.
	oddFull := backend.ScheduleEntry{StaffRole: backend.RoleStorekeeper, Date: "2025-03-11", StartTime: "08:00", EndTime: "16:00"}
	oddPart := backend.ScheduleEntry{StaffRole: backend.RoleStorekeeper, Date: "2025-03-11", StartTime: "08:00", EndTime: "15:30"}
	assert.Equal(t, ColorGrayDark, Classify(oddFull, backend.PersonStaff, time.UTC))
	assert.Equal(t, ColorGrayLight, Classify(oddPart, backend.PersonStaff, time.UTC))
}

func TestClassifyOtherStaffUsesGrayPair(t *testing.T) {
	full := backend.ScheduleEntry{StaffRole: backend.RoleNurse, Date: "2025-03-09", StartTime: "07:00", EndTime: "19:00"}
	part := backend.ScheduleEntry{StaffRole: backend.RoleNurse, Date: "2025-03-10", StartTime: "07:00", EndTime: "11:00"}

	assert.Equal(t, ColorGrayDark, Classify(full, backend.PersonStaff, time.UTC))
	assert.Equal(t, ColorGrayLight, Classify(part, backend.PersonStaff, time.UTC))
}

func TestClassifyUnknownContextIsNeutral(t *testing.T) {
	e := backend.ScheduleEntry{Date: "2025-03-05", StartTime: "08:00", EndTime: "17:00"}
	assert.Equal(t, ColorNeutral, Classify(e, backend.PersonType("equipment"), time.UTC))
}

func TestClassifyIsTotal(t *testing.T) {
	// Any combination of inputs maps to one of the five tokens, even garbage.
	tokens := map[ColorToken]bool{
		ColorLightBlue: true, ColorLightYellow: true,
		ColorGrayDark: true, ColorGrayLight: true, ColorNeutral: true,
	}
	inputs := []backend.ScheduleEntry{
		{},
		{Date: "bogus", StartTime: "xx", EndTime: "yy"},
		{StaffRole: backend.StaffRole("janitor"), Date: "2025-01-31", StartTime: "23:00", EndTime: "23:59"},
	}
	for _, e := range inputs {
		for _, ctx := range []backend.PersonType{backend.PersonDoctor, backend.PersonStaff, ""} {
			assert.True(t, tokens[Classify(e, ctx, nil)])
		}
	}
}
