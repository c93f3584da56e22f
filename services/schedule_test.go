package services

import (
	"testing"
	"time"

	"MediBook/config"

	"github.com/stretchr/testify/assert"
)

// 2026-01-05 is a Monday.
func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := ParseBookingDate(raw)
	assert.NoError(t, err)
	return day
}

func TestGenerateSlots_Weekday(t *testing.T) {
	slots := GenerateSlots(config.WeekdayHours)

	assert.Len(t, slots, 15)
	assert.Equal(t, "08:00", slots[0].Time)
	assert.Equal(t, "11:30", slots[7].Time)
	assert.Equal(t, "14:00", slots[8].Time)
	assert.Equal(t, "17:00", slots[14].Time)
	for _, slot := range slots {
		assert.False(t, slot.IsBooked)
	}
}

func TestGenerateSlots_ChronologicalOrder(t *testing.T) {
	slots := GenerateSlots(config.WeekdayHours)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Time < slots[i].Time)
	}
}

func TestSlotTemplateFor_Saturday(t *testing.T) {
	slots := SlotTemplateFor(mustDate(t, "2026-01-10"))

	assert.Len(t, slots, 8)
	assert.Equal(t, "08:00", slots[0].Time)
	assert.Equal(t, "11:30", slots[7].Time)
}

func TestSlotTemplateFor_SundayEmpty(t *testing.T) {
	assert.Empty(t, SlotTemplateFor(mustDate(t, "2026-01-11")))
}

func TestSlotTemplateFor_LunchBreakExcluded(t *testing.T) {
	slots := SlotTemplateFor(mustDate(t, "2026-01-05"))

	assert.False(t, SlotInTemplate(slots, "12:00"))
	assert.False(t, SlotInTemplate(slots, "13:30"))
	assert.False(t, SlotInTemplate(slots, "17:30"))
	assert.True(t, SlotInTemplate(slots, "11:30"))
	assert.True(t, SlotInTemplate(slots, "14:00"))
}

func TestSlotInTemplate(t *testing.T) {
	slots := SlotTemplateFor(mustDate(t, "2026-01-05"))

	assert.True(t, SlotInTemplate(slots, "08:00"))
	assert.False(t, SlotInTemplate(slots, "08:15"))
	assert.False(t, SlotInTemplate(slots, "20:00"))
}

func TestFreeSlotTimes_ExcludesBooked(t *testing.T) {
	slots := SlotTemplateFor(mustDate(t, "2026-01-05"))
	slots[0].IsBooked = true
	slots[9].IsBooked = true

	free := FreeSlotTimes(slots)
	assert.Len(t, free, 13)
	assert.NotContains(t, free, slots[0].Time)
	assert.NotContains(t, free, slots[9].Time)
	for i := 1; i < len(free); i++ {
		assert.True(t, free[i-1] < free[i])
	}
}

func TestFreeSlotTimes_BookedSlotDisappears(t *testing.T) {
	slots := SlotTemplateFor(mustDate(t, "2026-01-05"))
	assert.Contains(t, FreeSlotTimes(slots), "14:00")

	for i := range slots {
		if slots[i].Time == "14:00" {
			slots[i].IsBooked = true
		}
	}
	assert.NotContains(t, FreeSlotTimes(slots), "14:00")
}

func TestFreeSlotTimes_AllBooked(t *testing.T) {
	slots := SlotTemplateFor(mustDate(t, "2026-01-10"))
	for i := range slots {
		slots[i].IsBooked = true
	}
	assert.Empty(t, FreeSlotTimes(slots))
}

func TestParseBookingDate_RejectsBadFormats(t *testing.T) {
	for _, raw := range []string{"05-01-2026", "2026/01/05", "tomorrow", ""} {
		_, err := ParseBookingDate(raw)
		assert.Error(t, err, raw)
	}
}

func TestIsPastDate(t *testing.T) {
	scheduleNow = func() time.Time {
		return time.Date(2026, 1, 5, 15, 30, 0, 0, time.Local)
	}
	defer func() { scheduleNow = time.Now }()

	assert.True(t, IsPastDate(mustDate(t, "2026-01-04")))
	assert.False(t, IsPastDate(mustDate(t, "2026-01-05")))
	assert.False(t, IsPastDate(mustDate(t, "2026-01-06")))
}

func TestCombineDateTime(t *testing.T) {
	day := mustDate(t, "2026-01-05")

	datetime, err := combineDateTime(day, "14:30")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 14, 30, 0, 0, time.Local), datetime)

	_, err = combineDateTime(day, "half past two")
	assert.Error(t, err)
}
