package config

import (
	"os"
	"strconv"
	"time"
)

/*
* Read an env var with a fallback
 */
func Getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func GetenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// WorkRange is one continuous stretch of consulting hours. Slots are cut from
// it at 30 minute granularity, the end is exclusive.
type WorkRange struct {
	Start string
	End   string
}

var (
	WeekdayHours  = []WorkRange{{Start: "08:00", End: "12:00"}, {Start: "14:00", End: "17:30"}}
	SaturdayHours = []WorkRange{{Start: "08:00", End: "12:00"}}
)

/*
* Every doctor shares the same weekly working pattern
* Mon-Fri full day, Saturday morning only, Sunday closed
 */
func HoursFor(day time.Weekday) []WorkRange {
	switch day {
	case time.Sunday:
		return nil
	case time.Saturday:
		return SaturdayHours
	default:
		return WeekdayHours
	}
}

func OTPTTL() time.Duration {
	return time.Duration(GetenvInt("OTP_TTL_MINUTES", 5)) * time.Minute
}
