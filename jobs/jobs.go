package jobs

import (
	"context"
	"time"

	"MediBook/config"
	"MediBook/services"

	"github.com/robfig/cron/v3"
)

/*
* Two recurring jobs behind the booking flow
* 00:05 pre-creates today's schedules so the first booking of the day is cheap
* Every 10 minutes the expiry sweep reclaims slots from abandoned bookings
 */
func StartScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc("5 0 * * *", func() {
		config.Log.Info("Running daily schedule generator")
		services.EnsureSchedulesForAllDoctors(context.Background(), time.Now())
	})
	c.AddFunc("*/10 * * * *", func() {
		services.ExpireStaleAppointments(context.Background())
	})

	c.Start()
	return c
}

// RunStartupSweep covers the window the process was down.
func RunStartupSweep() {
	services.EnsureSchedulesForAllDoctors(context.Background(), time.Now())
	services.ExpireStaleAppointments(context.Background())
}
