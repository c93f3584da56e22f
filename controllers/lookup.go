package controllers

import (
	"net/http"

	"MediBook/services"
	"MediBook/util"

	"github.com/gin-gonic/gin"
)

// Lookups are the public dropdown/availability queries the booking form
// walks through: location -> specialty -> doctor -> free slots.
func Lookups(r *gin.Engine) {
	appointments := r.Group("appointments")
	{
		appointments.GET("/locations", FetchLocations)
		appointments.GET("/specialties", FetchSpecialtiesByLocation)
		appointments.GET("/doctors", FetchDoctors)
		appointments.GET("/available-slots", FetchAvailableSlots)
	}
}

func FetchLocations(c *gin.Context) {
	locations, err := services.FetchAllLocations(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Locations fetched", locations))
}

func FetchSpecialtiesByLocation(c *gin.Context) {
	locationID := c.Query("locationId")
	if locationID == "" {
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.BadRequest("locationId is required")))
		return
	}
	specialties, err := services.FetchSpecialtiesByLocation(c, locationID)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Specialties fetched", specialties))
}

func FetchDoctors(c *gin.Context) {
	doctors, err := services.FetchDoctors(c, c.Query("specialtyId"), c.Query("locationId"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Doctors fetched", doctors))
}

/*
* Validate doctorId and date, reject past dates here
* The slot manager lazily creates the schedule underneath
 */
func FetchAvailableSlots(c *gin.Context) {
	slots, err := services.AvailabilityQuery(c, c.Query("doctorId"), c.Query("date"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Available slots fetched", slots))
}
