package controllers

import (
	"net/http"

	"MediBook/middleware"
	"MediBook/models"
	"MediBook/services"
	"MediBook/util"

	"github.com/gin-gonic/gin"
)

type verifyOTPInput struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	OTP           string `json:"otp" binding:"required,len=6"`
}

type resendOTPInput struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
}

// Booking endpoints are patient-only, cancellation is ownership checked in
// the service on top of that.
func Appointment(r *gin.Engine) {
	appointments := r.Group("appointments")
	{
		appointments.POST("", middleware.Authorize(models.RolePatient), CreateAppointment)
		appointments.POST("/verify-otp", middleware.Authorize(models.RolePatient), VerifyAppointmentOTP)
		appointments.POST("/resend-otp", middleware.Authorize(models.RolePatient), ResendAppointmentOTP)
		appointments.DELETE("/:id", middleware.Authorize(models.RolePatient), CancelAppointment)
		appointments.GET("/mine", middleware.Authorize(models.RolePatient), FetchMyAppointments)
		appointments.GET("/:id", FetchAppointmentByID)
	}
}

/*
* Bind the booking input and the patient from the token
* Pass to the service
 */
func CreateAppointment(c *gin.Context) {
	var input services.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid booking payload"), err.Error()))
		return
	}
	patientID, err := services.UserIDFromContext(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	result, err := services.CreateAppointment(c, patientID, input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse("Appointment created, confirm with the OTP", result))
}

func VerifyAppointmentOTP(c *gin.Context) {
	var input verifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid OTP payload"), err.Error()))
		return
	}
	patientID, err := services.UserIDFromContext(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	appointment, err := services.VerifyOTP(c, input.AppointmentID, patientID, input.OTP)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Appointment confirmed", appointment))
}

func ResendAppointmentOTP(c *gin.Context) {
	var input resendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid resend payload"), err.Error()))
		return
	}
	patientID, err := services.UserIDFromContext(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	otp, err := services.ResendOTP(c, input.AppointmentID, patientID)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("New OTP issued", gin.H{"otp": otp}))
}

/*
* Get the appointmentId from the param
* Ownership is checked in the service
 */
func CancelAppointment(c *gin.Context) {
	patientID, err := services.UserIDFromContext(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	if err := services.CancelAppointment(c, c.Param("id"), patientID); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Appointment cancelled", nil))
}

func FetchMyAppointments(c *gin.Context) {
	patientID, err := services.UserIDFromContext(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	appointments, err := services.FetchPatientAppointments(c, patientID)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Appointments fetched", appointments))
}

func FetchAppointmentByID(c *gin.Context) {
	appointment, err := services.FetchAppointmentByID(c, c.Param("id"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Appointment fetched", appointment))
}
