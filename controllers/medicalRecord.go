package controllers

import (
	"net/http"

	"MediBook/middleware"
	"MediBook/models"
	"MediBook/services"
	"MediBook/util"

	"github.com/gin-gonic/gin"
)

// Creation and edits are doctor-only, reads are access checked in the
// service per role, deletion is an admin cleanup path.
func MedicalRecord(r *gin.Engine) {
	records := r.Group("medical-records")
	{
		records.POST("", middleware.Authorize(models.RoleDoctor), CreateMedicalRecord)
		records.GET("", FetchMedicalRecords)
		records.GET("/:id", FetchMedicalRecordByID)
		records.PUT("/:id", middleware.Authorize(models.RoleDoctor), UpdateMedicalRecord)
		records.DELETE("/:id", middleware.Authorize(models.RoleAdmin), DeleteMedicalRecord)
	}
}

/*
* Bind the record input and the doctor from the token
* Pass to the service, which also completes the appointment
 */
func CreateMedicalRecord(c *gin.Context) {
	var input services.MedicalRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid medical record payload"), err.Error()))
		return
	}
	doctorUserID, err := services.UserIDFromContext(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	record, err := services.CreateMedicalRecord(c, doctorUserID, input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse("Medical record created", record))
}

func FetchMedicalRecords(c *gin.Context) {
	records, err := services.FetchMedicalRecords(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Medical records fetched", records))
}

func FetchMedicalRecordByID(c *gin.Context) {
	record, err := services.FetchMedicalRecordByID(c, c.Param("id"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Medical record fetched", record))
}

func UpdateMedicalRecord(c *gin.Context) {
	var input services.MedicalRecordUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid medical record payload"), err.Error()))
		return
	}
	doctorUserID, err := services.UserIDFromContext(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	record, err := services.UpdateMedicalRecord(c, c.Param("id"), doctorUserID, input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Medical record updated", record))
}

func DeleteMedicalRecord(c *gin.Context) {
	if err := services.DeleteMedicalRecord(c, c.Param("id")); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Medical record deleted", nil))
}
