package controllers

import (
	"net/http"

	"MediBook/services"
	"MediBook/util"

	"github.com/gin-gonic/gin"
)

func AdminDoctors(admin *gin.RouterGroup) {
	doctors := admin.Group("doctors")
	{
		doctors.POST("", CreateDoctor)
		doctors.PUT("/:id", UpdateDoctor)
		doctors.DELETE("/:id", DeleteDoctor)
	}
}

/*
* Bind the doctor input, placement is validated in the service
 */
func CreateDoctor(c *gin.Context) {
	var input services.DoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid doctor payload"), err.Error()))
		return
	}
	doctor, err := services.CreateDoctor(c, input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse("Doctor created", doctor))
}

func UpdateDoctor(c *gin.Context) {
	var input services.DoctorUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid doctor payload"), err.Error()))
		return
	}
	doctor, err := services.UpdateDoctor(c, c.Param("id"), input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Doctor updated", doctor))
}

func DeleteDoctor(c *gin.Context) {
	if err := services.DeleteDoctor(c, c.Param("id")); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Doctor deleted", nil))
}
