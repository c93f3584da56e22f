package controllers

import (
	"net/http"

	"MediBook/services"
	"MediBook/util"

	"github.com/gin-gonic/gin"
)

func AdminSpecialties(admin *gin.RouterGroup) {
	specialties := admin.Group("specialties")
	{
		specialties.GET("", FetchAllSpecialties)
		specialties.POST("", CreateSpecialty)
		specialties.PUT("/:id", UpdateSpecialty)
		specialties.DELETE("/:id", DeleteSpecialty)
	}
}

func FetchAllSpecialties(c *gin.Context) {
	specialties, err := services.FetchAllSpecialties(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Specialties fetched", specialties))
}

func CreateSpecialty(c *gin.Context) {
	var input services.SpecialtyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid specialty payload"), err.Error()))
		return
	}
	specialty, err := services.CreateSpecialty(c, input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse("Specialty created", specialty))
}

func UpdateSpecialty(c *gin.Context) {
	var input services.SpecialtyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid specialty payload"), err.Error()))
		return
	}
	specialty, err := services.UpdateSpecialty(c, c.Param("id"), input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Specialty updated", specialty))
}

func DeleteSpecialty(c *gin.Context) {
	if err := services.DeleteSpecialty(c, c.Param("id")); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Specialty deleted", nil))
}
