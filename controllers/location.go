package controllers

import (
	"net/http"

	"MediBook/services"
	"MediBook/util"

	"github.com/gin-gonic/gin"
)

func AdminLocations(admin *gin.RouterGroup) {
	locations := admin.Group("locations")
	{
		locations.POST("", CreateLocation)
		locations.PUT("/:id", UpdateLocation)
		locations.DELETE("/:id", DeleteLocation)
	}
}

func CreateLocation(c *gin.Context) {
	var input services.LocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid location payload"), err.Error()))
		return
	}
	location, err := services.CreateLocation(c, input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse("Location created", location))
}

func UpdateLocation(c *gin.Context) {
	var input services.LocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid location payload"), err.Error()))
		return
	}
	location, err := services.UpdateLocation(c, c.Param("id"), input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Location updated", location))
}

func DeleteLocation(c *gin.Context) {
	if err := services.DeleteLocation(c, c.Param("id")); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Location deleted", nil))
}
