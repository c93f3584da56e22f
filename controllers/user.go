package controllers

import (
	"net/http"

	"MediBook/services"
	"MediBook/util"

	"github.com/gin-gonic/gin"
)

func AdminUsers(admin *gin.RouterGroup) {
	users := admin.Group("users")
	{
		users.GET("", FetchAllUsers)
		users.POST("", CreateUser)
		users.PUT("/:id", UpdateUser)
		users.DELETE("/:id", DeleteUser)
	}
}

func FetchAllUsers(c *gin.Context) {
	users, err := services.FetchAllUsers(c, c.Query("role"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Users fetched", users))
}

func CreateUser(c *gin.Context) {
	var input services.AdminUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid user payload"), err.Error()))
		return
	}
	user, err := services.CreateUser(c, input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse("User created", user))
}

func UpdateUser(c *gin.Context) {
	var input services.AdminUserUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid user payload"), err.Error()))
		return
	}
	user, err := services.UpdateUser(c, c.Param("id"), input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("User updated", user))
}

func DeleteUser(c *gin.Context) {
	if err := services.DeleteUser(c, c.Param("id")); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("User deleted", nil))
}
