package controllers

import (
	"net/http"

	"MediBook/services"
	"MediBook/util"

	"github.com/gin-gonic/gin"
)

func Auth(r *gin.Engine) {
	auth := r.Group("auth")
	{
		auth.POST("/register", RegisterUser)
		auth.POST("/login", LoginUser)
	}
}

// Profile routes live behind JWTAuth, registered separately.
func Profile(r *gin.Engine) {
	auth := r.Group("auth")
	{
		auth.GET("/me", FetchProfile)
		auth.PUT("/me", UpdateProfile)
	}
}

/*
* Bind the registration input
* Pass to the service, return the token
 */
func RegisterUser(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid registration payload"), err.Error()))
		return
	}
	result, err := services.Register(c, input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse("Registered successfully", result))
}

func LoginUser(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid login payload"), err.Error()))
		return
	}
	result, err := services.Login(c, input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Logged in", result))
}

func FetchProfile(c *gin.Context) {
	profile, err := services.FetchProfile(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Profile fetched", profile))
}

func UpdateProfile(c *gin.Context) {
	var input services.ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponseWithDetails(util.BadRequest("Invalid profile payload"), err.Error()))
		return
	}
	if err := services.UpdateProfile(c, input); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Profile updated", nil))
}
