package controllers

import (
	"net/http"

	"MediBook/middleware"
	"MediBook/models"
	"MediBook/services"
	"MediBook/util"

	"github.com/gin-gonic/gin"
)

func Dashboard(r *gin.Engine) {
	dashboard := r.Group("dashboard")
	{
		dashboard.GET("/admin", middleware.Authorize(models.RoleAdmin), FetchAdminDashboard)
		dashboard.GET("/doctor", middleware.Authorize(models.RoleDoctor), FetchDoctorDashboard)
	}
}

func FetchAdminDashboard(c *gin.Context) {
	stats, err := services.AdminDashboard(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Dashboard fetched", stats))
}

/*
* The doctor's day sheet, defaults to today when no date is passed
 */
func FetchDoctorDashboard(c *gin.Context) {
	doctorUserID, err := services.UserIDFromContext(c)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	entries, err := services.DoctorDashboard(c, doctorUserID, c.Query("date"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Day sheet fetched", entries))
}
