package routes

import (
	"net/http"

	"MediBook/controllers"
	"MediBook/metrics"
	"MediBook/middleware"
	"MediBook/models"
	"MediBook/util"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine) {

	//public
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, util.SuccessResponse("ok", nil))
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	controllers.Auth(r)
	controllers.Lookups(r)

	//privateroutes
	r.Use(middleware.JWTAuth())
	controllers.Profile(r)
	controllers.Appointment(r)
	controllers.MedicalRecord(r)
	controllers.Dashboard(r)

	admin := r.Group("admin", middleware.Authorize(models.RoleAdmin))
	controllers.AdminUsers(admin)
	controllers.AdminDoctors(admin)
	controllers.AdminLocations(admin)
	controllers.AdminSpecialties(admin)
}
