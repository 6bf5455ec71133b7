package router

import (
	"net/http"

	"github.com/dinebook/reservation-app/controllers"
	"github.com/dinebook/reservation-app/middlewares"
	"github.com/dinebook/reservation-app/models"
	"github.com/dinebook/reservation-app/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the HTTP surface. All request handling is thin; the
// business rules live in the services the controllers delegate to.
func SetupRouter(db *gorm.DB, reservations *services.ReservationService, tables *services.TableService, shifts *services.ShiftService) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(tables)
	reservationCtrl := controllers.NewReservationController(reservations)
	shiftCtrl := controllers.NewShiftController(shifts)
	scheduleCtrl := controllers.NewScheduleController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Public
	auth := r.Group("/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
	}

	// Authenticated
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/profile", userCtrl.GetProfile)
		api.POST("/logout", userCtrl.Logout)
		api.GET("/ws", controllers.EventStream)

		// Reservations: customers manage their own, staff the rest.
		api.POST("/reservations", reservationCtrl.CreateReservation)
		api.GET("/reservations/mine", reservationCtrl.GetMyReservations)
		api.GET("/reservations/availability", reservationCtrl.CheckAvailability)
		api.GET("/reservations/:reservation_id", reservationCtrl.GetReservation)
		api.PUT("/reservations/:reservation_id", reservationCtrl.ModifyReservation)
		api.POST("/reservations/:reservation_id/cancel", reservationCtrl.CancelReservation)

		// Table browsing for anyone logged in.
		api.GET("/tables", tableCtrl.GetAllTables)
		api.GET("/tables/available", tableCtrl.FindAvailableTables)
		api.GET("/tables/:table_id", tableCtrl.GetTableByID)

		staff := api.Group("")
		staff.Use(middlewares.RequireRole(models.RoleStaff))
		{
			staff.GET("/reservations", reservationCtrl.GetAllReservations)
			staff.GET("/reservations/day", reservationCtrl.GetReservationsForDay)
			staff.GET("/customers/:customer_id/reservations", reservationCtrl.GetReservationsByCustomer)
			staff.POST("/reservations/:reservation_id/confirm", reservationCtrl.ConfirmReservation)
			staff.POST("/reservations/:reservation_id/complete", reservationCtrl.CompleteReservation)
			staff.POST("/reservations/:reservation_id/no-show", reservationCtrl.MarkNoShow)

			staff.GET("/tables/status", tableCtrl.FindTablesByStatus)
			staff.GET("/tables/count", tableCtrl.CountActiveTables)

			staff.GET("/shifts/:assignment_id", shiftCtrl.GetShift)
			staff.GET("/shifts", shiftCtrl.GetShiftsByDate)
			staff.GET("/staff/:staff_id/shifts", shiftCtrl.GetShiftsByStaff)
		}

		admin := api.Group("")
		admin.Use(middlewares.RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", userCtrl.GetAllUsers)

			admin.POST("/tables", tableCtrl.CreateTable)
			admin.PATCH("/tables/:table_id/status", tableCtrl.UpdateTableStatus)
			admin.POST("/tables/:table_id/release", tableCtrl.ReleaseTable)

			admin.POST("/shifts", shiftCtrl.AssignShift)
			admin.POST("/shifts/:assignment_id/complete", shiftCtrl.CompleteShift)
			admin.POST("/shifts/:assignment_id/cancel", shiftCtrl.CancelShift)

			admin.GET("/statistics/reservations", reservationCtrl.GetStatistics)
			admin.POST("/reminders/run", reservationCtrl.RunReminders)

			admin.POST("/schedules", scheduleCtrl.CreateSchedule)
			admin.GET("/schedules", scheduleCtrl.GetActiveSchedules)
		}
	}

	return r
}
