package routes

import (
	"survey-booking/constants"
	authController "survey-booking/controllers/auth"
	"survey-booking/controllers/booking"
	"survey-booking/controllers/calculation"
	"survey-booking/controllers/client"
	"survey-booking/controllers/dashboard"
	"survey-booking/controllers/mapdata"
	"survey-booking/controllers/report"
	"survey-booking/controllers/user"
	"survey-booking/logger"
	"survey-booking/middleware"
	"survey-booking/services/availability"
	"survey-booking/services/events"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	bus := events.NewBus()
	store := availability.NewGormStore(db)

	authCtrl := authController.NewAuthController(db, asyncLogger)
	bookingCtrl := booking.NewBookingController(db, asyncLogger, bus, store)
	clientCtrl := client.NewClientController(db, asyncLogger)
	reportCtrl := report.NewReportController(db, asyncLogger)
	calculationCtrl := calculation.NewCalculationController(db, asyncLogger)
	mapDataCtrl := mapdata.NewMapDataController(db, asyncLogger)
	dashboardCtrl := dashboard.NewDashboardController(db, asyncLogger)
	userCtrl := user.NewUserController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "survey-booking",
			"status":  "ok",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/auth/register", authCtrl.Register)
	api.Post("/auth/login", authCtrl.Login)
	api.Post("/auth/refresh", authCtrl.Refresh)

	/*=============================================================================
	| Auth Routes
	===============================================================================*/
	auth := api.Group("/auth").Use(middleware.RequireAnyPermission())
	auth.Get("/profile", authCtrl.Profile)
	auth.Post("/logout", authCtrl.LogOut)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	staffOnly := middleware.RequirePermissions(constants.StaffPermissions...)

	bookings := api.Group("/bookings")
	bookings.Get("/calendar", middleware.RequireAnyPermission(), bookingCtrl.Calendar)
	bookings.Post("/", staffOnly, bookingCtrl.Create)
	bookings.Get("/", middleware.RequireAnyPermission(), bookingCtrl.Index)
	bookings.Get("/:id", middleware.RequireAnyPermission(), bookingCtrl.Show)
	bookings.Put("/:id", staffOnly, bookingCtrl.Update)
	bookings.Post("/:id/transition", staffOnly, bookingCtrl.Transition)
	bookings.Post("/:id/reschedule", staffOnly, bookingCtrl.Reschedule)

	/*=============================================================================
	| Blocked Date Routes
	===============================================================================*/
	blockedDates := api.Group("/blocked-dates")
	blockedDates.Get("/", middleware.RequireAnyPermission(), bookingCtrl.ListBlockedDates)
	blockedDates.Post("/toggle", staffOnly, bookingCtrl.ToggleBlockedDate)

	/*=============================================================================
	| Client Routes
	===============================================================================*/
	clients := api.Group("/clients").Use(staffOnly)
	clients.Post("/", clientCtrl.Create)
	clients.Get("/", clientCtrl.Index)
	clients.Get("/:id", clientCtrl.Show)
	clients.Put("/:id", clientCtrl.Update)
	clients.Delete("/:id", clientCtrl.Delete)

	/*=============================================================================
	| Report Routes
	===============================================================================*/
	reports := api.Group("/reports").Use(staffOnly)
	reports.Get("/export", reportCtrl.Export)
	reports.Post("/parse-deed", reportCtrl.ParseDeed)
	reports.Post("/", reportCtrl.Create)
	reports.Get("/", reportCtrl.Index)
	reports.Get("/:id", reportCtrl.Show)
	reports.Put("/:id", reportCtrl.Update)
	reports.Delete("/:id", reportCtrl.Delete)

	/*=============================================================================
	| Calculation Routes
	===============================================================================*/
	calculations := api.Group("/calculations").Use(middleware.RequireAnyPermission())
	calculations.Post("/", calculationCtrl.Create)
	calculations.Get("/", calculationCtrl.Index)

	/*=============================================================================
	| Map Data Routes
	===============================================================================*/
	maps := api.Group("/maps").Use(staffOnly)
	maps.Post("/", mapDataCtrl.Create)
	maps.Get("/", mapDataCtrl.Index)
	maps.Get("/:id", mapDataCtrl.Show)
	maps.Delete("/:id", mapDataCtrl.Delete)

	/*=============================================================================
	| Directory and Dashboard Routes
	===============================================================================*/
	// Surveyor and admin accounts are created here, behind the admin guard;
	// the public register route only accepts client accounts.
	api.Post("/users", middleware.RequirePermissions(constants.PermAdminFull), authCtrl.Register)
	api.Get("/users/surveyors", staffOnly, userCtrl.Surveyors)
	api.Get("/dashboard/stats", middleware.RequirePermissions(constants.PermAdminFull), dashboardCtrl.Stats)
}
