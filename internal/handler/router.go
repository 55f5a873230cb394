package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"roomdesk/internal/domain/user"
	"roomdesk/internal/handler/api"
	"roomdesk/internal/handler/middleware"
	"roomdesk/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	availabilityHandler *api.AvailabilityHandler,
	bookingHandler *api.BookingHandler,
	reservationHandler *api.ReservationHandler,
	staffHandler *api.StaffHandler,
	roomAdminHandler *api.RoomAdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, availabilityHandler, bookingHandler, reservationHandler, staffHandler, roomAdminHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	availabilityHandler *api.AvailabilityHandler,
	bookingHandler *api.BookingHandler,
	reservationHandler *api.ReservationHandler,
	staffHandler *api.StaffHandler,
	roomAdminHandler *api.RoomAdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		// Room browsing is public, no account required.
		rooms := apiGroup.Group("/rooms")
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: availabilityHandler.ListRooms},
				{Method: http.MethodGet, Path: "/availability", Handler: availabilityHandler.SearchRooms},
				{Method: http.MethodGet, Path: "/:id", Handler: availabilityHandler.GetRoom},
			})

			// The calendar exposes blocking reservation ids, so it is
			// staff-only unlike the rest of the catalog.
			staffCalendar := []gin.HandlerFunc{
				authMiddleware.RequireAuth(),
				authMiddleware.RequireRoleAtLeast(user.RoleAgent),
			}
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "/:id/availability", Handler: availabilityHandler.RoomCalendar, Mw: staffCalendar},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.ListMyReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
				{Method: http.MethodPatch, Path: "/:id", Handler: reservationHandler.RescheduleReservation},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.CancelReservation},
			})

			staffOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAgent)}
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "/:id/validate", Handler: staffHandler.ValidateReservation, Mw: staffOnly},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: staffHandler.RejectReservation, Mw: staffOnly},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: staffHandler.CheckInReservation, Mw: staffOnly},
				{Method: http.MethodPost, Path: "/:id/check-out", Handler: staffHandler.CheckOutReservation, Mw: staffOnly},
			})

			adminOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)}
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "/:id/complete", Handler: staffHandler.CompleteReservation, Mw: adminOnly},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/rooms", Handler: roomAdminHandler.CreateRoom},
				{Method: http.MethodPut, Path: "/rooms/:id", Handler: roomAdminHandler.UpdateRoom},
				{Method: http.MethodDelete, Path: "/rooms/:id", Handler: roomAdminHandler.DeleteRoom},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
