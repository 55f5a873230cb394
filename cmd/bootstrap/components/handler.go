package components

import (
	"roomdesk/internal/handler"
	"roomdesk/internal/handler/api"
	"roomdesk/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewReservationHandler,
		api.NewStaffHandler,
		api.NewRoomAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
