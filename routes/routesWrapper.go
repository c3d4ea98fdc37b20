package routes

import (
	"openslot/ratelim"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddActivityRoutes(router, rateLimiter)
	AddInviteRoutes(router, rateLimiter)
	AddBookingRoutes(router, rateLimiter)
	AddCalendarRoutes(router, rateLimiter)
	AddAvailabilityRoutes(router, rateLimiter)
	AddAgendaRoutes(router, rateLimiter)
}
