package routes

import (
	"openslot/activities"
	"openslot/agenda"
	"openslot/auth"
	"openslot/availability"
	"openslot/bookings"
	"openslot/calview"
	"openslot/invites"
	"openslot/middleware"
	"openslot/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/refresh", rateLimiter.Limit(auth.RefreshToken))
}

func AddActivityRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/activities", rateLimiter.Limit(middleware.Authenticate(activities.CreateActivity)))
	router.GET("/api/activities", middleware.Authenticate(activities.ListActivities))
	router.GET("/api/activities/:username/:slug", activities.GetActivity)
	router.PUT("/api/activities/:id", middleware.Authenticate(activities.EditActivity))
	router.DELETE("/api/activities/:id", middleware.Authenticate(activities.DeleteActivity))
}

func AddInviteRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/invites", rateLimiter.Limit(middleware.Authenticate(invites.CreateInvite)))
	router.GET("/api/invites/activity/:activityid", middleware.Authenticate(invites.ListInvites))
	router.GET("/api/invite/:token", rateLimiter.Limit(invites.GetInvite))
	router.GET("/api/invite/:token/qr", rateLimiter.Limit(invites.InviteQR))
	router.DELETE("/api/invite/:token", middleware.Authenticate(invites.DeleteInvite))
}

func AddBookingRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/bookings", rateLimiter.Limit(middleware.OptionalAuth(bookings.CreateBooking)))
	router.DELETE("/api/bookings/:id", middleware.Authenticate(bookings.DeleteBooking))
	router.GET("/api/schedule/:username/:year/:month/:day", rateLimiter.Limit(bookings.GetDayView))
	router.GET("/ws/calendar/:ownerid", bookings.HandleWS)
}

func AddCalendarRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/calendar/:username", rateLimiter.Limit(calview.RedirectToCurrent))
	router.GET("/api/calendar/:username/:year/:month", rateLimiter.Limit(calview.GetMonth))
}

func AddAvailabilityRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/availability", middleware.Authenticate(availability.CreateWindow))
	router.GET("/api/availability", middleware.Authenticate(availability.ListWindows))
	router.DELETE("/api/availability/:id", middleware.Authenticate(availability.DeleteWindow))
}

func AddAgendaRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/agenda/:year/:month/:day/pdf", rateLimiter.Limit(middleware.Authenticate(agenda.DayPDF)))
	router.GET("/api/agenda/:year/:month/:day/ics", rateLimiter.Limit(middleware.Authenticate(agenda.DayICS)))
}
