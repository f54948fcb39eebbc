package routes

import (
	"gatherly/analytics"
	"gatherly/auth"
	"gatherly/events"
	"gatherly/globals"
	"gatherly/interests"
	"gatherly/middleware"
	"gatherly/ratelim"
	"gatherly/registration"
	"gatherly/tickets"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/signup", rl.Limit(auth.Signup))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", auth.Logout)
	router.GET("/api/auth/me", auth.Me)
}

func AddEventsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/events", rl.Limit(middleware.OptionalAuth(events.GetEvents)))
	router.GET("/api/event-types", events.GetEventTypes)
	router.GET("/api/event-count", events.GetEventsCount)
	router.GET("/api/events/:eventid", middleware.OptionalAuth(events.GetEvent))
	router.POST("/api/events", middleware.Authenticate(
		middleware.RequireRole(globals.RoleOrganization, events.CreateEvent)))
	router.PUT("/api/events/:eventid", middleware.Authenticate(
		middleware.RequireRole(globals.RoleOrganization, events.EditEvent)))
	router.DELETE("/api/events/:eventid", middleware.Authenticate(
		middleware.RequireRole(globals.RoleOrganization, events.DeleteEvent)))
	router.POST("/api/events/:eventid/checkin", middleware.Authenticate(
		middleware.RequireRole(globals.RoleOrganization, tickets.CheckinHandler)))
}

func AddRegistrationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/participants/:id/events/:eventid/is-registered",
		middleware.Authenticate(registration.IsRegisteredHandler))
	router.POST("/api/participants/:id/events/:eventid/register",
		rl.Limit(middleware.Authenticate(registration.RegisterHandler)))
	router.GET("/api/participants/:id/events/:eventid/ticket/qr",
		middleware.Authenticate(tickets.QRHandler))
	router.GET("/api/participants/:id/events/:eventid/ticket/pdf",
		middleware.Authenticate(tickets.PDFHandler))
}

func AddInterestRoutes(router *httprouter.Router) {
	router.GET("/api/participants/:id/interests",
		middleware.Authenticate(interests.GetInterests))
	router.POST("/api/participants/:id/interests",
		middleware.Authenticate(middleware.RequireRole(globals.RoleParticipant, interests.AddInterest)))
	router.PUT("/api/participants/:id/interests",
		middleware.Authenticate(middleware.RequireRole(globals.RoleParticipant, interests.ReplaceInterests)))
	router.DELETE("/api/participants/:id/interests",
		middleware.Authenticate(middleware.RequireRole(globals.RoleParticipant, interests.RemoveInterest)))
}

func AddAnalyticsRoutes(router *httprouter.Router) {
	router.GET("/api/organizations/:orgid/analytics/monthly-participants",
		middleware.Authenticate(middleware.RequireRole(globals.RoleOrganization, analytics.MonthlyParticipants)))
	router.GET("/api/organizations/:orgid/analytics/tags",
		middleware.Authenticate(middleware.RequireRole(globals.RoleOrganization, analytics.TagDistributionHandler)))
	router.GET("/api/organizations/:orgid/analytics/types",
		middleware.Authenticate(middleware.RequireRole(globals.RoleOrganization, analytics.TypeDistributionHandler)))
	router.GET("/api/organizations/:orgid/analytics/locations",
		middleware.Authenticate(middleware.RequireRole(globals.RoleOrganization, analytics.LocationHandler)))
	router.GET("/api/organizations/:orgid/analytics/live",
		middleware.Authenticate(analytics.Live.HandleWS))
}
