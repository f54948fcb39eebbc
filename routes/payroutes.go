package routes

import (
	"gatherly/globals"
	"gatherly/middleware"
	"gatherly/pay"
	"gatherly/ratelim"

	"github.com/julienschmidt/httprouter"
)

// AddPayRoutes wires the payment order flow to the router.
func AddPayRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	payService := pay.NewService(pay.NewHMACVerifier())

	router.POST("/api/payment/create-order",
		rl.Limit(middleware.Authenticate(
			middleware.RequireRole(globals.RoleParticipant, payService.CreateOrderHandler))))

	router.POST("/api/payment/verify-and-register",
		rl.Limit(middleware.Authenticate(
			middleware.RequireRole(globals.RoleParticipant, payService.VerifyAndRegisterHandler))))
}
