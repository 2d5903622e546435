package routes

import (
	"medibook/ratelim"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddVisitorRoutes(router, rateLimiter)
	AddCartRoutes(router, rateLimiter)
	AddDoctorRoutes(router, rateLimiter)
	AddServiceRoutes(router, rateLimiter)
	AddAdminRoutes(router, rateLimiter)
	AddUserRoutes(router, rateLimiter)
	AddBookingWSRoutes(router)
	AddStaticRoutes(router)
}
