package routes

import (
	"medibook/admin"
	"medibook/auth"
	"medibook/booking"
	"medibook/cart"
	"medibook/doctors"
	"medibook/middleware"
	"medibook/profile"
	"medibook/ratelim"
	"medibook/services"
	"medibook/visitor"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))

	router.POST("/api/admin/login", rl.Limit(auth.AdminLogin))
	router.POST("/api/doctor/login", rl.Limit(auth.DoctorLogin))
}

func AddVisitorRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	// minting is a write, keep it behind the limiter
	router.POST("/api/visitor/session", rl.Limit(visitor.CreateSession))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/cart", middleware.OptionalAuth(cart.GetCart))
	router.POST("/api/cart/add", rl.Limit(middleware.OptionalAuth(cart.AddToCart)))
	router.POST("/api/cart/remove", middleware.OptionalAuth(cart.RemoveFromCart))
	router.POST("/api/cart/clear", middleware.OptionalAuth(cart.ClearCart))
	router.POST("/api/cart/merge", middleware.Authenticate(cart.MergeCart))
}

func AddDoctorRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/doctors", doctors.GetDoctors)
	router.GET("/api/doctors/:docId", doctors.GetDoctor)
	router.GET("/api/doctors/:docId/slots", booking.GetDoctorSlots)

	router.GET("/api/doctor/appointments",
		middleware.Authenticate(middleware.RequireRole("doctor", booking.ListDoctorAppointments)))
	router.POST("/api/doctor/complete-appointment",
		middleware.Authenticate(middleware.RequireRole("doctor", booking.CompleteAppointment)))
	router.POST("/api/doctor/cancel-appointment",
		middleware.Authenticate(middleware.RequireRole("doctor", booking.CancelOwnAppointment)))
	router.GET("/api/doctor/profile",
		middleware.Authenticate(middleware.RequireRole("doctor", doctors.GetProfile)))
	router.POST("/api/doctor/profile",
		middleware.Authenticate(middleware.RequireRole("doctor", doctors.UpdateProfile)))
}

func AddServiceRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/services", services.GetServices)
	router.GET("/api/services/:serviceId", services.GetService)
}

func AddAdminRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/admin/doctors",
		middleware.Authenticate(middleware.RequireRole("admin", doctors.GetDoctors)))
	router.POST("/api/admin/doctors",
		middleware.Authenticate(middleware.RequireRole("admin", doctors.AddDoctor)))
	router.DELETE("/api/admin/doctors/:docId",
		middleware.Authenticate(middleware.RequireRole("admin", doctors.DeleteDoctor)))
	router.POST("/api/admin/doctors/:docId/availability",
		middleware.Authenticate(middleware.RequireRole("admin", doctors.ToggleAvailability)))

	router.GET("/api/admin/services",
		middleware.Authenticate(middleware.RequireRole("admin", services.GetServices)))
	router.POST("/api/admin/services",
		middleware.Authenticate(middleware.RequireRole("admin", services.AddService)))
	router.PUT("/api/admin/services/:serviceId",
		middleware.Authenticate(middleware.RequireRole("admin", services.UpdateService)))
	router.DELETE("/api/admin/services/:serviceId",
		middleware.Authenticate(middleware.RequireRole("admin", services.DeleteService)))

	router.GET("/api/admin/appointments",
		middleware.Authenticate(middleware.RequireRole("admin", admin.GetAppointments)))
	router.POST("/api/admin/cancel-appointment",
		middleware.Authenticate(middleware.RequireRole("admin", booking.AdminCancelAppointment)))
	router.GET("/api/admin/dashboard",
		middleware.Authenticate(middleware.RequireRole("admin", admin.GetDashboard)))
}

func AddUserRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/user/profile", middleware.Authenticate(profile.GetProfile))
	router.POST("/api/user/profile", middleware.Authenticate(profile.UpdateProfile))
	router.POST("/api/user/profile/picture", middleware.Authenticate(profile.UploadPicture))

	router.POST("/api/user/book-appointment", rl.Limit(middleware.Authenticate(booking.BookAppointment)))
	router.GET("/api/user/appointments", middleware.Authenticate(booking.ListUserAppointments))
	router.POST("/api/user/cancel-appointment", middleware.Authenticate(booking.CancelAppointment))
	router.GET("/api/user/appointments/:appointmentId/receipt", middleware.Authenticate(profile.PrintReceipt))
}

func AddBookingWSRoutes(router *httprouter.Router) {
	router.GET("/api/ws/slots/:docId", booking.HandleWS)
}
