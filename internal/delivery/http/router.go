package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/http/handler"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/http/middleware"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/domain/entity"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	serviceHandler      *handler.ServiceHandler
	reviewHandler       *handler.ReviewHandler
	availabilityHandler *handler.AvailabilityHandler
	bookingHandler      *handler.BookingHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	serviceHandler *handler.ServiceHandler,
	reviewHandler *handler.ReviewHandler,
	availabilityHandler *handler.AvailabilityHandler,
	bookingHandler *handler.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		serviceHandler:      serviceHandler,
		reviewHandler:       reviewHandler,
		availabilityHandler: availabilityHandler,
		bookingHandler:      bookingHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Service catalog (public reads)
	api.HandleFunc("/services", r.serviceHandler.ListServices).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", r.serviceHandler.GetService).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}/reviews", r.reviewHandler.ListReviews).Methods(http.MethodGet)

	// Service catalog (provider writes)
	providerServices := api.PathPrefix("/services").Subrouter()
	providerServices.Use(r.authMiddleware.Authenticate)
	providerServices.Use(middleware.RequireAdminOrProvider)
	providerServices.HandleFunc("", r.serviceHandler.CreateService).Methods(http.MethodPost)
	providerServices.HandleFunc("/{id}", r.serviceHandler.UpdateService).Methods(http.MethodPut)
	providerServices.HandleFunc("/{id}", r.serviceHandler.DeleteService).Methods(http.MethodDelete)

	// Reviews (customers)
	reviews := api.PathPrefix("/services/{id}/reviews").Subrouter()
	reviews.Use(r.authMiddleware.Authenticate)
	reviews.Use(middleware.RequireCustomer)
	reviews.HandleFunc("", r.reviewHandler.CreateReview).Methods(http.MethodPost)

	// Provider availability: slot reads are open to any authenticated user,
	// schedule mutations are restricted to providers and admins. Ownership is
	// enforced in the usecase.
	availability := api.PathPrefix("/providers/{providerId}").Subrouter()
	availability.Use(r.authMiddleware.Authenticate)
	availability.HandleFunc("/schedule", r.availabilityHandler.GetSchedule).Methods(http.MethodGet)
	availability.HandleFunc("/slots", r.availabilityHandler.GetSlots).Methods(http.MethodGet)

	schedule := api.PathPrefix("/providers/{providerId}/schedule").Subrouter()
	schedule.Use(r.authMiddleware.Authenticate)
	schedule.Use(middleware.RequireAdminOrProvider)
	schedule.HandleFunc("", r.availabilityHandler.SetSchedule).Methods(http.MethodPut)
	schedule.HandleFunc("", r.availabilityHandler.PatchSchedule).Methods(http.MethodPatch)
	schedule.HandleFunc("", r.availabilityHandler.DeleteSchedule).Methods(http.MethodDelete)

	// Bookings. Creation is for customers (and admins booking on a customer's
	// behalf); participant checks on reads and patches live in the usecase.
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.Use(r.authMiddleware.Authenticate)
	bookings.Handle("", middleware.RequireRole(entity.RoleIDCustomer, entity.RoleIDAdmin)(
		http.HandlerFunc(r.bookingHandler.CreateBooking))).Methods(http.MethodPost)
	bookings.HandleFunc("/my", r.bookingHandler.GetMyBookings).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}", r.bookingHandler.GetBooking).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}", r.bookingHandler.UpdateBookingStatus).Methods(http.MethodPatch)
	bookings.HandleFunc("/{id}", r.bookingHandler.DeleteBooking).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
