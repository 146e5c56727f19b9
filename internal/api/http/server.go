package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carrental-client/internal/appstate"
	"carrental-client/internal/logger"
	"carrental-client/internal/service"
)

// SessionChecker reports whether a signed-in session exists
type SessionChecker interface {
	AccessToken(ctx context.Context) (string, error)
}

// Server exposes the client's views as JSON to a local browser front-end
type Server struct {
	cars     service.CarService
	bookings service.BookingService
	theme    service.ThemeService
	currency *appstate.CurrencySelector
	session  SessionChecker

	mux    *mux.Router
	logger *slog.Logger

	viewsMu  sync.Mutex
	carViews map[int64]*service.CarDetailView
}

func NewServer(
	cars service.CarService,
	bookings service.BookingService,
	theme service.ThemeService,
	currency *appstate.CurrencySelector,
	session SessionChecker,
) *Server {
	s := &Server{
		cars:     cars,
		bookings: bookings,
		theme:    theme,
		currency: currency,
		session:  session,
		mux:      mux.NewRouter(),
		logger:   logger.WithComponent("http"),
		carViews: make(map[int64]*service.CarDetailView),
	}
	s.registerMiddleware()
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	s.mux.Handle("/metrics", promhttp.Handler())

	s.mux.HandleFunc("/api/theme", s.handleGetTheme).Methods(http.MethodGet)
	s.mux.HandleFunc("/api/theme", s.handleSetTheme).Methods(http.MethodPut)
	s.mux.HandleFunc("/api/currency", s.handleGetCurrency).Methods(http.MethodGet)
	s.mux.HandleFunc("/api/currency", s.handleSetCurrency).Methods(http.MethodPut)

	s.mux.HandleFunc("/api/cars", s.handleListCars).Methods(http.MethodGet)
	s.mux.HandleFunc("/api/cars/{id}", s.handleGetCar).Methods(http.MethodGet)
	s.mux.HandleFunc("/api/views/cars/{id}", s.handleCarView).Methods(http.MethodGet)
	s.mux.HandleFunc("/api/views/cars/{id}", s.handleCloseCarView).Methods(http.MethodDelete)

	s.mux.HandleFunc("/api/bookings", s.handleListBookings).Methods(http.MethodGet)
	s.mux.HandleFunc("/api/bookings", s.handleCreateBooking).Methods(http.MethodPost)
	// registered before /api/bookings/{id} so "estimate" is not taken for an id
	s.mux.HandleFunc("/api/bookings/estimate", s.handleEstimate).Methods(http.MethodGet)
	s.mux.HandleFunc("/api/bookings/{id}", s.handleGetBooking).Methods(http.MethodGet)
	s.mux.HandleFunc("/api/bookings/{id}", s.handleUpdateBooking).Methods(http.MethodPut)
	s.mux.HandleFunc("/api/bookings/{id}/actions/{action}", s.handleBookingAction).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

// Close detaches every open view
func (s *Server) Close() {
	s.viewsMu.Lock()
	defer s.viewsMu.Unlock()
	for id, v := range s.carViews {
		v.Close()
		delete(s.carViews, id)
	}
}
