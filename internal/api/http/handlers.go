package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"carrental-client/internal/domain"
	"carrental-client/internal/query"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type themeResponse struct {
	Theme     domain.Theme `json:"theme"`
	RootClass string       `json:"root_class"`
}

type currencyRequest struct {
	CurrencyCode string `json:"currency_code"`
}

type currencyResponse struct {
	CurrencyCode domain.Currency   `json:"currency_code"`
	Currencies   []domain.Currency `json:"currencies"`
}

type bookingResponse struct {
	*domain.Booking
	AllowedActions []domain.BookingAction `json:"allowed_actions"`
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	s.writeTheme(w, r)
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if _, err := s.theme.SetTheme(r.Context(), req.Theme); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeTheme(w, r)
}

func (s *Server) writeTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.theme.GetTheme(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	class, err := s.theme.RootClass(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: theme, RootClass: class})
}

func (s *Server) handleGetCurrency(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currencyResponse{CurrencyCode: s.currency.Get(), Currencies: domain.Currencies})
}

func (s *Server) handleSetCurrency(w http.ResponseWriter, r *http.Request) {
	var req currencyRequest
	if !s.decode(w, r, &req) {
		return
	}
	c, err := s.currency.Set(req.CurrencyCode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, currencyResponse{CurrencyCode: c, Currencies: domain.Currencies})
}

func (s *Server) handleListCars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := domain.CarListParams{
		Name:          q.Get("name"),
		AvailableOnly: q.Get("available_only") == "true",
		SortBy:        q.Get("sort_by"),
		SortOrder:     q.Get("sort_order"),
		Currency:      domain.Currency(q.Get("currency_code")),
	}
	var err error
	if params.Page, params.PageSize, err = pagingParams(r); err != nil {
		s.writeError(w, r, err)
		return
	}

	page, err := s.cars.ListCars(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	car, err := s.cars.GetCar(r.Context(), id, domain.Currency(r.URL.Query().Get("currency_code")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := domain.BookingListParams{
		Status:    domain.BookingStatus(strings.ToUpper(q.Get("status"))),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	var err error
	if params.Page, params.PageSize, err = pagingParams(r); err != nil {
		s.writeError(w, r, err)
		return
	}
	if v := q.Get("car_id"); v != "" {
		if params.CarID, err = strconv.ParseInt(v, 10, 64); err != nil {
			s.writeError(w, r, fmt.Errorf("%w: invalid car_id", domain.ErrValidation))
			return
		}
	}

	page, err := s.bookings.ListMyBookings(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	booking, err := s.bookings.GetBooking(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newBookingResponse(booking))
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.BookingCreate
	if !s.decode(w, r, &req) {
		return
	}
	booking, err := s.bookings.CreateBooking(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newBookingResponse(booking))
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req domain.BookingUpdate
	if !s.decode(w, r, &req) {
		return
	}
	booking, err := s.bookings.UpdateBooking(r.Context(), id, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newBookingResponse(booking))
}

func (s *Server) handleBookingAction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	action := domain.BookingAction(strings.ToUpper(strings.ReplaceAll(mux.Vars(r)["action"], "-", "_")))

	booking, err := s.bookings.ApplyAction(r.Context(), id, action)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newBookingResponse(booking))
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	carID, err := strconv.ParseInt(q.Get("car_id"), 10, 64)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: car_id is required", domain.ErrQueryDisabled))
		return
	}
	estimate, err := s.bookings.EstimateCost(r.Context(), carID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, estimate)
}

func newBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{Booking: b, AllowedActions: b.Status.AllowedActions()}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrValidation, name)
	}
	return id, nil
}

func pagingParams(r *http.Request) (page, pageSize int, err error) {
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			return 0, 0, fmt.Errorf("%w: page must be >= 1", domain.ErrValidation)
		}
	}
	if v := q.Get("page_size"); v != "" {
		if pageSize, err = strconv.Atoi(v); err != nil || pageSize < 1 {
			return 0, 0, fmt.Errorf("%w: page_size must be >= 1", domain.ErrValidation)
		}
	}
	return page, pageSize, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an error to a status the front-end can tell apart
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "route", routeTemplate(r), "error", err, "request_id", requestIDFromContext(r.Context()))
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

func classify(err error) (int, string) {
	var mErr *query.MutationError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrTransitionNotAllowed):
		return http.StatusConflict, "transition_not_allowed"
	case errors.Is(err, domain.ErrQueryDisabled):
		return http.StatusBadRequest, "disabled"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidCurrency), errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusBadRequest, "validation"
	case errors.As(err, &mErr):
		return http.StatusBadGateway, "mutation_failed"
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, "transport"
	}
	return http.StatusInternalServerError, "internal"
}
