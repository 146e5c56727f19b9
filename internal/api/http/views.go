package http

import (
	"net/http"

	"carrental-client/internal/domain"
)

type carViewResponse struct {
	Status         string          `json:"status"`
	CurrencyCode   domain.Currency `json:"currency_code,omitempty"`
	Car            *domain.Car     `json:"car,omitempty"`
	IsPreviousData bool            `json:"is_previous_data"`
	IsFetching     bool            `json:"is_fetching"`
	Error          string          `json:"error,omitempty"`
}

// handleCarView renders the car detail view, opening it on first request.
// The view keeps following the selected currency until it is closed.
func (s *Server) handleCarView(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.viewsMu.Lock()
	view, ok := s.carViews[id]
	if !ok {
		view = s.cars.WatchCar(id)
		s.carViews[id] = view
	}
	s.viewsMu.Unlock()

	res := view.Result()
	resp := carViewResponse{
		Status:         res.Status.String(),
		CurrencyCode:   res.Key.Currency,
		IsPreviousData: res.IsPreviousData,
		IsFetching:     res.IsFetching,
	}
	if res.HasData {
		resp.Car = res.Data
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCloseCarView is called when the user navigates away from the detail page
func (s *Server) handleCloseCarView(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.viewsMu.Lock()
	view, ok := s.carViews[id]
	delete(s.carViews, id)
	s.viewsMu.Unlock()

	if ok {
		view.Close()
	}
	w.WriteHeader(http.StatusNoContent)
}
