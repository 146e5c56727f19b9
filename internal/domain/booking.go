package domain

import "fmt"

type BookingStatus string

const (
	BookingStatusPlanned   BookingStatus = "PLANNED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCanceled  BookingStatus = "CANCELED"
	// Set by the backend only; the client never moves a booking here.
	BookingStatusOverdue BookingStatus = "OVERDUE"
)

// BookingAction is a lifecycle action a user can trigger on a booking
type BookingAction string

const (
	BookingActionPickUp BookingAction = "PICK_UP"
	BookingActionReturn BookingAction = "RETURN"
	BookingActionCancel BookingAction = "CANCEL"
)

// actionOrder fixes the order in which allowed actions are presented
var actionOrder = []BookingAction{BookingActionPickUp, BookingActionReturn, BookingActionCancel}

// bookingTransitions is the complete client-side lifecycle table.
// COMPLETED and CANCELED have no entry and are therefore terminal.
var bookingTransitions = map[BookingStatus]map[BookingAction]BookingStatus{
	BookingStatusPlanned: {
		BookingActionPickUp: BookingStatusActive,
		BookingActionCancel: BookingStatusCanceled,
	},
	BookingStatusActive: {
		BookingActionReturn: BookingStatusCompleted,
	},
	BookingStatusOverdue: {
		BookingActionReturn: BookingStatusCompleted,
	},
}

// Valid reports whether s is a status the backend can return
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPlanned, BookingStatusActive, BookingStatusCompleted,
		BookingStatusCanceled, BookingStatusOverdue:
		return true
	}
	return false
}

// IsTerminal reports whether no action can leave s
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// Next returns the status reached by applying action to s
func (s BookingStatus) Next(action BookingAction) (BookingStatus, error) {
	next, ok := bookingTransitions[s][action]
	if !ok {
		return "", fmt.Errorf("%w: %s from %s", ErrTransitionNotAllowed, action, s)
	}
	return next, nil
}

// Allows reports whether action is offered for a booking in status s
func (s BookingStatus) Allows(action BookingAction) bool {
	_, ok := bookingTransitions[s][action]
	return ok
}

// AllowedActions lists the actions a view should enable for status s
func (s BookingStatus) AllowedActions() []BookingAction {
	actions := make([]BookingAction, 0, len(actionOrder))
	for _, a := range actionOrder {
		if s.Allows(a) {
			actions = append(actions, a)
		}
	}
	return actions
}

// CanTransitionTo reports whether any single action moves s to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, to := range bookingTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID                int64   `json:"id"`
	UserID            int64   `json:"user_id"`
	CarID             int64   `json:"car_id"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	PlannedPickupTime string  `json:"planned_pickup_time"`
	PickupDate        *string `json:"pickup_date,omitempty"`
	ReturnDate        *string `json:"return_date,omitempty"`
	// Authoritative cost computed by the backend at creation time.
	TotalCost    Money         `json:"total_cost"`
	CurrencyCode Currency      `json:"currency_code"`
	ExchangeRate Money         `json:"exchange_rate"`
	Status       BookingStatus `json:"status"`
	Car          *Car          `json:"car,omitempty"`
}

// BookingCreate is the payload for creating a booking
type BookingCreate struct {
	CarID             int64    `json:"car_id"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	PlannedPickupTime string   `json:"planned_pickup_time"`
	CurrencyCode      Currency `json:"currency_code"`
}

// BookingUpdate is a partial update; nil fields are left unchanged by the backend
type BookingUpdate struct {
	StartDate  *string        `json:"start_date,omitempty"`
	EndDate    *string        `json:"end_date,omitempty"`
	Status     *BookingStatus `json:"status,omitempty"`
	PickupDate *string        `json:"pickup_date,omitempty"`
	ReturnDate *string        `json:"return_date,omitempty"`
}

// BookingListParams filters the "my bookings" list
type BookingListParams struct {
	Page      int
	PageSize  int
	Status    BookingStatus
	CarID     int64
	SortBy    string
	SortOrder string
}
