package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		action  BookingAction
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusPlanned, BookingActionPickUp, BookingStatusActive, true},
		{BookingStatusPlanned, BookingActionCancel, BookingStatusCanceled, true},
		{BookingStatusPlanned, BookingActionReturn, "", false},
		{BookingStatusActive, BookingActionReturn, BookingStatusCompleted, true},
		{BookingStatusActive, BookingActionPickUp, "", false},
		{BookingStatusActive, BookingActionCancel, "", false},
		{BookingStatusOverdue, BookingActionReturn, BookingStatusCompleted, true},
		{BookingStatusCompleted, BookingActionPickUp, "", false},
		{BookingStatusCompleted, BookingActionCancel, "", false},
		{BookingStatusCanceled, BookingActionPickUp, "", false},
		{BookingStatusCanceled, BookingActionReturn, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			next, err := tt.from.Next(tt.action)
			assert.Equal(t, tt.allowed, tt.from.Allows(tt.action))
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, next)
				return
			}
			assert.ErrorIs(t, err, ErrTransitionNotAllowed)
		})
	}
}

func TestBookingStatus_AllowedActions(t *testing.T) {
	assert.Equal(t, []BookingAction{BookingActionPickUp, BookingActionCancel}, BookingStatusPlanned.AllowedActions())
	assert.Equal(t, []BookingAction{BookingActionReturn}, BookingStatusActive.AllowedActions())
	assert.Empty(t, BookingStatusCompleted.AllowedActions())
	assert.Empty(t, BookingStatusCanceled.AllowedActions())

	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCanceled.IsTerminal())
	assert.False(t, BookingStatusPlanned.IsTerminal())

	assert.True(t, BookingStatusPlanned.CanTransitionTo(BookingStatusCanceled))
	assert.False(t, BookingStatusActive.CanTransitionTo(BookingStatusCanceled))
}

func TestBooking_Decode(t *testing.T) {
	raw := `{
		"id": 7, "user_id": 2, "car_id": 5,
		"start_date": "2024-06-01", "end_date": "2024-06-04",
		"planned_pickup_time": "10:00:00",
		"total_cost": "276.00", "currency_code": "EUR", "exchange_rate": 0.92,
		"status": "PLANNED",
		"car": {"id": 5, "name": "Civic", "model": "Honda", "price_per_day": "92.00", "is_available": true}
	}`

	var b Booking
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, Money(276), b.TotalCost)
	assert.Equal(t, Money(0.92), b.ExchangeRate)
	assert.Equal(t, CurrencyEUR, b.CurrencyCode)
	assert.Nil(t, b.ReturnDate)
	require.NotNil(t, b.Car)
	assert.Equal(t, Money(92), b.Car.PricePerDay)
}

func TestListParams_Validate(t *testing.T) {
	assert.NoError(t, CarListParams{}.Validate())
	assert.NoError(t, CarListParams{Page: 2, PageSize: 100, Currency: CurrencyEUR, SortOrder: "desc"}.Validate())
	assert.ErrorIs(t, CarListParams{PageSize: 101}.Validate(), ErrValidation)
	assert.ErrorIs(t, CarListParams{Page: -1}.Validate(), ErrValidation)
	assert.ErrorIs(t, CarListParams{Currency: "XYZ"}.Validate(), ErrInvalidCurrency)
	assert.ErrorIs(t, CarListParams{SortOrder: "up"}.Validate(), ErrValidation)

	assert.NoError(t, BookingListParams{Status: BookingStatusActive}.Validate())
	assert.ErrorIs(t, BookingListParams{Status: "LOST"}.Validate(), ErrValidation)
}

func TestBookingCreate_Validate(t *testing.T) {
	valid := BookingCreate{CarID: 1, StartDate: "2024-06-01", EndDate: "2024-06-04", CurrencyCode: CurrencyUSD}
	assert.NoError(t, valid.Validate())

	missingCar := valid
	missingCar.CarID = 0
	assert.ErrorIs(t, missingCar.Validate(), ErrValidation)

	badCurrency := valid
	badCurrency.CurrencyCode = "usd"
	assert.ErrorIs(t, badCurrency.Validate(), ErrInvalidCurrency)
}

func TestTheme(t *testing.T) {
	th, err := ParseTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)

	_, err = ParseTheme("blue")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, "light", ThemeLight.RootClass(true))
	assert.Equal(t, "dark", ThemeSystem.RootClass(true))
	assert.Equal(t, "light", ThemeSystem.RootClass(false))
}

func TestParseCurrency(t *testing.T) {
	assert.Len(t, Currencies, 31)
	c, err := ParseCurrency("JPY")
	require.NoError(t, err)
	assert.Equal(t, CurrencyJPY, c)

	_, err = ParseCurrency("12")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}
