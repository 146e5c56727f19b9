package utils

import (
	"fmt"
	"math"
	"time"

	"carrental-client/internal/domain"
)

// DateLayout is the yyyy-mm-dd format the backend uses for booking dates
const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a UTC midnight time
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected yyyy-mm-dd", domain.ErrValidation, dateStr)
	}
	return t, nil
}

// FormatDate renders t as yyyy-mm-dd in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DaysBetween returns the number of days from start to end, rounded up.
// A same-day range yields 0.
func DaysBetween(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, domain.ErrInvalidDateRange
	}
	return int(math.Ceil(end.Sub(start).Hours() / 24)), nil
}

// ValidateDateRange checks that both dates parse and end is not before start
func ValidateDateRange(startDate, endDate string) error {
	start, err := ParseDate(startDate)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

// EstimateTotalCost is the display-only estimate shown before a booking is
// submitted. The stored cost is always the one the backend returns.
func EstimateTotalCost(start, end time.Time, pricePerDay domain.Money) (domain.Money, error) {
	days, err := DaysBetween(start, end)
	if err != nil {
		return 0, err
	}
	return domain.Money(days) * pricePerDay, nil
}

// EstimateTotalCostForDates is EstimateTotalCost over yyyy-mm-dd strings
func EstimateTotalCostForDates(startDate, endDate string, pricePerDay domain.Money) (domain.Money, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %w", err)
	}
	return EstimateTotalCost(start, end, pricePerDay)
}
