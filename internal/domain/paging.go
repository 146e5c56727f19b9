package domain

import "fmt"

// MaxPageSize is the largest page the backend serves
const MaxPageSize = 100

// validatePaging accepts zero as "backend default"
func validatePaging(page, pageSize int) error {
	if page < 0 {
		return fmt.Errorf("%w: page must be >= 1", ErrValidation)
	}
	if pageSize < 0 || pageSize > MaxPageSize {
		return fmt.Errorf("%w: page_size must be between 1 and %d", ErrValidation, MaxPageSize)
	}
	return nil
}

func validateSortOrder(order string) error {
	switch order {
	case "", "asc", "desc":
		return nil
	}
	return fmt.Errorf("%w: sort_order must be asc or desc", ErrValidation)
}

func (p CarListParams) Validate() error {
	if err := validatePaging(p.Page, p.PageSize); err != nil {
		return err
	}
	if p.Currency != "" && !p.Currency.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, p.Currency)
	}
	return validateSortOrder(p.SortOrder)
}

func (p BookingListParams) Validate() error {
	if err := validatePaging(p.Page, p.PageSize); err != nil {
		return err
	}
	if p.Status != "" && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, p.Status)
	}
	return validateSortOrder(p.SortOrder)
}

// Validate checks a create payload before it is submitted
func (b BookingCreate) Validate() error {
	if b.CarID <= 0 {
		return fmt.Errorf("%w: car_id is required", ErrValidation)
	}
	if b.StartDate == "" || b.EndDate == "" {
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	}
	if !b.CurrencyCode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, b.CurrencyCode)
	}
	return nil
}
