package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/Fuzuri/CleanIT/internal/domain"
)

// validateRequest проверяет обязательные поля запроса
func validateRequest(req *Request) error {
	switch {
	case strings.TrimSpace(req.CustomerName) == "":
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	case strings.TrimSpace(req.CustomerEmail) == "":
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	case strings.TrimSpace(req.CustomerPhone) == "":
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	case strings.TrimSpace(req.Date) == "":
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	if req.BedroomQty != nil && *req.BedroomQty < 0 {
		return fmt.Errorf("%w: bedroom quantity must not be negative", ErrInvalidInput)
	}
	if req.BathQty != nil && *req.BathQty < 0 {
		return fmt.Errorf("%w: bathroom quantity must not be negative", ErrInvalidInput)
	}
	if req.Hours != nil && *req.Hours < 0 {
		return fmt.Errorf("%w: hours must not be negative", ErrInvalidInput)
	}

	if len(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// intOrDefault возвращает значение указателя или значение по умолчанию
func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
