package submit_payment

import (
	"fmt"
	"strings"
)

// validateRequest проверяет адресные поля и способ оплаты.
// Способ оплаты обязателен, но не сверяется со списком известных:
// нераспознанный способ сохраняется и получает инструкцию-заглушку.
func validateRequest(req *Request) error {
	switch {
	case strings.TrimSpace(req.StreetAddress) == "":
		return fmt.Errorf("%w: street address is required", ErrInvalidInput)
	case strings.TrimSpace(req.City) == "":
		return fmt.Errorf("%w: city is required", ErrInvalidInput)
	case strings.TrimSpace(req.Province) == "":
		return fmt.Errorf("%w: province is required", ErrInvalidInput)
	case strings.TrimSpace(req.Region) == "":
		return fmt.Errorf("%w: region is required", ErrInvalidInput)
	case strings.TrimSpace(req.PaymentMethod) == "":
		return fmt.Errorf("%w: payment method is required", ErrInvalidInput)
	}

	return nil
}
