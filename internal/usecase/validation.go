package usecase

import (
	"fmt"
	"strconv"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateOrderStatusParams checks the raw query values before any data
// access happens. Returns the parsed order id when valid.
func ValidateOrderStatusParams(rawOrderID, phone string) (int, []ValidationError) {
	var errs []ValidationError

	orderID := 0
	if strings.TrimSpace(rawOrderID) == "" {
		errs = append(errs, ValidationError{"order_id", "is required"})
	} else {
		id, err := strconv.Atoi(strings.TrimSpace(rawOrderID))
		if err != nil {
			errs = append(errs, ValidationError{"order_id", "must be integer"})
		} else if id <= 0 {
			errs = append(errs, ValidationError{"order_id", "must be positive"})
		} else {
			orderID = id
		}
	}

	if strings.TrimSpace(phone) == "" {
		errs = append(errs, ValidationError{"phone", "is required"})
	}

	return orderID, errs
}

func ValidateAutomateInput(input AutomateSendInput) []ValidationError {
	var errs []ValidationError

	if input.Limit != nil && *input.Limit <= 0 {
		errs = append(errs, ValidationError{"limit", "must be positive"})
	}
	if input.DaysBack != nil && *input.DaysBack <= 0 {
		errs = append(errs, ValidationError{"days_back", "must be positive"})
	}
	if input.DelaySeconds < 0 {
		errs = append(errs, ValidationError{"delay_seconds", "must not be negative"})
	}

	return errs
}
