package usecase

import (
	"fmt"
	"net/mail"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateProjectInput(input CreateProjectInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Industry) == "" {
		errors = append(errors, ValidationError{"industry", "is required"})
	}

	if strings.TrimSpace(input.Location) == "" {
		errors = append(errors, ValidationError{"location", "is required"})
	}

	if input.Limit <= 0 {
		errors = append(errors, ValidationError{"limit", "must be positive"})
	} else if input.Limit > 60 {
		errors = append(errors, ValidationError{"limit", "must not exceed 60"})
	}

	if input.MinRating < 0 || input.MinRating > 5 {
		errors = append(errors, ValidationError{"min_rating", "must be between 0 and 5"})
	}

	return errors
}

func ValidateUpdateLeadInput(input UpdateLeadInput) []ValidationError {
	var errors []ValidationError

	if input.Email != nil && *input.Email != "" {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if input.Status != nil {
		switch *input.Status {
		case "NEW", "CONTACTED", "QUALIFIED", "LOST":
		default:
			errors = append(errors, ValidationError{"status", "must be one of NEW, CONTACTED, QUALIFIED, LOST"})
		}
	}

	if input.Rating != nil && (*input.Rating < 0 || *input.Rating > 5) {
		errors = append(errors, ValidationError{"rating", "must be between 0 and 5"})
	}

	return errors
}

func validationFailed(errs []ValidationError) *DomainError {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return &DomainError{Code: "VALIDATION_ERROR", Message: msg}
}
