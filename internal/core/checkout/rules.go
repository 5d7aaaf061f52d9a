package checkout

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
	cardPattern   = regexp.MustCompile(`^\d{13,19}$`)
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

// Validator evaluates checkout form fields. The clock is injectable so the
// expiry-in-the-past rule can be tested against a fixed date.
type Validator struct {
	now func() time.Time
}

// NewValidator returns a Validator using the wall clock.
func NewValidator() *Validator {
	return NewValidatorAt(time.Now)
}

// NewValidatorAt returns a Validator that reads the current date from now.
func NewValidatorAt(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// ValidateField checks a single field, as on blur. Rules run top to bottom
// and the first failure wins. The empty string means the value is valid.
func (v *Validator) ValidateField(field Field, value string) string {
	switch field {
	case FieldFullName:
		return requireMinLength(value, 2, "Full name is required", "Full name must be at least 2 characters")
	case FieldEmail:
		if value == "" {
			return "Email is required"
		}
		if !emailPattern.MatchString(value) {
			return "Please enter a valid email address"
		}
	case FieldAddress:
		return requireMinLength(value, 5, "Address is required", "Address must be at least 5 characters")
	case FieldCity:
		return requireMinLength(value, 2, "City is required", "City must be at least 2 characters")
	case FieldState:
		return requireMinLength(value, 2, "State is required", "State must be at least 2 characters")
	case FieldZipCode:
		if value == "" {
			return "ZIP code is required"
		}
		if !digitsPattern.MatchString(value) {
			return "ZIP code must contain only numbers"
		}
		if len(value) < 5 {
			return "ZIP code must be at least 5 digits"
		}
	case FieldCountry:
		return requireMinLength(value, 2, "Country is required", "Country must be at least 2 characters")
	case FieldCardNumber:
		if value == "" {
			return "Card number is required"
		}
		if !cardPattern.MatchString(strings.ReplaceAll(value, " ", "")) {
			return "Please enter a valid card number (13-16 digits)"
		}
	case FieldCardName:
		return requireMinLength(value, 2, "Cardholder name is required", "Cardholder name must be at least 2 characters")
	case FieldExpiryDate:
		return v.validateExpiry(value)
	case FieldCVV:
		if value == "" {
			return "CVV is required"
		}
		if !cvvPattern.MatchString(value) {
			return "Please enter a valid CVV (3-4 digits)"
		}
	}
	return ""
}

// Validate checks every field, as on a submit attempt. The result maps each
// failing field to its message; an empty map means the form may be submitted.
func (v *Validator) Validate(form FormData) map[Field]string {
	errs := make(map[Field]string)
	for _, field := range fieldOrder {
		if msg := v.ValidateField(field, form.value(field)); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

func (v *Validator) validateExpiry(value string) string {
	if value == "" {
		return "Expiry date is required"
	}
	if !expiryPattern.MatchString(value) {
		return "Please enter a valid expiry date (MM/YY)"
	}

	month, _ := strconv.Atoi(value[:2])
	year, _ := strconv.Atoi(value[3:])

	if month < 1 || month > 12 {
		return "Month must be between 01 and 12"
	}

	// YY is interpreted as 2000+YY.
	now := v.now()
	expiryYear := 2000 + year
	if expiryYear < now.Year() || (expiryYear == now.Year() && month < int(now.Month())) {
		return "Expiry date cannot be in the past"
	}

	return ""
}

func requireMinLength(value string, min int, requiredMsg, lengthMsg string) string {
	if value == "" {
		return requiredMsg
	}
	if utf8.RuneCountInString(value) < min {
		return lengthMsg
	}
	return ""
}
