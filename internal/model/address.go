package model

import (
	"fmt"
	"net/mail"

	"tofi-shop/internal/swiss"
)

// Address is a Swiss postal address plus the contact email used for order
// notifications. It is stored as JSONB on orders.
type Address struct {
	Street       string `json:"street"`
	StreetNumber string `json:"streetNumber"`
	ZipCode      string `json:"zipCode"`
	City         string `json:"city"`
	Canton       string `json:"canton"`
	Country      string `json:"country"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
}

// Validate checks structural validity: 4-digit zip code, recognised canton
// code, country CH and a parseable email address.
func (a *Address) Validate() error {
	if a.Street == "" {
		return NewDomainError(ErrCodeInvalidAddress, "Street is required")
	}
	if a.City == "" {
		return NewDomainError(ErrCodeInvalidAddress, "City is required")
	}
	if !swiss.IsValidPostalCode(a.ZipCode) {
		return NewDomainError(ErrCodeInvalidAddress, fmt.Sprintf("Invalid Swiss postal code: %q", a.ZipCode))
	}
	if !swiss.IsCanton(a.Canton) {
		return NewDomainError(ErrCodeInvalidAddress, fmt.Sprintf("Unknown canton code: %q", a.Canton))
	}
	if a.Country != "CH" {
		return NewDomainError(ErrCodeInvalidAddress, "Only Swiss addresses are supported")
	}
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return NewDomainError(ErrCodeInvalidAddress, fmt.Sprintf("Invalid email address: %q", a.Email))
	}
	if a.Phone != "" && !swiss.IsValidPhone(a.Phone) {
		return NewDomainError(ErrCodeInvalidAddress, fmt.Sprintf("Invalid Swiss phone number: %q", a.Phone))
	}
	return nil
}
