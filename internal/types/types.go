// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// the engine packages (validation, catalog, cep, geo), the backend client
// and the HTTP handlers can all import types without depending on each
// other.
package types

import (
	"encoding/json"
	"fmt"
)

// ValidationMode selects which signup/profile fields are mandatory.
type ValidationMode string

const (
	ModeLogin  ValidationMode = "login"
	ModeSignup ValidationMode = "signup"
	ModeUpdate ValidationMode = "update"
)

// ParseMode maps a raw string onto a ValidationMode.
// The second return value is false for anything unrecognised.
func ParseMode(s string) (ValidationMode, bool) {
	switch m := ValidationMode(s); m {
	case ModeLogin, ModeSignup, ModeUpdate:
		return m, true
	}
	return "", false
}

// PersonType distinguishes individuals from organizations.
// The wire values are the Brazilian abbreviations used by the backend:
// PF (pessoa física) and PJ (pessoa jurídica).
type PersonType string

const (
	Individual   PersonType = "PF"
	Organization PersonType = "PJ"
)

// Valid reports whether p is one of the two known person types.
func (p PersonType) Valid() bool {
	return p == Individual || p == Organization
}

// SignupRecord is the flat form state used for login, signup and profile
// updates. City and State come from the postal-code lookup; they are
// forwarded to the backend but never validated.
type SignupRecord struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Password      string     `json:"password"`
	Phone         string     `json:"phone"`
	PersonType    PersonType `json:"personType"`
	PublicContact bool       `json:"publicContact"`
	PostalCode    string     `json:"postalCode"`
	Street        string     `json:"street"`
	Number        string     `json:"number"`
	Neighborhood  string     `json:"neighborhood"`
	City          string     `json:"city"`
	State         string     `json:"state"`
}

// Objective is the intended transaction type for a listing.
type Objective string

const (
	Exchange Objective = "Exchange"
	Donation Objective = "Donation"
	Loan     Objective = "Loan"
)

// Objectives lists every known objective in display order.
var Objectives = []Objective{Exchange, Donation, Loan}

// Label returns the Portuguese label shown next to the objective.
func (o Objective) Label() string {
	switch o {
	case Exchange:
		return "Troca"
	case Donation:
		return "Doação"
	case Loan:
		return "Empréstimo"
	}
	return string(o)
}

// Book is a catalog entry as returned by the backend, including the
// projection of the owning user. The User* fields are only populated by
// the catalog listing.
type Book struct {
	ID         int         `json:"id"`
	Title      string      `json:"title"`
	Genre      string      `json:"genre"`
	Author     string      `json:"author"`
	Objectives []Objective `json:"objectives"`
	Status     bool        `json:"status"`

	UserName         string `json:"userName,omitempty"`
	UserPhone        string `json:"userPhone,omitempty"`
	UserEmail        string `json:"userEmail,omitempty"`
	UserCity         string `json:"userCity,omitempty"`
	UserState        string `json:"userState,omitempty"`
	UserStreet       string `json:"userStreet,omitempty"`
	UserNumber       string `json:"userNumber,omitempty"`
	UserNeighborhood string `json:"userNeighborhood,omitempty"`

	// UserPublicContact is a pointer so an owner who never answered the
	// consent question (nil) is told apart from one who refused (false).
	UserPublicContact *bool `json:"userPublicContact,omitempty"`
}

// HasObjective reports whether o is one of the book's objectives.
func (b Book) HasObjective(o Objective) bool {
	for _, have := range b.Objectives {
		if have == o {
			return true
		}
	}
	return false
}

// BookInput is the body accepted when creating or editing a listing.
//
// The validate:"..." tags are checked by go-playground/validator:
//   - required:   the field must be non-empty
//   - min=1:      at least one objective must be selected
//   - dive,oneof: every objective must be a known value
type BookInput struct {
	Title      string      `json:"title"      validate:"required"`
	Genre      string      `json:"genre"      validate:"required"`
	Author     string      `json:"author"`
	Objectives []Objective `json:"objectives" validate:"min=1,dive,oneof=Exchange Donation Loan"`
	Status     bool        `json:"status"`
}

// AddressLookupResult is what a postal code resolves to.
// Any field may be empty when the upstream service has no value for it.
type AddressLookupResult struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// GeoLocation is a coordinate pair plus, once reverse geocoded, the
// matching city and state abbreviation.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
}

// UserID is the backend's account identifier. The backend may encode it
// as a JSON number or a JSON string; both decode into the same value.
type UserID string

// UnmarshalJSON accepts `"abc"`, `42` and `null`.
func (id *UserID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("types.UserID: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// User is the backend's projection of an account.
type User struct {
	ID            UserID     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	State         string     `json:"state"`
	City          string     `json:"city"`
	PersonType    PersonType `json:"personType,omitempty"`
	PublicContact bool       `json:"publicContact"`
	PostalCode    string     `json:"postalCode,omitempty"`
	Street        string     `json:"street,omitempty"`
	Number        string     `json:"number,omitempty"`
	Neighborhood  string     `json:"neighborhood,omitempty"`
}
