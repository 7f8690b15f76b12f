// Package validation holds the form rules applied before any request is
// forwarded to the backend.
//
// Signup, login and profile forms share one ordered rule list. Each rule
// declares the modes (and, where relevant, the person type) it applies to,
// and Validate reports the FIRST failing rule. The order is part of the
// contract: a record that breaks several rules always yields the same
// message.
//
// Book listings are validated separately with go-playground/validator,
// driven by the struct tags on types.BookInput.
package validation

import (
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/boraler/boraler-web/internal/types"
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest password accepted at login or signup.
const MinPasswordLength = 6

// Messages returned by Validate. They are shown to the user verbatim.
const (
	MsgEmailRequired        = "Por favor, preencha o e-mail"
	MsgEmailInvalid         = "Insira um e-mail válido"
	MsgPasswordRequired     = "Por favor, preencha a senha"
	MsgPasswordTooShort     = "A senha deve ter pelo menos 6 caracteres"
	MsgNameRequired         = "Por favor, preencha o nome"
	MsgPersonTypeRequired   = "Informe Pessoa Física ou Pessoa Jurídica"
	MsgConsentRequired      = "Você precisa concordar em compartilhar seus dados"
	MsgPhoneRequired        = "Por favor, preencha o contato"
	MsgPostalCodeRequired   = "Por favor, preencha o CEP"
	MsgStreetRequired       = "Por favor, preencha a rua"
	MsgNumberRequired       = "Por favor, preencha o número"
	MsgNeighborhoodRequired = "Por favor, preencha o bairro"
)

// Error is a user-correctable input problem. Field names the offending
// SignupRecord field using its JSON key.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// rule is one entry of the ordered rule list.
//
//   - modes: the validation modes the rule is evaluated in
//   - person: when non-empty, the rule only applies to that person type
//   - ok: reports whether the record passes
type rule struct {
	field   string
	message string
	modes   []types.ValidationMode
	person  types.PersonType
	ok      func(r types.SignupRecord) bool
}

var (
	allModes     = []types.ValidationMode{types.ModeLogin, types.ModeSignup, types.ModeUpdate}
	credentials  = []types.ValidationMode{types.ModeLogin, types.ModeSignup}
	profileModes = []types.ValidationMode{types.ModeSignup, types.ModeUpdate}
)

func present(s string) bool { return s != "" }

// rules is evaluated top to bottom; order matters.
var rules = []rule{
	{field: "email", message: MsgEmailRequired, modes: allModes,
		ok: func(r types.SignupRecord) bool { return present(r.Email) }},
	{field: "email", message: MsgEmailInvalid, modes: allModes,
		ok: func(r types.SignupRecord) bool { return strings.Contains(r.Email, "@") }},

	{field: "password", message: MsgPasswordRequired, modes: credentials,
		ok: func(r types.SignupRecord) bool { return present(r.Password) }},
	{field: "password", message: MsgPasswordTooShort, modes: credentials,
		ok: func(r types.SignupRecord) bool { return utf8.RuneCountInString(r.Password) >= MinPasswordLength }},

	{field: "name", message: MsgNameRequired, modes: profileModes,
		ok: func(r types.SignupRecord) bool { return present(r.Name) }},
	{field: "personType", message: MsgPersonTypeRequired, modes: profileModes,
		ok: func(r types.SignupRecord) bool { return r.PersonType.Valid() }},

	// Individuals must consent to a public contact and provide one.
	{field: "publicContact", message: MsgConsentRequired, modes: profileModes, person: types.Individual,
		ok: func(r types.SignupRecord) bool { return r.PublicContact }},
	{field: "phone", message: MsgPhoneRequired, modes: profileModes, person: types.Individual,
		ok: func(r types.SignupRecord) bool { return present(r.Phone) }},

	// Organizations must provide a full address; the phone is only
	// required when they chose to make their contact public.
	{field: "postalCode", message: MsgPostalCodeRequired, modes: profileModes, person: types.Organization,
		ok: func(r types.SignupRecord) bool { return present(r.PostalCode) }},
	{field: "street", message: MsgStreetRequired, modes: profileModes, person: types.Organization,
		ok: func(r types.SignupRecord) bool { return present(r.Street) }},
	{field: "number", message: MsgNumberRequired, modes: profileModes, person: types.Organization,
		ok: func(r types.SignupRecord) bool { return present(r.Number) }},
	{field: "neighborhood", message: MsgNeighborhoodRequired, modes: profileModes, person: types.Organization,
		ok: func(r types.SignupRecord) bool { return present(r.Neighborhood) }},
	{field: "phone", message: MsgPhoneRequired, modes: profileModes, person: types.Organization,
		ok: func(r types.SignupRecord) bool { return !r.PublicContact || present(r.Phone) }},
}

func (ru rule) applies(r types.SignupRecord, mode types.ValidationMode) bool {
	if ru.person != "" && ru.person != r.PersonType {
		return false
	}
	for _, m := range ru.modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Validate returns the first rule the record breaks in the given mode,
// or nil if the record is acceptable.
func Validate(record types.SignupRecord, mode types.ValidationMode) *Error {
	for _, ru := range rules {
		if !ru.applies(record, mode) {
			continue
		}
		if !ru.ok(record) {
			return &Error{Field: ru.field, Message: ru.message}
		}
	}
	return nil
}

// validate is shared and safe for concurrent use; it caches struct
// metadata after the first call.
var validate = newValidator()

// newValidator reports field errors under their JSON names ("objectives"
// rather than "Objectives") so messages match what the client sent.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateBook checks a listing against its validate tags. A failure is
// returned as validator.ValidationErrors.
func ValidateBook(input types.BookInput) error {
	return validate.Struct(input)
}
