// Package booking models the booking request form: its fields, the presence
// check that gates submission, and the Editing -> Submitting -> Submitted
// state machine.
package booking

import (
	"context"
	"strings"
)

// Field names, shared by the HTML form, the JSON API and the collaborator payload.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldAddress = "address"
	FieldDate    = "date"
	FieldPackage = "package"
)

// Request is what the customer asks for. All fields are free text.
type Request struct {
	Name    string `json:"name" schema:"name"`
	Phone   string `json:"phone" schema:"phone"`
	Address string `json:"address" schema:"address"`
	Date    string `json:"date" schema:"date"`
	Package string `json:"package" schema:"package"`
}

// Complete reports whether every required field is non-empty. Package is not
// checked here because it always carries a default.
func (r Request) Complete() bool {
	return r.Name != "" && r.Phone != "" && r.Address != "" && r.Date != ""
}

// Missing lists the required fields that are still empty.
func (r Request) Missing() []string {
	var missing []string
	if r.Name == "" {
		missing = append(missing, FieldName)
	}
	if r.Phone == "" {
		missing = append(missing, FieldPhone)
	}
	if r.Address == "" {
		missing = append(missing, FieldAddress)
	}
	if r.Date == "" {
		missing = append(missing, FieldDate)
	}
	return missing
}

// set applies one field-change event. An empty package value is ignored so the
// selection never becomes empty.
func (r *Request) set(field, value string) error {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case FieldName:
		r.Name = value
	case FieldPhone:
		r.Phone = value
	case FieldAddress:
		r.Address = value
	case FieldDate:
		r.Date = value
	case FieldPackage:
		if value != "" {
			r.Package = value
		}
	default:
		return ErrUnknownField
	}
	return nil
}

// Forwarder hands a frozen request to the external submission endpoint.
type Forwarder interface {
	Forward(ctx context.Context, req Request) error
}

// ForwarderFunc adapts a function to Forwarder.
type ForwarderFunc func(ctx context.Context, req Request) error

// Forward calls f.
func (f ForwarderFunc) Forward(ctx context.Context, req Request) error {
	return f(ctx, req)
}
