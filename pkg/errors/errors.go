package errors

import (
	"fmt"
	"strings"

	"github.com/jafarshop/productadmin/internal/domain"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrUserErrors is returned when a Shopify mutation reports field-level
// validation errors. The list is passed to the client verbatim and maps to
// HTTP 400; it is never reinterpreted locally.
type ErrUserErrors struct {
	Errors []domain.UserError
}

func (e *ErrUserErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ue := range e.Errors {
		if len(ue.Field) > 0 {
			msgs[i] = fmt.Sprintf("%s: %s", strings.Join(ue.Field, "."), ue.Message)
		} else {
			msgs[i] = ue.Message
		}
	}
	return "shopify user errors: " + strings.Join(msgs, "; ")
}

// ErrUpstream is returned on transport or SDK-level failures talking to
// Shopify. Maps to HTTP 500.
type ErrUpstream struct {
	Op  string
	Err error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}
