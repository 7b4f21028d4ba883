package bpinfer

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind identifies which member of the fatal error taxonomy an
// EngineError represents.
type ErrorKind int

const (
	// KindUnsupportedBackend: engine construction rejected a backend
	// whose Support() method returned Unsupported.
	KindUnsupportedBackend ErrorKind = iota
	// KindInterfaceNotImplemented: a required backend or processor
	// method is missing on the concrete type supplied.
	KindInterfaceNotImplemented
	// KindComputeOnNonPending: Compute was called on a Signal that is
	// not pending and Force was not set.
	KindComputeOnNonPending
	// KindUnknownVariant: dispatch saw a Variant the processor has no
	// rule for, or saw VariantUnspecified.
	KindUnknownVariant
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnsupportedBackend:
		return "UnsupportedBackend"
	case KindInterfaceNotImplemented:
		return "InterfaceNotImplemented"
	case KindComputeOnNonPending:
		return "ComputeOnNonPending"
	case KindUnknownVariant:
		return "UnknownVariant"
	default:
		return "UnknownErrorKind"
	}
}

// EngineError is the concrete type behind every fatal condition this
// package returns. All four kinds from the taxonomy are represented by
// this single struct so callers can switch on Kind rather than doing
// type assertions per kind.
type EngineError struct {
	Kind ErrorKind
	// Message is the human-readable detail specific to this occurrence.
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("bpinfer: %s: %s", e.Kind, e.Message)
}

// newUnsupportedBackendError reports that backend (by its concrete Go
// type name) failed the Backend.Support() check.
func newUnsupportedBackendError(backendTypeName string) error {
	return errors.WithStack(&EngineError{
		Kind:    KindUnsupportedBackend,
		Message: fmt.Sprintf("backend type %q is not supported", backendTypeName),
	})
}

// newInterfaceNotImplementedError reports that concreteTypeName does
// not implement method, given the supplied argument types.
func newInterfaceNotImplementedError(method, concreteTypeName string, argTypes []string) error {
	return errors.WithStack(&EngineError{
		Kind: KindInterfaceNotImplemented,
		Message: fmt.Sprintf(
			"method %q is not implemented on %s (args: %v)",
			method, concreteTypeName, argTypes,
		),
	})
}

// newComputeOnNonPendingError reports that Compute was called on a
// non-pending Signal without Force.
func newComputeOnNonPendingError(s *Signal) error {
	return errors.WithStack(&EngineError{
		Kind:    KindComputeOnNonPending,
		Message: fmt.Sprintf("compute called on non-pending signal (variant %s) without force", s.Variant()),
	})
}

// newUnknownVariantError reports a dispatch miss: either the variant
// is Unspecified or the processor supplied has no entry point for it.
func newUnknownVariantError(v Variant) error {
	return errors.WithStack(&EngineError{
		Kind:    KindUnknownVariant,
		Message: fmt.Sprintf("no processor rule for variant %s", v),
	})
}

// Warning is a non-fatal observation accumulated on Engine.Warnings
// during a run (e.g. the dependency resolver could not fully wire a
// node). Warnings never stop inference.
type Warning struct {
	// VariableID is the variable the warning concerns, if any.
	VariableID VariableID
	// Message describes the condition.
	Message string
}

func (w Warning) String() string {
	if w.VariableID == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.VariableID, w.Message)
}
