package typesystem

import "fmt"

// ResolutionErrorKind classifies a type-level failure.
type ResolutionErrorKind int

const (
	UndefinedType ResolutionErrorKind = iota
	WrongGenericArity
	AmbiguousType
	IncompatibleTypes
	InvalidConversion
	CircularTypeReference
	InvalidGenericConstraint
	InvalidGenericParameter
)

func (k ResolutionErrorKind) String() string {
	switch k {
	case UndefinedType:
		return "undefined type"
	case WrongGenericArity:
		return "wrong generic arity"
	case AmbiguousType:
		return "ambiguous type"
	case IncompatibleTypes:
		return "incompatible types"
	case InvalidConversion:
		return "invalid conversion"
	case CircularTypeReference:
		return "circular type reference"
	case InvalidGenericConstraint:
		return "invalid generic constraint"
	case InvalidGenericParameter:
		return "invalid generic parameter"
	default:
		return "type error"
	}
}

// ResolutionError is the error type returned by the resolver and the
// unification engine.
type ResolutionError struct {
	Kind    ResolutionErrorKind
	Name    string
	Message string
}

func (e *ResolutionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Name != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Name)
	}
	return e.Kind.String()
}

func newUndefinedType(name string) *ResolutionError {
	return &ResolutionError{Kind: UndefinedType, Name: name, Message: fmt.Sprintf("type '%s' is not defined", name)}
}

func newWrongArity(name string, want, got int) *ResolutionError {
	return &ResolutionError{
		Kind:    WrongGenericArity,
		Name:    name,
		Message: fmt.Sprintf("'%s' expects %d type argument(s), got %d", name, want, got),
	}
}

func newIncompatible(a, b Type) *ResolutionError {
	return &ResolutionError{
		Kind:    IncompatibleTypes,
		Message: fmt.Sprintf("cannot match '%s' with '%s'", a.String(), b.String()),
	}
}
