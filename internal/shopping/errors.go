package shopping

import "fmt"

// ErrorKind classifies a generation failure
type ErrorKind string

const (
	KindInvalidInput       ErrorKind = "invalid_input"
	KindNoActiveDiet       ErrorKind = "no_active_diet"
	KindEmptyDiet          ErrorKind = "empty_diet"
	KindNothingToBuy       ErrorKind = "nothing_to_buy"
	KindPersistenceFailure ErrorKind = "persistence_failure"
)

// GenerationError is returned by Generator.Generate. Err holds the
// underlying store error for persistence failures.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is matches any GenerationError of the same kind, so callers can write
// errors.Is(err, shopping.ErrNoActiveDiet).
func (e *GenerationError) Is(target error) bool {
	t, ok := target.(*GenerationError)
	return ok && t.Kind == e.Kind
}

// IsDataError reports whether the user can fix the failure by editing their
// diet or inventory, as opposed to a system problem.
func (e *GenerationError) IsDataError() bool {
	switch e.Kind {
	case KindNoActiveDiet, KindEmptyDiet, KindNothingToBuy, KindInvalidInput:
		return true
	}
	return false
}

var (
	ErrInvalidInput       = &GenerationError{Kind: KindInvalidInput, Message: "invalid input"}
	ErrNoActiveDiet       = &GenerationError{Kind: KindNoActiveDiet, Message: "no active diet found"}
	ErrEmptyDiet          = &GenerationError{Kind: KindEmptyDiet, Message: "diet has no configured items"}
	ErrNothingToBuy       = &GenerationError{Kind: KindNothingToBuy, Message: "nothing to buy, stock already covers needs"}
	ErrPersistenceFailure = &GenerationError{Kind: KindPersistenceFailure, Message: "failed to persist shopping list"}
)

func newError(kind ErrorKind, message string, err error) *GenerationError {
	return &GenerationError{Kind: kind, Message: message, Err: err}
}
