package lvr

// Kind classifies why an application was rejected.
type Kind string

const (
	// KindInvalidType means a field is missing or not a number.
	KindInvalidType Kind = "INVALID_TYPE"

	// KindOutOfRange means a numeric field is outside its bounds.
	KindOutOfRange Kind = "OUT_OF_RANGE"

	// KindZeroPropertyValue means the selected property value is zero.
	KindZeroPropertyValue Kind = "ZERO_PROPERTY_VALUE"
)

// Error is returned by Validate and Calculate.
//
// Message is a complete sentence meant to be shown to the applicant as is.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Code exposes the kind as a machine-readable error code.
func (e *Error) Code() string {
	return string(e.Kind)
}

// Is matches any *Error with the same Kind, so callers can do
// errors.Is(err, ErrZeroPropertyValue).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
}

// ErrZeroPropertyValue is the domain error raised by Calculate.
var ErrZeroPropertyValue = &Error{
	Kind:    KindZeroPropertyValue,
	Message: "Property value cannot be zero.",
}
