package schemafu

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// MappingError is returned when the schema cannot be assembled from the configured types and
// operations. Mapping errors always abort the build.
type MappingError struct {
	// The Go types being mapped when the error occurred, outermost first.
	Path []reflect.Type

	// The declaration the failing mapping originated from, if known.
	Element *TypedElement

	Message string
}

func (err *MappingError) Error() string {
	var b strings.Builder
	b.WriteString(err.Message)
	if name := err.Element.Name(); name != "" {
		b.WriteString(" (at " + name + ")")
	}
	if len(err.Path) > 0 {
		parts := make([]string, len(err.Path))
		for i, t := range err.Path {
			parts[i] = t.String()
		}
		b.WriteString(" [" + strings.Join(parts, " -> ") + "]")
	}
	return b.String()
}

var (
	ErrMissingConnectionArguments     = errors.New("required arguments missing")
	ErrConnectionArgumentTypeMismatch = errors.New("argument type mismatch")
)

// ConnectionSpecError is returned when strict connection checking is enabled and a field returning
// a connection doesn't accept the arguments required by the cursor connections specification. Err
// is either ErrMissingConnectionArguments or ErrConnectionArgumentTypeMismatch.
type ConnectionSpecError struct {
	Operation string
	Err       error
}

func (err *ConnectionSpecError) Error() string {
	return fmt.Sprintf("operation '%v' is incompatible with the relay connection spec due to %v. if this is intentional, disable strict connection spec compliance checking", err.Operation, err.Err)
}

func (err *ConnectionSpecError) Unwrap() error {
	return err.Err
}

// InvalidArgumentError is returned by resolvers when an argument given at runtime cannot be used.
type InvalidArgumentError struct {
	Value   string
	Message string
}

func (err *InvalidArgumentError) Error() string {
	return err.Message
}
