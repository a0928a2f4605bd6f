package schemafu

import (
	"github.com/ccbrown/schema-fu/graphql/schema"
	"github.com/ccbrown/schema-fu/relay"
)

// checkConnectionSpecCompliance ensures a connection field accepts either the full set of forward
// pagination arguments or the full set of backward pagination arguments, and that any pagination
// arguments it accepts have the types required by the cursor connections specification.
func checkConnectionSpecCompliance(operation string, arguments []*schema.InputValueDefinition) error {
	byName := make(map[string]*schema.InputValueDefinition, len(arguments))
	for _, arg := range arguments {
		byName[arg.Name] = arg
	}

	supports := func(required []relay.ConnectionArgument) bool {
		for _, arg := range required {
			if _, ok := byName[arg.Name]; !ok {
				return false
			}
		}
		return true
	}
	if !supports(relay.ForwardPaginationArguments) && !supports(relay.BackwardPaginationArguments) {
		return &ConnectionSpecError{
			Operation: operation,
			Err:       ErrMissingConnectionArguments,
		}
	}

	for _, specArg := range relay.ConnectionArguments() {
		if arg, ok := byName[specArg.Name]; ok && schema.NamedTypeName(arg.Type) != specArg.TypeName {
			return &ConnectionSpecError{
				Operation: operation,
				Err:       ErrConnectionArgumentTypeMismatch,
			}
		}
	}
	return nil
}
