package relay

// Payload is the result of a Relay-compliant mutation: the value produced by the mutation's
// resolver along with the clientMutationId given in its input.
type Payload struct {
	ClientMutationID string
	Value            interface{}
}
