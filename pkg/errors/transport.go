package errors

import "fmt"

// Transport-level error types. These are surfaced to callers of the
// protocol client and are never silently swallowed; the action handler is
// the only boundary allowed to convert them into error-flagged outputs.
type (
	// CommunicationError represents a network or transport failure while
	// talking to a remote agent.
	CommunicationError struct {
		Op  string
		URL string
		Err error
	}

	// ProtocolError represents a response that arrived but was malformed
	// or semantically invalid.
	ProtocolError struct {
		Op     string
		Reason string
	}
)

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("%s: communication with %s failed: %v", e.Op, e.URL, e.Err)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: invalid response: %s", e.Op, e.Reason)
}
