package catalog

import "fmt"

// Error types for the catalog package
type (
	// ConnectionError represents an error that occurred while connecting to an agent endpoint
	ConnectionError struct {
		URL string
		Err error
	}

	// DecodingError represents an error that occurred while decoding a descriptor
	DecodingError struct {
		URL string
		Err error
	}

	// NotFoundError represents an error when an agent is not found
	NotFoundError struct {
		AgentID string
	}
)

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to agent endpoint %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("failed to decode agent descriptor from %s: %v", e.URL, e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("agent not found: %s", e.AgentID)
}
