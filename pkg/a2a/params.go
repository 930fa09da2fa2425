package a2a

// TaskSendParams represents the parameters for sending a task message.
type TaskSendParams struct {
	// ID is the unique identifier for the task being initiated or continued.
	ID string `json:"id"`
	// ContextID groups tasks belonging to one logical conversation.
	ContextID string `json:"contextId,omitempty"`
	// Message is the message content to send to the agent for processing.
	Message Message `json:"message"`
	// ReferenceTaskIDs lists task ids this task logically follows.
	ReferenceTaskIDs []string `json:"referenceTaskIds,omitempty"`
	// Metadata is optional metadata associated with sending this message.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TaskIDParams represents the base parameters for task ID-based operations.
type TaskIDParams struct {
	// ID is the unique identifier of the task.
	ID string `json:"id"`
	// Metadata is optional metadata to include with the operation.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TaskQueryParams represents the parameters for querying task information.
type TaskQueryParams struct {
	TaskIDParams
	// HistoryLength is an optional parameter to specify how much history to retrieve.
	HistoryLength *int `json:"historyLength,omitempty"`
}

// TaskListParams represents the parameters for listing tasks.
type TaskListParams struct {
	// ContextID optionally restricts the listing to one context.
	ContextID string `json:"contextId,omitempty"`
}
