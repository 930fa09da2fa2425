package a2a

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

/*
Task is the addressable unit of remote agent work. It is created by the
protocol client on send, mutated only by re-fetch/poll responses from the
remote agent, and never deleted for the lifetime of a run. Once the state
enters a terminal value no field may change again.
*/
type Task struct {
	ID               string     `json:"id"`
	ContextID        string     `json:"contextId,omitempty"`
	Status           TaskStatus `json:"status"`
	History          []Message  `json:"history,omitempty"`
	Artifacts        []Artifact `json:"artifacts,omitempty"`
	ReferenceTaskIDs []string   `json:"referenceTaskIds,omitempty"`
	Error            string     `json:"error,omitempty"`
}

func NewTaskFromResponse(body []byte) (*Task, error) {
	var task Task
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (task *Task) ToStatus(state TaskState) {
	log.Debug("task status update", "task", task.ID, "state", state)

	task.Status.State = state
	task.Status.Timestamp = time.Now()
}

// Clone returns a deep copy so that tracked state can never be mutated
// through a reference handed out to a caller.
func (task *Task) Clone() *Task {
	clone := *task

	clone.History = make([]Message, len(task.History))
	copy(clone.History, task.History)

	clone.Artifacts = make([]Artifact, len(task.Artifacts))
	copy(clone.Artifacts, task.Artifacts)

	clone.ReferenceTaskIDs = make([]string, len(task.ReferenceTaskIDs))
	copy(clone.ReferenceTaskIDs, task.ReferenceTaskIDs)

	return &clone
}

// Output concatenates the text content of all artifacts. Populated only for
// completed tasks.
func (task *Task) Output() string {
	var sb strings.Builder

	for _, artifact := range task.Artifacts {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(artifact.Text())
	}

	return sb.String()
}

func (task *Task) LastMessage() *Message {
	if len(task.History) == 0 {
		return nil
	}

	return &task.History[len(task.History)-1]
}

func (task *Task) String() string {
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	sectionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		Bold(true)

	indent := "   "
	bullet := "│ "

	sb.WriteString(headerStyle.Render("Task Details") + "\n")
	sb.WriteString(bullet + labelStyle.Render("ID: ") + valueStyle.Render(task.ID) + "\n")
	if task.ContextID != "" {
		sb.WriteString(bullet + labelStyle.Render("Context ID: ") + valueStyle.Render(task.ContextID) + "\n")
	}

	sb.WriteString("\n" + sectionStyle.Render("Status") + "\n")
	sb.WriteString(bullet + labelStyle.Render("State: ") + valueStyle.Render(string(task.Status.State)) + "\n")
	sb.WriteString(bullet + labelStyle.Render("Timestamp: ") + valueStyle.Render(task.Status.Timestamp.Format(time.RFC3339)) + "\n")

	if task.Error != "" {
		sb.WriteString(bullet + labelStyle.Render("Error: ") + valueStyle.Render(task.Error) + "\n")
	}

	if len(task.ReferenceTaskIDs) > 0 {
		sb.WriteString(bullet + labelStyle.Render("References: ") + valueStyle.Render(strings.Join(task.ReferenceTaskIDs, ", ")) + "\n")
	}

	if len(task.Artifacts) > 0 {
		sb.WriteString("\n" + sectionStyle.Render("Artifacts") + "\n")
		for i, artifact := range task.Artifacts {
			sb.WriteString(bullet + labelStyle.Render(fmt.Sprintf("Artifact %d", i+1)) + "\n")
			for j, part := range artifact.Parts {
				sb.WriteString(bullet + indent + labelStyle.Render(fmt.Sprintf("Part %d: ", j+1)) + valueStyle.Render(part.Text) + "\n")
			}
		}
	}

	return sb.String()
}
