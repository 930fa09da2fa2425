package a2a

import "strings"

/*
Artifact is an immutable output record of a completed task.
*/
type Artifact struct {
	ArtifactID string         `json:"artifactId"`
	Name       *string        `json:"name,omitempty"`
	MimeType   string         `json:"mimeType,omitempty"`
	Parts      []Part         `json:"parts"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Index      int            `json:"index,omitempty"`
}

func NewTextArtifact(id string, text string) Artifact {
	return Artifact{
		ArtifactID: id,
		MimeType:   "text/plain",
		Parts:      []Part{NewTextPart(text)},
	}
}

// Text concatenates the artifact's text parts.
func (artifact Artifact) Text() string {
	var sb strings.Builder

	for _, part := range artifact.Parts {
		if part.Type == PartTypeText {
			sb.WriteString(part.Text)
		}
	}

	return sb.String()
}
