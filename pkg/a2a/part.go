package a2a

/*
Part is a discriminated union over Text and Data parts. We keep it simple by
embedding all optional fields in a single struct - this avoids heavy custom
JSON marshalling logic while staying wire-compatible.

NOTE: exactly ONE of Text or Data should be populated according to the Type
field. This is not enforced at the struct level, but applications should
ensure this constraint is respected when creating Parts.
*/
type Part struct {
	Type PartType `json:"type"`

	// Exactly one of the following should be populated depending on Type.
	Text string         `json:"text,omitempty"`
	Data map[string]any `json:"data,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// PartType is the discriminator for a Part union.
type PartType string

const (
	PartTypeText PartType = "text"
	PartTypeData PartType = "data"
)

func NewTextPart(text string) Part {
	return Part{
		Type: PartTypeText,
		Text: text,
	}
}

func NewDataPart(data map[string]any) Part {
	return Part{
		Type: PartTypeData,
		Data: data,
	}
}
