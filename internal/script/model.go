package script

// Segment is a contiguous block of spoken text attributed to one speaker role.
// Segments keep the first-appearance order of their markers in the source
// document.
type Segment struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
