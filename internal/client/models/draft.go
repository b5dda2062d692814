package models

import (
	"strings"
	"time"
)

// Draft is the in-progress problem statement and code.
// LastSavedTimestamp is zero until the draft has been persisted once.
type Draft struct {
	ProblemText        string    `json:"problemText"`
	CodeText           string    `json:"codeText"`
	LastSavedTimestamp time.Time `json:"lastSavedTimestamp,omitzero"`
}

// IsBlank reports whether neither field holds anything but whitespace.
func (d Draft) IsBlank() bool {
	return strings.TrimSpace(d.ProblemText) == "" && strings.TrimSpace(d.CodeText) == ""
}
