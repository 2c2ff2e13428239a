// Package stagelist holds the ordered hiring pipeline of a job.
//
// Every operation is a pure transformation: the receiver is never modified and a new
// list is returned. After any Append, Remove or Move the Order values of a list of
// length N are exactly 1..N.
package stagelist

import (
	"github.com/google/uuid"
)

type Stage struct {
	ID           string   `json:"id"`                     // Stable identifier, survives renames
	Name         string   `json:"name"`                   // Display label, unique within the list
	Order        int      `json:"order"`                  // 1-based position
	Description  string   `json:"description,omitempty"`  // Free text
	Duration     int      `json:"duration"`               // Expected dwell time, days
	Requirements []string `json:"requirements,omitempty"` // Informational only
}

func (s Stage) clone() Stage {
	if s.Requirements != nil {
		s.Requirements = append([]string(nil), s.Requirements...)
	}
	return s
}

type List []Stage

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

type Field string

const (
	FieldName         Field = "name"
	FieldDescription  Field = "description"
	FieldDuration     Field = "duration"
	FieldRequirements Field = "requirements"
)

const (
	AppliedStage   = "Applied"
	ScreeningStage = "Screening"
	InterviewStage = "Interview"
	OfferStage     = "Offer"
)

var defaultStages = []struct {
	name     string
	duration int
}{
	{AppliedStage, 1},
	{ScreeningStage, 3},
	{InterviewStage, 7},
	{OfferStage, 3},
}

// stageNamespace seeds name-based stage ids.
var stageNamespace = uuid.MustParse("6f1c3b0e-2d4a-4c6e-9a57-3b8f0d2e71c4")

// StableID derives a deterministic id from a stage name. Used for the default
// pipeline and for stored stages persisted before ids existed.
func StableID(name string) string {
	return uuid.NewSHA1(stageNamespace, []byte(name)).String()
}

// Default returns the pipeline used whenever a job has not customized its stages.
func Default() List {
	result := make(List, 0, len(defaultStages))
	for k, item := range defaultStages {
		result = append(result, Stage{
			ID:       StableID(item.name),
			Name:     item.name,
			Order:    k + 1,
			Duration: item.duration,
		})
	}
	return result
}
