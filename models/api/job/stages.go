package jobapimodels

import (
	"encoding/json"

	"github.com/pkg/errors"

	"ats-backend/lib/pipeline/stagelist"
)

var ErrMalformedStages = errors.New("application stages are malformed")

// StagesData is a pipeline being edited. When empty the job's stored pipeline is used.
type StagesData struct {
	ApplicationStages json.RawMessage `json:"application_stages,omitempty"` // stages as an array or its JSON text
}

// Stages reads the submitted pipeline. ok is false when the request carries none; an
// explicit null or [] is an empty list left for validation to report.
func (s StagesData) Stages() (list stagelist.List, ok bool, err error) {
	if len(s.ApplicationStages) == 0 {
		return nil, false, nil
	}
	list, err = stagelist.Parse(s.ApplicationStages)
	if err != nil {
		return nil, true, ErrMalformedStages
	}
	return list, true, nil
}

type StageRemoveRequest struct {
	StagesData
	Index int `json:"index"` // 0-based stage position
}

type StageMoveRequest struct {
	StagesData
	Index     int                 `json:"index"`     // 0-based stage position
	Direction stagelist.Direction `json:"direction"` // up or down
}

func (r StageMoveRequest) Validate() error {
	if r.Direction != stagelist.DirectionUp && r.Direction != stagelist.DirectionDown {
		return errors.Errorf("unknown direction %q", r.Direction)
	}
	return nil
}

type StageEditRequest struct {
	StagesData
	Index int             `json:"index"` // 0-based stage position
	Field stagelist.Field `json:"field"` // name, description, duration or requirements
	Value interface{}     `json:"value"`
}

// StagesView is a pipeline with its validation result. Errors are keyed stage_<index>_<field>.
type StagesView struct {
	ApplicationStages stagelist.List    `json:"application_stages"`
	Errors            map[string]string `json:"errors,omitempty"`
	Valid             bool              `json:"valid"`
}

func NewStagesView(list stagelist.List) StagesView {
	verr := list.Validate()
	return StagesView{
		ApplicationStages: list,
		Errors:            verr,
		Valid:             len(verr) == 0,
	}
}
