package stagelist

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func (l List) Clone() List {
	if l == nil {
		return nil
	}
	result := make(List, 0, len(l))
	for _, stage := range l {
		result = append(result, stage.clone())
	}
	return result
}

func (l List) Names() []string {
	names := make([]string, 0, len(l))
	for _, stage := range l {
		names = append(names, stage.Name)
	}
	return names
}

// IndexOf matches by exact name, -1 when absent.
func (l List) IndexOf(name string) int {
	for k, stage := range l {
		if stage.Name == name {
			return k
		}
	}
	return -1
}

func (l List) IndexOfID(id string) int {
	if id == "" {
		return -1
	}
	for k, stage := range l {
		if stage.ID == id {
			return k
		}
	}
	return -1
}

// MatchIDs gives a stage whose id was derived from its name the id of the current stage
// with the same name, so a list sent without ids keeps the stored identities.
func (l List) MatchIDs(current List) List {
	result := l.Clone()
	taken := map[string]bool{}
	for _, stage := range result {
		taken[stage.ID] = true
	}
	for k := range result {
		if current.IndexOfID(result[k].ID) >= 0 || !result[k].derivedID(k) {
			continue
		}
		idx := current.IndexOf(result[k].Name)
		if idx < 0 || taken[current[idx].ID] {
			continue
		}
		taken[current[idx].ID] = true
		result[k].ID = current[idx].ID
	}
	return result
}

func (l List) ByID(id string) (Stage, bool) {
	k := l.IndexOfID(id)
	if k < 0 {
		return Stage{}, false
	}
	return l[k].clone(), true
}

func (l List) First() (Stage, bool) {
	if len(l) == 0 {
		return Stage{}, false
	}
	return l[0].clone(), true
}

// Append adds an unnamed stage at the end. The name must be filled before Validate passes.
func (l List) Append() List {
	result := l.Clone()
	return append(result, Stage{
		ID:       uuid.NewString(),
		Order:    len(result) + 1,
		Duration: 1,
	})
}

// Remove deletes the stage at index and renumbers the rest.
// A job always keeps at least one stage, so removing from a single-element list is a no-op.
func (l List) Remove(index int) List {
	if len(l) <= 1 || index < 0 || index >= len(l) {
		return l.Clone()
	}
	result := make(List, 0, len(l)-1)
	for k, stage := range l {
		if k == index {
			continue
		}
		result = append(result, stage.clone())
	}
	result.renumber()
	return result
}

// Move swaps the stage with its neighbour. Moving the first stage up or the last one down
// leaves the list unchanged.
func (l List) Move(index int, direction Direction) List {
	result := l.Clone()
	target := index
	switch direction {
	case DirectionUp:
		target = index - 1
	case DirectionDown:
		target = index + 1
	default:
		return result
	}
	if index < 0 || index >= len(result) || target < 0 || target >= len(result) {
		return result
	}
	result[index], result[target] = result[target], result[index]
	result[index].Order, result[target].Order = result[target].Order, result[index].Order
	return result
}

// EditField replaces one attribute of one stage. Ordering is never touched.
func (l List) EditField(index int, field Field, value interface{}) (List, error) {
	if index < 0 || index >= len(l) {
		return nil, errors.Errorf("stage index %d out of range", index)
	}
	result := l.Clone()
	stage := &result[index]
	switch field {
	case FieldName:
		str, ok := value.(string)
		if !ok {
			return nil, errors.Errorf("stage name must be a string, got %T", value)
		}
		stage.Name = strings.TrimSpace(str)
	case FieldDescription:
		str, ok := value.(string)
		if !ok {
			return nil, errors.Errorf("stage description must be a string, got %T", value)
		}
		stage.Description = str
	case FieldDuration:
		duration, err := toInt(value)
		if err != nil {
			return nil, errors.Wrap(err, "invalid stage duration")
		}
		stage.Duration = duration
	case FieldRequirements:
		requirements, err := toStrings(value)
		if err != nil {
			return nil, errors.Wrap(err, "invalid stage requirements")
		}
		stage.Requirements = requirements
	default:
		return nil, errors.Errorf("unknown stage field %q", field)
	}
	return result, nil
}

func (l List) renumber() {
	for k := range l {
		l[k].Order = k + 1
	}
}

func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, errors.Errorf("%v is not a whole number", v)
		}
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	}
	return 0, errors.Errorf("unsupported value type %T", value)
}

func toStrings(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), v...), nil
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, errors.Errorf("requirement must be a string, got %T", item)
			}
			result = append(result, str)
		}
		return result, nil
	case string:
		result := []string{}
		for _, line := range strings.Split(v, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				result = append(result, line)
			}
		}
		return result, nil
	}
	return nil, errors.Errorf("unsupported value type %T", value)
}
