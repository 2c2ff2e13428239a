package stagelist

import (
	"fmt"
	"sort"
	"strings"
)

// ListKey is the error key used when the list itself is invalid.
const ListKey = "stages"

// ValidationErrors maps a control key (stage_<index>_<field>) to its message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, v[key]))
	}
	return strings.Join(parts, "; ")
}

// FieldKey builds the key of one stage control, index is 0-based.
func FieldKey(index int, field Field) string {
	return fmt.Sprintf("stage_%d_%s", index, field)
}

// Validate returns nil when the list can be saved.
func (l List) Validate() ValidationErrors {
	result := ValidationErrors{}
	if len(l) == 0 {
		result[ListKey] = "at least one stage is required"
		return result
	}
	seen := map[string]int{}
	for k, stage := range l {
		name := strings.TrimSpace(stage.Name)
		if name == "" {
			result[FieldKey(k, FieldName)] = "stage name is required"
		} else if first, ok := seen[name]; ok {
			result[FieldKey(k, FieldName)] = fmt.Sprintf("stage name duplicates stage %d", first+1)
		} else {
			seen[name] = k
		}
		if stage.Duration < 1 {
			result[FieldKey(k, FieldDuration)] = "duration must be at least 1 day"
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
