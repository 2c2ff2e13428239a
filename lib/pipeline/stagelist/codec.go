package stagelist

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Decode reads the stored form of a job pipeline. The value may be absent, an already
// decoded list or its JSON text. Anything empty or malformed yields Default().
func Decode(raw interface{}) List {
	list, err := parse(raw)
	if err != nil {
		log.WithError(err).Warn("malformed application stages, default pipeline used")
		return Default()
	}
	if len(list) == 0 {
		return Default()
	}
	return normalize(list)
}

// Parse reads a pipeline submitted by a client. It never substitutes the default:
// malformed input is an error and an absent or empty value yields an empty list.
func Parse(raw interface{}) (List, error) {
	list, err := parse(raw)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return List{}, nil
	}
	return normalize(list), nil
}

// Encode produces the JSON text persisted on the job.
func Encode(list List) (string, error) {
	if list == nil {
		list = List{}
	}
	body, err := json.Marshal(list)
	if err != nil {
		return "", errors.Wrap(err, "application stages encoding failed")
	}
	return string(body), nil
}

func parse(raw interface{}) (List, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case List:
		return v.Clone(), nil
	case []Stage:
		return List(v).Clone(), nil
	case *string:
		if v == nil {
			return nil, nil
		}
		return parseText(*v)
	case string:
		return parseText(v)
	case []byte:
		return parseText(string(v))
	case json.RawMessage:
		return parseText(string(v))
	}
	return nil, errors.Errorf("unsupported application stages type %T", raw)
}

func parseText(text string) (List, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "null" {
		return nil, nil
	}
	list := List{}
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		// some writers double encoded the array into a JSON string
		var inner string
		if json.Unmarshal([]byte(text), &inner) == nil {
			return parseText(inner)
		}
		return nil, errors.Wrap(err, "application stages decoding failed")
	}
	return list, nil
}

// normalize orders stages by their stored order, renumbers them densely and fills in
// missing ids from the name.
func normalize(list List) List {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Order < list[j].Order
	})
	list.renumber()
	seen := map[string]bool{}
	for k := range list {
		if list[k].ID == "" {
			list[k].ID = StableID(list[k].Name)
			if seen[list[k].ID] {
				list[k].ID = positionalID(list[k].Name, k)
			}
		}
		seen[list[k].ID] = true
	}
	return list
}

func positionalID(name string, index int) string {
	return StableID(fmt.Sprintf("%s#%d", name, index+1))
}

// derivedID reports whether the id is the one normalize fills in for a stage sent without one.
func (s Stage) derivedID(index int) bool {
	return s.ID == StableID(s.Name) || s.ID == positionalID(s.Name, index)
}
