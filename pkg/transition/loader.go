package transition

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefinitionsFromYAML parses a YAML document of transition definitions. The
// document is either a top-level sequence of definition maps or a mapping
// carrying the sequence under a "transitions" key. Each entry goes through
// DefinitionFromMap, so snake_case keys and the target-key rule apply.
func DefinitionsFromYAML(data []byte) ([]*Definition, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse transitions yaml: %w", err)
	}
	return definitionsFromDoc(doc)
}

// DefinitionsFromJSON parses a JSON document in the same shapes
// DefinitionsFromYAML accepts. Numbers decode as json.Number so strictly
// integral fields survive the decoder.
func DefinitionsFromJSON(data []byte) ([]*Definition, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse transitions json: %w", err)
	}
	return definitionsFromDoc(doc)
}

func definitionsFromDoc(doc any) ([]*Definition, error) {
	switch d := doc.(type) {
	case nil:
		return []*Definition{}, nil
	case []any:
		out := make([]*Definition, 0, len(d))
		for i, el := range d {
			m, ok := entryMap(el)
			if !ok {
				return nil, fmt.Errorf("transitions[%d]: expected a mapping, got %T", i, el)
			}
			def, err := DefinitionFromMap(m)
			if err != nil {
				return nil, fmt.Errorf("transitions[%d]: %w", i, err)
			}
			out = append(out, def)
		}
		return out, nil
	case map[string]any:
		seq, ok := d["transitions"]
		if !ok {
			return nil, fmt.Errorf(`transitions document missing "transitions" key`)
		}
		return definitionsFromDoc(seq)
	case map[any]any:
		seq, ok := d["transitions"]
		if !ok {
			return nil, fmt.Errorf(`transitions document missing "transitions" key`)
		}
		return definitionsFromDoc(seq)
	default:
		return nil, fmt.Errorf("transitions document must be a sequence or a transitions mapping, got %T", doc)
	}
}

func entryMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = val
		}
		return out, true
	default:
		return nil, false
	}
}
