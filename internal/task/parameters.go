package task

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Param is a single extracted request parameter.
type Param struct {
	Key   string
	Value string
}

// Parameters is an insertion-ordered string map. Keys are unique; setting an
// existing key replaces its value in place.
type Parameters []Param

// Set adds or replaces the value for key.
func (p *Parameters) Set(key, value string) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Param{Key: key, Value: value})
}

// Get returns the value for key and whether it was present.
func (p Parameters) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// GetOr returns the value for key, or fallback when absent.
func (p Parameters) GetOr(key, fallback string) string {
	if v, ok := p.Get(key); ok {
		return v
	}
	return fallback
}

// Len returns the number of parameters.
func (p Parameters) Len() int {
	return len(p)
}

// MarshalJSON encodes the parameters as a JSON object in insertion order.
func (p Parameters) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, kv := range p {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the input.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("parameters: expected JSON object, got %v", tok)
	}

	var params Parameters
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("parameters: unexpected key %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("parameters: value for %q: %w", key, err)
		}
		params.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = params
	return nil
}

// MarshalYAML encodes the parameters as a YAML mapping in insertion order.
func (p Parameters) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, kv := range p {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Value},
		)
	}
	return node, nil
}
