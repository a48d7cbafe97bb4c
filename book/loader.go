package book

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationError reports malformed tree input. No partial tree is ever
// returned alongside it.
type ValidationError struct {
	Path   []string // Labels from the root to the offending node
	Reason string
}

func (e *ValidationError) Error() string {
	at := "root"
	if len(e.Path) > 0 {
		at = strings.Join(e.Path, " ")
	}
	return fmt.Sprintf("invalid move tree at %s: %s", at, e.Reason)
}

// Parse validates and normalizes a decoded tree (nested records as produced by
// encoding/json or yaml.v3) into an immutable MoveNode tree.
func Parse(raw any) (*MoveNode, error) {
	if _, ok := asRecord(raw); !ok {
		return nil, &ValidationError{Reason: "tree data is not a record"}
	}
	return parseNode(raw, []string{})
}

// ParseJSON decodes and parses a JSON tree document.
func ParseJSON(data []byte) (*MoveNode, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode json tree: %w", err)
	}
	return Parse(raw)
}

// ParseYAML decodes and parses a YAML tree document.
func ParseYAML(data []byte) (*MoveNode, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode yaml tree: %w", err)
	}
	return Parse(raw)
}

// Load reads a tree file, choosing the decoder by extension.
func Load(path string) (*MoveNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported tree file extension %q", filepath.Ext(path))
	}
}

func parseNode(raw any, path []string) (*MoveNode, error) {
	record, ok := asRecord(raw)
	if !ok {
		return nil, invalid(path, "node is not a record")
	}

	node := &MoveNode{children: map[string]*MoveNode{}}

	node.move = asText(record["move"])
	node.annotation = asText(record["comment"])

	// Unusable weights are dropped, not rejected
	if weight, ok := asNumber(record["frequency"]); ok && weight >= 0 && weight <= 1 {
		node.weight = weight
		node.hasWeight = true
	}

	if terminal, ok := record["isEndOfVariation"].(bool); ok && terminal {
		node.terminal = true
	}

	rawChildren, present := record["children"]
	if !present || rawChildren == nil {
		return node, nil
	}
	children, ok := asRecord(rawChildren)
	if !ok {
		return nil, invalid(path, "children is not a record")
	}

	for label, rawChild := range children {
		if label == "" { // Skipped, not rejected
			continue
		}
		child, err := parseNode(rawChild, append(append([]string{}, path...), label))
		if err != nil {
			return nil, err
		}
		node.children[label] = child
	}

	return node, nil
}

func invalid(path []string, reason string) error {
	return &ValidationError{Path: path, Reason: reason}
}

// asRecord accepts both decoder map shapes; non-string keys disqualify a record.
func asRecord(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// asText coerces any value to its text form. Empty values (nil, false, zero,
// "") become "", the sentinel for no move or no annotation.
func asText(raw any) string {
	if isEmpty(raw) {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			if item != nil {
				parts[i] = fmt.Sprint(item)
			}
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

func isEmpty(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	}
	if n, ok := asNumber(raw); ok {
		return n == 0 || math.IsNaN(n)
	}
	return false
}

func asNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
