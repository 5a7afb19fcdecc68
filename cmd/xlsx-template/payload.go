package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	}
	return formatJSON
}

// decodePayload reads one JSON or YAML document. JSON numbers keep their
// literal form so integers are written without float rounding.
func decodePayload(r io.Reader, format string) (any, error) {
	var payload any
	switch strings.ToLower(format) {
	case formatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode json payload: %w", err)
		}
	case formatYAML, "yml":
		if err := yaml.NewDecoder(r).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml payload: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown data format %q", format)
	}
	return payload, nil
}
