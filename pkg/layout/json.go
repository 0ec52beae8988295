package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
)

// =============================================================================
// Layout Serialization API
// =============================================================================

// document is the serialized form. Boxes are derived and written for
// renderers; they are ignored when reading.
type document struct {
	Result
	Boxes []Box `json:"boxes,omitempty"`
}

// Marshal serializes a Result to pretty-printed JSON bytes, including
// item boxes.
func Marshal(r Result) ([]byte, error) {
	return json.MarshalIndent(document{Result: r, Boxes: r.Boxes()}, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Result and validates it.
func Unmarshal(data []byte) (Result, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Result{}, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := doc.Result.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid layout: %w", err)
	}
	return doc.Result, nil
}

// Write writes a Result as JSON to an io.Writer.
func Write(r Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Result: r, Boxes: r.Boxes()}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a Result to a JSON file.
func WriteFile(r Result, path string) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Result from a JSON file.
func ReadFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, jerrors.Wrap(jerrors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
