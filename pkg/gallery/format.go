package gallery

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
)

// Format decodes one manifest syntax.
type Format interface {
	// Name returns the format identifier ("json", "toml", "text").
	Name() string
	// Supports reports whether this format handles the given filename.
	Supports(filename string) bool
	// Decode reads a gallery from r.
	Decode(r io.Reader) (Gallery, error)
}

// Formats lists the built-in formats in detection order.
var Formats = []Format{JSON{}, TOML{}, Text{}}

// Detect finds the format for a file path by extension.
func Detect(path string) (Format, error) {
	name := filepath.Base(path)
	for _, f := range Formats {
		if f.Supports(name) {
			return f, nil
		}
	}
	return nil, jerrors.New(jerrors.ErrCodeUnsupported, "unsupported gallery file: %s", name)
}

// Lookup returns a format by name.
func Lookup(name string) (Format, error) {
	for _, f := range Formats {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, jerrors.New(jerrors.ErrCodeUnsupported, "unknown gallery format %q", name)
}

// ReadFile reads the gallery at path, detecting its format.
func ReadFile(path string) (Gallery, error) {
	if err := jerrors.ValidatePath(path); err != nil {
		return Gallery{}, err
	}
	format, err := Detect(path)
	if err != nil {
		return Gallery{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Gallery{}, jerrors.Wrap(jerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Gallery{}, jerrors.Wrap(jerrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	g, err := format.Decode(f)
	if err != nil {
		return Gallery{}, err
	}
	if g.Name == "" {
		g.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return g, nil
}

// =============================================================================
// JSON
// =============================================================================

// JSON decodes {"items": [...]} objects or bare arrays of ratios.
type JSON struct{}

func (JSON) Name() string              { return "json" }
func (JSON) Supports(name string) bool { return strings.EqualFold(filepath.Ext(name), ".json") }

func (JSON) Decode(r io.Reader) (Gallery, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Gallery{}, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "read json")
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var ratios []float64
		if err := json.Unmarshal(trimmed, &ratios); err != nil {
			return Gallery{}, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "decode json ratios")
		}
		return FromRatios(ratios), nil
	}

	var g Gallery
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&g); err != nil {
		return Gallery{}, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "decode json")
	}
	return g, nil
}

// =============================================================================
// TOML
// =============================================================================

// TOML decodes a name key and [[items]] tables.
type TOML struct{}

func (TOML) Name() string              { return "toml" }
func (TOML) Supports(name string) bool { return strings.EqualFold(filepath.Ext(name), ".toml") }

func (TOML) Decode(r io.Reader) (Gallery, error) {
	var g Gallery
	md, err := toml.NewDecoder(r).Decode(&g)
	if err != nil {
		return Gallery{}, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Gallery{}, jerrors.New(jerrors.ErrCodeInvalidFormat, "unknown toml key %q", undecoded[0].String())
	}
	return g, nil
}

// =============================================================================
// Text
// =============================================================================

// Text decodes one item per line: "[id] ratio" or "[id] WIDTHxHEIGHT".
type Text struct{}

func (Text) Name() string { return "text" }

func (Text) Supports(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".list":
		return true
	}
	return false
}

func (Text) Decode(r io.Reader) (Gallery, error) {
	var g Gallery

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 2 {
			return Gallery{}, jerrors.New(jerrors.ErrCodeInvalidFormat, "line %d: expected \"[id] value\", got %q", lineNo, strings.TrimSpace(line))
		}

		var it Item
		if len(fields) == 2 {
			it.ID = fields[0]
		}
		if err := parseValue(fields[len(fields)-1], &it); err != nil {
			return Gallery{}, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "line %d", lineNo)
		}
		g.Items = append(g.Items, it)
	}
	if err := scanner.Err(); err != nil {
		return Gallery{}, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "read text")
	}
	return g, nil
}

func parseValue(s string, it *Item) error {
	if w, h, ok := strings.Cut(strings.ToLower(s), "x"); ok {
		width, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return err
		}
		height, err := strconv.ParseFloat(h, 64)
		if err != nil {
			return err
		}
		it.Width, it.Height = width, height
		return nil
	}
	ratio, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	it.AspectRatio = ratio
	return nil
}
