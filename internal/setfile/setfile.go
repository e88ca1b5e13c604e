// Package setfile persists word sets as a single JSON document.
package setfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordcards/internal/model"
)

// File reads and writes the word set collection at a fixed path.
type File struct {
	path string
	log  zerolog.Logger
}

// New returns a File for path. Logging is disabled until WithLogger is used.
func New(path string) *File {
	return &File{path: path, log: zerolog.Nop()}
}

// WithLogger sets the logger used to report discarded data.
func (f *File) WithLogger(log zerolog.Logger) *File {
	f.log = log
	return f
}

// Path returns the location of the set file.
func (f *File) Path() string {
	return f.path
}

// Load reads the collection. A missing, unreadable or malformed file yields an
// empty collection; entries that are not arrays are dropped.
func (f *File) Load() model.WordSets {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Warn().Err(err).Str("path", f.path).Msg("set file unreadable, starting empty")
		}
		return model.WordSets{}
	}
	sets, err := decode(data)
	if err != nil {
		f.log.Warn().Err(err).Str("path", f.path).Msg("set file malformed, starting empty")
		return model.WordSets{}
	}
	return sets
}

// Save overwrites the file with the full collection.
func (f *File) Save(sets model.WordSets) error {
	data, err := encode(sets)
	if err != nil {
		return fmt.Errorf("failed to encode word sets: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "wordsets-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp set file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write set file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close set file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("failed to write set file: %w", err)
	}
	f.log.Debug().Str("path", f.path).Int("sets", len(sets)).Msg("saved word sets")
	return nil
}

func encode(sets model.WordSets) ([]byte, error) {
	if sets == nil {
		sets = model.WordSets{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sets); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (model.WordSets, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after document")
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document root is not an object")
	}
	sets := make(model.WordSets, len(obj))
	for name, value := range obj {
		items, ok := value.([]any)
		if !ok {
			continue
		}
		words := make([]string, 0, len(items))
		for _, item := range items {
			word := coerce(item)
			if strings.TrimSpace(word) == "" {
				continue
			}
			words = append(words, word)
		}
		sets[name] = words
	}
	return sets, nil
}

// coerce renders a decoded JSON value as text. Strings are kept verbatim and
// everything else becomes its JSON form, so booleans and null are stored as
// "true", "false" and "null" rather than capitalized names like "True" or "None".
func coerce(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
