package scenario

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Signal characters allowed in a phase state string: major/minor green,
// yellow and red, one character per controlled direction.
const signalAlphabet = "Ggyr"

// ParseAdditional decodes a SUMO additional file, extracting its
// traffic-light programs.
func ParseAdditional(r io.Reader) (*AdditionalFile, error) {
	var af AdditionalFile
	if err := xml.NewDecoder(r).Decode(&af); err != nil {
		return nil, fmt.Errorf("failed to decode additional file: %w", err)
	}
	return &af, nil
}

// LoadAdditional reads and decodes the additional file at path.
func LoadAdditional(path string) (*AdditionalFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open additional file: %w", err)
	}
	defer f.Close()

	af, err := ParseAdditional(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return af, nil
}

// WriteAdditional serializes the additional file with the standard XML header.
func WriteAdditional(w io.Writer, af *AdditionalFile) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(af); err != nil {
		return fmt.Errorf("failed to encode additional file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ValidSignalState reports whether every character of a phase state string
// belongs to the signal alphabet.
func ValidSignalState(state string) bool {
	if state == "" {
		return false
	}
	for _, c := range state {
		if !strings.ContainsRune(signalAlphabet, c) {
			return false
		}
	}
	return true
}
