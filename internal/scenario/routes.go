package scenario

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// ParseRoutes decodes a SUMO route file.
func ParseRoutes(r io.Reader) (*RouteFile, error) {
	var rf RouteFile
	if err := xml.NewDecoder(r).Decode(&rf); err != nil {
		return nil, fmt.Errorf("failed to decode route file: %w", err)
	}
	return &rf, nil
}

// LoadRoutes reads and decodes the route file at path.
func LoadRoutes(path string) (*RouteFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open route file: %w", err)
	}
	defer f.Close()

	rf, err := ParseRoutes(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rf, nil
}

// WriteRoutes serializes the route file with the standard XML header and
// two-space indentation, matching the layout the engine's own tools emit.
func WriteRoutes(w io.Writer, rf *RouteFile) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(rf); err != nil {
		return fmt.Errorf("failed to encode route file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// SaveRoutes writes the route file to path.
func SaveRoutes(path string, rf *RouteFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create route file: %w", err)
	}
	if err := WriteRoutes(f, rf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RouteIndex returns the routes keyed by id for reference resolution.
func (rf *RouteFile) RouteIndex() map[string]Route {
	idx := make(map[string]Route, len(rf.Routes))
	for _, r := range rf.Routes {
		idx[r.ID] = r
	}
	return idx
}
