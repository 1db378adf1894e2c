package scenario

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// SimConfig is the root of a SUMO configuration file (.sumocfg). Each
// section is an ordered list of named option elements; sections absent
// from the source file stay nil and are not written back.
type SimConfig struct {
	XMLName    xml.Name       `xml:"configuration"`
	Input      *OptionSection `xml:"input"`
	Processing *OptionSection `xml:"processing"`
	Routing    *OptionSection `xml:"routing"`
	Report     *OptionSection `xml:"report"`
	Output     *OptionSection `xml:"output"`
	Additional *OptionSection `xml:"additional"`
}

// OptionSection holds the option elements of one configuration section in
// source order. Options are kept generically so unknown engine options
// survive a parse/write cycle.
type OptionSection struct {
	Options []Option `xml:",any"`
}

// Option is a single <name value="..."/> directive.
type Option struct {
	XMLName xml.Name
	Value   string `xml:"value,attr"`
}

// Get returns the value of the named option and whether it is present.
func (s *OptionSection) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, opt := range s.Options {
		if opt.XMLName.Local == name {
			return opt.Value, true
		}
	}
	return "", false
}

// Set replaces the named option's value, appending it if absent.
func (s *OptionSection) Set(name, value string) {
	for i, opt := range s.Options {
		if opt.XMLName.Local == name {
			s.Options[i].Value = value
			return
		}
	}
	s.Options = append(s.Options, Option{XMLName: xml.Name{Local: name}, Value: value})
}

// ParseSimConfig decodes a SUMO configuration file.
func ParseSimConfig(r io.Reader) (*SimConfig, error) {
	var cfg SimConfig
	if err := xml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &cfg, nil
}

// LoadSimConfig reads and decodes the configuration file at path.
func LoadSimConfig(path string) (*SimConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration: %w", err)
	}
	defer f.Close()

	cfg, err := ParseSimConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// WriteSimConfig serializes the configuration with the standard XML header.
func WriteSimConfig(w io.Writer, cfg *SimConfig) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// NetFile returns the input section's net-file option.
func (cfg *SimConfig) NetFile() string {
	v, _ := cfg.Input.Get("net-file")
	return v
}

// RouteFiles returns the input section's route-files option split on
// commas, as the engine interprets it.
func (cfg *SimConfig) RouteFiles() []string {
	return splitFileList(cfg.Input, "route-files")
}

// AdditionalFiles returns the input section's additional-files option
// split on commas.
func (cfg *SimConfig) AdditionalFiles() []string {
	return splitFileList(cfg.Input, "additional-files")
}

func splitFileList(s *OptionSection, name string) []string {
	v, ok := s.Get(name)
	if !ok {
		return nil
	}
	var files []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			files = append(files, part)
		}
	}
	return files
}
