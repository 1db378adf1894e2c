package scenario

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

const sampleTLS = `<?xml version="1.0" encoding="UTF-8"?>
<additional>
  <tlLogic id="J_hospital" type="static" programID="emergency" offset="0">
    <phase duration="42" state="GGrr" minDur="5" maxDur="60"/>
    <phase duration="3" state="yyrr"/>
    <phase duration="42" state="rrGG"/>
    <phase duration="3" state="rryy"/>
  </tlLogic>
</additional>
`

func TestParseAdditional(t *testing.T) {
	af, err := ParseAdditional(strings.NewReader(sampleTLS))
	if err != nil {
		t.Fatalf("ParseAdditional failed: %v", err)
	}

	if len(af.TLLogics) != 1 {
		t.Fatalf("expected 1 tlLogic, got %d", len(af.TLLogics))
	}

	tl := af.TLLogics[0]
	if tl.ID != "J_hospital" || tl.ProgramID != "emergency" || tl.Type != "static" {
		t.Errorf("unexpected tlLogic attributes: %+v", tl)
	}
	if len(tl.Phases) != 4 {
		t.Fatalf("expected 4 phases, got %d", len(tl.Phases))
	}
	if tl.Phases[0].Duration != 42 || tl.Phases[0].State != "GGrr" {
		t.Errorf("unexpected first phase: %+v", tl.Phases[0])
	}
}

func TestParseAdditionalWithoutTLS(t *testing.T) {
	// Polygon additionals parse fine and contribute no programs.
	af, err := ParseAdditional(strings.NewReader(
		`<additional><poly id="building_1" shape="0,0 1,0 1,1"/></additional>`))
	if err != nil {
		t.Fatalf("ParseAdditional failed: %v", err)
	}
	if len(af.TLLogics) != 0 {
		t.Errorf("expected no tlLogics, got %d", len(af.TLLogics))
	}
}

func TestAdditionalRoundTrip(t *testing.T) {
	first, err := ParseAdditional(strings.NewReader(sampleTLS))
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteAdditional(&buf, first); err != nil {
		t.Fatalf("WriteAdditional failed: %v", err)
	}

	second, err := ParseAdditional(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("round trip changed data:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	// Actuated-timing attributes are not modeled but must survive.
	out := buf.String()
	for _, attr := range []string{`minDur="5"`, `maxDur="60"`} {
		if !strings.Contains(out, attr) {
			t.Errorf("attribute %s lost in rewrite:\n%s", attr, out)
		}
	}
}

func TestValidSignalState(t *testing.T) {
	valid := []string{"GGrr", "g", "yyyy", "GgyrGgyr"}
	for _, state := range valid {
		if !ValidSignalState(state) {
			t.Errorf("ValidSignalState(%q) = false, want true", state)
		}
	}

	invalid := []string{"", "GGxr", "GG rr", "O", "R"}
	for _, state := range invalid {
		if ValidSignalState(state) {
			t.Errorf("ValidSignalState(%q) = true, want false", state)
		}
	}
}
