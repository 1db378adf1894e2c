package launcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// RequiredFiles are the scenario inputs that must exist before the engine
// is started. The engine reports a missing file too, but only after the
// GUI has opened; checking up front keeps the failure on the terminal.
var RequiredFiles = []string{
	"osm.sumocfg",
	"osm.net.xml",
	"emergency_routes.rou.xml",
	"emergency_vtypes.add.xml",
	"emergency_tls.add.xml",
	"osm.poly.xml",
	"viewsettings.xml",
}

// MissingFilesError lists required inputs absent from the scenario
// directory.
type MissingFilesError struct {
	Dir     string
	Missing []string
}

func (e *MissingFilesError) Error() string {
	return fmt.Sprintf("%d required input file(s) missing from %s: %s",
		len(e.Missing), e.Dir, strings.Join(e.Missing, ", "))
}

// Preflight checks that every required input file exists in dir. On
// failure it returns a *MissingFilesError naming each absent file.
func Preflight(dir string) error {
	var missing []string
	for _, name := range RequiredFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingFilesError{Dir: dir, Missing: missing}
	}
	return nil
}

// Mode selects the flag preset passed to the engine.
type Mode string

const (
	// ModeGUI starts the engine with the GUI paused at time zero.
	ModeGUI Mode = "gui"
	// ModeEmergency adds the tuned flags that keep emergency vehicles
	// moving (late teleport, warn-only collisions, fine step length).
	ModeEmergency Mode = "emergency"
	// ModeTraCI is the emergency preset plus a TraCI server port for an
	// external controller.
	ModeTraCI Mode = "traci"
)

// ParseMode validates a mode name from flags or the environment.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGUI, ModeEmergency, ModeTraCI:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown launch mode %q (want gui, emergency or traci)", s)
}

// emergencyFlags keep emergency vehicles moving instead of letting the
// engine teleport or remove them.
var emergencyFlags = []string{
	"--time-to-teleport", "300",
	"--collision.action", "warn",
	"--step-length", "0.1",
	"--ignore-junction-blocker", "60",
	"--emergencydecel", "9.0",
	"--lanechange.overtake-right", "true",
	"--waiting-time-memory", "300",
	"--max-depart-delay", "1",
}

// TraCIPort is the fixed port external controllers connect to in traci mode.
const TraCIPort = 8813

// Args builds the engine's command line for the mode: the configuration
// file, the GUI start flags, then the preset's extras.
func (m Mode) Args(configFile string, delayMS int) []string {
	args := []string{"-c", configFile, "--start", "--delay", strconv.Itoa(delayMS)}
	switch m {
	case ModeEmergency:
		args = append(args, emergencyFlags...)
	case ModeTraCI:
		args = append(args, emergencyFlags...)
		args = append(args, "--remote-port", strconv.Itoa(TraCIPort))
	}
	return args
}

// Launcher runs the external engine over one scenario directory.
type Launcher struct {
	Binary     string // engine binary, resolved via PATH
	Dir        string // scenario directory, becomes the engine's cwd
	ConfigFile string
	DelayMS    int

	Stdout io.Writer
	Stderr io.Writer
}

// Run performs the preflight check and, if it passes, invokes the engine
// exactly once, blocking until it exits. The returned code is the
// engine's own exit status; err is non-nil only when the engine could not
// be started (or the preflight failed).
func (l *Launcher) Run(ctx context.Context, mode Mode) (int, error) {
	if err := Preflight(l.Dir); err != nil {
		return 1, err
	}

	args := mode.Args(l.ConfigFile, l.DelayMS)
	log.Printf("Starting %s %s", l.Binary, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, l.Binary, args...)
	cmd.Dir = l.Dir
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		// Engine started and failed: surface its status as ours.
		return exitErr.ExitCode(), nil
	}
	return 1, fmt.Errorf("failed to start %s: %w", l.Binary, err)
}
