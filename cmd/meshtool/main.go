// meshtool runs mesh edit scripts and inspects the resulting meshes.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshstore/internal/config"
	"github.com/Faultbox/meshstore/internal/logger"
	"github.com/Faultbox/meshstore/internal/script"
	"github.com/Faultbox/meshstore/pkg/mesh"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		return 1
	}

	command := args[0]
	args = args[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	if cfg.Tool.ProfileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Tool.ProfileDir), profile.NoShutdownHook).Stop()
	}

	switch command {
	case "run":
		return cmdRun(cfg, args)
	case "validate":
		return cmdValidate(cfg, args)
	case "dump":
		return cmdDump(cfg, args)
	case "cube":
		return cmdCube(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println(`meshtool - mesh entity store script runner

Usage:
  meshtool [flags] <command> [args]

Commands:
  run <script.yaml>       Run a script and print the result of every op
  validate <script.yaml>  Run a script and check the mesh invariants
  dump <script.yaml>      Run a script and print the resulting mesh
  cube                    Run the built-in cube compaction demo
  help                    Show this help

Flags:
  -config <file>   Config file (default ./meshtool.yaml, then user config dir)
  -debug           Enable debug logging
  -log-file <file> Also log to a rotated file
  -kind <kind>     Default mesh kind: vertex, polyline, face or edge
  -arity <n>       Default face arity (0 = polygons)
  -profile <dir>   Write a CPU profile to dir

Examples:
  meshtool run edits.yaml
  meshtool -kind face -arity 3 dump edits.yaml
  meshtool -debug cube`)
}

// loadScript reads the script named by args[0].
func loadScript(name string, args []string) (*script.Script, bool) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: meshtool %s <script.yaml>\n", name)
		return nil, false
	}
	s, err := script.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, false
	}
	return s, true
}

// execute runs s against a mesh built from the config defaults.
func execute(cfg *config.Config, s *script.Script) (*mesh.Mesh, []script.Result, error) {
	opts, err := cfg.MeshOptions()
	if err != nil {
		return nil, nil, err
	}
	return script.Run(s, opts, cfg.Mesh.Attributes)
}

func cmdRun(cfg *config.Config, args []string) int {
	s, ok := loadScript("run", args)
	if !ok {
		return 1
	}
	return report(cfg, s)
}

func cmdCube(cfg *config.Config) int {
	return report(cfg, script.Cube())
}

// report runs s, prints the op results and then validates or dumps the
// mesh as the config asks.
func report(cfg *config.Config, s *script.Script) int {
	m, results, err := execute(cfg, s)
	if m == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if perr := printYAML(results); perr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", perr)
		return 1
	}
	if err != nil {
		logger.Error("script failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	code := 0
	if cfg.Tool.ValidateAfterRun && printViolations(m) > 0 {
		code = 1
	}
	if cfg.Tool.DumpAfterRun {
		if err := printYAML(script.Snapshot(m)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	return code
}

func cmdValidate(cfg *config.Config, args []string) int {
	s, ok := loadScript("validate", args)
	if !ok {
		return 1
	}
	m, _, err := execute(cfg, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if printViolations(m) > 0 {
		return 1
	}
	fmt.Println("OK")
	return 0
}

func cmdDump(cfg *config.Config, args []string) int {
	s, ok := loadScript("dump", args)
	if !ok {
		return 1
	}
	m, _, err := execute(cfg, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := printYAML(script.Snapshot(m)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// printViolations prints every invariant violation of m and returns how
// many there were.
func printViolations(m *mesh.Mesh) int {
	errs := multierr.Errors(mesh.Validate(m))
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "violation: %v\n", e)
	}
	if len(errs) > 0 {
		logger.Warn("mesh is invalid", zap.Int("violations", len(errs)))
	}
	return len(errs)
}

func printYAML(v any) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
