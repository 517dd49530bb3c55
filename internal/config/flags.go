package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile = flag.String("log-file", "", "Also log to this file, rotated")
	flagKind    = flag.String("kind", "", "Default mesh kind: vertex, polyline, face or edge")
	flagArity   = flag.Int("arity", -1, "Default face arity (0 = polygons)")
	flagProfile = flag.String("profile", "", "Write a CPU profile to this directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagKind != "" {
		cfg.Mesh.Kind = *flagKind
	}
	if *flagArity >= 0 {
		cfg.Mesh.FaceArity = *flagArity
	}
	if *flagProfile != "" {
		cfg.Tool.ProfileDir = *flagProfile
	}
}
