package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Faultbox/meshstore/pkg/mesh"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	// Test mesh defaults
	if cfg.Mesh.Kind != "edge" {
		t.Errorf("expected kind 'edge', got %s", cfg.Mesh.Kind)
	}
	if cfg.Mesh.FaceArity != 0 {
		t.Errorf("expected polygonal faces, got arity %d", cfg.Mesh.FaceArity)
	}
	if len(cfg.Mesh.Attributes) != 0 {
		t.Errorf("expected no attributes, got %v", cfg.Mesh.Attributes)
	}

	// Test tool defaults
	if !cfg.Tool.ValidateAfterRun {
		t.Error("expected validate_after_run to be true by default")
	}
	if cfg.Tool.DumpAfterRun {
		t.Error("expected dump_after_run to be false by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
logging:
  level: "debug"
  log_file: "meshtool.log"

mesh:
  kind: "face"
  face_arity: 3
  attributes:
    - vertex_normals
    - face_colors

tool:
  validate_after_run: false
  dump_after_run: true
  profile_dir: "prof"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshtool.log" {
		t.Errorf("expected log file meshtool.log, got %s", cfg.Logging.LogFile)
	}
	if cfg.Mesh.Kind != "face" {
		t.Errorf("expected kind 'face', got %s", cfg.Mesh.Kind)
	}
	if cfg.Mesh.FaceArity != 3 {
		t.Errorf("expected arity 3, got %d", cfg.Mesh.FaceArity)
	}
	if !slices.Equal(cfg.Mesh.Attributes, []string{"vertex_normals", "face_colors"}) {
		t.Errorf("expected [vertex_normals face_colors], got %v", cfg.Mesh.Attributes)
	}
	if cfg.Tool.ValidateAfterRun {
		t.Error("expected validate_after_run false")
	}
	if !cfg.Tool.DumpAfterRun {
		t.Error("expected dump_after_run true")
	}
	if cfg.Tool.ProfileDir != "prof" {
		t.Errorf("expected profile dir 'prof', got %s", cfg.Tool.ProfileDir)
	}

	opts, err := cfg.MeshOptions()
	if err != nil {
		t.Fatalf("mesh options: %v", err)
	}
	if opts.Kind != mesh.KindFace || opts.FaceArity != 3 {
		t.Errorf("expected face kind with arity 3, got %v/%d", opts.Kind, opts.FaceArity)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("mesh:\n  kind: polyline\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Mesh.Kind != "polyline" {
		t.Errorf("expected kind 'polyline', got %s", cfg.Mesh.Kind)
	}
	// Untouched sections keep their defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Logging.Level)
	}
	if !cfg.Tool.ValidateAfterRun {
		t.Error("expected default validate_after_run true")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "logging:\n  level: [unclosed\n"},
		{"unknown key", "mesh:\n  colour: red\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			cfg := Default()
			if err := loadFromFile(cfg, path); err == nil {
				t.Error("expected error for invalid config")
			}
		})
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"vertex kind", func(c *Config) { c.Mesh.Kind = "vertex" }, false},
		{"triangles", func(c *Config) { c.Mesh.FaceArity = 3 }, false},
		{"unknown kind", func(c *Config) { c.Mesh.Kind = "tetra" }, true},
		{"arity two", func(c *Config) { c.Mesh.FaceArity = 2 }, true},
		{"negative arity", func(c *Config) { c.Mesh.FaceArity = -4 }, true},
		{"known attribute", func(c *Config) { c.Mesh.Attributes = []string{"wedge_uvs"} }, false},
		{"unknown attribute", func(c *Config) { c.Mesh.Attributes = []string{"face_tangents"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Mesh.Kind = "face"
	cfg.Mesh.Attributes = []string{"face_normals"}
	cfg.Tool.DumpAfterRun = true

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}

	if loaded.Mesh.Kind != "face" {
		t.Errorf("expected kind 'face', got %s", loaded.Mesh.Kind)
	}
	if !slices.Equal(loaded.Mesh.Attributes, []string{"face_normals"}) {
		t.Errorf("expected [face_normals], got %v", loaded.Mesh.Attributes)
	}
	if !loaded.Tool.DumpAfterRun {
		t.Error("expected dump_after_run true after round trip")
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if dir := ConfigDir(); dir != filepath.Join("/tmp/xdg", "meshstore") {
		t.Errorf("expected /tmp/xdg/meshstore, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// Change to temp directory for test
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	defer os.Chdir(origDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config under XDG_CONFIG_HOME
	xdgPath := filepath.Join(tmpDir, "xdg", "meshstore", "config.yaml")
	if err := Default().SaveTo(xdgPath); err != nil {
		t.Fatalf("failed to create xdg config: %v", err)
	}
	if path = findConfigFile(); path != xdgPath {
		t.Errorf("expected %s, got %s", xdgPath, path)
	}

	// meshtool.yaml in the current directory wins
	if err := os.WriteFile("meshtool.yaml", []byte("mesh:\n  kind: face\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path = findConfigFile(); path != "./meshtool.yaml" {
		t.Errorf("expected ./meshtool.yaml, got %s", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "log file flag",
			setup: func() {
				*flagLogFile = "out.log"
			},
			verify: func(cfg *Config) {
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file out.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() {
				*flagLogFile = ""
			},
		},
		{
			name: "kind and arity flags",
			setup: func() {
				*flagKind = "face"
				*flagArity = 4
			},
			verify: func(cfg *Config) {
				if cfg.Mesh.Kind != "face" {
					t.Errorf("expected kind 'face', got %s", cfg.Mesh.Kind)
				}
				if cfg.Mesh.FaceArity != 4 {
					t.Errorf("expected arity 4, got %d", cfg.Mesh.FaceArity)
				}
			},
			teardown: func() {
				*flagKind = ""
				*flagArity = -1
			},
		},
		{
			name: "profile flag",
			setup: func() {
				*flagProfile = "/tmp/prof"
			},
			verify: func(cfg *Config) {
				if cfg.Tool.ProfileDir != "/tmp/prof" {
					t.Errorf("expected profile dir /tmp/prof, got %s", cfg.Tool.ProfileDir)
				}
			},
			teardown: func() {
				*flagProfile = ""
			},
		},
		{
			name:  "no flags",
			setup: func() {},
			verify: func(cfg *Config) {
				if cfg.Mesh.FaceArity != 0 {
					t.Errorf("expected arity 0 without flag, got %d", cfg.Mesh.FaceArity)
				}
			},
			teardown: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
mesh:
  kind: polyline
  face_arity: 3
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagKind = "face"
	defer func() {
		*flagConfig = ""
		*flagKind = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Kind should be from flag, not file
	if cfg.Mesh.Kind != "face" {
		t.Errorf("expected kind 'face' from flag, got %s", cfg.Mesh.Kind)
	}

	// Arity should be from file since no flag override
	if cfg.Mesh.FaceArity != 3 {
		t.Errorf("expected arity 3 from file, got %d", cfg.Mesh.FaceArity)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("mesh:\n  kind: voxel\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown mesh kind")
	}
}
