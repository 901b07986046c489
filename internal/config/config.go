package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/calvinalkan/keyscreen/pkg/bloom"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	FalsePositiveRate float64 `json:"false_positive_rate,omitempty"`
	Sizing            string  `json:"sizing,omitempty"`
	Hash              string  `json:"hash,omitempty"`
	Output            string  `json:"output,omitempty"`
	SkipHeader        *bool   `json:"skip_header,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	OutputAbs    string `json:"-"` // Absolute path to the results file

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	skip := true

	return Config{
		FalsePositiveRate: bloom.DefaultFalsePositiveRate,
		Sizing:            bloom.SizingCeil.String(),
		Hash:              bloom.HasherMurmur3,
		Output:            "results.csv",
		SkipHeader:        &skip,
	}
}

// FileName is the default project config file name.
const FileName = ".keyscreen.json"

// globalPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/keyscreen/config.json if set, otherwise
// ~/.config/keyscreen/config.json. Returns empty string if home directory
// cannot be determined.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "keyscreen", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "keyscreen", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Env             map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/keyscreen/config.json or $XDG_CONFIG_HOME/keyscreen/config.json)
// 3. Project config file at default location (.keyscreen.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
//
// Command flags are applied afterwards by the caller through [Config.Apply].
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	globalCfg, globalCfgPath, err := loadGlobal(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalCfgPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	cfg.EffectiveCwd = workDir

	return cfg.resolve()
}

// Overrides are command-line values that win over every config file.
// Zero values mean "not set".
type Overrides struct {
	FalsePositiveRate float64
	Sizing            string
	Hash              string
	Output            string
	NoHeader          bool
}

// Apply returns cfg with the overrides applied, validated and resolved.
func (cfg Config) Apply(o Overrides) (Config, error) {
	var overlay Config

	overlay.FalsePositiveRate = o.FalsePositiveRate
	overlay.Sizing = o.Sizing
	overlay.Hash = o.Hash
	overlay.Output = o.Output

	if o.NoHeader {
		skip := false
		overlay.SkipHeader = &skip
	}

	return merge(cfg, overlay).resolve()
}

// SkipsHeader reports whether the first line of each input file is a header.
func (cfg Config) SkipsHeader() bool {
	return cfg.SkipHeader == nil || *cfg.SkipHeader
}

// FilterOptions translates the sizing and hash settings into filter options.
func (cfg Config) FilterOptions() ([]bloom.Option, error) {
	sizing, err := bloom.ParseSizing(cfg.Sizing)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, cfg.Sizing)
	}

	hasher, err := bloom.HasherByName(cfg.Hash)
	if err != nil {
		return nil, err
	}

	return []bloom.Option{bloom.WithSizing(sizing), bloom.WithHasher(hasher)}, nil
}

func (cfg Config) resolve() (Config, error) {
	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	if filepath.IsAbs(cfg.Output) {
		cfg.OutputAbs = cfg.Output
	} else {
		cfg.OutputAbs = filepath.Join(cfg.EffectiveCwd, cfg.Output)
	}

	return cfg, nil
}

// loadGlobal loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobal(env map[string]string) (Config, string, error) {
	path := globalPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, explicitEmpty, loaded, err := loadFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["output"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrOutputEmpty)
	}

	return cfg, path, nil
}

// loadProject loads the project config file (.keyscreen.json) or an explicit config file.
// Returns the config, the path if loaded, and any error.
func loadProject(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		// Check existence first to provide a clear "not found" error
		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, FileName)
		mustExist = false
	}

	fileCfg, explicitEmpty, loaded, err := loadFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["output"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, cfgFile, ErrOutputEmpty)
	}

	return fileCfg, cfgFile, nil
}

// loadFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, a map of explicitly empty fields, whether file was loaded, and any error.
func loadFile(path string, mustExist bool) (Config, map[string]bool, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, nil, false, nil
		}

		if mustExist {
			return Config{}, nil, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, nil, false, nil
	}

	cfg, explicitEmpty, parseErr := parse(data)
	if parseErr != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, explicitEmpty, true, nil
}

func parse(data []byte) (Config, map[string]bool, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// Check which fields were explicitly set to empty or zero
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := make(map[string]bool)

	if val, exists := raw["output"]; exists {
		if str, ok := val.(string); ok && str == "" {
			explicitEmpty["output"] = true
		}
	}

	if val, exists := raw["false_positive_rate"]; exists {
		if num, ok := val.(float64); ok && num == 0 {
			return Config{}, nil, ErrRateOutOfRange
		}
	}

	return cfg, explicitEmpty, nil
}

func merge(base, overlay Config) Config {
	if overlay.FalsePositiveRate != 0 {
		base.FalsePositiveRate = overlay.FalsePositiveRate
	}

	if overlay.Sizing != "" {
		base.Sizing = overlay.Sizing
	}

	if overlay.Hash != "" {
		base.Hash = overlay.Hash
	}

	if overlay.Output != "" {
		base.Output = overlay.Output
	}

	if overlay.SkipHeader != nil {
		base.SkipHeader = overlay.SkipHeader
	}

	return base
}

func validate(cfg Config) error {
	if cfg.Output == "" {
		return ErrOutputEmpty
	}

	if !(cfg.FalsePositiveRate > 0 && cfg.FalsePositiveRate < 1) {
		return fmt.Errorf("%w: got %v", ErrRateOutOfRange, cfg.FalsePositiveRate)
	}

	if _, err := cfg.FilterOptions(); err != nil {
		return err
	}

	return nil
}

// Format renders cfg as JSON the way it would appear in a config file.
func Format(cfg Config) (string, error) {
	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}

	return string(out), nil
}
