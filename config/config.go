package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AppName is used for the config directory
const AppName = "tui-mc-launcher"

// Config holds the application settings.
type Config struct {
	VersionsDir string   `toml:"versions_dir" validate:"required"`
	JavaPath    string   `toml:"java_path" validate:"required"`
	MaxMemoryMB int      `toml:"max_memory_mb" validate:"gt=0"`
	PlayerName  string   `toml:"player_name" validate:"required,max=16"`
	PlayerUUID  string   `toml:"player_uuid" validate:"omitempty,playeruuid"` // empty derives the offline UUID
	LastVersion string   `toml:"last_version"`
	VersionType string   `toml:"version_type"` // shown on the game's title screen
	JavaArgs    []string `toml:"java_args"`
	GameArgs    []string `toml:"game_args"`
	Recheck     bool     `toml:"recheck"`     // verify every library before launching
	Concurrency int      `toml:"concurrency" validate:"gte=1,lte=64"`
	LogLevel    string   `toml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("playeruuid", validatePlayerUUID)
	return v
}

// validatePlayerUUID accepts the dashed and the undashed form; the game
// itself writes the latter.
func validatePlayerUUID(fl validator.FieldLevel) bool {
	_, err := uuid.Parse(fl.Field().String())
	return err == nil
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		VersionsDir: filepath.Join(".minecraft", "versions"),
		JavaPath:    "java",
		MaxMemoryMB: 4096,
		PlayerName:  "Steve",
		LastVersion: "1.19.4",
		Concurrency: 8,
		LogLevel:    "info",
	}
}

// Validate checks field constraints declared in the struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GameDir is the directory holding versions/, libraries/ and assets/.
func (c Config) GameDir() string {
	return filepath.Dir(filepath.Clean(c.VersionsDir))
}

// Dir returns the per-user application directory (config and logs).
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(configDir, AppName), nil
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() (string, error) {
	appConfigDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appConfigDir, "config.toml"), nil
}

// LoadConfig loads the configuration from the default path.
// If the file doesn't exist, it returns default settings without error.
func LoadConfig() (Config, error) {
	cfgPath, err := GetConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadConfigFrom(cfgPath)
}

// LoadConfigFrom loads the configuration stored at cfgPath on top of the defaults.
func LoadConfigFrom(cfgPath string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("could not stat config file %s: %w", cfgPath, err)
	}

	if _, err := toml.DecodeFile(cfgPath, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not decode config file %s: %w", cfgPath, err)
	}

	// Expand ~ in paths
	for _, p := range []*string{&cfg.VersionsDir, &cfg.JavaPath} {
		if *p != "" && (*p)[0] == '~' {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return cfg, fmt.Errorf("could not get home directory to expand path: %w", err)
			}
			*p = filepath.Join(homeDir, (*p)[1:])
		}
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the default path.
// It creates the config directory if it doesn't exist.
func SaveConfig(cfg Config) error {
	cfgPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigTo(cfgPath, cfg)
}

// SaveConfigTo writes cfg to cfgPath, creating parent directories.
func SaveConfigTo(cfgPath string, cfg Config) error {
	appConfigDir := filepath.Dir(cfgPath)

	if err := os.MkdirAll(appConfigDir, 0750); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", appConfigDir, err)
	}

	file, err := os.Create(cfgPath)
	if err != nil {
		return fmt.Errorf("could not create config file %s: %w", cfgPath, err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("could not encode config to file %s: %w", cfgPath, err)
	}

	return nil
}
