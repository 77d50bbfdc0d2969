package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/researchagg/hostprep/pkg/logger"
	"github.com/researchagg/hostprep/pkg/models"
	"github.com/spf13/viper"
)

const (
	setupIDFile = ".hostprep_setup_id" // File to store the setup ID
)

// Config holds all application configuration
type Config struct {
	Renderer RendererConfig `mapstructure:"renderer"`
	Python   PythonConfig   `mapstructure:"python"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// RendererConfig holds settings for the wkhtmltopdf package install
type RendererConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	ArtifactPath    string `mapstructure:"artifact_path"`
	SHA256          string `mapstructure:"sha256"`
	DownloadTimeout string `mapstructure:"download_timeout"`
}

// PythonConfig holds settings for the runtime environment bootstrap
type PythonConfig struct {
	Interpreter  string `mapstructure:"interpreter"`
	VenvDir      string `mapstructure:"venv_dir"`
	Requirements string `mapstructure:"requirements"`
	EnvFile      string `mapstructure:"env_file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GetStoredSetupID reads the setup ID from the storage file, generating
// and persisting a new one on first use. The ID ties log lines and the
// install manifest of one host together across runs.
func GetStoredSetupID() (string, error) {
	idPath := filepath.Join(models.HostprepLibPath, setupIDFile)
	if id, err := os.ReadFile(idPath); err == nil {
		return string(id), nil
	}

	if err := os.MkdirAll(models.HostprepLibPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create lib directory: %v", err)
	}

	newID := uuid.New().String()
	err := os.WriteFile(idPath, []byte(newID), 0600)
	if err != nil {
		return "", fmt.Errorf("failed to save setup ID: %v", err)
	}

	return newID, nil
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Configuration file name and path
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.hostprep")
		v.AddConfigPath(models.HostprepPath)
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("HOSTPREP")

	// Read configuration file
	err := v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Bind configuration to struct
	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, err
	}

	// Initialize logger
	err = initLogger(&config.Logging)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("renderer.base_url", "https://github.com/wkhtmltopdf/packaging/releases/download")
	v.SetDefault("renderer.artifact_path", "wkhtmltox.deb")
	v.SetDefault("renderer.download_timeout", "5m")

	v.SetDefault("python.interpreter", "python3")
	v.SetDefault("python.venv_dir", "venv")
	v.SetDefault("python.requirements", "requirements.txt")
	v.SetDefault("python.env_file", ".env")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// initLogger initializes the logger with the provided configuration
func initLogger(cfg *LoggingConfig) error {
	logConfig := logger.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		Module: "main",
	}

	return logger.Init(logConfig)
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		// Defaults always unmarshal; never return nil
		return &Config{}
	}
	return &config
}
