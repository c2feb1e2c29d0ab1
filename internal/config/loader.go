package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// GetConfigPath determines the configuration file path.
// Priority:
// 1. -config command-line flag
// 2. AEMLINK_CONFIG_PATH environment variable
// 3. config.yaml / config.json in the current working directory
// 4. config.yaml / config.json in the executable's directory
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		if fileExists(configFilePathFlag) {
			return configFilePathFlag
		}
	}

	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		if fileExists(envPath) {
			return envPath
		}
	}

	cwd, errCwd := os.Getwd()
	exePath, errExe := os.Executable()
	exeDir := ""
	if errExe == nil {
		exeDir = filepath.Dir(exePath)
	}

	defaultFiles := []string{"config.yaml", "config.json"}
	locations := []string{}

	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if exeDir != "" && (errCwd != nil || exeDir != cwd) {
		locations = append(locations, exeDir)
	}

	for _, loc := range locations {
		for _, file := range defaultFiles {
			path := filepath.Join(loc, file)
			if fileExists(path) {
				return path
			}
		}
	}
	return ""
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. A missing file is not an error.
func LoadEnvFile(path string, logger zerolog.Logger) error {
	if path == "" {
		path = ".env"
	}
	if !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return err
	}
	logger.Debug().Str("path", path).Msg("Loaded environment file")
	return nil
}

// applyEnvOverrides copies recognised environment variables onto cfg.
func applyEnvOverrides(cfg *GlobalConfig, logger zerolog.Logger) {
	if v := strings.TrimSpace(os.Getenv(EnvAEMHost)); v != "" {
		cfg.ConverterConfig.AEMHost = strings.TrimRight(v, "/")
		logger.Debug().Str("env", EnvAEMHost).Msg("Config override from environment")
	}
	if v := strings.TrimSpace(os.Getenv(EnvSourceLang)); v != "" {
		cfg.ConverterConfig.SourceLang = v
		logger.Debug().Str("env", EnvSourceLang).Msg("Config override from environment")
	}
	if v := strings.TrimSpace(os.Getenv(EnvTemplateFile)); v != "" {
		cfg.ReporterConfig.TemplatePath = v
		logger.Debug().Str("env", EnvTemplateFile).Msg("Config override from environment")
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogConfig.LogLevel = v
	}
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
