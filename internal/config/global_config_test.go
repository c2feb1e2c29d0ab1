package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, ModeSingle, cfg.Mode)
	assert.Equal(t, "https://prod-author.illumina.com", cfg.ConverterConfig.AEMHost)
	assert.Equal(t, "en", cfg.ConverterConfig.SourceLang)
	assert.Equal(t, []string{"ko", "ja"}, cfg.ConverterConfig.LanguageCodes())
	assert.Equal(t, "ko-KR", cfg.ConverterConfig.LanguageMappings[0].Marker)
	assert.Equal(t, "/spac/ja_JP/", cfg.ConverterConfig.SPACPaths["ja"])
	assert.True(t, cfg.ConverterConfig.VerifyPayloads)
	assert.Equal(t, RenderModeAdvanced, cfg.ReporterConfig.RenderMode)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvConfigPath, "")

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, ModeSingle, cfg.Mode)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
mode: batch
converter_config:
  aem_host: https://author.example.com
  language_mappings:
    - marker: de-DE
      code: de
    - marker: fr-FR
      code: fr
log_config:
  log_level: debug
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, ModeBatch, cfg.Mode)
	assert.Equal(t, "https://author.example.com", cfg.ConverterConfig.AEMHost)
	assert.Equal(t, []string{"de", "fr"}, cfg.ConverterConfig.LanguageCodes())
	assert.Equal(t, "language-master", cfg.ConverterConfig.MarkerPrefix)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	configData := `{
		"mode": "single",
		"reporter_config": {"render_mode": "basic", "output_dir": "out"}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, RenderModeBasic, cfg.ReporterConfig.RenderMode)
	assert.Equal(t, "out", cfg.ReporterConfig.OutputDir)
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("mode: [unclosed"), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config content")
}

func TestLoadGlobalConfig_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvAEMHost, "https://stage-author.example.com/")
	t.Setenv(EnvSourceLang, "de")
	t.Setenv(EnvTemplateFile, "custom.tmpl")

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "https://stage-author.example.com", cfg.ConverterConfig.AEMHost)
	assert.Equal(t, "de", cfg.ConverterConfig.SourceLang)
	assert.Equal(t, "custom.tmpl", cfg.ReporterConfig.TemplatePath)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("AEMLINK_TEST_VALUE=loaded\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("AEMLINK_TEST_VALUE") })

	require.NoError(t, LoadEnvFile(envFile, zerolog.Nop()))
	assert.Equal(t, "loaded", os.Getenv("AEMLINK_TEST_VALUE"))

	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env"), zerolog.Nop()))
}

func TestGetConfigPath(t *testing.T) {
	dir := t.TempDir()
	flagFile := filepath.Join(dir, "flag.yaml")
	envFile := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(flagFile, []byte("mode: single"), 0644))
	require.NoError(t, os.WriteFile(envFile, []byte("mode: single"), 0644))

	t.Setenv(EnvConfigPath, envFile)
	assert.Equal(t, flagFile, GetConfigPath(flagFile))
	assert.Equal(t, envFile, GetConfigPath(""))

	t.Setenv(EnvConfigPath, "")
	workDir := t.TempDir()
	chdir(t, workDir)
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "config.json"), []byte("{}"), 0644))
	assert.Equal(t, filepath.Join(workDir, "config.json"), GetConfigPath(""))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
