package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/carbon-forecast/internal/config"
	"github.com/iwvelando/carbon-forecast/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testConfigPath = filepath.Join("..", "..", "test", "test_config.yaml")

// execute runs the root command with args and returns what it wrote to
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	base := []string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "--log-level", "error"}
	cmd.SetArgs(append(args, base...))
	err := cmd.Execute()
	return out.String(), err
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		config   config.LoggingConfig
		override string
		wantErr  bool
	}{
		{name: "Defaults", config: config.LoggingConfig{}},
		{name: "Console debug", config: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "Override", config: config.LoggingConfig{Level: "bogus"}, override: "warn"},
		{name: "Invalid level", config: config.LoggingConfig{Level: "loud"}, wantErr: true},
		{name: "Invalid format", config: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "carbon.log")
	logger, err := initializeLogger(config.LoggingConfig{Level: "info", OutputFile: path}, "")
	require.NoError(t, err)

	logger.Info("hello", zap.String("op", "test"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestCalculateCommand(t *testing.T) {
	out, err := execute(t, "calculate", "--config", testConfigPath, "--output-format", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1+3*10)
	assert.Equal(t, "scenario", rows[0][0])
	assert.Equal(t, "Acacia reforestation", rows[1][0])
}

func TestCalculateCommandPretty(t *testing.T) {
	out, err := execute(t, "calculate", "--config", testConfigPath)
	require.NoError(t, err)
	assert.Contains(t, out, "--- Results for scenario Mangrove restoration (bluecarbon) ---")
	assert.NotContains(t, out, "Feed additive")
}

func TestCalculateCommandXLSX(t *testing.T) {
	_, err := execute(t, "calculate", "--config", testConfigPath, "--output-format", "xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file")

	path := filepath.Join(t.TempDir(), "forecast.xlsx")
	_, err = execute(t, "calculate", "--config", testConfigPath, "--output-format", "xlsx", "--output-file", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestCalculateCommandErrors(t *testing.T) {
	_, err := execute(t, "calculate", "--config", testConfigPath, "--output-format", "yaml")
	assert.Error(t, err)

	_, err = execute(t, "calculate", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSolvePriceCommand(t *testing.T) {
	out, err := execute(t, "solve-price", "--config", testConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "break-even carbon price"), out)
	assert.Contains(t, out, "Acacia reforestation: break-even carbon price")

	_, err = execute(t, "solve-price", "--config", testConfigPath, "--max-price", "-1")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "--config", testConfigPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 3 active scenarios over 10 years")
	assert.Contains(t, out, "Configuration is valid")
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg, err := server.LoadConfig("")
	require.NoError(t, err)
	cfg.Address = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = serve(ctx, zap.NewNop(), cfg, server.NewHandler(nil, 0, "test", nil))
	assert.NoError(t, err)
}
