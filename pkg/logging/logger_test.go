/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the logging system. Covers logger creation, formats, the async queue,
classifier event helpers, formatters and log file management.
*/

package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kleascm/ila-classifier/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir string, format logging.LogFormat, console *bytes.Buffer) *logging.LoggerConfig {
	cfg := &logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    format,
		OutputDir: dir,
		MaxFiles:  5,
		MaxSize:   1024 * 1024,
		Timestamp: false,
		Caller:    false,
		Colors:    false,
	}
	if console != nil {
		cfg.Console = console
	}
	return cfg
}

func TestLoggerCreation(t *testing.T) {
	var console bytes.Buffer
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputDir = t.TempDir()
	cfg.Console = &console

	logger, err := logging.NewLogger(cfg)
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	assert.FileExists(t, logger.FilePath())
	assert.True(t, strings.HasPrefix(filepath.Base(logger.FilePath()), logging.FilePrefix+"_"))

	// Close is idempotent
	assert.NoError(t, logger.Close())
}

func TestLoggerConfigValidate(t *testing.T) {
	cfg := testConfig(t.TempDir(), "xml", nil)
	assert.Error(t, cfg.Validate())

	cfg = testConfig(t.TempDir(), logging.LogFormatText, nil)
	cfg.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = testConfig(t.TempDir(), logging.LogFormatText, nil)
	cfg.MaxFiles = 0
	assert.Error(t, cfg.Validate())

	cfg.OutputDir = ""
	assert.NoError(t, cfg.Validate())

	_, err := logging.NewLogger(testConfig("", "xml", nil))
	assert.Error(t, err)
}

func TestAsyncQueueDrainedOnClose(t *testing.T) {
	var console bytes.Buffer
	logger, err := logging.NewLogger(testConfig("", logging.LogFormatText, &console))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		logger.Info("Queued message", map[string]interface{}{"n": i})
	}
	logger.Debug("Debug message", nil)
	logger.Warning("Warning message", nil)
	logger.Error("Error message", nil)
	require.NoError(t, logger.Close())

	out := console.String()
	assert.Equal(t, 100, strings.Count(out, "Queued message"))
	assert.Contains(t, out, "Debug message")
	assert.Contains(t, out, "Warning message")
	assert.Contains(t, out, "Error message")
}

func TestLogFormats(t *testing.T) {
	formats := []logging.LogFormat{
		logging.LogFormatText,
		logging.LogFormatJSON,
		logging.LogFormatCustom,
	}

	for _, format := range formats {
		t.Run(string(format), func(t *testing.T) {
			var console bytes.Buffer
			logger, err := logging.NewLogger(testConfig(t.TempDir(), format, &console))
			require.NoError(t, err)

			logger.LogTraining("train.csv", 14, 4, 2, nil)
			require.NoError(t, logger.Close())

			data, err := os.ReadFile(logger.FilePath())
			require.NoError(t, err)
			assert.Contains(t, string(data), "Training completed")
			assert.Contains(t, console.String(), "Training completed")
		})
	}
}

func TestJSONFields(t *testing.T) {
	var console bytes.Buffer
	logger, err := logging.NewLogger(testConfig("", logging.LogFormatJSON, &console))
	require.NoError(t, err)

	logger.LogAccuracy(0.75, 8, true, map[string]interface{}{"model_id": "abc"})
	require.NoError(t, logger.Close())

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(console.Bytes()), &line))
	assert.Equal(t, "Prediction accuracy", line["msg"])
	assert.Equal(t, 0.75, line["accuracy"])
	assert.Equal(t, float64(8), line["rows"])
	assert.Equal(t, "abc", line["model_id"])
}

func TestClassifierEvents(t *testing.T) {
	var console bytes.Buffer
	logger, err := logging.NewLogger(testConfig("", logging.LogFormatCustom, &console))
	require.NoError(t, err)

	logger.LogTraining("train.csv", 14, 4, 2, nil)
	logger.LogRule(1, "IF outlook = overcast THEN play = yes", 4, nil)
	logger.LogPrediction("t1", "yes", 0, nil)
	logger.LogAccuracy(0, 0, false, nil)
	logger.LogStore("save", "ila_model.gob", "0f8fad5b-d9cb-469f-a165-70867728950e", nil)
	require.NoError(t, logger.Close())

	lines := strings.Split(strings.TrimSpace(console.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "[TRAIN] Training completed")
	assert.Contains(t, lines[1], "[RULE] Rule learned")
	assert.Contains(t, lines[1], `rule="IF outlook = overcast THEN play = yes"`)
	assert.Contains(t, lines[2], "[PREDICT] Row classified")
	assert.Contains(t, lines[3], "available=false")
	assert.NotContains(t, lines[3], "accuracy=")
	assert.Contains(t, lines[4], "[STORE] Model store save")
	assert.Contains(t, lines[4], "model_id=0f8fad5b ")
}

func TestCustomFormatter(t *testing.T) {
	formatter := &logging.CustomFormatter{Timestamp: true}

	entry := &logrus.Entry{
		Level:   logrus.InfoLevel,
		Message: "Test message",
		Time:    time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Data: logrus.Fields{
			"zeta":  "last",
			"alpha": 42,
			"mid":   1500 * time.Millisecond,
		},
	}

	formatted, err := formatter.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 10:00:00.000 INFO Test message alpha=42 mid=1.5s zeta=last\n", string(formatted))
}

func TestILAFormatterPrefixes(t *testing.T) {
	formatter := &logging.ILAFormatter{}

	testCases := []struct {
		message string
		prefix  string
	}{
		{"Training completed", "TRAIN"},
		{"Rule emitted", "RULE"},
		{"Class exhausted attribute subsets", "RULE"},
		{"Row classified", "PREDICT"},
		{"Prediction accuracy", "PREDICT"},
		{"Model store load", "STORE"},
		{"Random message", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.message, func(t *testing.T) {
			formatted, err := formatter.Format(&logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: tc.message,
				Data:    logrus.Fields{},
			})
			require.NoError(t, err)

			if tc.prefix != "" {
				assert.Contains(t, string(formatted), "["+tc.prefix+"]")
			} else {
				assert.NotContains(t, string(formatted), "[")
			}
		})
	}
}

func TestLogManager(t *testing.T) {
	logDir := t.TempDir()
	manager := logging.NewLogManager(logDir, 3, 1024, false)

	testFiles := []string{
		"ila_2024-01-01_10-00-00.log",
		"ila_2024-01-01_11-00-00.log",
		"ila_2024-01-01_12-00-00.log",
		"ila_2024-01-01_13-00-00.log",
	}
	base := time.Now().Add(-time.Hour)
	for i, name := range testFiles {
		p := filepath.Join(logDir, name)
		require.NoError(t, os.WriteFile(p, nil, 0644))
		stamp := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, stamp, stamp))
	}
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "other.log"), nil, 0644))

	require.NoError(t, manager.CleanupOldLogs())

	files, err := filepath.Glob(filepath.Join(logDir, "ila_*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.NoFileExists(t, filepath.Join(logDir, testFiles[0]))
	assert.FileExists(t, filepath.Join(logDir, "other.log"))

	stats, err := manager.GetLogStats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, 3, stats.UncompressedFiles)
}

func TestLogManagerRotateAndCompress(t *testing.T) {
	logDir := t.TempDir()
	manager := logging.NewLogManager(logDir, 10, 16, true)

	big := filepath.Join(logDir, "ila_2024-01-01_10-00-00.log")
	small := filepath.Join(logDir, "ila_2024-01-01_11-00-00.log")
	require.NoError(t, os.WriteFile(big, []byte(strings.Repeat("x", 64)), 0644))
	require.NoError(t, os.WriteFile(small, []byte("x"), 0644))

	require.NoError(t, manager.RotateLogs())

	assert.NoFileExists(t, big)
	assert.FileExists(t, small)

	stats, err := manager.GetLogStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalFiles)
	assert.Equal(t, 1, stats.CompressedFiles)
}
