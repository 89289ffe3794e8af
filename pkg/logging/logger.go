/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger.go
Description: Logging system for the ILA classifier. Provides structured logging to a
timestamped file and the console in JSON, text or custom format, with an async queue for
general messages and helpers for training, rule, prediction and store events.
*/

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FilePrefix names every log file written by the logger
const FilePrefix = "ila"

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warn"
	LogLevelError   LogLevel = "error"
	LogLevelFatal   LogLevel = "fatal"
)

// LogFormat represents the logging format
type LogFormat string

const (
	LogFormatJSON   LogFormat = "json"
	LogFormatText   LogFormat = "text"
	LogFormatCustom LogFormat = "custom"
)

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	Level     LogLevel  `json:"level"`
	Format    LogFormat `json:"format"`
	OutputDir string    `json:"output_dir"` // empty disables the log file
	MaxFiles  int       `json:"max_files"`
	MaxSize   int64     `json:"max_size"` // in bytes
	Timestamp bool      `json:"timestamp"`
	Caller    bool      `json:"caller"`
	Colors    bool      `json:"colors"`
	Compress  bool      `json:"compress"`

	Console io.Writer `json:"-"` // defaults to stderr
}

// DefaultLoggerConfig returns the configuration used by NewLogger(nil)
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:     LogLevelInfo,
		Format:    LogFormatCustom,
		OutputDir: "./logs",
		MaxFiles:  10,
		MaxSize:   100 * 1024 * 1024, // 100MB
		Timestamp: true,
		Caller:    false,
		Colors:    true,
	}
}

// Validate checks the LoggerConfig for invalid or missing values
func (c *LoggerConfig) Validate() error {
	if c.OutputDir != "" {
		if c.MaxFiles <= 0 {
			return fmt.Errorf("max_files must be positive")
		}
		if c.MaxSize <= 0 {
			return fmt.Errorf("max_size must be positive")
		}
	}
	switch c.Format {
	case LogFormatJSON, LogFormatText, LogFormatCustom:
	default:
		return fmt.Errorf("unsupported log format: %s", c.Format)
	}
	switch c.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError, LogLevelFatal:
	default:
		return fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return nil
}

type logEntry struct {
	level  logrus.Level
	msg    string
	fields logrus.Fields
}

// Logger wraps a logrus logger with a log file and an async message queue
type Logger struct {
	config     *LoggerConfig
	logger     *logrus.Logger
	fileHandle *os.File
	filePath   string
	startTime  time.Time

	logQueue  chan logEntry
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewLogger creates a new logger instance
func NewLogger(config *LoggerConfig) (*Logger, error) {
	if config == nil {
		config = DefaultLoggerConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	l := &Logger{
		config:    config,
		logger:    logrus.New(),
		startTime: time.Now(),
		logQueue:  make(chan logEntry, 1024),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	if err := l.setup(); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	go l.runLogQueue()

	return l, nil
}

// setup configures level, formatter and outputs
func (l *Logger) setup() error {
	level, err := logrus.ParseLevel(string(l.config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.logger.SetLevel(level)
	l.logger.SetReportCaller(l.config.Caller)

	if err := l.setFormatter(); err != nil {
		return err
	}

	console := l.config.Console
	if console == nil {
		console = os.Stderr
	}
	l.logger.SetOutput(console)

	return l.setupFileOutput(console)
}

// setFormatter configures the log formatter
func (l *Logger) setFormatter() error {
	prettyCaller := func(f *runtime.Frame) (string, string) {
		return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}

	switch l.config.Format {
	case LogFormatJSON:
		l.logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: prettyCaller,
		})

	case LogFormatText:
		l.logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    l.config.Timestamp,
			TimestampFormat:  time.RFC3339,
			ForceColors:      l.config.Colors,
			DisableColors:    !l.config.Colors,
			CallerPrettyfier: prettyCaller,
		})

	case LogFormatCustom:
		l.logger.SetFormatter(&ILAFormatter{
			CustomFormatter: CustomFormatter{
				Timestamp: l.config.Timestamp,
				Caller:    l.config.Caller,
				Colors:    l.config.Colors,
			},
		})

	default:
		return fmt.Errorf("unsupported log format: %s", l.config.Format)
	}

	return nil
}

// setupFileOutput opens a timestamped log file and tees output into it
func (l *Logger) setupFileOutput(console io.Writer) error {
	if l.config.OutputDir == "" {
		return nil
	}

	if err := os.MkdirAll(l.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(l.config.OutputDir, fmt.Sprintf("%s_%s.log", FilePrefix, timestamp))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.fileHandle = file
	l.filePath = path
	l.logger.SetOutput(io.MultiWriter(console, file))

	l.logger.WithFields(logrus.Fields{
		"start_time": l.startTime.Format(time.RFC3339),
		"log_file":   path,
		"level":      l.config.Level,
		"format":     l.config.Format,
	}).Debug("ILA logging initialized")

	return nil
}

// runLogQueue writes queued entries until Close, then drains what is left
func (l *Logger) runLogQueue() {
	defer close(l.done)
	for {
		select {
		case entry := <-l.logQueue:
			l.logger.WithFields(entry.fields).Log(entry.level, entry.msg)
		case <-l.quit:
			for {
				select {
				case entry := <-l.logQueue:
					l.logger.WithFields(entry.fields).Log(entry.level, entry.msg)
				default:
					return
				}
			}
		}
	}
}

func withFields(fields map[string]interface{}) logrus.Fields {
	if fields == nil {
		return logrus.Fields{}
	}
	return logrus.Fields(fields)
}

// LogTraining logs a finished training run over a loaded table
func (l *Logger) LogTraining(source string, rows, attributes, classes int, fields map[string]interface{}) {
	f := withFields(fields)
	f["source"] = source
	f["rows"] = rows
	f["attributes"] = attributes
	f["classes"] = classes

	l.logger.WithFields(f).Info("Training completed")
}

// LogRule logs an emitted rule
func (l *Logger) LogRule(index int, rule string, covered int, fields map[string]interface{}) {
	f := withFields(fields)
	f["rule_index"] = index
	f["rule"] = rule
	f["covered"] = covered

	l.logger.WithFields(f).Debug("Rule learned")
}

// LogPrediction logs the class predicted for one row
func (l *Logger) LogPrediction(rowID string, label string, ruleIndex int, fields map[string]interface{}) {
	f := withFields(fields)
	f["row_id"] = rowID
	f["label"] = label
	f["rule_index"] = ruleIndex

	l.logger.WithFields(f).Debug("Row classified")
}

// LogAccuracy logs the accuracy of a prediction run
func (l *Logger) LogAccuracy(accuracy float64, rows int, available bool, fields map[string]interface{}) {
	f := withFields(fields)
	f["rows"] = rows
	f["available"] = available
	if available {
		f["accuracy"] = accuracy
	}
	f["uptime"] = time.Since(l.startTime)

	l.logger.WithFields(f).Info("Prediction accuracy")
}

// LogStore logs a model store operation
func (l *Logger) LogStore(op string, target string, modelID string, fields map[string]interface{}) {
	f := withFields(fields)
	f["op"] = op
	f["target"] = target
	f["model_id"] = modelID

	l.logger.WithFields(f).Info("Model store " + op)
}

// Close drains the queue, closes the log file, then rotates and prunes old log files
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.quit)
		<-l.done

		if l.fileHandle != nil {
			l.fileHandle.Close()
		}

		if l.config.OutputDir != "" {
			lm := NewLogManager(l.config.OutputDir, l.config.MaxFiles, l.config.MaxSize, l.config.Compress)
			if rerr := lm.RotateLogs(); rerr != nil {
				err = fmt.Errorf("failed to rotate log files: %w", rerr)
				return
			}
			if cerr := lm.CleanupOldLogs(); cerr != nil {
				err = fmt.Errorf("failed to cleanup log files: %w", cerr)
			}
		}
	})
	return err
}

// GetLogger returns the underlying logrus logger
func (l *Logger) GetLogger() *logrus.Logger {
	return l.logger
}

// FilePath returns the log file path, or "" when file output is disabled
func (l *Logger) FilePath() string {
	return l.filePath
}

// Debug logs a debug message (async)
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logQueue <- logEntry{level: logrus.DebugLevel, msg: msg, fields: fields}
}

// Info logs an info message (async)
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logQueue <- logEntry{level: logrus.InfoLevel, msg: msg, fields: fields}
}

// Warning logs a warning message (async)
func (l *Logger) Warning(msg string, fields map[string]interface{}) {
	l.logQueue <- logEntry{level: logrus.WarnLevel, msg: msg, fields: fields}
}

// Error logs an error message (async)
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logQueue <- logEntry{level: logrus.ErrorLevel, msg: msg, fields: fields}
}
