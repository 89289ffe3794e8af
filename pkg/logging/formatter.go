/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatters for the ILA classifier. CustomFormatter renders a compact
line with optional colors; ILAFormatter adds an event prefix for training, rule, prediction
and store messages. Fields are always written in sorted key order.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter renders readable single-line log entries
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format formats a log entry
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.format(entry, ""), nil
}

func (f *CustomFormatter) format(entry *logrus.Entry, prefix string) []byte {
	var output strings.Builder

	if f.Timestamp {
		timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
		output.WriteString(f.paint(36, timestamp)) // Cyan
		output.WriteString(" ")
	}

	level := strings.ToUpper(entry.Level.String())
	output.WriteString(f.paint(f.getLevelColor(entry.Level), level))
	output.WriteString(" ")

	if prefix != "" {
		output.WriteString(f.paint(35, "["+prefix+"]")) // Magenta
		output.WriteString(" ")
	}

	if f.Caller && entry.HasCaller() {
		caller := fmt.Sprintf("[%s:%d]", entry.Caller.File, entry.Caller.Line)
		output.WriteString(f.paint(33, caller)) // Yellow
		output.WriteString(" ")
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data))
	}

	output.WriteString("\n")
	return []byte(output.String())
}

func (f *CustomFormatter) paint(color int, s string) string {
	if !f.Colors {
		return s
	}
	return fmt.Sprintf("\033[%dm%s\033[0m", color, s)
}

// getLevelColor returns the ANSI color code for a log level
func (f *CustomFormatter) getLevelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return 37 // White
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	default:
		return 35 // Magenta
	}
}

// formatFields renders fields as key=value pairs in key order
func (f *CustomFormatter) formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := f.formatValue(key, fields[key])
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, value)) // Blue key, Green value
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, value))
		}
	}

	return strings.Join(parts, " ")
}

// formatValue formats a field value
func (f *CustomFormatter) formatValue(key string, value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.Round(time.Microsecond).String()
	case time.Time:
		return v.Format("15:04:05.000")
	case float64:
		if key == "accuracy" {
			return fmt.Sprintf("%.4f", v)
		}
		return fmt.Sprintf("%g", v)
	case string:
		if key == "model_id" && len(v) > 8 {
			return v[:8]
		}
		if len(v) > 80 {
			return fmt.Sprintf("%s...", v[:80])
		}
		if strings.ContainsAny(v, " =") {
			return fmt.Sprintf("%q", v)
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ILAFormatter prefixes classifier events with a short tag
type ILAFormatter struct {
	CustomFormatter
}

// Format formats a log entry with its event prefix
func (f *ILAFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.format(entry, eventPrefix(entry.Message)), nil
}

// eventPrefix returns the tag for a log message, or "" for general messages
func eventPrefix(message string) string {
	switch {
	case strings.HasPrefix(message, "Training"):
		return "TRAIN"
	case strings.HasPrefix(message, "Rule"), strings.HasPrefix(message, "Class exhausted"):
		return "RULE"
	case strings.HasPrefix(message, "Row classified"), strings.HasPrefix(message, "Prediction"):
		return "PREDICT"
	case strings.HasPrefix(message, "Model store"):
		return "STORE"
	default:
		return ""
	}
}
