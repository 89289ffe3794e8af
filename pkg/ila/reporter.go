/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter hooks for the induction engine. Lets callers observe rule emission
and classes that exhaust the attribute-subset search, with a logrus-backed implementation.
*/

package ila

import (
	"github.com/sirupsen/logrus"
)

// Reporter receives induction events.
type Reporter interface {
	// OnRuleEmitted is called after a rule is appended; covered is the number of rows it newly covers.
	OnRuleEmitted(rule Rule, covered int)
	// OnClassExhausted is called when a class runs out of subset sizes with rows still uncovered.
	OnClassExhausted(class int, uncovered int)
}

// NopReporter ignores every event
type NopReporter struct{}

func (NopReporter) OnRuleEmitted(Rule, int)   {}
func (NopReporter) OnClassExhausted(int, int) {}

// LoggerReporter logs induction events through logrus.
type LoggerReporter struct {
	logger *logrus.Logger
}

// NewLoggerReporter creates a new LoggerReporter.
func NewLoggerReporter(logger *logrus.Logger) *LoggerReporter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LoggerReporter{logger: logger}
}

// OnRuleEmitted logs a rule at debug level.
func (r *LoggerReporter) OnRuleEmitted(rule Rule, covered int) {
	r.logger.WithFields(logrus.Fields{
		"class":      rule.Class(),
		"conditions": len(rule.Conditions()),
		"covered":    covered,
	}).Debug("Rule emitted")
}

// OnClassExhausted logs a class that could not be fully covered.
func (r *LoggerReporter) OnClassExhausted(class int, uncovered int) {
	r.logger.WithFields(logrus.Fields{
		"class":     class,
		"uncovered": uncovered,
	}).Warn("Class exhausted attribute subsets")
}
