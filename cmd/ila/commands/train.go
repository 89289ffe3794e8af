/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: train.go
Description: Train and rules commands. Train learns a rule set from a table, prints it and
saves the model to the configured store; rules prints the rule set without saving anything.
*/

package commands

import (
	"fmt"
	"time"

	"github.com/kleascm/ila-classifier/pkg/dataset"
	"github.com/kleascm/ila-classifier/pkg/ila"
	"github.com/kleascm/ila-classifier/pkg/loader"
	"github.com/kleascm/ila-classifier/pkg/model"
	"github.com/kleascm/ila-classifier/pkg/store"
	"github.com/kleascm/ila-classifier/pkg/utils"
	"github.com/spf13/cobra"
)

// TrainingSummary is written to the results directory after training
type TrainingSummary struct {
	ModelID   string          `json:"model_id"`
	Source    string          `json:"source"`
	Store     string          `json:"store"`
	Target    string          `json:"target"`
	TrainedAt time.Time       `json:"trained_at"`
	Duration  string          `json:"duration"`
	Rows      int             `json:"rows"`
	ClassName string          `json:"class_name"`
	Majority  string          `json:"majority"`
	Rules     []string        `json:"rules"`
	Classes   []ClassCoverage `json:"classes"`
	Version   string          `json:"version"`
}

// ClassCoverage reports how well the rules cover one class
type ClassCoverage struct {
	Class     string `json:"class"`
	Rows      int    `json:"rows"`
	Covered   int    `json:"covered"`
	Rules     int    `json:"rules"`
	Exhausted bool   `json:"exhausted"`
}

// RunTrain executes the train command
func RunTrain(cmd *cobra.Command, args []string) error {
	cfg, logger, err := prepare(cmd, "train.results_dir")
	if err != nil {
		return err
	}
	defer logger.Close()

	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	source := args[0]

	target := cfg.StorePath()
	if len(args) > 1 {
		if store.Kind(cfg.Store) == store.KindSQLite {
			return fmt.Errorf("model_file cannot be used with the sqlite store; use --db")
		}
		target = args[1]
	}

	fmt.Fprintf(out, "Training ILA model on %s...\n", source)

	t, err := loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to load training data: %w", err)
	}

	start := time.Now()
	m := model.New(&model.Options{
		Workers:  cfg.Workers,
		Reporter: ila.NewLoggerReporter(logger.GetLogger()),
	})
	if err := m.Fit(t); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	duration := time.Since(start)

	enc := m.Training()
	logger.LogTraining(source, enc.NumRows(), enc.NumAttributes(), enc.InvMapY.Len(), map[string]interface{}{
		"model_id": m.ID(),
		"rules":    len(m.RuleSet()),
		"duration": duration,
		"workers":  cfg.Workers,
	})
	for _, cs := range m.Summary() {
		if cs.Exhausted {
			logger.Warning("Class left partially uncovered", map[string]interface{}{
				"class":     m.Decode(cs.Class),
				"uncovered": len(cs.Uncovered),
			})
		}
	}

	rules, err := m.Rules()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n== Learned Rules ==")
	ruleSet := m.RuleSet()
	for i, rule := range rules {
		fmt.Fprintf(out, "Rule %d: %s\n", i+1, rule)
		logger.LogRule(i+1, rule, matching(ruleSet[i], enc), nil)
	}

	s, err := openStore(cfg, target)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := store.SaveModel(ctx, s, m); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}
	logger.LogStore("save", target, m.ID(), nil)

	if store.Kind(cfg.Store) == store.KindSQLite {
		fmt.Fprintf(out, "\nModel saved to %s (id %s)\n", target, m.ID())
	} else {
		fmt.Fprintf(out, "\nModel saved to %s\n", target)
	}
	fmt.Fprintf(out, "Total rules learned: %d\n", len(rules))

	if cfg.ResultsDir != "" {
		summary := buildTrainingSummary(m, source, cfg.Store, target, duration, rules)
		path, err := utils.WriteResult(cfg.ResultsDir, "train", Version, summary)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Training summary written to %s\n", path)
	}

	return nil
}

// matching counts the training rows a rule matches
func matching(rule ila.Rule, enc *dataset.Encoded) int {
	n := 0
	for _, row := range enc.X {
		if rule.Matches(row) {
			n++
		}
	}
	return n
}

func buildTrainingSummary(m *model.Model, source, kind, target string, d time.Duration, rules []string) *TrainingSummary {
	enc := m.Training()
	summary := &TrainingSummary{
		ModelID:   m.ID(),
		Source:    source,
		Store:     kind,
		Target:    target,
		TrainedAt: m.TrainedAt(),
		Duration:  d.String(),
		Rows:      enc.NumRows(),
		ClassName: enc.ClassName,
		Majority:  m.Decode(m.Majority()),
		Rules:     rules,
		Version:   Version,
	}
	for _, cs := range m.Summary() {
		summary.Classes = append(summary.Classes, ClassCoverage{
			Class:     m.Decode(cs.Class),
			Rows:      cs.Rows,
			Covered:   cs.Covered,
			Rules:     cs.Rules,
			Exhausted: cs.Exhausted,
		})
	}
	return summary
}

// RunRules executes the rules command
func RunRules(cmd *cobra.Command, args []string) error {
	cfg, logger, err := prepare(cmd, "")
	if err != nil {
		return err
	}
	defer logger.Close()

	out := cmd.OutOrStdout()

	t, err := loader.Load(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	enc, err := dataset.Build(t)
	if err != nil {
		return err
	}

	res := ila.NewInducer(&ila.Config{
		Workers:  cfg.Workers,
		Reporter: ila.NewLoggerReporter(logger.GetLogger()),
	}).Induce(enc)

	rules, err := ila.FormatRules(res.Rules, enc)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n== ILA rule set ==")
	for i, rule := range rules {
		fmt.Fprintf(out, "Rule %d: %s\n", i+1, rule)
	}
	return nil
}
