/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: predict.go
Description: Predict command. Loads a saved model, classifies every row of a test table and
reports accuracy against the table's labels when any of them is known.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/ila-classifier/pkg/evaluation"
	"github.com/kleascm/ila-classifier/pkg/loader"
	"github.com/kleascm/ila-classifier/pkg/model"
	"github.com/kleascm/ila-classifier/pkg/store"
	"github.com/kleascm/ila-classifier/pkg/utils"
	"github.com/spf13/cobra"
)

// PredictionReport is written to the results directory after prediction
type PredictionReport struct {
	ModelID string        `json:"model_id"`
	Source  string        `json:"source"`
	Result  *model.Result `json:"result"`
	Version string        `json:"version"`
}

// RunPredict executes the predict command
func RunPredict(cmd *cobra.Command, args []string) error {
	cfg, logger, err := prepare(cmd, "predict.results_dir")
	if err != nil {
		return err
	}
	defer logger.Close()

	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	ref, source := args[0], args[1]

	// ref is a model file for the file store and a model id for sqlite
	path, id := ref, ""
	if store.Kind(cfg.Store) == store.KindSQLite {
		path = cfg.Database
		if ref != "latest" {
			id = ref
		}
	}

	fmt.Fprintf(out, "Loading model from %s...\n", ref)

	s, err := openStore(cfg, path)
	if err != nil {
		return err
	}
	defer s.Close()

	m, err := store.LoadModel(ctx, s, id)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	logger.LogStore("load", path, m.ID(), nil)

	fmt.Fprintf(out, "Making predictions on %s...\n", source)

	t, err := loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to load test data: %w", err)
	}

	res, err := m.PredictWithAccuracy(t)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	fmt.Fprintln(out, "\n== Predictions ==")
	for i, pred := range res.Predictions {
		fmt.Fprintf(out, "Instance %d: %s\n", i+1, pred)
		logger.LogPrediction(res.IDs[i], pred, res.RuleIndex[i], nil)
	}

	if res.HasAccuracy {
		fmt.Fprintf(out, "\nAccuracy: %.4f (%.2f%%)\n", res.Accuracy, res.Accuracy*100)
	} else {
		fmt.Fprintln(out, "\nNo true labels available for accuracy calculation")
	}
	logger.LogAccuracy(res.Accuracy, len(res.Predictions), res.HasAccuracy, map[string]interface{}{
		"model_id": m.ID(),
	})

	if cfg.Confusion && res.HasAccuracy {
		cm := evaluation.FromResult(res, m.Training().InvMapY)
		fmt.Fprintln(out, "\n== Confusion Matrix ==")
		fmt.Fprint(out, cm.String())
	}

	if cfg.ResultsDir != "" {
		report := &PredictionReport{
			ModelID: m.ID(),
			Source:  source,
			Result:  res,
			Version: Version,
		}
		path, err := utils.WriteResult(cfg.ResultsDir, "predict", Version, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Prediction report written to %s\n", path)
	}

	return nil
}
