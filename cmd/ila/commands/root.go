/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: root.go
Description: Command tree for the ILA classifier CLI. Declares every command and flag and
binds the flags to viper so they can also come from a config file or ILA_* environment
variables.
*/

package commands

import (
	"github.com/kleascm/ila-classifier/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is reported by --version and stamped into result files
const Version = "1.0.0"

// NewRootCommand builds the ila command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ila",
		Short: "ILA - Inductive Learning Algorithm rule classifier",
		Long: `ILA learns an ordered set of IF-THEN rules from categorical training data and
classifies new rows by the first rule that matches, falling back to the majority class.
Tables are read from CSV or Excel files, locally or over HTTP(S).`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags
	rootCmd.PersistentFlags().String("config", "", "Configuration file path")
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().String("log-dir", "./logs", "Log output directory (empty disables log files)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Use JSON log format")
	rootCmd.PersistentFlags().String("store", "file", "Model store (file, sqlite)")
	rootCmd.PersistentFlags().String("db", config.DefaultDatabase, "SQLite database for the sqlite store")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("db"))

	// train
	trainCmd := &cobra.Command{
		Use:   "train <training_file> [model_file]",
		Short: "Learn a rule set and save the model",
		Long: `Train an ILA model on a CSV or Excel table. The first column is the row id, the
last column is the class, and every column in between is a categorical attribute. The learned
rules are printed and the model is saved to model_file (default ila_model.gob) or, with
--store sqlite, to the model database.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: RunTrain,
	}
	trainCmd.Flags().Int("workers", 1, "Parallel subset evaluations during induction (0 = all CPUs)")
	trainCmd.Flags().String("results-dir", "", "Directory for JSON training summaries")
	viper.BindPFlag("workers", trainCmd.Flags().Lookup("workers"))
	viper.BindPFlag("train.results_dir", trainCmd.Flags().Lookup("results-dir"))
	rootCmd.AddCommand(trainCmd)

	// predict
	predictCmd := &cobra.Command{
		Use:   "predict <model_file|model_id> <test_file>",
		Short: "Classify a table with a saved model",
		Long: `Load a saved model and classify every row of the test table. When the test table has
class labels the prediction accuracy is reported. With --store sqlite the first argument is a
model id, or "latest" for the most recently trained model.`,
		Args: cobra.ExactArgs(2),
		RunE: RunPredict,
	}
	predictCmd.Flags().Bool("confusion", false, "Print the confusion matrix")
	predictCmd.Flags().String("results-dir", "", "Directory for JSON prediction reports")
	viper.BindPFlag("confusion", predictCmd.Flags().Lookup("confusion"))
	viper.BindPFlag("predict.results_dir", predictCmd.Flags().Lookup("results-dir"))
	rootCmd.AddCommand(predictCmd)

	// rules
	rootCmd.AddCommand(&cobra.Command{
		Use:   "rules <data_file>",
		Short: "Print the rule set learned from a table without saving a model",
		Args:  cobra.ExactArgs(1),
		RunE:  RunRules,
	})

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newModelsCommand())

	return rootCmd
}
