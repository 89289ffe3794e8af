/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: results_writer.go
Description: Utility for writing training and prediction results as JSON files.
Handles timestamped, versioned, and kind-specific subdirectory naming.
*/

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteResult writes result to <dir>/<kind>/ with a timestamped, versioned file name
func WriteResult(dir, kind, version string, result interface{}) (string, error) {
	resultsDir := filepath.Join(dir, kind)
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	// 2024-06-11_01-30-00.000_train_v1.0.0.json
	timestamp := time.Now().Format("2006-01-02_15-04-05.000")
	filePath := filepath.Join(resultsDir, fmt.Sprintf("%s_%s_v%s.json", timestamp, kind, version))

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write results file: %w", err)
	}

	return filePath, nil
}
