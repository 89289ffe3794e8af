/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: results_writer_test.go
Description: Tests for the results writer.
*/

package utils_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kleascm/ila-classifier/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResult(t *testing.T) {
	dir := t.TempDir()
	result := map[string]interface{}{"rules": 3, "class": "play"}

	path, err := utils.WriteResult(dir, "train", "1.0.0", result)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "train"), filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "_train_v1.0.0.json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, float64(3), got["rules"])
	assert.Equal(t, "play", got["class"])
}

func TestWriteResultUnmarshalable(t *testing.T) {
	_, err := utils.WriteResult(t.TempDir(), "predict", "1.0.0", make(chan int))
	assert.Error(t, err)
}
