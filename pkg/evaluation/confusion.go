/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: confusion.go
Description: Confusion matrix over class codes. Rows are true labels, columns are predicted
labels, and a trailing Unknown row and column collect codes missing from the codebook.
*/

package evaluation

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kleascm/ila-classifier/pkg/dataset"
	"github.com/kleascm/ila-classifier/pkg/model"
	"gonum.org/v1/gonum/mat"
)

// ConfusionMatrix counts (true, predicted) class pairs
type ConfusionMatrix struct {
	labels []string
	counts *mat.Dense
	total  int
}

// NewConfusionMatrix creates an empty matrix for the given class labels.
// The Unknown label is appended as the last row and column.
func NewConfusionMatrix(labels []string) *ConfusionMatrix {
	all := append(append([]string(nil), labels...), model.UnknownLabel)
	return &ConfusionMatrix{
		labels: all,
		counts: mat.NewDense(len(all), len(all), nil),
	}
}

// FromResult builds the matrix of a prediction result against the class codebook
func FromResult(res *model.Result, classes dataset.Codebook) *ConfusionMatrix {
	cm := NewConfusionMatrix(classes.Values)
	for i, truth := range res.Truth {
		cm.Add(truth, res.Codes[i])
	}
	return cm
}

// index maps a class code to its row or column; unknown codes map to the last one
func (cm *ConfusionMatrix) index(code int) int {
	if code < 0 || code >= len(cm.labels)-1 {
		return len(cm.labels) - 1
	}
	return code
}

// Add records one observation
func (cm *ConfusionMatrix) Add(truth, predicted int) {
	i, j := cm.index(truth), cm.index(predicted)
	cm.counts.Set(i, j, cm.counts.At(i, j)+1)
	cm.total++
}

// Labels returns the row and column labels, Unknown last
func (cm *ConfusionMatrix) Labels() []string {
	return cm.labels
}

// Count returns how often truth was predicted as predicted
func (cm *ConfusionMatrix) Count(truth, predicted int) int {
	return int(cm.counts.At(cm.index(truth), cm.index(predicted)))
}

// Total returns the number of observations
func (cm *ConfusionMatrix) Total() int {
	return cm.total
}

// Accuracy returns the share of observations on the diagonal of known labels.
// Observations with an Unknown true label always count as wrong.
func (cm *ConfusionMatrix) Accuracy() float64 {
	if cm.total == 0 {
		return 0
	}
	correct := 0.0
	for i := 0; i < len(cm.labels)-1; i++ {
		correct += cm.counts.At(i, i)
	}
	return correct / float64(cm.total)
}

// Precision returns the share of predictions of label that were right
func (cm *ConfusionMatrix) Precision(label string) float64 {
	k, ok := cm.labelIndex(label)
	if !ok {
		return 0
	}
	predicted := mat.Sum(cm.counts.ColView(k))
	if predicted == 0 {
		return 0
	}
	return cm.counts.At(k, k) / predicted
}

// Recall returns the share of rows labelled label that were predicted as label
func (cm *ConfusionMatrix) Recall(label string) float64 {
	k, ok := cm.labelIndex(label)
	if !ok {
		return 0
	}
	actual := mat.Sum(cm.counts.RowView(k))
	if actual == 0 {
		return 0
	}
	return cm.counts.At(k, k) / actual
}

func (cm *ConfusionMatrix) labelIndex(label string) (int, bool) {
	for i, l := range cm.labels[:len(cm.labels)-1] {
		if l == label {
			return i, true
		}
	}
	return 0, false
}

// String renders the matrix as an aligned table with true labels down the side
func (cm *ConfusionMatrix) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(w, "true \\ pred\t")
	for _, l := range cm.labels {
		fmt.Fprintf(w, "%s\t", l)
	}
	fmt.Fprintln(w)

	rows, cols := cm.counts.Dims()
	for i := 0; i < rows; i++ {
		fmt.Fprintf(w, "%s\t", cm.labels[i])
		for j := 0; j < cols; j++ {
			fmt.Fprintf(w, "%d\t", int(cm.counts.At(i, j)))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return b.String()
}
