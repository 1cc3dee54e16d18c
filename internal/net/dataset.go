package net

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Example is one (input, target) training pair.
type Example struct {
	Input  []float64
	Target []float64
}

// OneHot returns a vector of length classes with a 1 at label.
func OneHot(label, classes int) []float64 {
	v := make([]float64, classes)
	v[label] = 1
	return v
}

// XORExamples returns the four XOR truth table rows.
func XORExamples() []Example {
	return []Example{
		{Input: []float64{0, 0}, Target: []float64{0}},
		{Input: []float64{0, 1}, Target: []float64{1}},
		{Input: []float64{1, 0}, Target: []float64{1}},
		{Input: []float64{1, 1}, Target: []float64{0}},
	}
}

// Trading classes, in output order.
const (
	ClassBuy = iota
	ClassSell
	ClassIgnore
	NumTradingClasses
)

// TradingExamples returns the built-in labelled indicator set. Inputs are
// [rsi/100, ma_gap, trend].
func TradingExamples() []Example {
	rows := []struct {
		x     []float64
		label int
	}{
		{[]float64{0.2, 0.01, 1}, ClassBuy},
		{[]float64{0.25, 0.02, 1}, ClassBuy},
		{[]float64{0.8, -0.02, -1}, ClassSell},
		{[]float64{0.75, -0.03, -1}, ClassSell},
		{[]float64{0.5, 0.0, 0}, ClassIgnore},
		{[]float64{0.55, 0.0, 0}, ClassIgnore},
	}
	examples := make([]Example, len(rows))
	for i, r := range rows {
		examples[i] = Example{Input: r.x, Target: OneHot(r.label, NumTradingClasses)}
	}
	return examples
}

// LoadCSV loads classification examples from a CSV file.
// labelCol holds an integer class in [0, classes), -1 selecting the last
// column; every other column is a feature, in file order. hasHeader skips the
// first line if true.
func LoadCSV(filename string, labelCol, classes int, hasHeader bool) ([]Example, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}

	startRow := 0
	if hasHeader {
		startRow = 1
	}
	if len(records) <= startRow {
		return nil, errors.New("csv file has no data rows")
	}

	numCols := len(records[startRow])
	if labelCol == -1 {
		labelCol = numCols - 1
	}
	if labelCol < 0 || labelCol >= numCols {
		return nil, errors.Errorf("label column %d out of range for %d columns", labelCol, numCols)
	}
	if numCols < 2 {
		return nil, errors.New("csv needs at least one feature column and a label column")
	}

	examples := make([]Example, 0, len(records)-startRow)
	for i := startRow; i < len(records); i++ {
		record := records[i]
		if len(record) != numCols {
			return nil, errors.Errorf("inconsistent number of columns at row %d", i)
		}

		input := make([]float64, 0, numCols-1)
		label := -1
		for j, valStr := range record {
			if j == labelCol {
				label, err = strconv.Atoi(valStr)
				if err != nil {
					return nil, errors.Wrapf(err, "failed to parse label at row %d", i)
				}
				continue
			}
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse value at row %d, col %d", i, j)
			}
			input = append(input, val)
		}
		if label < 0 || label >= classes {
			return nil, errors.Errorf("label %d at row %d out of range [0, %d)", label, i, classes)
		}
		examples = append(examples, Example{Input: input, Target: OneHot(label, classes)})
	}
	return examples, nil
}
