// Package ingest validates tabular uploads at the system boundary and turns
// them into typed rows. Column identities are resolved here exactly once;
// nothing downstream inspects headers.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"namecheck/types"
)

// ErrEmptyDataset indicates an upload with a header but no data rows.
var ErrEmptyDataset = errors.New("dataset contains no rows")

// ValidationError reports every required column missing from an upload. The
// whole batch is rejected before any processing begins.
type ValidationError struct {
	MissingColumns []string
}

func (e *ValidationError) Error() string {
	return "missing required columns: " + strings.Join(e.MissingColumns, ", ")
}

var trainingColumns = []string{"source1", "source2", "source3", "is_material"}
var predictionColumns = []string{"name1", "name2"}

// ParseTrainingCSV reads a training dataset: three optional name-source
// columns and one boolean label column per row. Rows with an unparseable
// label reject the batch.
func ParseTrainingCSV(r io.Reader) ([]types.TrainingRecord, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}

	cols, err := resolveColumns(header, trainingColumns)
	if err != nil {
		return nil, err
	}

	records := make([]types.TrainingRecord, 0, len(rows))
	for i, row := range rows {
		label, err := parseBool(field(row, cols["is_material"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid is_material value: %w", i+1, err)
		}
		records = append(records, types.TrainingRecord{
			Names: []string{
				field(row, cols["source1"]),
				field(row, cols["source2"]),
				field(row, cols["source3"]),
			},
			IsMaterial: label,
		})
	}

	return records, nil
}

// ParsePredictionCSV reads a prediction dataset with two name columns.
// Rows where either name is blank are skipped; the skip count is returned.
func ParsePredictionCSV(r io.Reader) ([]types.NamePair, int, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, 0, err
	}

	cols, err := resolveColumns(header, predictionColumns)
	if err != nil {
		return nil, 0, err
	}

	pairs := make([]types.NamePair, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		name1 := strings.TrimSpace(field(row, cols["name1"]))
		name2 := strings.TrimSpace(field(row, cols["name2"]))
		if name1 == "" || name2 == "" {
			skipped++
			continue
		}
		pairs = append(pairs, types.NamePair{Name1: name1, Name2: name2})
	}

	return pairs, skipped, nil
}

func readAll(r io.Reader) (header []string, rows [][]string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, ErrEmptyDataset
	}
	if len(all) == 1 {
		return all[0], nil, ErrEmptyDataset
	}
	return all[0], all[1:], nil
}

// resolveColumns maps required column names to indexes, case-insensitively,
// collecting every missing column before failing.
func resolveColumns(header []string, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := make(map[string]int, len(required))
	var missing []string
	for _, name := range required {
		idx, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = idx
	}

	if len(missing) > 0 {
		return nil, &ValidationError{MissingColumns: missing}
	}
	return cols, nil
}

func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "material":
		return true, nil
	case "0", "false", "no", "n", "immaterial":
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized boolean %q", s)
	}
}
