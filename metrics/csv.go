package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

var csvHeader = []string{
	"run", "lambda", "percent", "num_nodes",
	"allies", "homophily", "degree", "variable", "value",
}

// WriteCSV exports the metrics table to a delimited file with a header row.
func WriteCSV(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Run),
			strconv.FormatFloat(row.Lambda, 'g', -1, 64),
			strconv.FormatFloat(row.Percent, 'g', -1, 64),
			strconv.Itoa(row.NumNodes),
			strconv.FormatBool(row.Allies),
			strconv.FormatBool(row.Homophily),
			strconv.Itoa(row.Degree),
			row.Variable,
			strconv.FormatFloat(row.Value, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ReadCSV loads a metrics file written by WriteCSV.
func ReadCSV(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("metrics file %s is empty", path)
	}

	var rows []Row
	for _, record := range records[1:] {
		if len(record) != len(csvHeader) {
			return nil, fmt.Errorf("metrics file %s: expected %d columns, got %d", path, len(csvHeader), len(record))
		}

		run, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, err
		}
		lambda, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, err
		}
		percent, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, err
		}
		numNodes, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, err
		}
		allies, err := strconv.ParseBool(record[4])
		if err != nil {
			return nil, err
		}
		homophily, err := strconv.ParseBool(record[5])
		if err != nil {
			return nil, err
		}
		degree, err := strconv.Atoi(record[6])
		if err != nil {
			return nil, err
		}
		value, err := strconv.ParseFloat(record[8], 64)
		if err != nil {
			return nil, err
		}

		rows = append(rows, Row{
			Run:       run,
			Lambda:    lambda,
			Percent:   percent,
			NumNodes:  numNodes,
			Allies:    allies,
			Homophily: homophily,
			Degree:    degree,
			Variable:  record[7],
			Value:     value,
		})
	}

	return rows, nil
}
