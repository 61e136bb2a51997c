// SPDX-License-Identifier: MIT

package metrics

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// Column names of the results table.
const (
	colEpochs     = "epochs"
	colImages     = "images"
	colErrorRatio = "error_ratio"
	colLoss       = "loss"
	colMismatch   = "mismatch_layer_"
	colLayer      = "layer "
	headerPrefix  = "# "
)

// formatFloat renders v as "%.18e".
func formatFloat(v float64) string { return strconv.FormatFloat(v, 'e', 18, 64) }

// WriteResults writes one row per record: epochs, images, error_ratio, loss
// and one mismatch column per layer. The header is a "# "-prefixed comment line.
func WriteResults(w io.Writer, s *Series) error {
	header := []string{colEpochs, colImages, colErrorRatio, colLoss}
	for l := 0; l < s.layers; l++ {
		header = append(header, colMismatch+strconv.Itoa(l))
	}
	rows := make([][]float64, 0, len(s.records))
	for _, r := range s.records {
		row := []float64{r.Epochs, float64(r.Images), r.ErrorRatio, r.Loss}
		rows = append(rows, append(row, r.Mismatch...))
	}

	return writeTable(w, strings.Join(header, ", "), rows)
}

// WriteNorms writes epochs, images and one Frobenius-norm column per layer,
// taking the backward norms when backward is true.
func WriteNorms(w io.Writer, s *Series, backward bool) error {
	names := make([]string, s.layers)
	for l := range names {
		names[l] = strconv.Itoa(l)
	}
	header := colEpochs + ", " + colImages + ", " + colLayer + strings.Join(names, " ,")
	rows := make([][]float64, 0, len(s.records))
	for _, r := range s.records {
		norms := r.ForwardNorms
		if backward {
			norms = r.BackwardNorms
		}
		rows = append(rows, append([]float64{r.Epochs, float64(r.Images)}, norms...))
	}

	return writeTable(w, header, rows)
}

// writeTable emits the comment header and the comma-separated rows.
func writeTable(w io.Writer, header string, rows [][]float64) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(headerPrefix + header + "\n"); err != nil {
		return err
	}
	cw := csv.NewWriter(bw)
	for _, row := range rows {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = formatFloat(v)
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	return bw.Flush()
}
