/*
 *     Copyright 2023 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package storage

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/Meddbb/study-delay-prediction-system/predictor/types"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ReadBatch reads rows of the batch prediction csv, the first line is header.
func ReadBatch(r io.Reader) ([]*types.BatchRow, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	var rows []*types.BatchRow
	if err := gocsv.UnmarshalCSV(newBatchReader(br), &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

// newBatchReader returns a csv reader accepting rows shorter or longer than
// the header, missing trailing cells decode as empty.
func newBatchReader(r io.Reader) gocsv.CSVReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr
}

// WriteResults writes rows of batch prediction output with header.
func WriteResults(w io.Writer, rows []types.BatchResultRow) error {
	return gocsv.Marshal(rows, w)
}
