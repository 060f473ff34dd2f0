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

package types

import (
	"fmt"
	"strings"
)

// MaxGPAColumns is the number of grade-point columns every result carries.
const MaxGPAColumns = 6

const (
	// ConfidenceNone is the confidence of a result without prediction.
	ConfidenceNone = "-"
)

// Status is the outcome of a prediction.
type Status string

const (
	// StatusOnTime is the status of student predicted to graduate on time.
	StatusOnTime Status = "on-time"

	// StatusLate is the status of student predicted to graduate late.
	StatusLate Status = "late"

	// StatusInvalidSemester is the status of record whose semester count has no model.
	StatusInvalidSemester Status = "invalid semester"

	// StatusFailed is the status of record whose prediction pipeline failed.
	StatusFailed Status = "failed"
)

// Record is a raw academic-progress record, values are coerced on use.
type Record struct {
	// Name is student name.
	Name string

	// ID is student id.
	ID string

	// Semester is the declared semester count.
	Semester any

	// TotalActivity is total credit-activity count.
	TotalActivity any

	// CompletedCourses is completed course count.
	CompletedCourses any

	// GPAs is grade-point average keyed by semester index, starts with 1.
	GPAs map[int]any
}

// GPA returns grade-point average of the semester index.
func (r *Record) GPA(index int) any {
	if r.GPAs == nil {
		return nil
	}

	return r.GPAs[index]
}

// NewRecordFromJSON returns a record from a decoded json object,
// it reads semester, total_tak, jumlah_co, nama, nim and ipk{n} keys.
func NewRecordFromJSON(data map[string]any) *Record {
	r := &Record{
		Name:             stringValue(data["nama"]),
		ID:               stringValue(data["nim"]),
		Semester:         data["semester"],
		TotalActivity:    data["total_tak"],
		CompletedCourses: data["jumlah_co"],
		GPAs:             make(map[int]any),
	}

	for key, value := range data {
		if !strings.HasPrefix(key, "ipk") {
			continue
		}

		var index int
		if _, err := fmt.Sscanf(key, "ipk%d", &index); err != nil || index <= 0 {
			continue
		}

		if fmt.Sprintf("ipk%d", index) != key {
			continue
		}

		r.GPAs[index] = value
	}

	return r
}

// NewRecordFromBatchRow returns a record from a csv row.
func NewRecordFromBatchRow(row *BatchRow) *Record {
	r := &Record{
		Name:             row.Name,
		ID:               row.ID,
		TotalActivity:    row.TotalActivity,
		CompletedCourses: row.CompletedCourses,
		GPAs:             make(map[int]any, MaxGPAColumns),
	}

	for i, gpa := range row.GPAList() {
		r.GPAs[i+1] = gpa
	}

	return r
}

func stringValue(value any) string {
	if value == nil {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}

// BatchRow is a row of the batch prediction csv.
type BatchRow struct {
	// Name is student name.
	Name string `csv:"Nama Mahasiswa"`

	// ID is student id.
	ID string `csv:"NIM"`

	// TotalActivity is total credit-activity count.
	TotalActivity string `csv:"Total TAK"`

	// CompletedCourses is completed course count.
	CompletedCourses string `csv:"Jumlah CO"`

	GPA1 string `csv:"IPK1"`
	GPA2 string `csv:"IPK2"`
	GPA3 string `csv:"IPK3"`
	GPA4 string `csv:"IPK4"`
	GPA5 string `csv:"IPK5"`
	GPA6 string `csv:"IPK6"`
}

// GPAList returns grade-point columns in semester order.
func (r *BatchRow) GPAList() []string {
	return []string{r.GPA1, r.GPA2, r.GPA3, r.GPA4, r.GPA5, r.GPA6}
}

// Result is the prediction result of a record.
type Result struct {
	// Name is echoed student name.
	Name string

	// ID is echoed student id.
	ID string

	// Semester is the semester count used for prediction.
	Semester int

	// TotalActivity is coerced total credit-activity count.
	TotalActivity float64

	// CompletedCourses is coerced completed course count.
	CompletedCourses float64

	// GPAs is coerced grade-point averages padded with zero.
	GPAs [MaxGPAColumns]float64

	// Status is prediction status.
	Status Status

	// Probability is the probability of predicted label, it is zero
	// when no prediction was made.
	Probability float64

	// Confidence is the formatted probability, e.g. 87.50%.
	Confidence string

	// Message is the failure message.
	Message string
}

// Predicted returns whether the result carries a label.
func (r *Result) Predicted() bool {
	return r.Status == StatusOnTime || r.Status == StatusLate
}

// BatchResultRow is a row of batch prediction output.
type BatchResultRow struct {
	Name             string  `json:"nama" csv:"nama"`
	ID               string  `json:"nim" csv:"nim"`
	Semester         int     `json:"semester" csv:"semester"`
	TotalActivity    float64 `json:"tak" csv:"tak"`
	CompletedCourses float64 `json:"co" csv:"co"`
	Status           Status  `json:"status" csv:"status"`
	Confidence       string  `json:"confidence" csv:"confidence"`
	Message          string  `json:"message,omitempty" csv:"message"`
	GPA1             float64 `json:"ipk1" csv:"ipk1"`
	GPA2             float64 `json:"ipk2" csv:"ipk2"`
	GPA3             float64 `json:"ipk3" csv:"ipk3"`
	GPA4             float64 `json:"ipk4" csv:"ipk4"`
	GPA5             float64 `json:"ipk5" csv:"ipk5"`
	GPA6             float64 `json:"ipk6" csv:"ipk6"`
}

// NewBatchResultRow converts result to output row.
func NewBatchResultRow(r *Result) BatchResultRow {
	return BatchResultRow{
		Name:             r.Name,
		ID:               r.ID,
		Semester:         r.Semester,
		TotalActivity:    r.TotalActivity,
		CompletedCourses: r.CompletedCourses,
		Status:           r.Status,
		Confidence:       r.Confidence,
		Message:          r.Message,
		GPA1:             r.GPAs[0],
		GPA2:             r.GPAs[1],
		GPA3:             r.GPAs[2],
		GPA4:             r.GPAs[3],
		GPA5:             r.GPAs[4],
		GPA6:             r.GPAs[5],
	}
}

// NewBatchResultRows converts results to output rows.
func NewBatchResultRows(results []*Result) []BatchResultRow {
	rows := make([]BatchResultRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, NewBatchResultRow(r))
	}

	return rows
}
