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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes_NewRecordFromJSON(t *testing.T) {
	tests := []struct {
		name   string
		data   map[string]any
		expect func(t *testing.T, r *Record)
	}{
		{
			name: "full record",
			data: map[string]any{
				"nama":      "Ani",
				"nim":       float64(1301),
				"semester":  "3",
				"total_tak": float64(40),
				"jumlah_co": "12",
				"ipk1":      3.2,
				"ipk2":      "3,1",
				"ipk3":      nil,
			},
			expect: func(t *testing.T, r *Record) {
				assert := assert.New(t)
				assert.Equal("Ani", r.Name)
				assert.Equal("1301", r.ID)
				assert.Equal("3", r.Semester)
				assert.Equal(float64(40), r.TotalActivity)
				assert.Equal("12", r.CompletedCourses)
				assert.Equal(3.2, r.GPA(1))
				assert.Equal("3,1", r.GPA(2))
				assert.Nil(r.GPA(3))
				assert.Nil(r.GPA(4))
			},
		},
		{
			name: "ignore malformed grade keys",
			data: map[string]any{
				"ipk0":  1.0,
				"ipk01": 2.0,
				"ipkx":  3.0,
				"ipk7":  3.5,
			},
			expect: func(t *testing.T, r *Record) {
				assert := assert.New(t)
				assert.Len(r.GPAs, 1)
				assert.Equal(3.5, r.GPA(7))
				assert.Empty(r.Name)
				assert.Nil(r.Semester)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, NewRecordFromJSON(tc.data))
		})
	}
}

func TestTypes_NewRecordFromBatchRow(t *testing.T) {
	row := &BatchRow{
		Name:             "Budi",
		ID:               "1302",
		TotalActivity:    "35",
		CompletedCourses: "10",
		GPA1:             "3.5",
		GPA2:             "3.4",
		GPA6:             "",
	}

	r := NewRecordFromBatchRow(row)
	assert := assert.New(t)
	assert.Equal("Budi", r.Name)
	assert.Equal("1302", r.ID)
	assert.Nil(r.Semester)
	assert.Len(r.GPAs, MaxGPAColumns)
	assert.Equal("3.5", r.GPA(1))
	assert.Equal("3.4", r.GPA(2))
	assert.Equal("", r.GPA(6))

	var empty Record
	assert.Nil(empty.GPA(1))
}

func TestTypes_NewBatchResultRows(t *testing.T) {
	results := []*Result{
		{
			Name:             "Ani",
			ID:               "1301",
			Semester:         2,
			TotalActivity:    40,
			CompletedCourses: 12,
			GPAs:             [MaxGPAColumns]float64{3.2, 3.1},
			Status:           StatusOnTime,
			Probability:      0.875,
			Confidence:       "87.50%",
		},
		{
			Name:       "Budi",
			Status:     StatusFailed,
			Confidence: ConfidenceNone,
			Message:    "predict: failed",
		},
	}

	rows := NewBatchResultRows(results)
	assert := assert.New(t)
	assert.Len(rows, 2)
	assert.Equal(BatchResultRow{
		Name:             "Ani",
		ID:               "1301",
		Semester:         2,
		TotalActivity:    40,
		CompletedCourses: 12,
		Status:           StatusOnTime,
		Confidence:       "87.50%",
		GPA1:             3.2,
		GPA2:             3.1,
	}, rows[0])
	assert.Equal(StatusFailed, rows[1].Status)
	assert.Equal("predict: failed", rows[1].Message)

	assert.True(results[0].Predicted())
	assert.False(results[1].Predicted())
	assert.Empty(NewBatchResultRows(nil))
}
