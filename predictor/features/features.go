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

package features

import (
	"github.com/montanaflynn/stats"

	"github.com/Meddbb/study-delay-prediction-system/pkg/numeric"
	"github.com/Meddbb/study-delay-prediction-system/predictor/types"
)

const (
	// CountFeatureNum is the number of leading count features,
	// they are normalized by min-max scaler.
	CountFeatureNum = 2

	// AggregateFeatureNum is the number of trailing min and max features.
	AggregateFeatureNum = 2

	// DefaultValue is the value of missing feature.
	DefaultValue = 0.0
)

// Vector is the feature vector of a record, the layout is
// [total_tak, jumlah_co, ipk1..ipkN, min(ipk), max(ipk)].
type Vector []float64

// MinMaxColumns returns the columns normalized by min-max scaler.
func (v Vector) MinMaxColumns() []float64 {
	return v[:CountFeatureNum]
}

// StandardColumns returns the columns normalized by standard scaler.
func (v Vector) StandardColumns() []float64 {
	return v[CountFeatureNum:]
}

// Len returns the expected vector length of semester count.
func Len(semesterCount int) int {
	if semesterCount < 0 {
		semesterCount = 0
	}

	return CountFeatureNum + semesterCount + AggregateFeatureNum
}

// Assemble builds the feature vector of record with the first semesterCount
// grade-point averages, missing ones are filled with zero.
func Assemble(record *types.Record, semesterCount int) Vector {
	v := make(Vector, 0, Len(semesterCount))
	v = append(v,
		numeric.Float(record.TotalActivity, DefaultValue),
		numeric.Float(record.CompletedCourses, DefaultValue),
	)

	gpas := make([]float64, 0, semesterCount)
	for i := 1; i <= semesterCount; i++ {
		gpas = append(gpas, numeric.Float(record.GPA(i), DefaultValue))
	}
	v = append(v, gpas...)

	// Min and Max return error for empty data.
	minGPA, err := stats.Min(gpas)
	if err != nil {
		minGPA = DefaultValue
	}

	maxGPA, err := stats.Max(gpas)
	if err != nil {
		maxGPA = DefaultValue
	}

	return append(v, minGPA, maxGPA)
}
