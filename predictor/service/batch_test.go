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

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meddbb/study-delay-prediction-system/predictor/models/mocks"
	"github.com/Meddbb/study-delay-prediction-system/predictor/registry"
	"github.com/Meddbb/study-delay-prediction-system/predictor/types"
)

func newBatchRecord(name string, gpas ...string) *types.Record {
	row := &types.BatchRow{
		Name:             name,
		ID:               name + "-id",
		TotalActivity:    "10",
		CompletedCourses: "5",
	}

	fields := []*string{&row.GPA1, &row.GPA2, &row.GPA3, &row.GPA4, &row.GPA5, &row.GPA6}
	for i, gpa := range gpas {
		*fields[i] = gpa
	}

	return types.NewRecordFromBatchRow(row)
}

func TestEngine_PredictBatch(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	scaler := mocks.NewMockScaler(ctl)
	scaler.EXPECT().Transform(gomock.Any()).DoAndReturn(identity).AnyTimes()
	classifier := mocks.NewMockClassifier(ctl)
	classifier.EXPECT().Predict(gomock.Any()).Return(nil, errors.New("foo")).AnyTimes()

	panicClassifier := mocks.NewMockClassifier(ctl)
	panicClassifier.EXPECT().Predict(gomock.Any()).DoAndReturn(func(X [][]float64) ([]int, error) {
		panic("index out of range")
	}).AnyTimes()

	loaded, ok := loadTestRegistry(t).Lookup(3)
	require.True(t, ok)
	r := registry.New(map[int]*registry.Bundle{
		3: loaded,
		4: {
			Classifier:     classifier,
			MinMaxScaler:   scaler,
			StandardScaler: scaler,
		},
		5: {
			Classifier:     panicClassifier,
			MinMaxScaler:   scaler,
			StandardScaler: scaler,
		},
	})

	tests := []struct {
		name        string
		concurrency int
		records     []*types.Record
		expect      func(t *testing.T, results []*types.Result, err error)
	}{
		{
			name:        "rows keep order and failures are isolated",
			concurrency: 2,
			records: []*types.Record{
				newBatchRecord("a", "2.0", "2.2", "2.1"),
				newBatchRecord("b", "3.0", "3.1"),
				newBatchRecord("c", "3.0", "3.1", "3.2", "3.3"),
				newBatchRecord("d", "2,0", "2.2", "", "", "2.1"),
			},
			expect: func(t *testing.T, results []*types.Result, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				require.Len(t, results, 4)

				assert.Equal("a", results[0].Name)
				assert.Equal(types.StatusLate, results[0].Status)
				assert.Equal(3, results[0].Semester)

				assert.Equal("b", results[1].Name)
				assert.Equal(types.StatusInvalidSemester, results[1].Status)
				assert.Equal(types.ConfidenceNone, results[1].Confidence)
				assert.Equal(2, results[1].Semester)
				assert.Equal([types.MaxGPAColumns]float64{3.0, 3.1, 0, 0, 0, 0}, results[1].GPAs)

				assert.Equal("c", results[2].Name)
				assert.Equal(types.StatusFailed, results[2].Status)
				assert.Equal(types.ConfidenceNone, results[2].Confidence)
				assert.Equal("predict: foo", results[2].Message)
				assert.Equal(4, results[2].Semester)
				assert.Equal(float64(10), results[2].TotalActivity)

				assert.Equal("d", results[3].Name)
				assert.Equal(3, results[3].Semester)
				assert.Equal([types.MaxGPAColumns]float64{2.0, 2.2, 0, 0, 2.1, 0}, results[3].GPAs)
				assert.True(results[3].Predicted())
			},
		},
		{
			name:        "model panic only fails its row",
			concurrency: 2,
			records: []*types.Record{
				newBatchRecord("a", "2.0", "2.2", "2.1"),
				newBatchRecord("e", "3.0", "3.1", "3.2", "3.3", "3.4"),
				newBatchRecord("f", "3.0", "3.1"),
			},
			expect: func(t *testing.T, results []*types.Result, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				require.Len(t, results, 3)

				assert.True(results[0].Predicted())

				assert.Equal("e", results[1].Name)
				assert.Equal(types.StatusFailed, results[1].Status)
				assert.Equal(types.ConfidenceNone, results[1].Confidence)
				assert.Equal("predict panic: index out of range", results[1].Message)
				assert.Equal(5, results[1].Semester)

				assert.Equal(types.StatusInvalidSemester, results[2].Status)
			},
		},
		{
			name:        "empty batch",
			concurrency: 1,
			records:     []*types.Record{},
			expect: func(t *testing.T, results []*types.Result, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(results, 0)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := New(r, WithBatchConcurrency(tc.concurrency))
			results, err := e.PredictBatch(context.Background(), tc.records)
			tc.expect(t, results, err)
		})
	}
}

func TestEngine_PredictBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(loadTestRegistry(t))
	results, err := e.PredictBatch(ctx, []*types.Record{
		newBatchRecord("a", "2.0", "2.2", "2.1"),
	})

	assert := assert.New(t)
	assert.Nil(results)
	assert.ErrorIs(err, context.Canceled)
}
