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
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	logger "github.com/Meddbb/study-delay-prediction-system/internal/sdlog"
	"github.com/Meddbb/study-delay-prediction-system/predictor/metrics"
	"github.com/Meddbb/study-delay-prediction-system/predictor/types"
)

// PredictBatch predicts records with inferred semester count. A failed row
// is reported with failed status and does not stop its siblings.
func (e *engine) PredictBatch(ctx context.Context, records []*types.Record) ([]*types.Result, error) {
	log := logger.WithBatch(uuid.NewString(), len(records))
	metrics.BatchRows.Observe(float64(len(records)))

	results := make([]*types.Result, len(records))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.concurrency)
	for i, record := range records {
		i, record := i, record
		if egCtx.Err() != nil {
			break
		}

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			result, err := e.predictRow(record)
			if err != nil {
				log.Warnf("row %d predict failed: %s", i, err.Error())
				result = newResult(record, SemesterCount(record, InferredSemester))
				result.Status = types.StatusFailed
				result.Confidence = types.ConfidenceNone
				result.Message = err.Error()
			}

			results[i] = result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		log.Errorf("predict batch failed: %s", err.Error())
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		log.Errorf("predict batch canceled: %s", err.Error())
		return nil, err
	}

	log.Infof("predict batch finished")
	return results, nil
}

// predictRow predicts a batch row, a panic of the model is returned as error
// and only fails the row.
func (e *engine) predictRow(record *types.Record) (result *types.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.PredictionFailureCount.WithLabelValues(InferredSemester.String()).Inc()
			result, err = nil, fmt.Errorf("predict panic: %v", r)
		}
	}()

	return e.Predict(record, InferredSemester)
}
