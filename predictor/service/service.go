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

//go:generate mockgen -destination mocks/service_mock.go -source service.go -package mocks

package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	logger "github.com/Meddbb/study-delay-prediction-system/internal/sdlog"
	"github.com/Meddbb/study-delay-prediction-system/pkg/numeric"
	"github.com/Meddbb/study-delay-prediction-system/predictor/features"
	"github.com/Meddbb/study-delay-prediction-system/predictor/metrics"
	"github.com/Meddbb/study-delay-prediction-system/predictor/models"
	"github.com/Meddbb/study-delay-prediction-system/predictor/registry"
	"github.com/Meddbb/study-delay-prediction-system/predictor/types"
)

// Mode is the way of determining semester count of a record.
type Mode int

const (
	// DeclaredSemester uses the semester field of record.
	DeclaredSemester Mode = iota

	// InferredSemester counts the non-missing grade-point columns of record.
	InferredSemester
)

// String returns the metrics label of mode.
func (m Mode) String() string {
	if m == InferredSemester {
		return metrics.BatchMode
	}

	return metrics.SingleMode
}

const (
	// DefaultBatchConcurrency is the default number of rows predicted concurrently.
	DefaultBatchConcurrency = 4

	// onTimeLabel is the classifier label of graduating on time.
	onTimeLabel = 0
)

// Engine is the interface used for predicting study delay.
type Engine interface {
	// Predict runs the prediction pipeline on a single record.
	Predict(record *types.Record, mode Mode) (*types.Result, error)

	// PredictBatch predicts records with inferred semester count,
	// results keep the order of records.
	PredictBatch(ctx context.Context, records []*types.Record) ([]*types.Result, error)
}

type engine struct {
	// registry is the model bundles keyed by semester count.
	registry *registry.Registry

	// concurrency is the number of rows predicted concurrently in a batch.
	concurrency int
}

// Option is a functional option for configuring the engine.
type Option func(e *engine)

// WithBatchConcurrency sets the batch concurrency.
func WithBatchConcurrency(concurrency int) Option {
	return func(e *engine) {
		if concurrency > 0 {
			e.concurrency = concurrency
		}
	}
}

// New returns a new Engine.
func New(registry *registry.Registry, options ...Option) Engine {
	e := &engine{
		registry:    registry,
		concurrency: DefaultBatchConcurrency,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

// Predict runs the prediction pipeline on a single record.
func (e *engine) Predict(record *types.Record, mode Mode) (*types.Result, error) {
	k := SemesterCount(record, mode)
	result := newResult(record, k)
	log := logger.WithStudent(record.Name, record.ID, k)

	bundle, ok := e.registry.Lookup(k)
	if !ok {
		log.Infof("semester %d has no model, supported semesters are %v", k, e.registry.Semesters())
		result.Status = types.StatusInvalidSemester
		result.Confidence = types.ConfidenceNone
		metrics.PredictionCount.WithLabelValues(mode.String(), string(result.Status)).Inc()
		return result, nil
	}

	label, probability, err := run(bundle, features.Assemble(record, k))
	if err != nil {
		log.Errorf("predict failed: %s", err.Error())
		metrics.PredictionFailureCount.WithLabelValues(mode.String()).Inc()
		return nil, err
	}

	result.Status = types.StatusLate
	if label == onTimeLabel {
		result.Status = types.StatusOnTime
	}
	result.Probability = probability
	result.Confidence = FormatConfidence(probability)

	log.Debugf("predict status %s with confidence %s", result.Status, result.Confidence)
	metrics.PredictionCount.WithLabelValues(mode.String(), string(result.Status)).Inc()
	return result, nil
}

// SemesterCount returns the semester count of record in mode.
func SemesterCount(record *types.Record, mode Mode) int {
	if mode == DeclaredSemester {
		return int(numeric.Float(record.Semester, 0))
	}

	var count int
	for i := 1; i <= types.MaxGPAColumns; i++ {
		if !numeric.IsMissing(record.GPA(i)) {
			count++
		}
	}

	return count
}

// FormatConfidence formats probability as a percentage with two decimals.
func FormatConfidence(probability float64) string {
	percent, err := stats.Round(probability*100, 2)
	if err != nil {
		return types.ConfidenceNone
	}

	return fmt.Sprintf("%.2f%%", percent)
}

// run normalizes the feature vector with the bundle scalers and classifies it.
func run(bundle *registry.Bundle, vector features.Vector) (int, float64, error) {
	minMax, err := transform(bundle.MinMaxScaler, vector.MinMaxColumns())
	if err != nil {
		return 0, 0, fmt.Errorf("min-max transform: %w", err)
	}

	standard, err := transform(bundle.StandardScaler, vector.StandardColumns())
	if err != nil {
		return 0, 0, fmt.Errorf("standard transform: %w", err)
	}

	row := make([]float64, 0, len(minMax)+len(standard))
	row = append(row, minMax...)
	row = append(row, standard...)

	X := [][]float64{row}
	labels, err := bundle.Classifier.Predict(X)
	if err != nil {
		return 0, 0, fmt.Errorf("predict: %w", err)
	}

	if len(labels) != 1 {
		return 0, 0, fmt.Errorf("predict: expected 1 label, got %d", len(labels))
	}

	proba, err := bundle.Classifier.PredictProba(X)
	if err != nil {
		return 0, 0, fmt.Errorf("predict proba: %w", err)
	}

	if len(proba) != 1 {
		return 0, 0, fmt.Errorf("predict proba: expected 1 row, got %d", len(proba))
	}

	label := labels[0]
	if label < 0 || label >= len(proba[0]) {
		return 0, 0, fmt.Errorf("label %d is out of range of %d probabilities", label, len(proba[0]))
	}

	p := proba[0][label]
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
		return 0, 0, fmt.Errorf("invalid probability %v of label %d", p, label)
	}

	return label, p, nil
}

func transform(scaler models.Scaler, columns []float64) ([]float64, error) {
	row := make([]float64, len(columns))
	copy(row, columns)

	result, err := scaler.Transform([][]float64{row})
	if err != nil {
		return nil, err
	}

	if len(result) != 1 || len(result[0]) != len(columns) {
		return nil, errors.New("scaler returned unexpected shape")
	}

	return result[0], nil
}

func newResult(record *types.Record, k int) *types.Result {
	result := &types.Result{
		Name:             record.Name,
		ID:               record.ID,
		Semester:         k,
		TotalActivity:    numeric.Float(record.TotalActivity, features.DefaultValue),
		CompletedCourses: numeric.Float(record.CompletedCourses, features.DefaultValue),
	}

	for i := range result.GPAs {
		result.GPAs[i] = numeric.Float(record.GPA(i+1), features.DefaultValue)
	}

	return result
}
