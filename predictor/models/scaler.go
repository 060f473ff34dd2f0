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

package models

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MinMaxScalerName is the name of min-max scaler.
	MinMaxScalerName = "MinMaxScaler"

	// StandardScalerName is the name of standard scaler.
	StandardScalerName = "StandardScaler"
)

// MinMaxScaler scales each feature to the fitted range,
// X_scaled = X * scale_ + min_.
type MinMaxScaler struct {
	Min          []float64 `json:"min_"`
	Scale        []float64 `json:"scale_"`
	DataMin      []float64 `json:"data_min_"`
	DataMax      []float64 `json:"data_max_"`
	FeatureRange []float64 `json:"feature_range"`
	Clip         bool      `json:"clip"`
}

// init derives min_ and scale_ from data range when they are not exported.
func (s *MinMaxScaler) init() error {
	if len(s.FeatureRange) == 0 {
		s.FeatureRange = []float64{0, 1}
	}

	if len(s.FeatureRange) != 2 || s.FeatureRange[0] >= s.FeatureRange[1] {
		return fmt.Errorf("invalid feature_range %v", s.FeatureRange)
	}

	if len(s.Min) == 0 && len(s.Scale) == 0 {
		if len(s.DataMin) == 0 || len(s.DataMin) != len(s.DataMax) {
			return errors.New("min-max scaler requires min_ and scale_ or data_min_ and data_max_")
		}

		s.Min = make([]float64, len(s.DataMin))
		s.Scale = make([]float64, len(s.DataMin))
		for i := range s.DataMin {
			s.Scale[i] = (s.FeatureRange[1] - s.FeatureRange[0]) / nonZero(s.DataMax[i]-s.DataMin[i])
			s.Min[i] = s.FeatureRange[0] - s.DataMin[i]*s.Scale[i]
		}
	}

	if len(s.Min) == 0 || len(s.Min) != len(s.Scale) {
		return fmt.Errorf("min-max scaler has %d min_ and %d scale_ values", len(s.Min), len(s.Scale))
	}

	return nil
}

// NumFeatures returns the number of features seen during fit.
func (s *MinMaxScaler) NumFeatures() int {
	return len(s.Scale)
}

// Transform scales rows of features.
func (s *MinMaxScaler) Transform(X [][]float64) ([][]float64, error) {
	if len(s.Scale) == 0 {
		return nil, ErrNotFitted
	}

	if err := checkFeatures(MinMaxScalerName, X, len(s.Scale)); err != nil {
		return nil, err
	}

	result := make([][]float64, len(X))
	for i, row := range X {
		result[i] = make([]float64, len(row))
		for j, x := range row {
			v := x*s.Scale[j] + s.Min[j]
			if s.Clip {
				v = math.Max(s.FeatureRange[0], math.Min(s.FeatureRange[1], v))
			}

			result[i][j] = v
		}
	}

	return result, nil
}

// StandardScaler standardizes each feature by removing the mean and
// scaling to unit variance, X_scaled = (X - mean_) / scale_.
type StandardScaler struct {
	Mean        []float64 `json:"mean_"`
	Scale       []float64 `json:"scale_"`
	Var         []float64 `json:"var_"`
	NFeaturesIn int       `json:"n_features_in_"`
}

// init derives scale_ from var_ when it is not exported.
func (s *StandardScaler) init() error {
	if len(s.Scale) == 0 && len(s.Var) > 0 {
		s.Scale = make([]float64, len(s.Var))
		for i, v := range s.Var {
			s.Scale[i] = math.Sqrt(v)
		}
	}

	for i := range s.Scale {
		s.Scale[i] = nonZero(s.Scale[i])
	}

	if len(s.Mean) == 0 && len(s.Scale) == 0 {
		return errors.New("standard scaler requires mean_ or scale_")
	}

	if len(s.Mean) > 0 && len(s.Scale) > 0 && len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("standard scaler has %d mean_ and %d scale_ values", len(s.Mean), len(s.Scale))
	}

	if s.NFeaturesIn == 0 {
		s.NFeaturesIn = len(s.Mean)
		if s.NFeaturesIn == 0 {
			s.NFeaturesIn = len(s.Scale)
		}
	}

	if (len(s.Mean) > 0 && len(s.Mean) != s.NFeaturesIn) || (len(s.Scale) > 0 && len(s.Scale) != s.NFeaturesIn) {
		return fmt.Errorf("standard scaler parameters do not match n_features_in_ %d", s.NFeaturesIn)
	}

	return nil
}

// NumFeatures returns the number of features seen during fit.
func (s *StandardScaler) NumFeatures() int {
	return s.NFeaturesIn
}

// Transform standardizes rows of features.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if s.NFeaturesIn == 0 {
		return nil, ErrNotFitted
	}

	if err := checkFeatures(StandardScalerName, X, s.NFeaturesIn); err != nil {
		return nil, err
	}

	result := make([][]float64, len(X))
	for i, row := range X {
		result[i] = make([]float64, len(row))
		for j, x := range row {
			if len(s.Mean) > 0 {
				x -= s.Mean[j]
			}

			if len(s.Scale) > 0 {
				x /= s.Scale[j]
			}

			result[i][j] = x
		}
	}

	return result, nil
}

// nonZero replaces a zero scale with one, constant features are left unscaled.
func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}

	return v
}
