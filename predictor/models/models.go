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

//go:generate mockgen -destination mocks/models_mock.go -source models.go -package mocks

package models

// Scaler is the interface used for feature normalization fitted at training time.
type Scaler interface {
	// Transform normalizes rows of features.
	Transform([][]float64) ([][]float64, error)
}

// Classifier is the interface used for trained classification model.
type Classifier interface {
	// Predict returns the label of each row.
	Predict([][]float64) ([]int, error)

	// PredictProba returns the probability of each label for each row,
	// columns follow the order of labels.
	PredictProba([][]float64) ([][]float64, error)
}

// FeatureCounter is implemented by models which know their input width.
type FeatureCounter interface {
	// NumFeatures returns the number of features seen during fit.
	NumFeatures() int
}

func checkFeatures(name string, X [][]float64, n int) error {
	for _, row := range X {
		if len(row) != n {
			return &FeatureMismatchError{Model: name, Got: len(row), Expected: n}
		}
	}

	return nil
}
