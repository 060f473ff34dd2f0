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

	"github.com/montanaflynn/stats"
	"github.com/sjwhitworth/golearn/base"
)

const (
	// LogisticRegressionName is the name of logistic regression model.
	LogisticRegressionName = "LogisticRegression"

	// LogisticRegressionType is the artifact type of logistic regression model.
	LogisticRegressionType = "logistic_regression"
)

// LogisticRegression is a fitted binary or multinomial logistic regression.
type LogisticRegression struct {
	Classes     []int       `json:"classes_"`
	Coef        [][]float64 `json:"coef_"`
	Intercept   []float64   `json:"intercept_"`
	NFeaturesIn int         `json:"n_features_in_"`
}

func (lr *LogisticRegression) init() error {
	if len(lr.Coef) == 0 {
		return errors.New("logistic regression requires coef_")
	}

	width := len(lr.Coef[0])
	for _, row := range lr.Coef {
		if len(row) != width {
			return errors.New("logistic regression has ragged coef_")
		}
	}

	if width == 0 {
		return errors.New("logistic regression has empty coef_")
	}

	if lr.NFeaturesIn == 0 {
		lr.NFeaturesIn = width
	}

	if lr.NFeaturesIn != width {
		return fmt.Errorf("logistic regression has %d coefficients but n_features_in_ is %d", width, lr.NFeaturesIn)
	}

	if len(lr.Intercept) == 0 {
		lr.Intercept = make([]float64, len(lr.Coef))
	}

	if len(lr.Intercept) != len(lr.Coef) {
		return fmt.Errorf("logistic regression has %d intercept_ values for %d coef_ rows", len(lr.Intercept), len(lr.Coef))
	}

	if len(lr.Classes) == 0 {
		n := len(lr.Coef)
		if n == 1 {
			n = 2
		}

		lr.Classes = make([]int, n)
		for i := range lr.Classes {
			lr.Classes[i] = i
		}
	}

	if (len(lr.Coef) == 1 && len(lr.Classes) != 2) || (len(lr.Coef) > 1 && len(lr.Coef) != len(lr.Classes)) {
		return fmt.Errorf("logistic regression has %d classes_ for %d coef_ rows", len(lr.Classes), len(lr.Coef))
	}

	return nil
}

// NumFeatures returns the number of features seen during fit.
func (lr *LogisticRegression) NumFeatures() int {
	return lr.NFeaturesIn
}

// Predict returns the label of the most probable class of each row.
func (lr *LogisticRegression) Predict(X [][]float64) ([]int, error) {
	proba, err := lr.PredictProba(X)
	if err != nil {
		return nil, err
	}

	labels := make([]int, len(proba))
	for i, p := range proba {
		best := 0
		for j := range p {
			if p[j] > p[best] {
				best = j
			}
		}

		labels[i] = lr.Classes[best]
	}

	return labels, nil
}

// PredictProba returns the probability of each class of each row,
// columns follow classes_.
func (lr *LogisticRegression) PredictProba(X [][]float64) ([][]float64, error) {
	scores, err := lr.decisionFunction(X)
	if err != nil {
		return nil, err
	}

	proba := make([][]float64, len(scores))
	if len(lr.Coef) == 1 {
		column := make([]float64, len(scores))
		for i, s := range scores {
			column[i] = s[0]
		}

		positive, err := stats.Sigmoid(column)
		if err != nil {
			return nil, err
		}

		for i, p := range positive {
			proba[i] = []float64{1 - p, p}
		}

		return proba, nil
	}

	for i, s := range scores {
		p, err := stats.SoftMax(s)
		if err != nil {
			return nil, err
		}

		proba[i] = p
	}

	return proba, nil
}

// decisionFunction returns the linear score of each class of each row.
func (lr *LogisticRegression) decisionFunction(X [][]float64) ([][]float64, error) {
	if lr.NFeaturesIn == 0 {
		return nil, ErrNotFitted
	}

	if len(X) == 0 {
		return nil, ErrEmptyInput
	}

	if err := checkFeatures(LogisticRegressionName, X, lr.NFeaturesIn); err != nil {
		return nil, err
	}

	inst, attrSpecs, err := newInstances(X)
	if err != nil {
		return nil, err
	}

	scores := make([][]float64, len(X))
	if err := inst.MapOverRows(attrSpecs, func(row [][]byte, i int) (bool, error) {
		score := make([]float64, len(lr.Coef))
		for c, coef := range lr.Coef {
			score[c] = lr.Intercept[c]
			for j, r := range row {
				score[c] += base.UnpackBytesToFloat(r) * coef[j]
			}
		}

		scores[i] = score
		return true, nil
	}); err != nil {
		return nil, err
	}

	return scores, nil
}

// newInstances loads rows into a dense instance grid with a float attribute per column.
func newInstances(X [][]float64) (*base.DenseInstances, []base.AttributeSpec, error) {
	inst := base.NewDenseInstances()
	attrSpecs := make([]base.AttributeSpec, len(X[0]))
	for j := range attrSpecs {
		attrSpecs[j] = inst.AddAttribute(base.NewFloatAttribute(fmt.Sprintf("float%d", j)))
	}

	if err := inst.Extend(len(X)); err != nil {
		return nil, nil, err
	}

	for i, row := range X {
		for j, x := range row {
			inst.Set(attrSpecs[j], i, base.PackFloatToBytes(x))
		}
	}

	return inst, attrSpecs, nil
}
