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
)

var (
	// ErrNotFitted is returned when model has no fitted parameters.
	ErrNotFitted = errors.New("model is not fitted")

	// ErrEmptyInput is returned when no rows are given.
	ErrEmptyInput = errors.New("empty input")
)

// FeatureMismatchError is returned when input width differs from fitted width.
type FeatureMismatchError struct {
	Model    string
	Got      int
	Expected int
}

func (e *FeatureMismatchError) Error() string {
	return fmt.Sprintf("X has %d features, but %s is expecting %d features as input", e.Got, e.Model, e.Expected)
}
