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

package numeric

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Float converts value to float64, it returns def when value is nil, NaN,
// blank or can not be parsed. Text uses comma or period as decimal separator,
// e.g. "3,64" and "3.64" both convert to 3.64.
func Float(value any, def float64) float64 {
	f, ok := parse(value)
	if !ok {
		return def
	}

	return f
}

// Floats converts values to float64 element-wise, see Float.
func Floats(values []any, def float64) []float64 {
	result := make([]float64, 0, len(values))
	for _, value := range values {
		result = append(result, Float(value, def))
	}

	return result
}

// IsMissing returns whether value carries no parseable number.
func IsMissing(value any) bool {
	_, ok := parse(value)
	return !ok
}

func parse(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case bool:
		if v {
			f = 1
		}
	case json.Number:
		return parseString(string(v))
	case string:
		return parseString(v)
	default:
		return 0, false
	}

	if math.IsNaN(f) {
		return 0, false
	}

	return f, true
}

func parseString(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}

	return f, true
}
