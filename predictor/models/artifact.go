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
	"encoding/json"
	"fmt"
	"io"

	"github.com/mitchellh/mapstructure"
)

const (
	// ArtifactTypeKey is the key of artifact type in exported model.
	ArtifactTypeKey = "type"
)

// DecodeMinMaxScaler decodes an exported min-max scaler.
func DecodeMinMaxScaler(r io.Reader) (*MinMaxScaler, error) {
	data, err := readArtifact(r)
	if err != nil {
		return nil, err
	}

	s := &MinMaxScaler{}
	if err := decodeArtifact(data, s); err != nil {
		return nil, err
	}

	if err := s.init(); err != nil {
		return nil, err
	}

	return s, nil
}

// DecodeStandardScaler decodes an exported standard scaler.
func DecodeStandardScaler(r io.Reader) (*StandardScaler, error) {
	data, err := readArtifact(r)
	if err != nil {
		return nil, err
	}

	s := &StandardScaler{}
	if err := decodeArtifact(data, s); err != nil {
		return nil, err
	}

	if err := s.init(); err != nil {
		return nil, err
	}

	return s, nil
}

// DecodeClassifier decodes an exported classifier, the artifact type
// defaults to logistic regression.
func DecodeClassifier(r io.Reader) (Classifier, error) {
	data, err := readArtifact(r)
	if err != nil {
		return nil, err
	}

	artifactType := LogisticRegressionType
	if v, ok := data[ArtifactTypeKey]; ok {
		if artifactType, ok = v.(string); !ok {
			return nil, fmt.Errorf("invalid artifact type %v", v)
		}
	}

	switch artifactType {
	case LogisticRegressionType:
		lr := &LogisticRegression{}
		if err := decodeArtifact(data, lr); err != nil {
			return nil, err
		}

		if err := lr.init(); err != nil {
			return nil, err
		}

		return lr, nil
	}

	return nil, fmt.Errorf("unknown classifier type %s", artifactType)
}

func readArtifact(r io.Reader) (map[string]any, error) {
	var data map[string]any
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}

	if data == nil {
		return nil, fmt.Errorf("decode artifact: empty object")
	}

	return data, nil
}

func decodeArtifact(data map[string]any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  result,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
