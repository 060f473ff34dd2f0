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

package registry

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/hashicorp/go-multierror"

	logger "github.com/Meddbb/study-delay-prediction-system/internal/sdlog"
	"github.com/Meddbb/study-delay-prediction-system/predictor/features"
	"github.com/Meddbb/study-delay-prediction-system/predictor/models"
)

// DefaultSemesters is the default supported semester counts.
var DefaultSemesters = []int{3, 4, 5, 6}

// Bundle is the trained classifier and its scalers for one semester count.
type Bundle struct {
	// Classifier predicts the label of normalized feature rows.
	Classifier models.Classifier

	// MinMaxScaler normalizes the count features.
	MinMaxScaler models.Scaler

	// StandardScaler normalizes the GPA and aggregate features.
	StandardScaler models.Scaler
}

// Registry is an immutable mapping from semester count to bundle.
type Registry struct {
	bundles map[int]*Bundle
}

// New returns a registry of bundles.
func New(bundles map[int]*Bundle) *Registry {
	r := &Registry{bundles: make(map[int]*Bundle, len(bundles))}
	for k, b := range bundles {
		r.bundles[k] = b
	}

	return r
}

// Load reads the bundles of semesters from source, any failure aborts the load.
func Load(ctx context.Context, source Source, semesters []int) (*Registry, error) {
	if len(semesters) == 0 {
		return nil, fmt.Errorf("no semester configured")
	}

	var errs error
	bundles := make(map[int]*Bundle, len(semesters))
	for _, k := range semesters {
		bundle, err := loadBundle(ctx, source, k)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("semester %d: %w", k, err))
			continue
		}

		logger.Infof("load model bundle of semester %d from %s", k, source)
		bundles[k] = bundle
	}

	if errs != nil {
		return nil, errs
	}

	return New(bundles), nil
}

// Lookup returns the bundle of semester count.
func (r *Registry) Lookup(k int) (*Bundle, bool) {
	b, ok := r.bundles[k]
	return b, ok
}

// Semesters returns the supported semester counts in ascending order.
func (r *Registry) Semesters() []int {
	semesters := make([]int, 0, len(r.bundles))
	for k := range r.bundles {
		semesters = append(semesters, k)
	}

	sort.Ints(semesters)
	return semesters
}

func loadBundle(ctx context.Context, source Source, k int) (*Bundle, error) {
	var errs error
	classifier, err := loadArtifact(ctx, source, fmt.Sprintf(ModelArtifactFormat, k), features.Len(k), func(r io.Reader) (any, error) {
		return models.DecodeClassifier(r)
	})
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	minMax, err := loadArtifact(ctx, source, fmt.Sprintf(MinMaxScalerArtifactFormat, k), features.CountFeatureNum, func(r io.Reader) (any, error) {
		return models.DecodeMinMaxScaler(r)
	})
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	standard, err := loadArtifact(ctx, source, fmt.Sprintf(StandardScalerArtifactFormat, k), features.Len(k)-features.CountFeatureNum, func(r io.Reader) (any, error) {
		return models.DecodeStandardScaler(r)
	})
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	if errs != nil {
		return nil, errs
	}

	return &Bundle{
		Classifier:     classifier.(models.Classifier),
		MinMaxScaler:   minMax.(models.Scaler),
		StandardScaler: standard.(models.Scaler),
	}, nil
}

func loadArtifact(ctx context.Context, source Source, name string, width int, decode func(io.Reader) (any, error)) (any, error) {
	rc, err := source.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	artifact, err := decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	if fc, ok := artifact.(models.FeatureCounter); ok && fc.NumFeatures() != width {
		return nil, fmt.Errorf("%s expects %d features, but bundle has %d", name, fc.NumFeatures(), width)
	}

	return artifact, nil
}
