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
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meddbb/study-delay-prediction-system/pkg/objectstorage/mocks"
	"github.com/Meddbb/study-delay-prediction-system/predictor/models"
)

func TestRegistry_New(t *testing.T) {
	bundles := map[int]*Bundle{
		6: {},
		3: {},
		4: {},
	}
	r := New(bundles)
	delete(bundles, 4)

	assert := assert.New(t)
	assert.Equal([]int{3, 4, 6}, r.Semesters())

	_, ok := r.Lookup(4)
	assert.True(ok)
	_, ok = r.Lookup(5)
	assert.False(ok)
	_, ok = r.Lookup(0)
	assert.False(ok)
}

func TestRegistry_Load(t *testing.T) {
	tests := []struct {
		name      string
		mock      func(t *testing.T) string
		semesters []int
		expect    func(t *testing.T, r *Registry, err error)
	}{
		{
			name: "load bundle from testdata",
			mock: func(t *testing.T) string {
				return "./testdata"
			},
			semesters: []int{3},
			expect: func(t *testing.T, r *Registry, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.Equal([]int{3}, r.Semesters())

				b, ok := r.Lookup(3)
				assert.True(ok)
				assert.IsType(&models.LogisticRegression{}, b.Classifier)
				assert.IsType(&models.MinMaxScaler{}, b.MinMaxScaler)
				assert.IsType(&models.StandardScaler{}, b.StandardScaler)
			},
		},
		{
			name: "missing semester artifacts",
			mock: func(t *testing.T) string {
				return "./testdata"
			},
			semesters: []int{3, 4},
			expect: func(t *testing.T, r *Registry, err error) {
				assert := assert.New(t)
				assert.Nil(r)
				assert.Error(err)
				assert.Contains(err.Error(), "semester 4")
				assert.Contains(err.Error(), "model_sem4.json")
				assert.Contains(err.Error(), "scaler_minmax_sem4.json")
				assert.Contains(err.Error(), "scaler_standard_sem4.json")
				assert.NotContains(err.Error(), "semester 3")
			},
		},
		{
			name: "classifier width does not match bundle",
			mock: func(t *testing.T) string {
				dir := t.TempDir()
				copyArtifacts(t, dir)
				writeArtifact(t, dir, "model_sem3.json", `{"coef_": [[1, 2, 3]], "intercept_": [0], "n_features_in_": 3}`)
				return dir
			},
			semesters: []int{3},
			expect: func(t *testing.T, r *Registry, err error) {
				assert := assert.New(t)
				assert.Nil(r)
				assert.Error(err)
				assert.Contains(err.Error(), "model_sem3.json expects 3 features, but bundle has 7")
			},
		},
		{
			name: "standard scaler width does not match bundle",
			mock: func(t *testing.T) string {
				dir := t.TempDir()
				copyArtifacts(t, dir)
				writeArtifact(t, dir, "scaler_standard_sem3.json", `{"mean_": [0, 0], "var_": [1, 1]}`)
				return dir
			},
			semesters: []int{3},
			expect: func(t *testing.T, r *Registry, err error) {
				assert := assert.New(t)
				assert.Nil(r)
				assert.Error(err)
				assert.Contains(err.Error(), "scaler_standard_sem3.json expects 2 features, but bundle has 5")
			},
		},
		{
			name: "malformed artifact",
			mock: func(t *testing.T) string {
				dir := t.TempDir()
				copyArtifacts(t, dir)
				writeArtifact(t, dir, "scaler_minmax_sem3.json", `{`)
				return dir
			},
			semesters: []int{3},
			expect: func(t *testing.T, r *Registry, err error) {
				assert := assert.New(t)
				assert.Nil(r)
				assert.Error(err)
				assert.Contains(err.Error(), "decode scaler_minmax_sem3.json")
			},
		},
		{
			name: "no semester configured",
			mock: func(t *testing.T) string {
				return "./testdata"
			},
			semesters: nil,
			expect: func(t *testing.T, r *Registry, err error) {
				assert := assert.New(t)
				assert.Nil(r)
				assert.EqualError(err, "no semester configured")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := tc.mock(t)
			r, err := Load(context.Background(), NewLocalSource(dir), tc.semesters)
			tc.expect(t, r, err)
		})
	}
}

func TestRegistry_LoadFromObjectStorage(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(m *mocks.MockObjectStorageMockRecorder)
		expect func(t *testing.T, r *Registry, err error)
	}{
		{
			name: "load bundle from bucket",
			mock: func(m *mocks.MockObjectStorageMockRecorder) {
				for _, name := range []string{"model_sem3.json", "scaler_minmax_sem3.json", "scaler_standard_sem3.json"} {
					data, err := os.ReadFile(filepath.Join("testdata", name))
					if err != nil {
						panic(err)
					}

					key := "models/" + name
					m.IsObjectExist(gomock.Any(), "bucket", key).Return(true, nil).Times(1)
					m.GetObject(gomock.Any(), "bucket", key).Return(io.NopCloser(strings.NewReader(string(data))), nil).Times(1)
				}
			},
			expect: func(t *testing.T, r *Registry, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal([]int{3}, r.Semesters())
			},
		},
		{
			name: "artifact not found in bucket",
			mock: func(m *mocks.MockObjectStorageMockRecorder) {
				m.IsObjectExist(gomock.Any(), "bucket", gomock.Any()).Return(false, nil).Times(3)
			},
			expect: func(t *testing.T, r *Registry, err error) {
				assert := assert.New(t)
				assert.Nil(r)
				assert.Error(err)
				assert.Contains(err.Error(), "object models/model_sem3.json not found in bucket bucket")
			},
		},
		{
			name: "bucket unavailable",
			mock: func(m *mocks.MockObjectStorageMockRecorder) {
				m.IsObjectExist(gomock.Any(), "bucket", gomock.Any()).Return(false, errors.New("foo")).Times(3)
			},
			expect: func(t *testing.T, r *Registry, err error) {
				assert := assert.New(t)
				assert.Nil(r)
				assert.Error(err)
				assert.Contains(err.Error(), "open scaler_standard_sem3.json: foo")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()

			client := mocks.NewMockObjectStorage(ctl)
			tc.mock(client.EXPECT())
			r, err := Load(context.Background(), NewObjectStorageSource(client, "bucket", "models"), []int{3})
			tc.expect(t, r, err)
		})
	}
}

func copyArtifacts(t *testing.T, dir string) {
	for _, name := range []string{"model_sem3.json", "scaler_minmax_sem3.json", "scaler_standard_sem3.json"} {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		writeArtifact(t, dir, name, string(data))
	}
}

func writeArtifact(t *testing.T, dir, name, data string) {
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0600))
}
