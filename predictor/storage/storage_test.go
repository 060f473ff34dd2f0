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

package storage

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meddbb/study-delay-prediction-system/predictor/types"
)

var mockRows = []types.BatchResultRow{
	{
		Name:       "Andi",
		ID:         "1301001",
		Semester:   3,
		Status:     types.StatusLate,
		Confidence: "99.98%",
		GPA1:       2.0,
		GPA2:       2.2,
		GPA3:       2.1,
	},
}

func TestStorage_New(t *testing.T) {
	tests := []struct {
		name    string
		baseDir string
		expect  func(t *testing.T, s Storage, err error)
	}{
		{
			name:    "new storage",
			baseDir: filepath.Join(t.TempDir(), "results"),
			expect: func(t *testing.T, s Storage, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(reflect.TypeOf(s).Elem().Name(), "storage")
				assert.DirExists(s.(*storage).baseDir)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(tc.baseDir)
			tc.expect(t, s, err)
		})
	}
}

func TestStorage_CreateAndOpen(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, s Storage) string
		expect func(t *testing.T, s Storage, id string)
	}{
		{
			name: "create and open result file",
			mock: func(t *testing.T, s Storage) string {
				file, err := s.Create(mockRows)
				require.NoError(t, err)
				assert.NotZero(t, file.Size)
				return file.ID
			},
			expect: func(t *testing.T, s Storage, id string) {
				assert := assert.New(t)
				rc, err := s.Open(id)
				require.NoError(t, err)
				defer rc.Close()

				data, err := io.ReadAll(rc)
				assert.NoError(err)

				var rows []types.BatchResultRow
				assert.NoError(gocsv.UnmarshalBytes(data, &rows))
				assert.Equal(mockRows, rows)
			},
		},
		{
			name: "result file not found",
			mock: func(t *testing.T, s Storage) string {
				return uuid.NewString()
			},
			expect: func(t *testing.T, s Storage, id string) {
				assert := assert.New(t)
				_, err := s.Open(id)
				assert.ErrorIs(err, ErrResultNotFound)
			},
		},
		{
			name: "invalid result id",
			mock: func(t *testing.T, s Storage) string {
				return "../foo"
			},
			expect: func(t *testing.T, s Storage, id string) {
				assert := assert.New(t)
				_, err := s.Open(id)
				assert.Error(err)
				assert.Contains(err.Error(), "invalid result id ../foo")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(t.TempDir())
			require.NoError(t, err)
			tc.expect(t, s, tc.mock(t, s))
		})
	}
}

func TestStorage_ListAndClear(t *testing.T) {
	baseDir := t.TempDir()
	s, err := New(baseDir)
	require.NoError(t, err)

	assert := assert.New(t)
	files, err := s.List()
	assert.NoError(err)
	assert.Len(files, 0)

	first, err := s.Create(mockRows)
	require.NoError(t, err)
	second, err := s.Create(mockRows)
	require.NoError(t, err)

	files, err = s.List()
	assert.NoError(err)
	assert.Len(files, 2)
	assert.ElementsMatch([]string{first.ID, second.ID}, []string{files[0].ID, files[1].ID})

	assert.NoError(s.Clear())
	files, err = s.List()
	assert.NoError(err)
	assert.Len(files, 0)

	// Lock file is kept.
	_, err = os.Stat(filepath.Join(baseDir, lockFileName))
	assert.NoError(err)
}
