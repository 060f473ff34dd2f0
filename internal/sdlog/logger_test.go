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

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogger_InitPredictor(t *testing.T) {
	tests := []struct {
		name    string
		console bool
		verbose bool
		expect  func(t *testing.T, dir string)
	}{
		{
			name:    "console logger",
			console: true,
			expect: func(t *testing.T, dir string) {
				assert := assert.New(t)
				assert.False(IsDebug())
				assert.NoFileExists(filepath.Join(dir, "predictor", CoreLogFileName))
			},
		},
		{
			name:    "verbose console logger",
			console: true,
			verbose: true,
			expect: func(t *testing.T, dir string) {
				assert.True(t, IsDebug())
			},
		},
		{
			name: "file logger",
			expect: func(t *testing.T, dir string) {
				assert := assert.New(t)
				WithStudent("foo", "123", 3).Infof("predict %s", "bar")
				WithBatch("baz", 2).Infof("predict batch")
				Infof("core")
				require.NoError(t, CoreLogger.Sync())
				require.NoError(t, PredictLogger.Sync())

				data, err := os.ReadFile(filepath.Join(dir, "predictor", PredictLogFileName))
				assert.NoError(err)
				assert.Contains(string(data), `"name":"foo"`)
				assert.Contains(string(data), `"batchID":"baz"`)
				assert.FileExists(filepath.Join(dir, "predictor", CoreLogFileName))
			},
		},
		{
			name:    "file logger change level",
			verbose: false,
			expect: func(t *testing.T, dir string) {
				assert := assert.New(t)
				assert.False(IsDebug())
				SetLevel(zap.DebugLevel)
				assert.True(IsDebug())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, InitPredictor(tc.verbose, tc.console, dir, DefaultLogRotateConfig()))
			tc.expect(t, dir)
		})
	}
}
