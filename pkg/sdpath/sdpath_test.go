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

package sdpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		options func(dir string) []Option
		expect  func(t *testing.T, dir string, d Sdpath, err error)
	}{
		{
			name: "new sdpath",
			options: func(dir string) []Option {
				return []Option{
					WithWorkHome(filepath.Join(dir, "home")),
					WithLogDir(filepath.Join(dir, "log")),
					WithDataDir(filepath.Join(dir, "data")),
				}
			},
			expect: func(t *testing.T, dir string, d Sdpath, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(filepath.Join(dir, "home"), d.WorkHome())
				assert.Equal(filepath.Join(dir, "log"), d.LogDir())
				assert.Equal(filepath.Join(dir, "data"), d.DataDir())
				assert.Equal(DefaultDataDirMode, d.DataDirMode())
				assert.Equal(filepath.Join(dir, "data", ModelDirName), d.ModelDir())
				assert.Equal(filepath.Join(dir, "data", ResultDirName), d.ResultDir())
				assert.DirExists(d.LogDir())
				assert.DirExists(d.DataDir())
			},
		},
		{
			name: "new sdpath with model directory",
			options: func(dir string) []Option {
				return []Option{
					WithWorkHome(filepath.Join(dir, "home")),
					WithLogDir(filepath.Join(dir, "log")),
					WithDataDir(filepath.Join(dir, "data")),
					WithModelDir("foo"),
				}
			},
			expect: func(t *testing.T, dir string, d Sdpath, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("foo", d.ModelDir())
			},
		},
		{
			name: "new sdpath failed",
			options: func(dir string) []Option {
				file := filepath.Join(dir, "file")
				if err := os.WriteFile(file, []byte{}, 0600); err != nil {
					t.Fatal(err)
				}

				return []Option{
					WithWorkHome(filepath.Join(dir, "home")),
					WithLogDir(filepath.Join(file, "log")),
					WithDataDir(filepath.Join(file, "data")),
				}
			},
			expect: func(t *testing.T, dir string, d Sdpath, err error) {
				assert := assert.New(t)
				assert.Nil(d)
				assert.Error(err)
				assert.Contains(err.Error(), "2 errors occurred")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			d, err := New(tc.options(dir)...)
			tc.expect(t, dir, d, err)
		})
	}
}
