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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

const (
	// ModelDirName is the name of model artifact directory in data directory.
	ModelDirName = "models"

	// ResultDirName is the name of result archive directory in data directory.
	ResultDirName = "results"
)

// Sdpath is the interface used for init project path.
type Sdpath interface {
	WorkHome() string
	LogDir() string
	DataDir() string
	DataDirMode() fs.FileMode
	ModelDir() string
	ResultDir() string
}

type sdpath struct {
	workHome     string
	workHomeMode fs.FileMode
	logDir       string
	dataDir      string
	dataDirMode  fs.FileMode
	modelDir     string
}

// Option is a functional option for configuring the sdpath.
type Option func(d *sdpath)

// WithWorkHome set the workhome directory.
func WithWorkHome(dir string) Option {
	return func(d *sdpath) {
		d.workHome = dir
	}
}

// WithLogDir set the log directory.
func WithLogDir(dir string) Option {
	return func(d *sdpath) {
		d.logDir = dir
	}
}

// WithDataDir set the data directory.
func WithDataDir(dir string) Option {
	return func(d *sdpath) {
		d.dataDir = dir
	}
}

// WithModelDir set the model artifact directory, it defaults to models in data directory.
func WithModelDir(dir string) Option {
	return func(d *sdpath) {
		d.modelDir = dir
	}
}

// New returns a new sdpath interface and creates its directories.
func New(options ...Option) (Sdpath, error) {
	d := &sdpath{
		workHome:     DefaultWorkHome,
		workHomeMode: DefaultWorkHomeMode,
		logDir:       DefaultLogDir,
		dataDir:      DefaultDataDir,
		dataDirMode:  DefaultDataDirMode,
	}

	for _, opt := range options {
		opt(d)
	}

	if d.modelDir == "" {
		d.modelDir = filepath.Join(d.dataDir, ModelDirName)
	}

	var errs *multierror.Error

	// Create workhome directory.
	if err := os.MkdirAll(d.workHome, d.workHomeMode); err != nil {
		errs = multierror.Append(errs, err)
	}

	// Create log directory.
	if err := os.MkdirAll(d.logDir, fs.FileMode(0700)); err != nil {
		errs = multierror.Append(errs, err)
	}

	// Create data directory.
	if err := os.MkdirAll(d.dataDir, d.dataDirMode); err != nil {
		errs = multierror.Append(errs, err)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *sdpath) WorkHome() string {
	return d.workHome
}

func (d *sdpath) LogDir() string {
	return d.logDir
}

func (d *sdpath) DataDir() string {
	return d.dataDir
}

func (d *sdpath) DataDirMode() fs.FileMode {
	return d.dataDirMode
}

func (d *sdpath) ModelDir() string {
	return d.modelDir
}

func (d *sdpath) ResultDir() string {
	return filepath.Join(d.dataDir, ResultDirName)
}
