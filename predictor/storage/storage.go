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

//go:generate mockgen -destination mocks/storage_mock.go -source storage.go -package mocks

package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/Meddbb/study-delay-prediction-system/predictor/types"
)

const (
	// ResultFilePrefix is prefix of result file name.
	ResultFilePrefix = "result"

	// CSVFileExt is extension of file name.
	CSVFileExt = "csv"

	// lockFileName is the name of lock file in base directory.
	lockFileName = ".lock"
)

// ErrResultNotFound is returned when result file does not exist.
var ErrResultNotFound = errors.New("result file not found")

// Storage is the interface used for archiving batch prediction results.
type Storage interface {
	// Create writes rows into a new result file.
	Create([]types.BatchResultRow) (*types.ResultFile, error)

	// Open opens the result file for read by id.
	Open(string) (io.ReadCloser, error)

	// List returns result files ordered by creation time.
	List() ([]types.ResultFile, error)

	// Clear removes all result files.
	Clear() error
}

type storage struct {
	baseDir string
	lock    *flock.Flock
}

// New returns a new Storage instance.
func New(baseDir string) (Storage, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, err
	}

	return &storage{
		baseDir: baseDir,
		lock:    flock.New(filepath.Join(baseDir, lockFileName)),
	}, nil
}

// Create writes rows into a new result file.
func (s *storage) Create(rows []types.BatchResultRow) (*types.ResultFile, error) {
	if err := s.lock.Lock(); err != nil {
		return nil, err
	}
	defer s.lock.Unlock()

	id := uuid.NewString()
	file, err := os.OpenFile(s.resultFilename(id), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// Write rows to result csv file.
	if err := WriteResults(file, rows); err != nil {
		if err := os.Remove(s.resultFilename(id)); err != nil {
			return nil, err
		}

		return nil, err
	}

	fi, err := file.Stat()
	if err != nil {
		return nil, err
	}

	return &types.ResultFile{
		ID:        id,
		Size:      fi.Size(),
		CreatedAt: fi.ModTime().UnixNano(),
	}, nil
}

// Open opens the result file for read by id.
func (s *storage) Open(id string) (io.ReadCloser, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid result id %s: %w", id, err)
	}

	file, err := os.Open(s.resultFilename(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrResultNotFound
		}

		return nil, err
	}

	return file, nil
}

// List returns result files ordered by creation time.
func (s *storage) List() ([]types.ResultFile, error) {
	if err := s.lock.RLock(); err != nil {
		return nil, err
	}
	defer s.lock.Unlock()

	filenames, err := s.resultFilenames()
	if err != nil {
		return nil, err
	}

	files := make([]types.ResultFile, 0, len(filenames))
	for _, filename := range filenames {
		fi, err := os.Stat(filename)
		if err != nil {
			return nil, err
		}

		files = append(files, types.ResultFile{
			ID:        strings.TrimSuffix(strings.TrimPrefix(filepath.Base(filename), ResultFilePrefix+"-"), "."+CSVFileExt),
			Size:      fi.Size(),
			CreatedAt: fi.ModTime().UnixNano(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].CreatedAt < files[j].CreatedAt
	})

	return files, nil
}

// Clear removes all result files.
func (s *storage) Clear() error {
	if err := s.lock.Lock(); err != nil {
		return err
	}
	defer s.lock.Unlock()

	filenames, err := s.resultFilenames()
	if err != nil {
		return err
	}

	for _, filename := range filenames {
		if err := os.Remove(filename); err != nil {
			return err
		}
	}

	return nil
}

// resultFilename generates result file name based on the given id.
func (s *storage) resultFilename(id string) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s-%s.%s", ResultFilePrefix, id, CSVFileExt))
}

// resultFilenames returns all result file names in base directory.
func (s *storage) resultFilenames() ([]string, error) {
	return filepath.Glob(filepath.Join(s.baseDir, fmt.Sprintf("%s-*.%s", ResultFilePrefix, CSVFileExt)))
}
