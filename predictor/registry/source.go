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
	"os"
	"path"
	"path/filepath"

	"github.com/Meddbb/study-delay-prediction-system/pkg/objectstorage"
)

const (
	// ModelArtifactFormat is the artifact name format of classifier.
	ModelArtifactFormat = "model_sem%d.json"

	// MinMaxScalerArtifactFormat is the artifact name format of min-max scaler.
	MinMaxScalerArtifactFormat = "scaler_minmax_sem%d.json"

	// StandardScalerArtifactFormat is the artifact name format of standard scaler.
	StandardScalerArtifactFormat = "scaler_standard_sem%d.json"
)

// Source is the interface used for reading model artifacts.
type Source interface {
	// Open opens the artifact by name.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// String returns the location of source.
	String() string
}

type localSource struct {
	dir string
}

// NewLocalSource returns a source reading artifacts from a local directory.
func NewLocalSource(dir string) Source {
	return &localSource{dir: dir}
}

// Open opens the artifact file in directory.
func (s *localSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, name))
}

func (s *localSource) String() string {
	return s.dir
}

type objectStorageSource struct {
	client objectstorage.ObjectStorage
	bucket string
	prefix string
}

// NewObjectStorageSource returns a source reading artifacts from a bucket.
func NewObjectStorageSource(client objectstorage.ObjectStorage, bucket, prefix string) Source {
	return &objectStorageSource{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Open opens the artifact object in bucket.
func (s *objectStorageSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := path.Join(s.prefix, name)
	isExist, err := s.client.IsObjectExist(ctx, s.bucket, key)
	if err != nil {
		return nil, err
	}

	if !isExist {
		return nil, fmt.Errorf("object %s not found in bucket %s", key, s.bucket)
	}

	return s.client.GetObject(ctx, s.bucket, key)
}

func (s *objectStorageSource) String() string {
	return fmt.Sprintf("%s/%s", s.bucket, s.prefix)
}
