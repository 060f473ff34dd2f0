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

package config

import (
	"time"

	"github.com/Meddbb/study-delay-prediction-system/pkg/objectstorage"
)

const (
	// DefaultServerListenIP is default listen ip of server.
	DefaultServerListenIP = "0.0.0.0"

	// DefaultServerPort is default port of server.
	DefaultServerPort = 5000

	// DefaultServerShutdownTimeout is default timeout of graceful shutdown.
	DefaultServerShutdownTimeout = 10 * time.Second
)

const (
	// DefaultLogRotateMaxSize is the default maximum size in megabytes of log files before rotation.
	DefaultLogRotateMaxSize = 1024

	// DefaultLogRotateMaxAge is the default number of days to retain old log files.
	DefaultLogRotateMaxAge = 7

	// DefaultLogRotateMaxBackups is the default number of old log files to keep.
	DefaultLogRotateMaxBackups = 20
)

const (
	// DefaultMetricsAddr is default address for metrics server.
	DefaultMetricsAddr = ":8000"
)

const (
	// LocalModelSource reads model artifacts from local directory.
	LocalModelSource = "local"

	// ObjectStorageModelSource reads model artifacts from object storage bucket.
	ObjectStorageModelSource = "objectStorage"
)

const (
	// MinSemester is the minimum semester count a model can serve.
	MinSemester = 1

	// MaxSemester is the maximum semester count a model can serve.
	MaxSemester = 6
)

const (
	// DefaultBatchConcurrency is default number of rows predicted concurrently.
	DefaultBatchConcurrency = 4

	// DefaultBatchMaxRows is default maximum number of rows in a batch, zero is unlimited.
	DefaultBatchMaxRows = 10000
)

var (
	// DefaultModelSemesters is default semester counts with trained models.
	DefaultModelSemesters = []int{3, 4, 5, 6}

	// SupportedObjectStorages is the supported object storage services.
	SupportedObjectStorages = []string{objectstorage.ServiceNameS3, objectstorage.ServiceNameOSS}
)
