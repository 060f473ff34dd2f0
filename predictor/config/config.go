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
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/Meddbb/study-delay-prediction-system/cmd/dependency/base"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`

	// Model configuration.
	Model ModelConfig `yaml:"model" mapstructure:"model"`

	// Batch prediction configuration.
	Batch BatchConfig `yaml:"batch" mapstructure:"batch"`
}

type ServerConfig struct {
	// ListenIP is listen ip, like: 0.0.0.0, 192.168.0.1.
	ListenIP string `yaml:"listenIP" mapstructure:"listenIP"`

	// Server port.
	Port int `yaml:"port" mapstructure:"port"`

	// ShutdownTimeout is the timeout of graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" mapstructure:"shutdownTimeout"`

	// StaticDir is the directory of static assets served under /static.
	StaticDir string `yaml:"staticDir" mapstructure:"staticDir"`

	// Server log directory.
	LogDir string `yaml:"logDir" mapstructure:"logDir"`

	// Maximum size in megabytes of log files before rotation (default: 1024)
	LogMaxSize int `yaml:"logMaxSize" mapstructure:"logMaxSize"`

	// Maximum number of days to retain old log files (default: 7)
	LogMaxAge int `yaml:"logMaxAge" mapstructure:"logMaxAge"`

	// Maximum number of old log files to keep (default: 20)
	LogMaxBackups int `yaml:"logMaxBackups" mapstructure:"logMaxBackups"`

	// Server storage data directory.
	DataDir string `yaml:"dataDir" mapstructure:"dataDir"`
}

type MetricsConfig struct {
	// Enable metrics service.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Metrics service address.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

type ModelConfig struct {
	// Semesters is the semester counts with trained models.
	Semesters []int `yaml:"semesters" mapstructure:"semesters"`

	// Source is where artifacts are read, local or objectStorage.
	Source string `yaml:"source" mapstructure:"source"`

	// Dir is the local artifact directory, defaults to models in data directory.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// ObjectStorage is the bucket of artifacts.
	ObjectStorage ObjectStorageConfig `yaml:"objectStorage" mapstructure:"objectStorage"`
}

type ObjectStorageConfig struct {
	// Name is object storage name of type, it can be s3 or oss.
	Name string `yaml:"name" mapstructure:"name"`

	// Region is storage region.
	Region string `yaml:"region" mapstructure:"region"`

	// Endpoint is datacenter endpoint.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// AccessKey is access key ID.
	AccessKey string `yaml:"accessKey" mapstructure:"accessKey"`

	// SecretKey is access key secret.
	SecretKey string `yaml:"secretKey" mapstructure:"secretKey"`

	// BucketName is the bucket of artifacts.
	BucketName string `yaml:"bucketName" mapstructure:"bucketName"`

	// Prefix is the key prefix of artifacts in bucket.
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
}

type BatchConfig struct {
	// Concurrency is the number of rows predicted concurrently.
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`

	// MaxRows is the maximum number of rows in an uploaded csv, zero is unlimited.
	MaxRows int `yaml:"maxRows" mapstructure:"maxRows"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			ListenIP:        DefaultServerListenIP,
			Port:            DefaultServerPort,
			ShutdownTimeout: DefaultServerShutdownTimeout,
			LogMaxSize:      DefaultLogRotateMaxSize,
			LogMaxAge:       DefaultLogRotateMaxAge,
			LogMaxBackups:   DefaultLogRotateMaxBackups,
		},
		Metrics: MetricsConfig{
			Enable: false,
			Addr:   DefaultMetricsAddr,
		},
		Model: ModelConfig{
			Semesters: append([]int(nil), DefaultModelSemesters...),
			Source:    LocalModelSource,
		},
		Batch: BatchConfig{
			Concurrency: DefaultBatchConcurrency,
			MaxRows:     DefaultBatchMaxRows,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if net.ParseIP(cfg.Server.ListenIP) == nil {
		return errors.New("server requires parameter listenIP")
	}

	if cfg.Server.Port <= 0 {
		return errors.New("server requires parameter port")
	}

	if cfg.Metrics.Enable {
		if cfg.Metrics.Addr == "" {
			return errors.New("metrics requires parameter addr")
		}
	}

	if len(cfg.Model.Semesters) == 0 {
		return errors.New("model requires parameter semesters")
	}

	seen := make(map[int]struct{}, len(cfg.Model.Semesters))
	for _, k := range cfg.Model.Semesters {
		if k < MinSemester || k > MaxSemester {
			return fmt.Errorf("model semester %d is out of range [%d, %d]", k, MinSemester, MaxSemester)
		}

		if _, ok := seen[k]; ok {
			return fmt.Errorf("model semester %d is duplicated", k)
		}
		seen[k] = struct{}{}
	}

	switch cfg.Model.Source {
	case LocalModelSource:
	case ObjectStorageModelSource:
		if !contains(SupportedObjectStorages, cfg.Model.ObjectStorage.Name) {
			return errors.New("objectStorage requires parameter name")
		}

		if cfg.Model.ObjectStorage.Endpoint == "" {
			return errors.New("objectStorage requires parameter endpoint")
		}

		if cfg.Model.ObjectStorage.BucketName == "" {
			return errors.New("objectStorage requires parameter bucketName")
		}
	default:
		return errors.New("model requires parameter source")
	}

	if cfg.Batch.Concurrency <= 0 {
		return errors.New("batch requires parameter concurrency")
	}

	if cfg.Batch.MaxRows < 0 {
		return errors.New("batch requires parameter maxRows")
	}

	return nil
}

// Convert fills the parameters left empty.
func (cfg *Config) Convert() error {
	if cfg.Server.ListenIP == "" {
		cfg.Server.ListenIP = DefaultServerListenIP
	}

	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	if cfg.Model.Source == "" {
		cfg.Model.Source = LocalModelSource
	}

	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}
