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

package predictor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	logger "github.com/Meddbb/study-delay-prediction-system/internal/sdlog"
	"github.com/Meddbb/study-delay-prediction-system/pkg/objectstorage"
	"github.com/Meddbb/study-delay-prediction-system/pkg/sdpath"
	"github.com/Meddbb/study-delay-prediction-system/predictor/config"
	"github.com/Meddbb/study-delay-prediction-system/predictor/handlers"
	"github.com/Meddbb/study-delay-prediction-system/predictor/metrics"
	"github.com/Meddbb/study-delay-prediction-system/predictor/registry"
	"github.com/Meddbb/study-delay-prediction-system/predictor/router"
	"github.com/Meddbb/study-delay-prediction-system/predictor/service"
	"github.com/Meddbb/study-delay-prediction-system/predictor/storage"
)

type Server struct {
	// Server configuration.
	config *config.Config

	// HTTP server.
	httpServer *http.Server

	// Metrics server.
	metricsServer *http.Server

	// Model registry.
	registry *registry.Registry

	// Storage interface.
	storage storage.Storage
}

func New(ctx context.Context, cfg *config.Config, d sdpath.Sdpath) (*Server, error) {
	s := &Server{config: cfg}

	// Initialize model registry.
	source, err := newSource(ctx, cfg, d)
	if err != nil {
		return nil, err
	}

	s.registry, err = registry.Load(ctx, source, cfg.Model.Semesters)
	if err != nil {
		return nil, fmt.Errorf("load models from %s: %w", source, err)
	}

	// Initialize prediction engine.
	engine := service.New(s.registry, service.WithBatchConcurrency(cfg.Batch.Concurrency))

	// Initialize storage.
	s.storage, err = storage.New(d.ResultDir())
	if err != nil {
		return nil, err
	}

	// Initialize router.
	h := handlers.New(engine, s.storage, handlers.WithSemesters(s.registry.Semesters()), handlers.WithMaxRows(cfg.Batch.MaxRows))
	r, err := router.Init(cfg, h)
	if err != nil {
		return nil, err
	}

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.ListenIP, strconv.Itoa(cfg.Server.Port)),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Initialize metrics.
	if cfg.Metrics.Enable {
		s.metricsServer = metrics.New(&cfg.Metrics)
	}

	return s, nil
}

func newSource(ctx context.Context, cfg *config.Config, d sdpath.Sdpath) (registry.Source, error) {
	if cfg.Model.Source != config.ObjectStorageModelSource {
		dir := cfg.Model.Dir
		if dir == "" {
			dir = d.ModelDir()
		}

		return registry.NewLocalSource(dir), nil
	}

	osc := cfg.Model.ObjectStorage
	client, err := objectstorage.New(osc.Name, osc.Region, osc.Endpoint, osc.AccessKey, osc.SecretKey)
	if err != nil {
		return nil, err
	}

	if _, err := client.GetBucketMetadata(ctx, osc.BucketName); err != nil {
		return nil, fmt.Errorf("get bucket %s metadata: %w", osc.BucketName, err)
	}

	return registry.NewObjectStorageSource(client, osc.BucketName, osc.Prefix), nil
}

func (s *Server) Serve() error {
	// Started metrics server.
	if s.metricsServer != nil {
		go func() {
			logger.Infof("started metrics server at %s", s.metricsServer.Addr)
			if err := s.metricsServer.ListenAndServe(); err != nil {
				if err == http.ErrServerClosed {
					return
				}

				logger.Fatalf("metrics server closed unexpect: %s", err.Error())
			}
		}()
	}

	// Started http server.
	logger.Infof("started http server at %s with semesters %v", s.httpServer.Addr, s.registry.Semesters())
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("http server closed unexpect: %s", err.Error())
		return err
	}

	return nil
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	// Stop metrics server.
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			logger.Errorf("metrics server failed to stop: %s", err.Error())
		} else {
			logger.Info("metrics server closed under request")
		}
	}

	// Stop http server.
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("http server failed to stop: %s", err.Error())
	} else {
		logger.Info("http server closed under request")
	}
}
