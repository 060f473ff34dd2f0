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

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Meddbb/study-delay-prediction-system/pkg/types"
	"github.com/Meddbb/study-delay-prediction-system/predictor/config"
	"github.com/Meddbb/study-delay-prediction-system/version"
)

const (
	// SingleMode is the mode label of single record prediction.
	SingleMode = "single"

	// BatchMode is the mode label of batch prediction.
	BatchMode = "batch"
)

// Variables declared for metrics.
var (
	PredictionCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PredictorMetricsName,
		Name:      "prediction_total",
		Help:      "Counter of the number of the prediction.",
	}, []string{"mode", "status"})

	PredictionFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PredictorMetricsName,
		Name:      "prediction_failure_total",
		Help:      "Counter of the number of failed of the prediction.",
	}, []string{"mode"})

	BatchRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PredictorMetricsName,
		Name:      "batch_rows",
		Help:      "Histogram of the number of rows in batch prediction.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	VersionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.PredictorMetricsName,
		Name:      "version",
		Help:      "Version info of the service.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version", "go_tags", "go_gcflags"})
)

func New(cfg *config.MetricsConfig) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	VersionGauge.WithLabelValues(version.Major, version.Minor, version.GitVersion, version.GitCommit, version.Platform, version.BuildTime, version.GoVersion, version.Gotags, version.Gogcflags).Set(1)
	return &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}
}
