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

package router

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/mcuadros/go-gin-prometheus"

	logger "github.com/Meddbb/study-delay-prediction-system/internal/sdlog"
	"github.com/Meddbb/study-delay-prediction-system/predictor/config"
	"github.com/Meddbb/study-delay-prediction-system/predictor/handlers"
	"github.com/Meddbb/study-delay-prediction-system/predictor/middlewares"
)

const (
	PrometheusSubsystemName = "sdp_predictor"
)

//go:embed templates
var templates embed.FS

func Init(cfg *config.Config, h *handlers.Handlers) (*gin.Engine, error) {
	// Set mode.
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Templates.
	tmpl, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	// Prometheus metrics.
	p := ginprometheus.NewPrometheus(PrometheusSubsystemName)
	// URL removes query string.
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		return c.FullPath()
	}
	p.Use(r)

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true

	// Middleware
	r.Use(gin.Recovery())
	r.Use(ginzap.Ginzap(logger.GinLogger.Desugar(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger.GinLogger.Desugar(), true))
	r.Use(middlewares.Error())
	r.Use(cors.New(corsConfig))

	// Static assets.
	if cfg.Server.StaticDir != "" {
		r.Use(static.Serve("/static", static.LocalFile(cfg.Server.StaticDir, false)))
	}

	// Router
	r.GET("/", h.GetIndex)
	r.GET("/healthy", h.GetHealth)
	r.POST("/predict", h.Predict)
	r.POST("/predict_csv", h.PredictBatch)

	// Archived batch results
	rs := r.Group("/results")
	rs.GET("", h.GetResults)
	rs.GET(":id", h.GetResult)
	rs.DELETE("", h.DestroyResults)

	return r, nil
}
