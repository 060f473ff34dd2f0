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

package cmd

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/Meddbb/study-delay-prediction-system/cmd/dependency"
	logger "github.com/Meddbb/study-delay-prediction-system/internal/sdlog"
	"github.com/Meddbb/study-delay-prediction-system/pkg/sdpath"
	"github.com/Meddbb/study-delay-prediction-system/pkg/types"
	"github.com/Meddbb/study-delay-prediction-system/predictor"
	"github.com/Meddbb/study-delay-prediction-system/predictor/config"
	"github.com/Meddbb/study-delay-prediction-system/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "predictor",
	Short: "the study delay predictor",
	Long: `Predictor is a long-running process serving on-time graduation predictions,
it loads the trained model of every supported semester count and predicts single
student records and uploaded csv batches.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Convert config.
		if err := cfg.Convert(); err != nil {
			return err
		}

		// Validate config.
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Initialize sdpath.
		d, err := initSdpath(&cfg.Server, &cfg.Model)
		if err != nil {
			return err
		}
		rotateConfig := logger.LogRotateConfig{
			MaxSize:    cfg.Server.LogMaxSize,
			MaxAge:     cfg.Server.LogMaxAge,
			MaxBackups: cfg.Server.LogMaxBackups,
		}

		// Initialize logger.
		if err := logger.InitPredictor(cfg.Verbose, cfg.Console, d.LogDir(), rotateConfig); err != nil {
			return fmt.Errorf("init predictor logger: %w", err)
		}
		logger.RedirectStdoutAndStderr(cfg.Console, path.Join(d.LogDir(), types.PredictorName))

		return runPredictor(ctx, d)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default predictor config.
	cfg = config.New()
	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)
}

func initSdpath(server *config.ServerConfig, model *config.ModelConfig) (sdpath.Sdpath, error) {
	var options []sdpath.Option
	if server.LogDir != "" {
		options = append(options, sdpath.WithLogDir(server.LogDir))
	}

	if server.DataDir != "" {
		options = append(options, sdpath.WithDataDir(server.DataDir))
	}

	if model.Dir != "" {
		options = append(options, sdpath.WithModelDir(model.Dir))
	}

	return sdpath.New(options...)
}

func runPredictor(ctx context.Context, d sdpath.Sdpath) error {
	logger.Infof("version:\n%s", version.Version())

	ff := dependency.InitMonitor(cfg.PProfPort)
	defer ff()

	svr, err := predictor.New(ctx, cfg, d)
	if err != nil {
		return err
	}

	dependency.SetupQuitSignalHandler(func() { svr.Stop() })
	return svr.Serve()
}
