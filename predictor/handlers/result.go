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

package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-http-utils/headers"

	logger "github.com/Meddbb/study-delay-prediction-system/internal/sdlog"
	"github.com/Meddbb/study-delay-prediction-system/predictor/types"
)

// ResultIDHeader is the response header carrying archived result id.
const ResultIDHeader = "X-Result-Id"

// GetResults lists archived batch results.
func (h *Handlers) GetResults(ctx *gin.Context) {
	files, err := h.storage.List()
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, files)
}

// GetResult downloads an archived batch result.
func (h *Handlers) GetResult(ctx *gin.Context) {
	var params types.ResultFileParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.Error(err).SetType(gin.ErrorTypeBind) // nolint: errcheck
		return
	}

	rc, err := h.storage.Open(params.ID)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}
	defer rc.Close()

	ctx.Header(headers.ContentDisposition, fmt.Sprintf("attachment; filename=%s", BatchResultFilename))
	ctx.Header(headers.ContentType, "text/csv")
	ctx.Status(http.StatusOK)
	if _, err := io.Copy(ctx.Writer, rc); err != nil {
		logger.Errorf("copy result %s failed: %s", params.ID, err.Error())
	}
}

// DestroyResults removes every archived batch result.
func (h *Handlers) DestroyResults(ctx *gin.Context) {
	if err := h.storage.Clear(); err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	logger.Info("archived batch results cleared")
	ctx.Status(http.StatusOK)
}
