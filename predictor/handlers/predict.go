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
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-http-utils/headers"

	logger "github.com/Meddbb/study-delay-prediction-system/internal/sdlog"
	"github.com/Meddbb/study-delay-prediction-system/predictor/service"
	"github.com/Meddbb/study-delay-prediction-system/predictor/storage"
	"github.com/Meddbb/study-delay-prediction-system/predictor/types"
)

// Predict predicts a single record posted as json object.
func (h *Handlers) Predict(ctx *gin.Context) {
	var data map[string]any
	if err := ctx.ShouldBindJSON(&data); err != nil || len(data) == 0 {
		ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Status: false, Message: "Invalid input"})
		return
	}

	result, err := h.engine.Predict(types.NewRecordFromJSON(data), service.DeclaredSemester)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, types.PredictResponse{
		Status:     result.Status,
		Confidence: result.Confidence,
	})
}

// PredictBatch predicts every row of an uploaded csv, with download=true
// the results are archived and returned as csv attachment.
func (h *Handlers) PredictBatch(ctx *gin.Context) {
	var query types.PredictBatchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.Error(err).SetType(gin.ErrorTypeBind) // nolint: errcheck
		return
	}

	fileHeader, err := ctx.FormFile(BatchFileField)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Status: false, Message: "CSV file missing"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}
	defer file.Close()

	rows, err := storage.ReadBatch(file)
	if err != nil {
		ctx.Error(fmt.Errorf("read csv: %w", err)) // nolint: errcheck
		return
	}

	if h.maxRows > 0 && len(rows) > h.maxRows {
		ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Status: false, Message: fmt.Sprintf("CSV exceeds %d rows", h.maxRows)})
		return
	}

	records := make([]*types.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, types.NewRecordFromBatchRow(row))
	}

	results, err := h.engine.PredictBatch(ctx.Request.Context(), records)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	resultRows := types.NewBatchResultRows(results)
	if query.Download != "true" {
		ctx.JSON(http.StatusOK, types.PredictBatchResponse{
			Status:  true,
			Results: resultRows,
		})
		return
	}

	resultFile, err := h.storage.Create(resultRows)
	if err != nil {
		ctx.Error(fmt.Errorf("archive results: %w", err)) // nolint: errcheck
		return
	}
	logger.Infof("archive batch results %s with %d rows", resultFile.ID, len(resultRows))

	ctx.Header(headers.ContentDisposition, fmt.Sprintf("attachment; filename=%s", BatchResultFilename))
	ctx.Header(headers.ContentType, "text/csv")
	ctx.Header(ResultIDHeader, resultFile.ID)
	ctx.Status(http.StatusOK)
	if err := storage.WriteResults(ctx.Writer, resultRows); err != nil {
		logger.Errorf("write batch results failed: %s", err.Error())
	}
}
