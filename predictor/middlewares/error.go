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

package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Meddbb/study-delay-prediction-system/predictor/storage"
	"github.com/Meddbb/study-delay-prediction-system/predictor/types"
)

func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		err := c.Errors.Last()
		if err == nil {
			return
		}

		// Binding error handler
		var verrs validator.ValidationErrors
		if err.Type == gin.ErrorTypeBind || errors.As(err.Err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, types.ErrorResponse{
				Status:  false,
				Message: http.StatusText(http.StatusUnprocessableEntity),
				Error:   err.Error(),
			})
			return
		}

		// Result archive error handler
		if errors.Is(err.Err, storage.ErrResultNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Status:  false,
				Message: http.StatusText(http.StatusNotFound),
			})
			return
		}

		// Prediction error handler
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Status:  false,
			Message: err.Error(),
		})
	}
}
