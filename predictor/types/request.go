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

package types

type PredictResponse struct {
	Status     Status `json:"status"`
	Confidence string `json:"confidence"`
}

type PredictBatchQuery struct {
	Download string `form:"download" binding:"omitempty,oneof=true false"`
}

type PredictBatchResponse struct {
	Status  bool             `json:"status"`
	Results []BatchResultRow `json:"results"`
}

type ResultFileParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type ResultFile struct {
	ID        string `json:"id"`
	Size      int64  `json:"size"`
	CreatedAt int64  `json:"created_at"`
}

type ErrorResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
