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
	"github.com/Meddbb/study-delay-prediction-system/predictor/service"
	"github.com/Meddbb/study-delay-prediction-system/predictor/storage"
)

const (
	// BatchResultFilename is the attachment name of downloaded batch results.
	BatchResultFilename = "hasil_prediksi_batch.csv"

	// BatchFileField is the multipart field of uploaded csv.
	BatchFileField = "file"
)

type Handlers struct {
	engine    service.Engine
	storage   storage.Storage
	semesters []int
	maxRows   int
}

// Option is a functional option for configuring the handlers.
type Option func(h *Handlers)

// WithSemesters sets the semester counts shown on index page.
func WithSemesters(semesters []int) Option {
	return func(h *Handlers) {
		h.semesters = semesters
	}
}

// WithMaxRows sets the maximum number of rows in an uploaded csv.
func WithMaxRows(maxRows int) Option {
	return func(h *Handlers) {
		h.maxRows = maxRows
	}
}

func New(engine service.Engine, storage storage.Storage, options ...Option) *Handlers {
	h := &Handlers{
		engine:  engine,
		storage: storage,
	}

	for _, opt := range options {
		opt(h)
	}

	return h
}
