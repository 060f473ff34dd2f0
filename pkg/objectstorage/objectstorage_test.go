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

package objectstorage

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectStorage_New(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		expect      func(t *testing.T, s ObjectStorage, err error)
	}{
		{
			name:        "new s3 object storage",
			serviceName: ServiceNameS3,
			expect: func(t *testing.T, s ObjectStorage, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(reflect.TypeOf(s).Elem().Name(), "s3")
			},
		},
		{
			name:        "new oss object storage",
			serviceName: ServiceNameOSS,
			expect: func(t *testing.T, s ObjectStorage, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(reflect.TypeOf(s).Elem().Name(), "oss")
			},
		},
		{
			name:        "unknown service name",
			serviceName: "foo",
			expect: func(t *testing.T, s ObjectStorage, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "unknow service name foo")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(tc.serviceName, "region", "http://127.0.0.1:9000", "ak", "sk")
			tc.expect(t, s, err)
		})
	}
}
