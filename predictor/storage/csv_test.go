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

package storage

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meddbb/study-delay-prediction-system/predictor/types"
)

func TestStorage_ReadBatch(t *testing.T) {
	require := require.New(t)
	testData, err := os.ReadFile("./testdata/batch.csv")
	require.Nil(err, "load test file")

	tests := []struct {
		name   string
		data   []byte
		expect func(t *testing.T, rows []*types.BatchRow, err error)
	}{
		{
			name: "read batch rows",
			data: testData,
			expect: func(t *testing.T, rows []*types.BatchRow, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(rows, 3)
				assert.Equal(&types.BatchRow{
					Name:             "Andi",
					ID:               "1301001",
					TotalActivity:    "50",
					CompletedCourses: "25",
					GPA1:             "3.5",
					GPA2:             "3,0",
					GPA3:             "3.2",
				}, rows[0])
				assert.Equal("abc", rows[2].TotalActivity)
				assert.Equal("3.7", rows[2].GPA6)
			},
		},
		{
			name: "read batch rows with byte order mark",
			data: append([]byte{0xef, 0xbb, 0xbf}, testData...),
			expect: func(t *testing.T, rows []*types.BatchRow, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(rows, 3)
				assert.Equal("Andi", rows[0].Name)
			},
		},
		{
			name: "missing columns are empty",
			data: []byte("NIM,IPK1\n42,3.3\n"),
			expect: func(t *testing.T, rows []*types.BatchRow, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(rows, 1)
				assert.Equal("42", rows[0].ID)
				assert.Equal("", rows[0].Name)
				assert.Equal([]string{"3.3", "", "", "", "", ""}, rows[0].GPAList())
			},
		},
		{
			name: "short and long rows are kept",
			data: []byte("Nama Mahasiswa,NIM,Total TAK,Jumlah CO,IPK1,IPK2,IPK3,IPK4,IPK5,IPK6\n" +
				"Andi,1301001,50,25,3.5,3.0,3.2,,,\n" +
				"Budi,1301002,10,5,2.0,2.2,2.4\n" +
				"Citra,1301003\n" +
				"Dewi,1301004,20,8,3.1,3.0,3.3,3.4,3.6,3.7,extra\n"),
			expect: func(t *testing.T, rows []*types.BatchRow, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(rows, 4)
				assert.Equal("Andi", rows[0].Name)
				assert.Equal("Budi", rows[1].Name)
				assert.Equal([]string{"2.0", "2.2", "2.4", "", "", ""}, rows[1].GPAList())
				assert.Equal(&types.BatchRow{Name: "Citra", ID: "1301003"}, rows[2])
				assert.Equal("3.7", rows[3].GPA6)
			},
		},
		{
			name: "empty csv file given",
			data: []byte{},
			expect: func(t *testing.T, rows []*types.BatchRow, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "empty csv file given")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := ReadBatch(bytes.NewReader(tc.data))
			tc.expect(t, rows, err)
		})
	}
}

func TestStorage_WriteResults(t *testing.T) {
	rows := []types.BatchResultRow{
		{
			Name:       "Andi",
			ID:         "1301001",
			Semester:   3,
			Status:     types.StatusOnTime,
			Confidence: "78.70%",
			GPA1:       3.5,
		},
		{
			Name:       "Budi",
			ID:         "1301002",
			Semester:   2,
			Status:     types.StatusInvalidSemester,
			Confidence: types.ConfidenceNone,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, rows))

	assert := assert.New(t)
	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.Equal("nama,nim,semester,tak,co,status,confidence,message,ipk1,ipk2,ipk3,ipk4,ipk5,ipk6", header)

	var decoded []types.BatchResultRow
	assert.NoError(gocsv.UnmarshalBytes(buf.Bytes(), &decoded))
	assert.Equal(rows, decoded)
}
