/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package hid

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSource(t *testing.T) {
	m := &MockSource{Reports: [][]byte{{1, 2, 3}, {4}}}
	buf := make([]byte, 8)

	n, err := m.ReadReport(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{1, 2, 3}, buf[:n])

	n, err = m.ReadReport(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, m.ReadCount)

	_, err = m.ReadReport(buf)
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, m.Close())
	assert.True(t, m.Closed)
}

func TestMockSourceReadError(t *testing.T) {
	boom := errors.New("usb gone")
	m := &MockSource{Reports: [][]byte{{1}}, ReadError: boom}

	_, err := m.ReadReport(make([]byte, 8))
	assert.ErrorIs(t, err, boom)
}
