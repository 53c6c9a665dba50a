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

package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	r := NewReader([]byte{0x2a, 0xfc, 0xff, 0x78, 0x56, 0x34, 0x12, 0x01})

	b, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(42), b)

	i, err := r.ReadI16()
	require.NoError(t, err)
	assert.Equal(t, int16(-4), i)

	u, err := r.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), u)

	assert.Equal(t, 7, r.Pos())
	assert.Equal(t, 1, r.Remaining())

	require.NoError(t, r.Skip(1))
	assert.Equal(t, 0, r.Remaining())
}

func TestReaderUnderrun(t *testing.T) {
	r := NewReader([]byte{0x01})

	_, err := r.ReadI16()
	require.Error(t, err)
	assert.Equal(t, ErrBufferUnderrun{Pos: 0, Want: 2, Have: 1}, err)

	// A failed read must not advance the cursor.
	assert.Equal(t, 0, r.Pos())

	_, err = r.ReadU32()
	assert.Error(t, err)

	err = r.Skip(2)
	assert.Error(t, err)

	b, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(1), b)

	_, err = r.ReadU8()
	assert.Error(t, err)
}
