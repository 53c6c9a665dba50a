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
	"encoding/binary"
)

// Reader is a little-endian cursor over a report buffer. Unlike the firmware
// reference it tracks the remaining length, a read past the end returns
// ErrBufferUnderrun instead of garbage.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) Pos() int {
	return r.pos
}

func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) Skip(n int) error {
	if r.Remaining() < n {
		return ErrBufferUnderrun{Pos: r.pos, Want: n, Have: r.Remaining()}
	}
	r.pos += n
	return nil
}

func (r *Reader) ReadU8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, ErrBufferUnderrun{Pos: r.pos, Want: 1, Have: r.Remaining()}
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) ReadI16() (int16, error) {
	if r.Remaining() < 2 {
		return 0, ErrBufferUnderrun{Pos: r.pos, Want: 2, Have: r.Remaining()}
	}
	v := int16(binary.LittleEndian.Uint16(r.buf[r.pos:]))
	r.pos += 2
	return v, nil
}

func (r *Reader) ReadU32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, ErrBufferUnderrun{Pos: r.pos, Want: 4, Have: r.Remaining()}
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}
