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
	"io"
)

// MockSource implements Source for testing. Each queued report is returned
// by one ReadReport call, then io.EOF.
type MockSource struct {
	Reports    [][]byte
	ReadError  error
	CloseError error
	Closed     bool
	ReadCount  int
}

var _ Source = &MockSource{}

func (m *MockSource) ReadReport(buf []byte) (int, error) {
	if m.ReadError != nil {
		return 0, m.ReadError
	}
	if len(m.Reports) == 0 {
		return 0, io.EOF
	}
	m.ReadCount++
	n := copy(buf, m.Reports[0])
	m.Reports = m.Reports[1:]
	return n, nil
}

func (m *MockSource) Close() error {
	m.Closed = true
	return m.CloseError
}
