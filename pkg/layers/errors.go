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
	"fmt"
)

// ErrBufferUnderrun returned when a field read would run past the end of the
// report buffer
type ErrBufferUnderrun struct {
	Pos  int
	Want int
	Have int
}

func (e ErrBufferUnderrun) Error() string {
	return fmt.Sprintf("Buffer underrun at offset %d: want %d bytes, have %d", e.Pos, e.Want, e.Have)
}
