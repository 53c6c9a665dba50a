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
	"fmt"
)

// ErrNoDevice returned when no matching HID interface is present
type ErrNoDevice struct {
	VendorID  uint16
	ProductID uint16
	Product   string
}

func (e ErrNoDevice) Error() string {
	return fmt.Sprintf("No HID device found: %04x:%04x %q", e.VendorID, e.ProductID, e.Product)
}
