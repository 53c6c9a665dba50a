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

package device

import (
	"fmt"
)

// ErrUnknownReportID returned for report ids the hardware is not known to
// produce
type ErrUnknownReportID struct {
	ID uint8
}

func (e ErrUnknownReportID) Error() string {
	return fmt.Sprintf("Unknown report id: %d", e.ID)
}

// ErrLegacyFirmware returned for pre-2.0 firmware report ids which use a
// different record layout we do not decode
type ErrLegacyFirmware struct {
	ID uint8
}

func (e ErrLegacyFirmware) Error() string {
	return fmt.Sprintf("Legacy firmware report id: %d, firmware < 2.0 is not supported", e.ID)
}

// ErrDeviceNotFound returned when a role name does not match any of the
// three logical devices
type ErrDeviceNotFound struct {
	Role string
}

func (e ErrDeviceNotFound) Error() string {
	return fmt.Sprintf("Device not found: %s", e.Role)
}
