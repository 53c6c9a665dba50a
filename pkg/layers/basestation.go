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

// Base-station packets carry a two byte version tag. Only version {2, 1}
// is understood, anything else is dropped without an error. The station is
// a sweep emitter, it has no state we consume beyond presence.

var BaseStationVersionTag = [2]uint8{0x02, 0x01}

// BaseStationRecord ...
type BaseStationRecord struct {
	Version [2]uint8
	Payload []byte
}

// DecodeBaseStationRecord returns nil for unknown versions. That is the
// intended ignore policy, not a failure.
func DecodeBaseStationRecord(data []byte) *BaseStationRecord {
	if len(data) < 2 {
		return nil
	}
	if data[0] != BaseStationVersionTag[0] || data[1] != BaseStationVersionTag[1] {
		return nil
	}
	return &BaseStationRecord{
		Version: [2]uint8{data[0], data[1]},
		Payload: data[2:],
	}
}
