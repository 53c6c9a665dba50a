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

package srv

import (
	"context"

	"github.com/google/gopacket"

	"github.com/vrtoybox/go-nolo/pkg/config"
)

// InPacket is one captured HID report with its capture metadata.
type InPacket struct {
	Data []byte
	gopacket.CaptureInfo
}

type Server struct {
	context.Context
	*config.Config
	ChIn chan InPacket
}

// ReadPacketData reads the input channel and returns packet data and
// metadata. This method is from the PacketDataSource interface.
func (s *Server) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	p := <-s.ChIn
	return p.Data, p.CaptureInfo, nil
}
