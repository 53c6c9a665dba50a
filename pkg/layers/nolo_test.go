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
	"testing"

	"github.com/google/gopacket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testReport builds a decrypted 60-byte report with known field values.
//
// Controller: position (1000, -2000, 3000), accel wire x=10 z=20 y=30,
// gyro wire x=100 z=100 y=50, buttons 0b00000101, touch (200, 100),
// battery 90, connected 0xF7, tick 5.
//
// Tracker: version 5 (shared byte with the controller tick), position
// (111, 222, -333), gyro (7, 8, 9), home (10, 20, 30), accel (40, 50, 60),
// drift -12, connected 0xF7, battery 80, tick 42.
func testReport(t *testing.T) []byte {
	t.Helper()

	buf := make([]byte, MinReportLen)
	put := func(off int, v int16) {
		binary.LittleEndian.PutUint16(buf[off:], uint16(v))
	}

	buf[0] = uint8(ReportController0HMD)
	put(1, 1000)
	put(3, -2000)
	put(5, 3000)
	put(7, 10) // accel x
	put(9, 20) // accel z on the wire
	put(11, 30)
	put(13, 100) // gyro x
	put(15, 100) // gyro z on the wire
	put(17, 50)
	buf[19] = 0b00000101
	buf[20] = 200
	buf[21] = 100
	buf[22] = 90
	buf[23] = 0xF7
	buf[24] = 5 // controller tick, also the tracker version byte

	put(25, 111)
	put(27, 222)
	put(29, -333)
	// bytes 31-36 reserved, left zero
	put(37, 7)
	put(39, 8)
	put(41, 9)
	put(43, 10)
	put(45, 20)
	put(47, 30)
	put(49, 40)
	put(51, 50)
	put(53, 60)
	put(55, -12)
	buf[57] = 0xF7
	buf[58] = 80
	buf[59] = 42

	return buf
}

func TestDecodeControllerRecord(t *testing.T) {
	rec, err := DecodeControllerRecord(testReport(t))
	require.NoError(t, err)

	assert.Equal(t, uint8(ReportController0HMD), rec.Version)

	assert.Equal(t, float32(1000)*PositionScale, rec.Position.X)
	assert.Equal(t, float32(-2000)*PositionScale, rec.Position.Y)
	assert.Equal(t, float32(3000)*PositionScale, rec.Position.Z)

	// Wire order x, z, y with z negated.
	assert.Equal(t, Vec3{X: 10, Y: 30, Z: -20}, rec.RawAccel)
	assert.Equal(t, Vec3{X: 100, Y: 50, Z: -100}, rec.RawGyro)

	assert.Equal(t, [6]bool{true, false, true, false, false, false}, rec.Buttons)
	assert.Equal(t, uint8(200), rec.TouchX)
	assert.Equal(t, uint8(100), rec.TouchY)
	assert.Equal(t, uint8(90), rec.Battery)
	assert.Equal(t, uint8(0xF7), rec.Connected)
	assert.Equal(t, uint8(5), rec.Tick)
}

func TestDecodeTrackerRecord(t *testing.T) {
	rec, err := DecodeTrackerRecord(testReport(t))
	require.NoError(t, err)

	assert.Equal(t, uint8(5), rec.Version)

	assert.Equal(t, float32(111)*PositionScale, rec.Position.X)
	assert.Equal(t, float32(222)*PositionScale, rec.Position.Y)
	assert.Equal(t, float32(-333)*PositionScale, rec.Position.Z)

	// Wire order x, y, z with z negated.
	assert.Equal(t, Vec3{X: 7, Y: 8, Z: -9}, rec.RawGyro)
	assert.Equal(t, Vec3{X: 40, Y: 50, Z: -60}, rec.RawAccel)

	assert.Equal(t, float32(10)*PositionScale, rec.HomePosition.X)
	assert.Equal(t, float32(20)*PositionScale, rec.HomePosition.Y)
	assert.Equal(t, float32(30)*PositionScale, rec.HomePosition.Z)

	assert.Equal(t, float32(-12), rec.TwoPointDriftAngle)
	assert.Equal(t, uint8(0xF7), rec.Connected)
	assert.Equal(t, uint8(80), rec.Battery)
	assert.Equal(t, uint8(42), rec.Tick)
}

func TestDecodeShortRecord(t *testing.T) {
	_, err := DecodeControllerRecord(testReport(t)[:10])
	require.Error(t, err)
	assert.IsType(t, ErrBufferUnderrun{}, err)

	_, err = DecodeTrackerRecord(testReport(t)[:40])
	require.Error(t, err)
}

func TestNoloReportLayer(t *testing.T) {
	packet := gopacket.NewPacket(testReport(t), NoloReportLayerType, gopacket.Default)
	require.Nil(t, packet.ErrorLayer())

	layer, ok := packet.Layer(NoloReportLayerType).(*NoloReportLayer)
	require.True(t, ok)

	assert.Equal(t, ReportController0HMD, layer.ReportID)
	require.NotNil(t, layer.Controller)
	require.NotNil(t, layer.Tracker)
	assert.Equal(t, uint8(5), layer.Controller.Tick)
	assert.Equal(t, uint8(42), layer.Tracker.Tick)
}

func TestNoloReportLayerTruncated(t *testing.T) {
	packet := gopacket.NewPacket(testReport(t)[:MinReportLen-1], NoloReportLayerType, gopacket.Default)
	assert.NotNil(t, packet.ErrorLayer())
}

func TestDecodeBaseStationRecord(t *testing.T) {
	rec := DecodeBaseStationRecord([]byte{0x02, 0x01, 0xaa, 0xbb})
	require.NotNil(t, rec)
	assert.Equal(t, BaseStationVersionTag, rec.Version)
	assert.Equal(t, []byte{0xaa, 0xbb}, rec.Payload)

	assert.Nil(t, DecodeBaseStationRecord([]byte{0x03, 0x00, 0xaa, 0xbb}))
	assert.Nil(t, DecodeBaseStationRecord([]byte{0x02}))
	assert.Nil(t, DecodeBaseStationRecord(nil))
}
