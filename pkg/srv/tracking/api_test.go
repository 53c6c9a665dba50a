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

package tracking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrtoybox/go-nolo/pkg/device"
	"github.com/vrtoybox/go-nolo/pkg/hid"
	"github.com/vrtoybox/go-nolo/pkg/layers"
)

func newTestApi(t *testing.T) *TrackingServer {
	t.Helper()
	cfg := newTestConfig(t)
	s, err := NewTrackingServer(context.Background(), cfg, &hid.MockSource{})
	require.NoError(t, err)
	t.Cleanup(s.state.Close)

	report := decodeReport(t, plainReport(layers.ReportController0HMD, 0b00000101, 1))
	s.handleReport(report, gopacket.CaptureInfo{Timestamp: time.Now()})
	return s
}

func apiGet(t *testing.T, s *TrackingServer, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.api.Router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestApiDevices(t *testing.T) {
	s := newTestApi(t)

	rec := apiGet(t, s, "/api/devices")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snaps []device.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snaps))
	require.Len(t, snaps, 3)
	assert.Equal(t, "tracker", snaps[0].Role)
	assert.Equal(t, "left", snaps[1].Role)
	assert.Equal(t, "right", snaps[2].Role)
}

func TestApiDevice(t *testing.T) {
	s := newTestApi(t)

	rec := apiGet(t, s, "/api/device/left")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap device.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, device.LeftControllerName, snap.Name)
	assert.True(t, snap.Connected)
	assert.Equal(t, uint64(1), snap.Tick)
}

func TestApiDeviceNotFound(t *testing.T) {
	s := newTestApi(t)

	assert.Equal(t, http.StatusNotFound, apiGet(t, s, "/api/device/hmd").Code)
	assert.Equal(t, http.StatusNotFound, apiGet(t, s, "/api/device/hmd/pose").Code)
	assert.Equal(t, http.StatusNotFound, apiGet(t, s, "/api/device/hmd/inputs").Code)
}

func TestApiPose(t *testing.T) {
	s := newTestApi(t)

	rec := apiGet(t, s, "/api/device/left/pose")
	require.Equal(t, http.StatusOK, rec.Code)

	var pose device.Pose
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pose))
	assert.InDelta(t, 0.1, float64(pose.Position.X), 1e-5)
	assert.InDelta(t, 0.2, float64(pose.Position.Y), 1e-5)
	assert.InDelta(t, 0.3, float64(pose.Position.Z), 1e-5)
}

func TestApiInputs(t *testing.T) {
	s := newTestApi(t)

	rec := apiGet(t, s, "/api/device/left/inputs")
	require.Equal(t, http.StatusOK, rec.Code)

	var inputs device.Inputs
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&inputs))
	assert.True(t, inputs.TrackpadClick)
	assert.True(t, inputs.MenuClick)
	assert.False(t, inputs.TriggerClick)
}

func TestApiRecenter(t *testing.T) {
	s := newTestApi(t)

	rec := httptest.NewRecorder()
	s.api.Router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/recenter", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// GET is not routed for recenter.
	assert.Equal(t, http.StatusMethodNotAllowed, apiGet(t, s, "/api/recenter").Code)
}
