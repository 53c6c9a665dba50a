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
	"errors"
	"io"
	"time"

	"github.com/google/gopacket"

	"github.com/vrtoybox/go-nolo/pkg/btea"
	"github.com/vrtoybox/go-nolo/pkg/config"
	"github.com/vrtoybox/go-nolo/pkg/device"
	deviceifc "github.com/vrtoybox/go-nolo/pkg/device/ifc"
	"github.com/vrtoybox/go-nolo/pkg/hid"
	"github.com/vrtoybox/go-nolo/pkg/layers"
	"github.com/vrtoybox/go-nolo/pkg/log"
	"github.com/vrtoybox/go-nolo/pkg/srv"
)

const (
	InChSize      = 100
	ReportBufSize = 256
	// PersistEvery throttles snapshot writes, reports arrive at IMU rate.
	PersistEvery = 64
)

// TrackingServer drives the decode pipeline: HID report, decrypt, parse,
// dispatch to the addressed logical devices. One report is fully dispatched
// before the next read, partial writes to a device's sample never interleave.
type TrackingServer struct {
	srv.Server
	source hid.Source
	key    btea.Key
	system deviceifc.System
	state  *State
	api    *ApiServer

	dispatched uint64
}

func NewTrackingServer(ctx context.Context, cfg *config.Config, source hid.Source) (*TrackingServer, error) {
	log.Info("Initializing tracking server")

	key, err := cfg.Key()
	if err != nil {
		return nil, err
	}

	state, err := NewState(ctx, cfg)
	if err != nil {
		return nil, err
	}

	system := device.NewSystem()
	for _, role := range device.Roles() {
		cal, calErr := state.GetCalibration(role)
		if calErr != nil {
			continue
		}
		log.Info("Restoring calibration: %s", role)
		if setErr := system.SetCalibration(role, *cal); setErr != nil {
			return nil, setErr
		}
	}

	s := &TrackingServer{
		Server: srv.Server{
			Context: ctx,
			Config:  cfg,
			ChIn:    make(chan srv.InPacket, InChSize),
		},
		source: source,
		key:    key,
		system: system,
		state:  state,
	}

	apiServer, err := NewApiServer(ctx, cfg, s)
	if err != nil {
		return nil, err
	}
	s.api = apiServer

	return s, nil
}

func (s *TrackingServer) System() deviceifc.System {
	return s.system
}

func (s *TrackingServer) Run() error {
	defer s.state.Close()
	defer s.source.Close()

	errChan := make(chan error, 1)

	// Read reports from the HID endpoint, decrypt and put them to the
	// input queue.
	go func() {
		buffer := make([]byte, ReportBufSize)
		for {
			length, readErr := s.source.ReadReport(buffer)
			if readErr != nil {
				errChan <- readErr
				return
			}
			if length == 0 {
				continue
			}

			data := make([]byte, length)
			copy(data, buffer[:length])

			if decErr := btea.DecryptReport(data, s.key); decErr != nil {
				log.Warning("Dropping report: %s", decErr)
				continue
			}

			s.ChIn <- srv.InPacket{
				Data: data,
				CaptureInfo: gopacket.CaptureInfo{
					Length:        length,
					CaptureLength: length,
					Timestamp:     time.Now(),
				},
			}
		}
	}()

	// Read decrypted reports from the input queue, parse and dispatch them.
	go func() {
		source := gopacket.NewPacketSource(s, layers.NoloReportLayerType)
		for packet := range source.Packets() {
			reportLayer := packet.Layer(layers.NoloReportLayerType)
			if reportLayer == nil {
				log.Error("Report could not be parsed")
				continue
			}
			report := reportLayer.(*layers.NoloReportLayer)
			s.handleReport(report, packet.Metadata().CaptureInfo)
		}
	}()

	go func() {
		apiErr := s.api.Run()
		if apiErr != nil {
			errChan <- apiErr
		}
	}()

	select {
	case <-s.Context.Done():
		return s.Context.Err()
	case err := <-errChan:
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
}

func (s *TrackingServer) handleReport(report *layers.NoloReportLayer, ci gopacket.CaptureInfo) {
	if err := s.system.Dispatch(report, ci.Timestamp); err != nil {
		// Base stations share the transport when plugged in to charge.
		// Their reports are versioned separately and carry nothing we
		// consume, an understood version tag is dropped silently.
		if station := layers.DecodeBaseStationRecord(report.Contents); station != nil {
			log.Debug("Base station report seen, version %d.%d", station.Version[0], station.Version[1])
			return
		}
		log.Error("Dispatch failed: %s", err)
		return
	}

	s.dispatched++
	if s.dispatched%PersistEvery != 0 {
		return
	}
	for _, snap := range s.system.Snapshots() {
		if err := s.state.SetSnapshot(snap); err != nil {
			log.Error("Error while persisting snapshot: %s", err)
		}
	}
}

// Recenter resets the orientation of all devices.
func (s *TrackingServer) Recenter() {
	s.system.Recenter()
}
