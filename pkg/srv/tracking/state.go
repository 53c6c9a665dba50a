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

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"github.com/vrtoybox/go-nolo/pkg/config"
	"github.com/vrtoybox/go-nolo/pkg/device"
	"github.com/vrtoybox/go-nolo/pkg/log"
)

const (
	BucketPrefix   = "device_"
	SnapshotKey    = "snapshot"
	CalibrationKey = "calibration"
)

// State persists the last seen snapshot and the IMU calibration per device,
// so calibration survives daemon restarts and the API can answer before the
// first report arrives.
type State struct {
	context.Context
	DB *bbolt.DB
}

func NewState(ctx context.Context, cfg *config.Config) (*State, error) {
	db, err := bbolt.Open(cfg.DBPath, 0600, nil)
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bbolt.Tx) error {
		for _, role := range device.Roles() {
			_, err = tx.CreateBucketIfNotExists([]byte(bucketName(role)))
			if err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &State{
		Context: ctx,
		DB:      db,
	}, nil
}

func bucketName(role string) string {
	return BucketPrefix + role
}

// Close ...
func (s *State) Close() {
	s.DB.Close()
}

func (s *State) put(role, key string, value interface{}) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(role)))
		if b == nil {
			return ErrNotFound{Bucket: bucketName(role)}
		}
		return b.Put([]byte(key), data)
	})
}

func (s *State) get(role, key string, value interface{}) error {
	return s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(role)))
		if b == nil {
			return ErrNotFound{Bucket: bucketName(role)}
		}
		data := b.Get([]byte(key))
		if data == nil {
			return ErrNotFound{Bucket: bucketName(role), Key: key}
		}
		return yaml.Unmarshal(data, value)
	})
}

// SetSnapshot ...
func (s *State) SetSnapshot(snap device.Snapshot) error {
	log.Debug("Persisting snapshot: %s tick: %d", snap.Role, snap.Tick)
	return s.put(snap.Role, SnapshotKey, &snap)
}

// GetSnapshot ...
func (s *State) GetSnapshot(role string) (*device.Snapshot, error) {
	snap := &device.Snapshot{}
	if err := s.get(role, SnapshotKey, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// SetCalibration ...
func (s *State) SetCalibration(role string, cal device.Calibration) error {
	log.Debug("Persisting calibration: %s", role)
	return s.put(role, CalibrationKey, &cal)
}

// GetCalibration ...
func (s *State) GetCalibration(role string) (*device.Calibration, error) {
	cal := &device.Calibration{}
	if err := s.get(role, CalibrationKey, cal); err != nil {
		return nil, err
	}
	return cal, nil
}
