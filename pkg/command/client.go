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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"github.com/vrtoybox/go-nolo/pkg/command/ifc"
	"github.com/vrtoybox/go-nolo/pkg/config"
	"github.com/vrtoybox/go-nolo/pkg/device"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

var _ ifc.ApiClient = &ApiClient{}

func NewApiClient(cfg *config.Config) ifc.ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: cfg.ApiURL(),
	}
}

func (c *ApiClient) deviceUrl(role string) string {
	return fmt.Sprintf("%s/device/%s", c.ApiPrefix, role)
}

// Devices requests the state of all three logical devices
func (c *ApiClient) Devices() ([]device.Snapshot, error) {
	r, err := req.Get(fmt.Sprintf("%s/devices", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var snaps []device.Snapshot
	err = r.ToJSON(&snaps)
	if err != nil {
		return nil, err
	}
	return snaps, nil
}

// Device requests the state of one device
func (c *ApiClient) Device(role string) (*device.Snapshot, error) {
	r, err := req.Get(c.deviceUrl(role))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	snap := &device.Snapshot{}
	err = r.ToJSON(snap)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Pose requests the current pose of one device
func (c *ApiClient) Pose(role string) (*device.Pose, error) {
	r, err := req.Get(fmt.Sprintf("%s/pose", c.deviceUrl(role)))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	pose := &device.Pose{}
	err = r.ToJSON(pose)
	if err != nil {
		return nil, err
	}
	return pose, nil
}

// Inputs requests the current input state of one controller
func (c *ApiClient) Inputs(role string) (*device.Inputs, error) {
	r, err := req.Get(fmt.Sprintf("%s/inputs", c.deviceUrl(role)))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	inputs := &device.Inputs{}
	err = r.ToJSON(inputs)
	if err != nil {
		return nil, err
	}
	return inputs, nil
}

// Recenter asks the daemon to reset the orientation of all devices
func (c *ApiClient) Recenter() error {
	r, err := req.Post(fmt.Sprintf("%s/recenter", c.ApiPrefix))
	if err != nil {
		return err
	}
	if r.Response().StatusCode != 200 {
		return errors.New(r.Response().Status)
	}
	return nil
}
