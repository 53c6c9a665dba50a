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

package devices

import (
	"github.com/spf13/cobra"

	"github.com/vrtoybox/go-nolo/pkg/command"
	"github.com/vrtoybox/go-nolo/pkg/config"
)

func NewPoseCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "pose [tracker|left|right]",
		Short: "Show the current pose of a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			pose, err := apiClient.Pose(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("position: (%g, %g, %g)\n",
				pose.Position.X, pose.Position.Y, pose.Position.Z)
			cmd.Printf("orientation: (%g, %g, %g, %g)\n",
				pose.Orientation.X, pose.Orientation.Y, pose.Orientation.Z, pose.Orientation.W)
			return nil
		},
	}
	return cmd
}
