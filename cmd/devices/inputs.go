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

func NewInputsCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "inputs [left|right]",
		Short: "Show the current input state of a controller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			inputs, err := apiClient.Inputs(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("trackpad click: %t\n", inputs.TrackpadClick)
			cmd.Printf("trigger click: %t\n", inputs.TriggerClick)
			cmd.Printf("menu click: %t\n", inputs.MenuClick)
			cmd.Printf("system click: %t\n", inputs.SystemClick)
			cmd.Printf("squeeze click: %t\n", inputs.SqueezeClick)
			cmd.Printf("trackpad touch: %t\n", inputs.TrackpadTouch)
			cmd.Printf("trackpad: (%g, %g)\n", inputs.TrackpadX, inputs.TrackpadY)
			return nil
		},
	}
	return cmd
}
