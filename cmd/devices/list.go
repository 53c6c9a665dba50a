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
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vrtoybox/go-nolo/pkg/command"
	"github.com/vrtoybox/go-nolo/pkg/config"
)

func NewListCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all devices and their state",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			snaps, err := apiClient.Devices()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tNAME\tCONNECTED\tBATTERY\tTICK")
			for _, snap := range snaps {
				battery := fmt.Sprintf("%d", snap.Battery)
				if snap.Charging {
					battery = "charging"
				}
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%d\n",
					snap.Role, snap.Name, snap.Connected, battery, snap.Tick)
			}
			return w.Flush()
		},
	}
	return cmd
}
