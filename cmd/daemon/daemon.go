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

package daemon

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vrtoybox/go-nolo/pkg/config"
	"github.com/vrtoybox/go-nolo/pkg/hid"
	"github.com/vrtoybox/go-nolo/pkg/srv/tracking"
)

func NewCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the tracking daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			source, err := hid.Probe(cfg)
			if err != nil {
				return err
			}

			server, err := tracking.NewTrackingServer(ctx, cfg, source)
			if err != nil {
				source.Close()
				return err
			}
			return server.Run()
		},
	}
	return cmd
}
