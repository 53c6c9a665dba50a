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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vrtoybox/go-nolo/cmd/completion"
	"github.com/vrtoybox/go-nolo/cmd/config"
	"github.com/vrtoybox/go-nolo/cmd/daemon"
	"github.com/vrtoybox/go-nolo/cmd/devices"
	"github.com/vrtoybox/go-nolo/cmd/recenter"
	"github.com/vrtoybox/go-nolo/cmd/watch"
	pkgconfig "github.com/vrtoybox/go-nolo/pkg/config"
	"github.com/vrtoybox/go-nolo/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel string
	cfg := pkgconfig.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "go-nolo",
		Short: "Driver daemon for NOLO CV1 tracking hardware",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(config.NewCommand())
	cmd.AddCommand(daemon.NewCommand())
	cmd.AddCommand(devices.NewCommand())
	cmd.AddCommand(recenter.NewCommand())
	cmd.AddCommand(watch.NewCommand())
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	return cmd
}
