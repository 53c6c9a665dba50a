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

package watch

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vrtoybox/go-nolo/pkg/command"
	"github.com/vrtoybox/go-nolo/pkg/command/ifc"
	"github.com/vrtoybox/go-nolo/pkg/config"
	"github.com/vrtoybox/go-nolo/pkg/device"
)

const (
	pollInterval = 100 * time.Millisecond
)

func NewCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live view of device poses and inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newModel(command.NewApiClient(cfg))
			p := tea.NewProgram(m, tea.WithOutput(cmd.OutOrStdout()))
			_, err := p.Run()
			return err
		},
	}
	return cmd
}

type pollMsg struct {
	snaps []device.Snapshot
	err   error
}

type model struct {
	client ifc.ApiClient
	snaps  []device.Snapshot
	err    error
}

func newModel(client ifc.ApiClient) model {
	return model{client: client}
}

func (m model) poll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		snaps, err := m.client.Devices()
		return pollMsg{snaps: snaps, err: err}
	})
}

func (m model) Init() tea.Cmd {
	return m.poll()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			// fire and forget, errors show up on the next poll
			go m.client.Recenter()
			return m, nil
		}
	case pollMsg:
		m.snaps = msg.snaps
		m.err = msg.err
		return m, m.poll()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString("go-nolo watch (q quit, r recenter)\n\n")

	if m.err != nil {
		fmt.Fprintf(&b, "daemon unreachable: %v\n", m.err)
		return b.String()
	}

	for _, snap := range m.snaps {
		status := "disconnected"
		if snap.Connected {
			status = fmt.Sprintf("battery %d", snap.Battery)
		}
		if snap.Charging {
			status = "charging"
		}
		fmt.Fprintf(&b, "%-24s %s\n", snap.Name, status)
		fmt.Fprintf(&b, "  pos    (%8.4f, %8.4f, %8.4f)\n",
			snap.Pose.Position.X, snap.Pose.Position.Y, snap.Pose.Position.Z)
		fmt.Fprintf(&b, "  orient (%6.3f, %6.3f, %6.3f, %6.3f)\n",
			snap.Pose.Orientation.X, snap.Pose.Orientation.Y,
			snap.Pose.Orientation.Z, snap.Pose.Orientation.W)
		if snap.Role != device.HmdTracker.String() {
			fmt.Fprintf(&b, "  pad    (%6.3f, %6.3f) %s\n",
				snap.Inputs.TrackpadX, snap.Inputs.TrackpadY, buttonLine(snap.Inputs))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func buttonLine(in device.Inputs) string {
	var pressed []string
	if in.TrackpadClick {
		pressed = append(pressed, "pad")
	}
	if in.TriggerClick {
		pressed = append(pressed, "trigger")
	}
	if in.MenuClick {
		pressed = append(pressed, "menu")
	}
	if in.SystemClick {
		pressed = append(pressed, "system")
	}
	if in.SqueezeClick {
		pressed = append(pressed, "squeeze")
	}
	if in.TrackpadTouch {
		pressed = append(pressed, "touch")
	}
	return strings.Join(pressed, " ")
}
