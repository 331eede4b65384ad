package netlink

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/effevee/weatherstation/utils/cli"
)

// NMCLIRadio drives the Wi-Fi interface through NetworkManager. The radio
// drops association when the station powers down, so Associate is issued
// fresh every cycle.
type NMCLIRadio struct {
	iface string
}

func NewNMCLIRadio(iface string) (*NMCLIRadio, error) {
	if err := cli.CheckCommandExists("nmcli"); err != nil {
		return nil, err
	}

	return &NMCLIRadio{iface: iface}, nil
}

func (r *NMCLIRadio) Associate(ssid, password string) error {
	// nmcli returns before the link is fully up; the client polls IsConnected.
	cmd := exec.Command("nmcli", "dev", "wifi", "connect", ssid,
		"password", password, "ifname", r.iface)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("nmcli connect: %s: %w", strings.TrimSpace(string(out)), err)
	}

	return nil
}

func (r *NMCLIRadio) IsConnected() (bool, error) {
	out, err := cli.Output("nmcli", "-t", "-f", "DEVICE,STATE", "dev")
	if err != nil {
		return false, err
	}

	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 && parts[0] == r.iface {
			return parts[1] == "connected", nil
		}
	}

	return false, nil
}
