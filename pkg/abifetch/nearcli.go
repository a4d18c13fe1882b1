package abifetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/MacroPower/abischema/pkg/abierrors"
	"github.com/MacroPower/abischema/pkg/exec"
)

// DefaultNearBinary is the name of the NEAR command line tool.
const DefaultNearBinary = "near"

// NearCLI fetches ABIs by running
// `near contract download-abi <id> save-to-file <path> network-config <network> now`.
type NearCLI struct {
	// Binary is the path to the `near` executable.
	Binary string
	// Network is passed as the network-config.
	Network string
	// Timeout bounds the runtime of the command.
	Timeout time.Duration
}

// NewNearCLI creates a new [NearCLI] with default settings.
func NewNearCLI() *NearCLI {
	return &NearCLI{
		Binary:  DefaultNearBinary,
		Network: DefaultNetwork,
	}
}

// Fetch runs the `near` tool. On failure the returned error wraps
// [abierrors.ErrFetchABI] and an [*exec.CmdError] carrying the tool's stderr.
func (n *NearCLI) Fetch(ctx context.Context, contractID, dir string) (*Result, error) {
	path, err := abiPath(contractID, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", abierrors.ErrFetchABI, err)
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("%w: create directory: %w", abierrors.ErrFetchABI, err)
		}
	}

	binary := n.Binary
	if binary == "" {
		binary = DefaultNearBinary
	}

	network := n.Network
	if network == "" {
		network = DefaultNetwork
	}

	slog.Debug("downloading abi", "contract", contractID, "network", network, "path", path)

	out, err := exec.Run(ctx, binary, exec.CmdOpts{Timeout: n.Timeout, SkipErrorLogging: true},
		"contract", "download-abi", contractID,
		"save-to-file", path,
		"network-config", network,
		"now",
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", abierrors.ErrFetchABI, err)
	}

	return &Result{ContractID: contractID, Path: path, Output: out}, nil
}
