package abifetch

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/MacroPower/abischema/pkg/abierrors"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"

	DefaultNetwork = NetworkMainnet
)

var (
	// RPCEndpoints maps network names to public JSON-RPC endpoints.
	RPCEndpoints = map[string]string{
		NetworkMainnet: "https://rpc.mainnet.near.org",
		NetworkTestnet: "https://rpc.testnet.near.org",
	}

	accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)
)

// Fetcher downloads the ABI of a contract into a directory.
type Fetcher interface {
	Fetch(ctx context.Context, contractID, dir string) (*Result, error)
}

// Result describes a downloaded ABI.
type Result struct {
	// ContractID is the account the ABI was fetched for.
	ContractID string
	// Path is the location of the written ABI document.
	Path string
	// Output is diagnostic output of the fetch, e.g. the `near` tool's
	// stdout.
	Output string
}

// Filename returns the file name an ABI for contractID is saved as.
func Filename(contractID string) string {
	return contractID + ".abi.json"
}

// ValidateAccountID returns an error if id is not a valid NEAR account ID.
func ValidateAccountID(id string) error {
	if len(id) < 2 || len(id) > 64 || !accountIDPattern.MatchString(id) {
		return fmt.Errorf("%w: invalid account id %q", abierrors.ErrInvalidArguments, id)
	}

	return nil
}

func abiPath(contractID, dir string) (string, error) {
	if err := ValidateAccountID(contractID); err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}

	return filepath.Join(dir, Filename(contractID)), nil
}

// Fetcher sources.
const (
	SourceNearCLI = "near-cli"
	SourceRPC     = "rpc"
)

// Options configures the fetcher returned by [NewFetcher].
type Options struct {
	NearCLI string
	Network string
	RPCURL  string
	Timeout time.Duration
}

// NewFetcher returns the [Fetcher] for source.
//
//nolint:ireturn
func NewFetcher(source string, opts Options) (Fetcher, error) {
	switch source {
	case SourceNearCLI, "":
		return &NearCLI{Binary: opts.NearCLI, Network: opts.Network, Timeout: opts.Timeout}, nil
	case SourceRPC:
		return &RPC{URL: opts.RPCURL, Network: opts.Network, Timeout: opts.Timeout}, nil
	}

	return nil, fmt.Errorf("%w: unknown source %q", abierrors.ErrInvalidArguments, source)
}
