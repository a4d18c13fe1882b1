package abifetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/MacroPower/abischema/pkg/abi"
	"github.com/MacroPower/abischema/pkg/abierrors"
	"github.com/MacroPower/abischema/pkg/http"
)

// ABIMethod is the view method that returns a contract's embedded ABI.
const ABIMethod = "__contract_abi"

const defaultRPCTimeout = 30 * time.Second

var errUnknownNetwork = errors.New("unknown network")

// RPC fetches the ABI embedded in a contract via NEAR JSON-RPC.
type RPC struct {
	// URL overrides the endpoint derived from Network.
	URL string
	// Network selects an endpoint from [RPCEndpoints].
	Network string
	// Timeout bounds each request.
	Timeout time.Duration
}

// NewRPC creates a new [RPC] for the given network.
func NewRPC(network string) *RPC {
	return &RPC{Network: network}
}

// Endpoint returns the JSON-RPC URL used by the fetcher.
func (r *RPC) Endpoint() (string, error) {
	if r.URL != "" {
		return r.URL, nil
	}

	network := r.Network
	if network == "" {
		network = DefaultNetwork
	}

	url, ok := RPCEndpoints[network]
	if !ok {
		return "", fmt.Errorf("%w %q: set an explicit RPC URL", errUnknownNetwork, network)
	}

	return url, nil
}

type rpcRequest struct {
	Params  rpcQuery `json:"params"`
	JSONRPC string   `json:"jsonrpc"`
	ID      string   `json:"id"`
	Method  string   `json:"method"`
}

type rpcQuery struct {
	RequestType string `json:"request_type"`
	Finality    string `json:"finality"`
	AccountID   string `json:"account_id"`
	MethodName  string `json:"method_name"`
	ArgsBase64  string `json:"args_base64"`
}

type rpcResponse struct {
	Error  *rpcError  `json:"error"`
	Result *rpcResult `json:"result"`
}

type rpcError struct {
	Cause   *rpcErrorCause `json:"cause"`
	Data    any            `json:"data"`
	Name    string         `json:"name"`
	Message string         `json:"message"`
	Code    int            `json:"code"`
}

type rpcErrorCause struct {
	Name string `json:"name"`
}

func (e *rpcError) Error() string {
	msg := e.Message
	if e.Cause != nil && e.Cause.Name != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause.Name)
	}

	if e.Data != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Data)
	}

	return fmt.Sprintf("rpc error %d: %s", e.Code, msg)
}

type rpcResult struct {
	Error  string `json:"error"`
	Result []int  `json:"result"`
}

// Fetch calls the contract's ABI view method, decompresses the result and
// writes it to dir.
func (r *RPC) Fetch(ctx context.Context, contractID, dir string) (*Result, error) {
	path, err := abiPath(contractID, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", abierrors.ErrFetchABI, err)
	}

	data, url, err := r.fetch(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", abierrors.ErrFetchABI, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%w: create directory: %w", abierrors.ErrFetchABI, err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", abierrors.ErrFetchABI, abierrors.ErrWriteFile, err)
	}

	return &Result{
		ContractID: contractID,
		Path:       path,
		Output:     fmt.Sprintf("saved %d bytes from %s", len(data), url),
	}, nil
}

func (r *RPC) fetch(ctx context.Context, contractID string) ([]byte, string, error) {
	url, err := r.Endpoint()
	if err != nil {
		return nil, "", err
	}

	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      "abischema",
		Method:  "query",
		Params: rpcQuery{
			RequestType: "call_function",
			Finality:    "final",
			AccountID:   contractID,
			MethodName:  ABIMethod,
			ArgsBase64:  "",
		},
	})
	if err != nil {
		return nil, url, fmt.Errorf("marshal request: %w", err)
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultRPCTimeout
	}

	slog.Debug("querying rpc", "url", url, "contract", contractID)

	body, status, err := http.NewClient(timeout).PostJSON(ctx, url, reqBody)
	if err != nil {
		return nil, url, err
	}

	var resp rpcResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		if status != nethttp.StatusOK {
			return nil, url, fmt.Errorf("unexpected status %d", status)
		}

		return nil, url, fmt.Errorf("decode response: %w", err)
	}

	if resp.Error != nil {
		return nil, url, resp.Error
	}

	if status != nethttp.StatusOK {
		return nil, url, fmt.Errorf("unexpected status %d", status)
	}

	if resp.Result == nil {
		return nil, url, errors.New("empty result")
	}

	if resp.Result.Error != "" {
		return nil, url, fmt.Errorf("contract call failed: %s", resp.Result.Error)
	}

	raw := make([]byte, len(resp.Result.Result))
	for i, b := range resp.Result.Result {
		if b < 0 || b > 255 {
			return nil, url, fmt.Errorf("invalid byte %d at offset %d", b, i)
		}

		raw[i] = byte(b)
	}

	if abi.IsCompressed(raw) {
		raw, err = abi.Decompress(raw)
		if err != nil {
			return nil, url, err
		}
	}

	return raw, url, nil
}
