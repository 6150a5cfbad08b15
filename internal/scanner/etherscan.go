package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"solscope/internal"
	"solscope/internal/logger"
)

const DefaultAPIURL = "https://api.etherscan.io/v2/api"

// EtherscanClient fetches verified contract artifacts from an Etherscan-style
// explorer API.
type EtherscanClient struct {
	apiKey  string
	baseURL string
	chainID string
	client  *http.Client
}

type EtherscanResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type ContractSource struct {
	SourceCode           string `json:"SourceCode"`
	ABI                  string `json:"ABI"`
	ContractName         string `json:"ContractName"`
	CompilerVersion      string `json:"CompilerVersion"`
	OptimizationUsed     string `json:"OptimizationUsed"`
	Runs                 string `json:"Runs"`
	ConstructorArguments string `json:"ConstructorArguments"`
	EVMVersion           string `json:"EVMVersion"`
	LicenseType          string `json:"LicenseType"`
	Proxy                string `json:"Proxy"`
	Implementation       string `json:"Implementation"`
}

func NewEtherscanClient(apiKey, baseURL, chainID string) *EtherscanClient {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if chainID == "" {
		chainID = "1"
	}
	return &EtherscanClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		chainID: chainID,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetContract fetches the verified source and the ABI for an address. The
// two calls run concurrently; a failed ABI call is non-critical because
// getsourcecode carries the ABI too.
func (e *EtherscanClient) GetContract(ctx context.Context, address string) (*internal.Contract, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("explorer API key not configured")
	}

	var source *ContractSource
	var abi string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		source, err = e.getContractSource(gctx, address)
		return err
	})
	g.Go(func() error {
		var err error
		abi, err = e.getContractABI(gctx, address)
		if err != nil {
			logger.Debug("getabi failed for %s, falling back to getsourcecode ABI: %v", address, err)
			abi = ""
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if abi == "" {
		abi = source.ABI
	}

	return &internal.Contract{
		Address:        address,
		Name:           source.ContractName,
		Code:           source.SourceCode,
		ABI:            abi,
		Compiler:       source.CompilerVersion,
		IsOpenSource:   source.SourceCode != "",
		IsProxy:        source.Proxy == "1",
		Implementation: source.Implementation,
		FetchedAt:      time.Now(),
	}, nil
}

func (e *EtherscanClient) getContractSource(ctx context.Context, address string) (*ContractSource, error) {
	result, err := e.call(ctx, "contract", "getsourcecode", address)
	if err != nil {
		return nil, err
	}

	var sources []ContractSource
	if err := json.Unmarshal(result, &sources); err != nil {
		return nil, fmt.Errorf("failed to decode getsourcecode result: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no contract source found for %s", address)
	}

	return &sources[0], nil
}

func (e *EtherscanClient) getContractABI(ctx context.Context, address string) (string, error) {
	result, err := e.call(ctx, "contract", "getabi", address)
	if err != nil {
		return "", err
	}

	var abi string
	if err := json.Unmarshal(result, &abi); err != nil {
		// Some explorers return the ABI unquoted
		return string(result), nil
	}
	return abi, nil
}

// call performs one explorer API round trip. A non-"1" status is surfaced as
// an error carrying the upstream payload.
func (e *EtherscanClient) call(ctx context.Context, module, action, address string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("chainid", e.chainID)
	params.Set("module", module)
	params.Set("action", action)
	params.Set("address", address)
	params.Set("apikey", e.apiKey)

	reqURL := fmt.Sprintf("%s?%s", e.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explorer request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var apiResp EtherscanResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode explorer response: %w", err)
	}

	if apiResp.Status != "1" {
		return nil, fmt.Errorf("explorer API error: %s: %s", apiResp.Message, string(apiResp.Result))
	}

	return apiResp.Result, nil
}
