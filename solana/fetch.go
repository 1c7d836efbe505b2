package bullposter_protocol

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"bullposter-cli/logging"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// AccountReader is the part of the RPC client the fetcher uses.
type AccountReader interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
}

// Endpoint is one RPC provider in the fallback list.
type Endpoint struct {
	Name   string
	Reader AccountReader
}

// NewEndpoint wraps an RPC URL. The name kept for logs has the query string
// stripped so API keys never reach the log output.
func NewEndpoint(rpcURL string) Endpoint {
	return Endpoint{Name: redactURL(rpcURL), Reader: rpc.New(rpcURL)}
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "rpc"
	}
	return u.Scheme + "://" + u.Host + u.Path
}

// AccountFetcher reads raw account data, trying each endpoint in order until
// one answers.
type AccountFetcher struct {
	endpoints  []Endpoint
	commitment rpc.CommitmentType
	log        logging.Logger
}

// NewAccountFetcher builds a fetcher over the RPC URLs, in priority order.
func NewAccountFetcher(rpcURLs []string, log logging.Logger) (*AccountFetcher, error) {
	endpoints := make([]Endpoint, 0, len(rpcURLs))
	for _, u := range rpcURLs {
		endpoints = append(endpoints, NewEndpoint(u))
	}
	return NewAccountFetcherWithEndpoints(endpoints, log)
}

func NewAccountFetcherWithEndpoints(endpoints []Endpoint, log logging.Logger) (*AccountFetcher, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &AccountFetcher{
		endpoints:  endpoints,
		commitment: rpc.CommitmentConfirmed,
		log:        log,
	}, nil
}

// Endpoints returns the endpoint names in priority order.
func (f *AccountFetcher) Endpoints() []string {
	names := make([]string, len(f.endpoints))
	for i, ep := range f.endpoints {
		names[i] = ep.Name
	}
	return names
}

// FetchAccount returns the raw data stored at address. A missing account is
// ErrNotFound and ends the call at once; only request failures move on to
// the next endpoint. Each endpoint is tried at most once.
func (f *AccountFetcher) FetchAccount(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	var failures []error
	for i, ep := range f.endpoints {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := ep.Reader.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
			Encoding:   solana.EncodingBase64,
			Commitment: f.commitment,
		})
		if errors.Is(err, rpc.ErrNotFound) || (err == nil && (resp == nil || resp.Value == nil)) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, address)
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			f.log.Warn(ctx, "rpc endpoint failed, trying next",
				"endpoint", ep.Name,
				"attempt", i+1,
				"of", len(f.endpoints),
				"address", address.String(),
				"error", err,
			)
			failures = append(failures, fmt.Errorf("%w: %s: %v", ErrEndpointUnavailable, ep.Name, err))
			continue
		}

		if i > 0 {
			f.log.Debug(ctx, "rpc fallback endpoint answered", "endpoint", ep.Name, "address", address.String())
		}
		return resp.Value.Data.GetBinary(), nil
	}

	f.log.Error(ctx, "all rpc endpoints failed", "address", address.String(), "endpoints", len(f.endpoints))
	return nil, fmt.Errorf("%w: %w", ErrAllEndpointsFailed, errors.Join(failures...))
}
