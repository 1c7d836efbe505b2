package bullposter_protocol

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bullposter-cli/logging"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeReader serves accounts from memory. Missing accounts answer
// rpc.ErrNotFound the way the real client does.
type fakeReader struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey][]byte
	err      error
	nilValue bool
	calls    int
}

func newFakeReader() *fakeReader {
	return &fakeReader{accounts: map[solana.PublicKey][]byte{}}
}

func (f *fakeReader) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.err != nil {
		return nil, f.err
	}
	if f.nilValue {
		return &rpc.GetAccountInfoResult{}, nil
	}
	data, ok := f.accounts[account]
	if !ok {
		return nil, rpc.ErrNotFound
	}
	return &rpc.GetAccountInfoResult{
		Value: &rpc.Account{Data: rpc.DataBytesOrJSONFromBytes(data)},
	}, nil
}

func (f *fakeReader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newObservedLogger() (logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logging.NewZapLogger(zap.New(core)), logs
}

func newTestFetcher(t *testing.T, log logging.Logger, readers ...*fakeReader) *AccountFetcher {
	t.Helper()
	endpoints := make([]Endpoint, len(readers))
	for i, r := range readers {
		endpoints[i] = Endpoint{Name: "fake-" + string(rune('a'+i)), Reader: r}
	}
	f, err := NewAccountFetcherWithEndpoints(endpoints, log)
	require.NoError(t, err)
	return f
}

func TestFetchAccount_FirstEndpointAnswers(t *testing.T) {
	primary, backup := newFakeReader(), newFakeReader()
	primary.accounts[testUser] = []byte{1, 2, 3}

	f := newTestFetcher(t, nil, primary, backup)
	data, err := f.FetchAccount(context.Background(), testUser)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)
	require.Equal(t, 1, primary.Calls())
	require.Zero(t, backup.Calls())
}

func TestFetchAccount_FallsBackOnFailure(t *testing.T) {
	primary, backup := newFakeReader(), newFakeReader()
	primary.err = errors.New("connection refused")
	backup.accounts[testUser] = []byte{9}

	log, logs := newObservedLogger()
	f := newTestFetcher(t, log, primary, backup)

	data, err := f.FetchAccount(context.Background(), testUser)
	require.NoError(t, err)
	require.Equal(t, []byte{9}, data)
	require.Equal(t, 1, primary.Calls())
	require.Equal(t, 1, backup.Calls())

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	require.Equal(t, "fake-a", warnings[0].ContextMap()["endpoint"])
}

func TestFetchAccount_AllEndpointsFail(t *testing.T) {
	a, b, c := newFakeReader(), newFakeReader(), newFakeReader()
	a.err = errors.New("timeout")
	b.err = errors.New("429 too many requests")
	c.err = errors.New("502 bad gateway")

	f := newTestFetcher(t, nil, a, b, c)
	_, err := f.FetchAccount(context.Background(), testUser)

	require.ErrorIs(t, err, ErrAllEndpointsFailed)
	require.ErrorIs(t, err, ErrEndpointUnavailable)
	require.NotErrorIs(t, err, ErrNotFound)
	require.ErrorContains(t, err, "502 bad gateway")
	for _, r := range []*fakeReader{a, b, c} {
		require.Equal(t, 1, r.Calls(), "each endpoint is tried exactly once")
	}
}

func TestFetchAccount_NotFoundStopsFallback(t *testing.T) {
	primary, backup := newFakeReader(), newFakeReader()
	backup.accounts[testUser] = []byte{1}

	f := newTestFetcher(t, nil, primary, backup)
	data, err := f.FetchAccount(context.Background(), testUser)

	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, data)
	require.Zero(t, backup.Calls())
}

func TestFetchAccount_NilValueIsNotFound(t *testing.T) {
	r := newFakeReader()
	r.nilValue = true

	_, err := newTestFetcher(t, nil, r).FetchAccount(context.Background(), testUser)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFetchAccount_CancelledContext(t *testing.T) {
	r := newFakeReader()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestFetcher(t, nil, r).FetchAccount(ctx, testUser)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, r.Calls())
}

func TestNewAccountFetcher_NoEndpoints(t *testing.T) {
	_, err := NewAccountFetcher(nil, nil)
	require.ErrorIs(t, err, ErrNoEndpoints)
}

func TestNewAccountFetcher_RedactsNames(t *testing.T) {
	f, err := NewAccountFetcher([]string{
		"https://devnet.helius-rpc.com/?api-key=secret",
		"https://api.devnet.solana.com",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"https://devnet.helius-rpc.com/", "https://api.devnet.solana.com"}, f.Endpoints())
}
