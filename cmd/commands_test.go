package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"bullposter-cli/logging"
	bullposter_protocol "bullposter-cli/solana"
	"bullposter-cli/storage"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testWallet  = solana.MustPublicKeyFromBase58("7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU")
	testProgram = solana.MustPublicKeyFromBase58("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")
)

type fakeFetcher struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey][]byte
}

func (f *fakeFetcher) FetchAccount(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.accounts[address]
	if !ok {
		return nil, fmt.Errorf("%w: %s", bullposter_protocol.ErrNotFound, address)
	}
	return data, nil
}

type cmdEnv struct {
	t       *testing.T
	fetcher *fakeFetcher
	client  *bullposter_protocol.Client
}

func newCmdEnv(t *testing.T) *cmdEnv {
	t.Helper()
	clearEnv(t)
	t.Setenv(envLogLevel, "error")

	fetcher := &fakeFetcher{accounts: map[solana.PublicKey][]byte{}}
	dbPath := filepath.Join(t.TempDir(), "config", "profiles.json")

	origClient, origProfiles := newClient, openProfiles
	newClient = func(_ []string, programID solana.PublicKey, log logging.Logger) (*bullposter_protocol.Client, error) {
		return bullposter_protocol.NewClientWithFetcher(fetcher, programID, log), nil
	}
	openProfiles = func() (*storage.JSONDB, error) { return storage.ConnectAt(dbPath) }
	t.Cleanup(func() { newClient, openProfiles = origClient, origProfiles })

	return &cmdEnv{
		t:       t,
		fetcher: fetcher,
		client:  bullposter_protocol.NewClientWithFetcher(fetcher, bullposter_protocol.ProgramID, nil),
	}
}

func (e *cmdEnv) put(address solana.PublicKey, v interface {
	MarshalWithEncoder(*bin.Encoder) error
}) {
	e.t.Helper()
	data, err := bullposter_protocol.MarshalAccount(v)
	require.NoError(e.t, err)
	e.fetcher.accounts[address] = data
}

func (e *cmdEnv) run(args ...string) (string, error) {
	e.t.Helper()
	jsonOutput, withPrograms, fetchProgram = false, false, false
	profileFlag, challengerFlag, challengedFlag, serveAddr = "", "", "", ""
	rpcFlags, programIDFlag = nil, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedCommand_JSON(t *testing.T) {
	env := newCmdEnv(t)

	out, err := env.run("seed", "user_card_FY9aF1jszyGoABygvsQ28oHfqgyUVZkttzr8Vcx7sLKH", "--json")
	require.NoError(t, err)

	var view struct {
		SeedHex string           `json:"seedHex"`
		PDA     solana.PublicKey `json:"pda"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "51ac0ca14974355133de26e96cb797750c3c775c2aa8cd86a76491852a22d651", view.SeedHex)

	want, _, err := env.client.GetUserCardPDA(bullposter_protocol.ProgramID)
	require.NoError(t, err)
	assert.Equal(t, want, view.PDA)
}

func TestUserCardCommand(t *testing.T) {
	env := newCmdEnv(t)
	card := bullposter_protocol.UserCard{
		UserPubkey:        testWallet,
		UserTwitterHandle: "@raider",
		TotalRewards:      42,
	}
	pda, _, err := env.client.GetUserCardPDA(testWallet)
	require.NoError(t, err)
	env.put(pda, card)

	out, err := env.run("user-card", testWallet.String(), "--json")
	require.NoError(t, err)
	var got bullposter_protocol.UserCard
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, card, got)

	out, err = env.run("user-card", testWallet.String())
	require.NoError(t, err)
	assert.Contains(t, out, "User Card")
	assert.Contains(t, out, "@raider")
}

func TestUserCardCommand_Errors(t *testing.T) {
	env := newCmdEnv(t)

	_, err := env.run("user-card", "not-a-key")
	require.ErrorIs(t, err, bullposter_protocol.ErrMalformedSeedInput)

	_, err = env.run("user-card", testWallet.String())
	require.ErrorIs(t, err, bullposter_protocol.ErrNotFound)

	_, err = env.run("user-card")
	require.Error(t, err)
}

func TestProfileCommands(t *testing.T) {
	env := newCmdEnv(t)
	pda, _, err := env.client.GetUserCardPDA(testWallet)
	require.NoError(t, err)
	env.put(pda, bullposter_protocol.UserCard{UserPubkey: testWallet, UserTwitterHandle: "@raider"})

	_, err = env.run("profile", "add", "raider", testWallet.String())
	require.NoError(t, err)

	out, err := env.run("profile", "list", "--json")
	require.NoError(t, err)
	var profiles []storage.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &profiles))
	assert.Equal(t, []storage.Profile{{Name: "raider", Wallet: testWallet}}, profiles)

	out, err = env.run("profile", "show", "raider")
	require.NoError(t, err)
	assert.Contains(t, out, "@raider")

	out, err = env.run("user-card", "--profile", "raider")
	require.NoError(t, err)
	assert.Contains(t, out, "@raider")

	_, err = env.run("profile", "rm", "raider")
	require.NoError(t, err)
	_, err = env.run("profile", "show", "raider")
	require.ErrorIs(t, err, storage.ErrProfileNotFound)
}

func TestStateCommand(t *testing.T) {
	env := newCmdEnv(t)
	pda, _, err := env.client.GetProgramStatePDA()
	require.NoError(t, err)
	env.put(pda, bullposter_protocol.ProgramStateCard{
		LastSeenRaids:        `{"4-program":{"sequence":2}}`,
		RegisteredUsersCount: 7,
	})

	out, err := env.run("state")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered users")
	assert.Contains(t, out, "sequence 2")
}

func TestNextCompetitionCommand(t *testing.T) {
	env := newCmdEnv(t)
	pda, _, err := env.client.GetProgramStatePDA()
	require.NoError(t, err)
	env.put(pda, bullposter_protocol.ProgramStateCard{LastSeenRaids: `{"4-program":{"sequence":2}}`})

	out, err := env.run("next-competition", "4-program", "--json")
	require.NoError(t, err)
	var targets bullposter_protocol.CompetitionTargets
	require.NoError(t, json.Unmarshal([]byte(out), &targets))
	assert.Equal(t, uint64(2), targets.CurrentSequence)
	assert.Equal(t, uint64(3), targets.NextSequence)

	want, _, err := env.client.GetCompetitionPDA("4-program", 3)
	require.NoError(t, err)
	assert.Equal(t, want, targets.Next)

	_, err = env.run("next-competition", "PvP")
	require.Error(t, err)

	out, err = env.run("next-competition", "PvP", "--challenger", testWallet.String(), "--challenged", testProgram.String(), "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &targets))
	want, _, err = env.client.GetPvPCompetitionPDA(testWallet, 1, testProgram)
	require.NoError(t, err)
	assert.Equal(t, want, targets.Next)
}

func TestProgramPDACommand(t *testing.T) {
	env := newCmdEnv(t)
	pda, _, err := env.client.GetRaidProgramPDA(testWallet, "alpha")
	require.NoError(t, err)
	env.put(pda, bullposter_protocol.RaidProgramCard{RaidProgramId: pda, Name: "alpha", UserKey: testWallet})

	out, err := env.run("program-pda", testWallet.String(), "alpha", "--fetch")
	require.NoError(t, err)
	assert.Contains(t, out, pda.String())
	assert.Contains(t, out, "Raid Program alpha")
}
