package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

var (
	walletA = solana.MustPublicKeyFromBase58("7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU")
	walletB = solana.MustPublicKeyFromBase58("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")
)

func newTestDB(t *testing.T) (*JSONDB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config", profilesFileName)
	db, err := ConnectAt(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func TestConnectAt_CreatesEmptyStore(t *testing.T) {
	db, path := newTestDB(t)

	_, err := os.Stat(path)
	require.NoError(t, err)

	profiles, err := db.GetAllProfiles()
	require.NoError(t, err)
	require.Empty(t, profiles)
}

func TestProfiles_SaveGetDelete(t *testing.T) {
	db, _ := newTestDB(t)

	require.NoError(t, db.SaveProfile("raider", walletA))
	require.NoError(t, db.SaveProfile("alpha", walletB))

	p, err := db.GetProfile("raider")
	require.NoError(t, err)
	require.Equal(t, walletA, p.Wallet)

	all, err := db.GetAllProfiles()
	require.NoError(t, err)
	require.Equal(t, []Profile{{Name: "alpha", Wallet: walletB}, {Name: "raider", Wallet: walletA}}, all)

	require.NoError(t, db.SaveProfile("raider", walletB))
	p, err = db.GetProfile("raider")
	require.NoError(t, err)
	require.Equal(t, walletB, p.Wallet)

	require.NoError(t, db.DeleteProfile("raider"))
	_, err = db.GetProfile("raider")
	require.ErrorIs(t, err, ErrProfileNotFound)
	require.ErrorIs(t, db.DeleteProfile("raider"), ErrProfileNotFound)
}

func TestProfiles_PersistAcrossConnections(t *testing.T) {
	db, path := newTestDB(t)
	require.NoError(t, db.SaveProfile("raider", walletA))

	reopened, err := ConnectAt(path)
	require.NoError(t, err)
	p, err := reopened.GetProfile("raider")
	require.NoError(t, err)
	require.Equal(t, walletA, p.Wallet)
}

func TestProfiles_RejectInvalid(t *testing.T) {
	db, _ := newTestDB(t)

	require.ErrorIs(t, db.SaveProfile("  ", walletA), ErrInvalidProfile)
	require.ErrorIs(t, db.SaveProfile("zero", solana.PublicKey{}), ErrInvalidProfile)
}

func TestProfiles_CorruptFile(t *testing.T) {
	db, path := newTestDB(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := db.GetAllProfiles()
	require.Error(t, err)
}

func TestProfiles_BadStoredKey(t *testing.T) {
	db, path := newTestDB(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"profiles":{"bad":"xyz","good":"`+walletA.String()+`"}}`), 0644))

	_, err := db.GetProfile("bad")
	require.ErrorIs(t, err, ErrInvalidProfile)

	all, err := db.GetAllProfiles()
	require.NoError(t, err)
	require.Equal(t, []Profile{{Name: "good", Wallet: walletA}}, all)
}
