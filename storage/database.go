package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gagliardetto/solana-go"
)

const (
	profilesFileName = "profiles.json"
	configDirName    = "config"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")
)

// profilesFile is the on-disk layout: profile name -> base58 wallet key.
type profilesFile struct {
	Profiles map[string]string `json:"profiles"`
}

// JSONDB provides access to the JSON-based profile storage.
type JSONDB struct {
	path string
	mu   sync.Mutex
}

// Connect opens the profile store under ./config in the working directory.
func Connect() (*JSONDB, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("could not get db path: %w", err)
	}
	return ConnectAt(dbPath)
}

// ConnectAt opens the profile store at path, creating it if needed.
func ConnectAt(dbPath string) (*JSONDB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	db := &JSONDB{path: dbPath}

	// Initialize with empty file if it doesn't exist
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		file, err := os.Create(dbPath)
		if err != nil {
			return nil, fmt.Errorf("could not create profiles file: %w", err)
		}
		file.Close()
	}

	return db, nil
}

func (db *JSONDB) load() (*profilesFile, error) {
	data, err := os.ReadFile(db.path)
	if err != nil {
		return nil, fmt.Errorf("could not read profiles file: %w", err)
	}

	pf := &profilesFile{Profiles: map[string]string{}}
	if len(strings.TrimSpace(string(data))) == 0 {
		return pf, nil
	}
	if err := json.Unmarshal(data, pf); err != nil {
		return nil, fmt.Errorf("could not parse profiles file: %w", err)
	}
	if pf.Profiles == nil {
		pf.Profiles = map[string]string{}
	}
	return pf, nil
}

func (db *JSONDB) save(pf *profilesFile) error {
	data, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal profiles: %w", err)
	}

	tmp := db.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("could not write profiles file: %w", err)
	}
	if err := os.Rename(tmp, db.path); err != nil {
		return fmt.Errorf("could not replace profiles file: %w", err)
	}
	return nil
}

// SaveProfile stores or replaces the wallet for name.
func (db *JSONDB) SaveProfile(name string, wallet solana.PublicKey) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProfile)
	}
	if wallet.IsZero() {
		return fmt.Errorf("%w: zero wallet key", ErrInvalidProfile)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	pf, err := db.load()
	if err != nil {
		return err
	}
	pf.Profiles[name] = wallet.String()
	return db.save(pf)
}

// GetProfile returns the profile stored under name.
func (db *JSONDB) GetProfile(name string) (*Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	pf, err := db.load()
	if err != nil {
		return nil, err
	}
	raw, ok := pf.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	wallet, err := solana.PublicKeyFromBase58(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: profile %s has a bad wallet key: %v", ErrInvalidProfile, name, err)
	}
	return &Profile{Name: name, Wallet: wallet}, nil
}

// GetAllProfiles returns every valid profile sorted by name.
func (db *JSONDB) GetAllProfiles() ([]Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	pf, err := db.load()
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(pf.Profiles))
	for name, raw := range pf.Profiles {
		wallet, err := solana.PublicKeyFromBase58(raw)
		if err != nil {
			continue
		}
		profiles = append(profiles, Profile{Name: name, Wallet: wallet})
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

// DeleteProfile removes name from the store.
func (db *JSONDB) DeleteProfile(name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	pf, err := db.load()
	if err != nil {
		return err
	}
	if _, ok := pf.Profiles[name]; !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	delete(pf.Profiles, name)
	return db.save(pf)
}

// getDBPath returns the path for the profiles file relative to the current working directory.
func getDBPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("could not get current working directory: %w", err)
	}
	return filepath.Join(cwd, configDirName, profilesFileName), nil
}

// Close closes the JSON database connection (for interface compatibility).
// Since this is a JSON file implementation, there's no actual connection to close.
func (db *JSONDB) Close() error {
	return nil
}
