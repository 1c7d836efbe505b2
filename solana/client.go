package bullposter_protocol

import (
	"context"
	"errors"
	"fmt"

	"bullposter-cli/logging"

	"github.com/gagliardetto/solana-go"
)

// ProgramID is the deployed BullPoster program on devnet.
var ProgramID = solana.MustPublicKeyFromBase58("FY9aF1jszyGoABygvsQ28oHfqgyUVZkttzr8Vcx7sLKH")

// Fetcher returns the raw data of an account.
type Fetcher interface {
	FetchAccount(ctx context.Context, address solana.PublicKey) ([]byte, error)
}

// Client is a read-only client for the BullPoster program.
type Client struct {
	Fetcher   Fetcher
	ProgramID solana.PublicKey
	log       logging.Logger
}

// NewClient creates a Client reading through the given RPC endpoints, tried
// in order.
func NewClient(rpcEndpoints []string, programID solana.PublicKey, log logging.Logger) (*Client, error) {
	fetcher, err := NewAccountFetcher(rpcEndpoints, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create account fetcher: %w", err)
	}
	return NewClientWithFetcher(fetcher, programID, log), nil
}

func NewClientWithFetcher(fetcher Fetcher, programID solana.PublicKey, log logging.Logger) *Client {
	if log == nil {
		log = logging.NewNop()
	}
	return &Client{
		Fetcher:   fetcher,
		ProgramID: programID,
		log:       log,
	}
}

func (c *Client) GetProgramStatePDA() (solana.PublicKey, uint8, error) {
	return FindSingletonPDA(SeedProgramState, c.ProgramID)
}

func (c *Client) GetRaidProgramsStatePDA() (solana.PublicKey, uint8, error) {
	return FindSingletonPDA(SeedRaidProgramsState, c.ProgramID)
}

func (c *Client) GetRaidsStatePDA() (solana.PublicKey, uint8, error) {
	return FindSingletonPDA(SeedRaidsState, c.ProgramID)
}

func (c *Client) GetCompetitionsStatePDA() (solana.PublicKey, uint8, error) {
	return FindSingletonPDA(SeedCompetitionsState, c.ProgramID)
}

func (c *Client) GetLeaderboardPDA() (solana.PublicKey, uint8, error) {
	return FindSingletonPDA(SeedLeaderboardState, c.ProgramID)
}

// GetUserCardPDA returns the address of the user card owned by wallet user.
func (c *Client) GetUserCardPDA(user solana.PublicKey) (solana.PublicKey, uint8, error) {
	return c.findSeeded(UserCardSeed(user.String()))
}

func (c *Client) GetEnrollmentPDA(raidProgram, user solana.PublicKey) (solana.PublicKey, uint8, error) {
	return c.findSeeded(EnrollmentSeed(raidProgram.String(), user.String()))
}

func (c *Client) GetRaidProgramPDA(owner solana.PublicKey, name string) (solana.PublicKey, uint8, error) {
	return c.findSeeded(RaidProgramSeed(owner.String(), name))
}

func (c *Client) GetRaidProgramTokenAccountPDA(raidProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return c.findSeeded(RaidProgramTokenAccountSeed(raidProgram.String()))
}

func (c *Client) GetCompetitionPDA(competitionType string, sequence uint64) (solana.PublicKey, uint8, error) {
	return c.findSeeded(CompetitionSeed(competitionType, sequence))
}

func (c *Client) GetPvPCompetitionPDA(challenger solana.PublicKey, sequence uint64, challenged solana.PublicKey) (solana.PublicKey, uint8, error) {
	return c.findSeeded(PvPCompetitionSeed(challenger.String(), sequence, challenged.String()))
}

// GetRaidCardPDA returns the raid card of raidProgram in the competition
// account at competition.
func (c *Client) GetRaidCardPDA(competition, raidProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return c.findSeeded(RaidCardSeed(competition.String(), raidProgram.String()))
}

func (c *Client) findSeeded(seed [32]byte, err error) (solana.PublicKey, uint8, error) {
	if err != nil {
		return solana.PublicKey{}, 0, err
	}
	return FindPDA(seed, c.ProgramID)
}

func fetchAndParse[T any](ctx context.Context, c *Client, address solana.PublicKey, parse func([]byte) (*T, error)) (*T, error) {
	data, err := c.Fetcher.FetchAccount(ctx, address)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func fetchSingleton[T any](ctx context.Context, c *Client, pda func() (solana.PublicKey, uint8, error), parse func([]byte) (*T, error)) (*T, error) {
	address, _, err := pda()
	if err != nil {
		return nil, fmt.Errorf("failed to derive PDA: %w", err)
	}
	return fetchAndParse(ctx, c, address, parse)
}

// FetchProgramState fetches the program-wide counters and last-seen raids.
func (c *Client) FetchProgramState(ctx context.Context) (*ProgramStateCard, error) {
	return fetchSingleton(ctx, c, c.GetProgramStatePDA, ParseAccount_ProgramStateCard)
}

func (c *Client) FetchRaidProgramsState(ctx context.Context) (*ProgramRaidProgramsState, error) {
	return fetchSingleton(ctx, c, c.GetRaidProgramsStatePDA, ParseAccount_ProgramRaidProgramsState)
}

func (c *Client) FetchRaidsState(ctx context.Context) (*ProgramRaidsState, error) {
	return fetchSingleton(ctx, c, c.GetRaidsStatePDA, ParseAccount_ProgramRaidsState)
}

func (c *Client) FetchCompetitionsState(ctx context.Context) (*ProgramCompetitionsState, error) {
	return fetchSingleton(ctx, c, c.GetCompetitionsStatePDA, ParseAccount_ProgramCompetitionsState)
}

func (c *Client) FetchLeaderboard(ctx context.Context) (*LeaderboardState, error) {
	return fetchSingleton(ctx, c, c.GetLeaderboardPDA, ParseAccount_LeaderboardState)
}

// FetchUserCard fetches the user card of wallet user. An unregistered user
// yields ErrNotFound.
func (c *Client) FetchUserCard(ctx context.Context, user solana.PublicKey) (*UserCard, error) {
	pda, _, err := c.GetUserCardPDA(user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user card PDA: %w", err)
	}
	return fetchAndParse(ctx, c, pda, ParseAccount_UserCard)
}

// IsUserRegistered reports whether user already has a user card.
func (c *Client) IsUserRegistered(ctx context.Context, user solana.PublicKey) (bool, error) {
	pda, _, err := c.GetUserCardPDA(user)
	if err != nil {
		return false, fmt.Errorf("failed to get user card PDA: %w", err)
	}
	_, err = c.Fetcher.FetchAccount(ctx, pda)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) FetchRaidProgramCard(ctx context.Context, address solana.PublicKey) (*RaidProgramCard, error) {
	return fetchAndParse(ctx, c, address, ParseAccount_RaidProgramCard)
}

// FetchRaidProgramByName fetches the raid program owner registered as name.
func (c *Client) FetchRaidProgramByName(ctx context.Context, owner solana.PublicKey, name string) (*RaidProgramCard, error) {
	pda, _, err := c.GetRaidProgramPDA(owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get raid program PDA: %w", err)
	}
	return c.FetchRaidProgramCard(ctx, pda)
}

func (c *Client) FetchRaidCard(ctx context.Context, address solana.PublicKey) (*RaidCard, error) {
	return fetchAndParse(ctx, c, address, ParseAccount_RaidCard)
}

func (c *Client) FetchCompetitionCard(ctx context.Context, address solana.PublicKey) (*CompetitionCard, error) {
	return fetchAndParse(ctx, c, address, ParseAccount_CompetitionCard)
}

func (c *Client) FetchBurnCard(ctx context.Context, address solana.PublicKey) (*BurnCard, error) {
	return fetchAndParse(ctx, c, address, ParseAccount_BurnCard)
}

func (c *Client) FetchRaidHistory(ctx context.Context, address solana.PublicKey) (*RaidHistory, error) {
	return fetchAndParse(ctx, c, address, ParseAccount_RaidHistory)
}

// CompetitionTargets are the two competition accounts a new raid of one type
// can land in: the latest competition, and the one the program opens when
// the latest is full or already running.
type CompetitionTargets struct {
	CompetitionType string           `json:"competitionType"`
	CurrentSequence uint64           `json:"currentSequence"`
	Current         solana.PublicKey `json:"current"`
	NextSequence    uint64           `json:"nextSequence"`
	Next            solana.PublicKey `json:"next"`
}

// ResolveCompetitionTargets reads the last-seen sequence for competitionType
// from the program state and derives both candidate competition addresses.
// PvP competitions are keyed by both programs and go through
// ResolvePvPCompetitionTargets instead.
func (c *Client) ResolveCompetitionTargets(ctx context.Context, competitionType string) (*CompetitionTargets, error) {
	if competitionType == CompetitionTypePvP {
		return nil, fmt.Errorf("%w: PvP competitions need both program keys", ErrMalformedSeedInput)
	}
	if _, err := RequiredProgramsFor(competitionType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSeedInput, err)
	}
	state, err := c.FetchProgramState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program state: %w", err)
	}
	lastSeen := state.ParsedLastSeenRaids()

	t := &CompetitionTargets{
		CompetitionType: competitionType,
		CurrentSequence: lastSeen.CurrentSequence(competitionType),
		NextSequence:    lastSeen.NextSequence(competitionType),
	}
	if t.Current, _, err = c.GetCompetitionPDA(competitionType, t.CurrentSequence); err != nil {
		return nil, err
	}
	if t.Next, _, err = c.GetCompetitionPDA(competitionType, t.NextSequence); err != nil {
		return nil, err
	}
	return t, nil
}

// ResolvePvPCompetitionTargets is ResolveCompetitionTargets for a PvP
// challenge between two raid programs.
func (c *Client) ResolvePvPCompetitionTargets(ctx context.Context, challenger, challenged solana.PublicKey) (*CompetitionTargets, error) {
	if challenger.Equals(challenged) {
		return nil, fmt.Errorf("%w: a program cannot challenge itself", ErrMalformedSeedInput)
	}
	state, err := c.FetchProgramState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program state: %w", err)
	}
	lastSeen := state.ParsedLastSeenRaids()

	t := &CompetitionTargets{
		CompetitionType: CompetitionTypePvP,
		CurrentSequence: lastSeen.CurrentSequence(CompetitionTypePvP),
		NextSequence:    lastSeen.NextSequence(CompetitionTypePvP),
	}
	if t.Current, _, err = c.GetPvPCompetitionPDA(challenger, t.CurrentSequence, challenged); err != nil {
		return nil, err
	}
	if t.Next, _, err = c.GetPvPCompetitionPDA(challenger, t.NextSequence, challenged); err != nil {
		return nil, err
	}
	return t, nil
}
