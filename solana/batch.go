package bullposter_protocol

import (
	"context"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// fetchBatchSize bounds how many account reads are in flight at once.
const fetchBatchSize = 10

// AccountResult is the outcome of one read in a batch. Exactly one of
// Account and Err is set.
type AccountResult[T any] struct {
	Address solana.PublicKey `json:"address"`
	Account *T               `json:"account,omitempty"`
	Err     error            `json:"-"`
}

// fetchMany fetches every address concurrently, in batches, and returns the
// results in input order. A failed read is recorded on its result and does
// not stop the others.
func fetchMany[T any](ctx context.Context, c *Client, kind string, addresses []solana.PublicKey, parse func([]byte) (*T, error)) []AccountResult[T] {
	results := make([]AccountResult[T], len(addresses))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < len(addresses); i += fetchBatchSize {
		end := i + fetchBatchSize
		if end > len(addresses) {
			end = len(addresses)
		}

		for j := i; j < end; j++ {
			wg.Add(1)
			go func(idx int, address solana.PublicKey) {
				defer wg.Done()

				account, err := fetchAndParse(ctx, c, address, parse)
				if err != nil {
					c.log.Warn(ctx, "failed to fetch account", "kind", kind, "address", address.String(), "error", err)
				}

				mu.Lock()
				results[idx] = AccountResult[T]{Address: address, Account: account, Err: err}
				mu.Unlock()
			}(j, addresses[j])
		}

		wg.Wait()
	}

	return results
}

// FetchRaidProgramCards fetches raid program cards concurrently.
func (c *Client) FetchRaidProgramCards(ctx context.Context, addresses []solana.PublicKey) []AccountResult[RaidProgramCard] {
	return fetchMany(ctx, c, "raid program", addresses, ParseAccount_RaidProgramCard)
}

func (c *Client) FetchCompetitionCards(ctx context.Context, addresses []solana.PublicKey) []AccountResult[CompetitionCard] {
	return fetchMany(ctx, c, "competition", addresses, ParseAccount_CompetitionCard)
}

func (c *Client) FetchRaidCards(ctx context.Context, addresses []solana.PublicKey) []AccountResult[RaidCard] {
	return fetchMany(ctx, c, "raid", addresses, ParseAccount_RaidCard)
}

// FetchEnrolledPrograms resolves the raid programs listed on user's card.
func (c *Client) FetchEnrolledPrograms(ctx context.Context, user solana.PublicKey) ([]AccountResult[RaidProgramCard], error) {
	card, err := c.FetchUserCard(ctx, user)
	if err != nil {
		return nil, err
	}
	keys, err := ParseKeyList(card.EnrolledPrograms)
	if err != nil {
		return nil, fmt.Errorf("user card enrolled programs: %w", err)
	}
	return c.FetchRaidProgramCards(ctx, keys), nil
}

// FetchAllRaidPrograms resolves every program listed in the raid programs
// index.
func (c *Client) FetchAllRaidPrograms(ctx context.Context) ([]AccountResult[RaidProgramCard], error) {
	index, err := c.FetchRaidProgramsState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch raid programs index: %w", err)
	}
	keys, err := ParseKeyList(index.RaidProgramPubkeys)
	if err != nil {
		return nil, fmt.Errorf("raid programs index: %w", err)
	}
	return c.FetchRaidProgramCards(ctx, keys), nil
}

// FetchAllCompetitions resolves every competition listed in the competitions
// index.
func (c *Client) FetchAllCompetitions(ctx context.Context) ([]AccountResult[CompetitionCard], error) {
	index, err := c.FetchCompetitionsState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch competitions index: %w", err)
	}
	keys, err := ParseKeyList(index.CompetitionPubkeys)
	if err != nil {
		return nil, fmt.Errorf("competitions index: %w", err)
	}
	return c.FetchCompetitionCards(ctx, keys), nil
}
