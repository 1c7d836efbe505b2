package bullposter_protocol

import (
	"encoding/json"
	"strconv"
	"strings"
)

// LastSeenRaid is the latest competition opened for one competition type.
type LastSeenRaid struct {
	Sequence      json.RawMessage `json:"sequence"`
	CompetitionId json.RawMessage `json:"competition_id"`
}

// SequenceNumber parses Sequence, accepting a JSON number or a numeric
// string.
func (r LastSeenRaid) SequenceNumber() (uint64, bool) {
	raw := strings.Trim(strings.TrimSpace(string(r.Sequence)), `"`)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CompetitionSeed returns the hashed competition seed the program stored as a
// JSON array of bytes.
func (r LastSeenRaid) CompetitionSeed() ([32]byte, bool) {
	var out [32]byte
	var ints []int
	if err := json.Unmarshal(r.CompetitionId, &ints); err != nil || len(ints) != len(out) {
		return out, false
	}
	for i, v := range ints {
		if v < 0 || v > 255 {
			return [32]byte{}, false
		}
		out[i] = byte(v)
	}
	return out, true
}

// LastSeenRaids maps competition type to the latest competition of that type.
type LastSeenRaids map[string]LastSeenRaid

// ParseLastSeenRaids decodes ProgramStateCard.LastSeenRaids. Malformed JSON
// is treated as "no competitions yet", and a malformed entry only drops that
// entry.
func ParseLastSeenRaids(s string) LastSeenRaids {
	out := make(LastSeenRaids)
	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &entries); err != nil {
		return out
	}
	for competitionType, raw := range entries {
		var r LastSeenRaid
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		out[competitionType] = r
	}
	return out
}

// CurrentSequence is the sequence of the latest competition of the given
// type. A missing or unparsable sequence is 1, the first competition.
func (l LastSeenRaids) CurrentSequence(competitionType string) uint64 {
	if n, ok := l[competitionType].SequenceNumber(); ok && n > 0 {
		return n
	}
	return 1
}

// NextSequence is the sequence the program assigns when it opens a new
// competition of the given type.
func (l LastSeenRaids) NextSequence(competitionType string) uint64 {
	n, _ := l[competitionType].SequenceNumber()
	return n + 1
}

type LeaderboardUser struct {
	PublicKey       string      `json:"public_key"`
	Username        string      `json:"username,omitempty"`
	TotalRewards    json.Number `json:"total_rewards,omitempty"`
	EngagementScore json.Number `json:"engagement_score,omitempty"`
	Streaks         json.Number `json:"streaks,omitempty"`
}

type LeaderboardProgram struct {
	Id                      string      `json:"id"`
	Name                    string      `json:"name"`
	Participants            json.Number `json:"participants,omitempty"`
	CompletedRaids          json.Number `json:"completed_raids,omitempty"`
	TotalRewardsDistributed json.Number `json:"total_rewards_distributed,omitempty"`
}

// Leaderboard is the decoded form of LeaderboardState.LeaderboardData.
type Leaderboard struct {
	Users    []LeaderboardUser    `json:"users"`
	Programs []LeaderboardProgram `json:"programs"`
}

// Parse decodes the leaderboard JSON. An empty string or "{}", the value the
// program initializes the account with, yields an empty leaderboard.
func (s *LeaderboardState) Parse() (*Leaderboard, error) {
	lb := &Leaderboard{
		Users:    make([]LeaderboardUser, 0),
		Programs: make([]LeaderboardProgram, 0),
	}
	data := strings.TrimSpace(s.LeaderboardData)
	if data == "" {
		return lb, nil
	}
	if err := json.Unmarshal([]byte(data), lb); err != nil {
		return nil, err
	}
	if lb.Users == nil {
		lb.Users = make([]LeaderboardUser, 0)
	}
	if lb.Programs == nil {
		lb.Programs = make([]LeaderboardProgram, 0)
	}
	return lb, nil
}
