package bullposter_protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLastSeenRaids(t *testing.T) {
	state := ProgramStateCard{
		LastSeenRaids: `{
			"4-program": {"sequence": 3, "competition_id": [` + byteList(32, 7) + `]},
			"PvP": {"sequence": "5"},
			"6-program": {"sequence": "abc"},
			"12-program": "garbage"
		}`,
	}
	l := state.ParsedLastSeenRaids()

	require.Equal(t, uint64(3), l.CurrentSequence("4-program"))
	require.Equal(t, uint64(4), l.NextSequence("4-program"))

	require.Equal(t, uint64(5), l.CurrentSequence("PvP"))
	require.Equal(t, uint64(6), l.NextSequence("PvP"))

	// unparsable and missing sequences start at 1
	require.Equal(t, uint64(1), l.CurrentSequence("6-program"))
	require.Equal(t, uint64(1), l.NextSequence("6-program"))
	require.Equal(t, uint64(1), l.CurrentSequence("24-program"))
	require.Equal(t, uint64(1), l.NextSequence("24-program"))
	require.NotContains(t, l, "12-program")

	seed, ok := l["4-program"].CompetitionSeed()
	require.True(t, ok)
	for _, b := range seed {
		require.Equal(t, byte(7), b)
	}

	_, ok = l["PvP"].CompetitionSeed()
	require.False(t, ok)
}

func TestParseLastSeenRaids_Malformed(t *testing.T) {
	for _, in := range []string{"", "{}", "not json", "[]"} {
		l := ParseLastSeenRaids(in)
		require.Empty(t, l, in)
		require.Equal(t, uint64(1), l.CurrentSequence("4-program"))
	}
}

func TestLeaderboard_Parse(t *testing.T) {
	state := LeaderboardState{LeaderboardData: `{
		"users": [{"public_key": "abc", "total_rewards": "12.5", "engagement_score": 40, "streaks": 2}],
		"programs": [{"id": "p1", "name": "Bull Army", "participants": 10, "completed_raids": 3}]
	}`}

	lb, err := state.Parse()
	require.NoError(t, err)
	require.Len(t, lb.Users, 1)
	require.Equal(t, "abc", lb.Users[0].PublicKey)
	require.Equal(t, "12.5", lb.Users[0].TotalRewards.String())
	require.Len(t, lb.Programs, 1)
	require.Equal(t, "Bull Army", lb.Programs[0].Name)
}

func TestLeaderboard_ParseEmpty(t *testing.T) {
	for _, in := range []string{"", "{}", "  "} {
		lb, err := (&LeaderboardState{LeaderboardData: in}).Parse()
		require.NoError(t, err, in)
		require.NotNil(t, lb.Users)
		require.NotNil(t, lb.Programs)
		require.Empty(t, lb.Users)
	}

	_, err := (&LeaderboardState{LeaderboardData: "{"}).Parse()
	require.Error(t, err)
}

func byteList(n int, v int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += string(rune('0' + v))
	}
	return out
}
