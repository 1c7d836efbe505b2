package bullposter_protocol

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

type CompetitionStatus string

const (
	StatusAwaiting  CompetitionStatus = "awaiting"
	StatusPending   CompetitionStatus = "pending"
	StatusActive    CompetitionStatus = "active"
	StatusFinalized CompetitionStatus = "finalized"
	StatusCompleted CompetitionStatus = "completed"
	StatusExpired   CompetitionStatus = "expired"
)

// IsOpen is true while programs can still join.
func (s CompetitionStatus) IsOpen() bool {
	return s == StatusAwaiting || s == StatusPending
}

func (s CompetitionStatus) IsActive() bool {
	return s == StatusActive
}

func (s CompetitionStatus) IsFinished() bool {
	return s == StatusFinalized || s == StatusCompleted || s == StatusExpired
}

func (s CompetitionStatus) IsKnown() bool {
	return s.IsOpen() || s.IsActive() || s.IsFinished()
}

const (
	CompetitionType4   = "4-program"
	CompetitionType6   = "6-program"
	CompetitionType12  = "12-program"
	CompetitionType24  = "24-program"
	CompetitionTypePvP = "PvP"
)

var requiredPrograms = map[string]uint64{
	CompetitionType4:   4,
	CompetitionType6:   6,
	CompetitionType12:  12,
	CompetitionType24:  24,
	CompetitionTypePvP: 2,
}

// CompetitionTypes lists the competition types the program accepts.
func CompetitionTypes() []string {
	return []string{CompetitionType4, CompetitionType6, CompetitionType12, CompetitionType24, CompetitionTypePvP}
}

// RequiredProgramsFor returns how many programs must enroll before a
// competition of the given type starts.
func RequiredProgramsFor(competitionType string) (uint64, error) {
	n, ok := requiredPrograms[competitionType]
	if !ok {
		return 0, fmt.Errorf("unknown competition type %q", competitionType)
	}
	return n, nil
}

// SplitList splits a comma-joined list field. Empty tokens from leading,
// trailing or doubled commas are dropped, and an empty field yields an empty
// (non-nil) slice.
func SplitList(s string) []string {
	out := make([]string, 0)
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func splitRaw(s string) []string {
	return strings.Split(s, ",")
}

// JoinList renders keys the way the program appends them: every entry is
// followed by a comma.
func JoinList(keys []string) string {
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte(',')
	}
	return b.String()
}

// ParseKeyList splits a list field and parses every entry as a public key.
func ParseKeyList(s string) ([]solana.PublicKey, error) {
	toks := SplitList(s)
	keys := make([]solana.PublicKey, 0, len(toks))
	for _, tok := range toks {
		key, err := solana.PublicKeyFromBase58(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid key %q in list: %w", tok, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
