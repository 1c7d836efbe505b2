package bullposter_protocol

import (
	"encoding/hex"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestDeriveSeed_KnownAnswers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"user_card_FY9aF1jszyGoABygvsQ28oHfqgyUVZkttzr8Vcx7sLKH", "51ac0ca14974355133de26e96cb797750c3c775c2aa8cd86a76491852a22d651"},
		{"user_card_11111111111111111111111111111111", "8eae1d9996ec93b80e2e25b49bd9d541d9f933f769358be4d5abcc194e89aa03"},
		{"4-program_1", "79ccad495e7f15a64df2699d4245217b68141cfcd8cdd1f8e33d3165103fb0b2"},
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	}
	for _, tc := range tests {
		seed := DeriveSeed(tc.in)
		require.Equal(t, tc.want, hex.EncodeToString(seed[:]), tc.in)
	}
}

func TestUserCardSeed_MatchesTaggedDigest(t *testing.T) {
	seed, err := UserCardSeed("FY9aF1jszyGoABygvsQ28oHfqgyUVZkttzr8Vcx7sLKH")
	require.NoError(t, err)
	require.Equal(t, "51ac0ca14974355133de26e96cb797750c3c775c2aa8cd86a76491852a22d651", hex.EncodeToString(seed[:]))
}

func TestDeriveSeed_Deterministic(t *testing.T) {
	a := DeriveSeed("raid_program_" + testOwner.String() + "_Bull Army")
	b := DeriveSeed("raid_program_" + testOwner.String() + "_Bull Army")
	require.Equal(t, a, b)
}

func TestSeeds_SensitiveToEveryInput(t *testing.T) {
	seeds := map[string][32]byte{}
	add := func(name string, seed [32]byte, err error) {
		t.Helper()
		require.NoError(t, err, name)
		for other, s := range seeds {
			require.NotEqual(t, s, seed, "%s collides with %s", name, other)
		}
		seeds[name] = seed
	}

	s, err := UserCardSeed(testUser.String())
	add("user card", s, err)
	s, err = UserCardSeed(testOwner.String())
	add("user card other user", s, err)
	s, err = EnrollmentSeed(testProgram.String(), testUser.String())
	add("enrollment", s, err)
	s, err = EnrollmentSeed(testUser.String(), testProgram.String())
	add("enrollment swapped", s, err)
	s, err = RaidProgramSeed(testOwner.String(), "Bull Army")
	add("raid program", s, err)
	s, err = RaidProgramSeed(testOwner.String(), "Bear Army")
	add("raid program other name", s, err)
	s, err = RaidProgramTokenAccountSeed(testProgram.String())
	add("token account", s, err)
	s, err = RaidCardSeed(testComp.String(), testProgram.String())
	add("raid card", s, err)
	s, err = CompetitionSeed(CompetitionType4, 1)
	add("competition seq 1", s, err)
	s, err = CompetitionSeed(CompetitionType4, 2)
	add("competition seq 2", s, err)
	s, err = CompetitionSeed(CompetitionType6, 1)
	add("competition other type", s, err)
	s, err = PvPCompetitionSeed(testProgram.String(), 1, testOwner.String())
	add("pvp", s, err)
	s, err = PvPCompetitionSeed(testOwner.String(), 1, testProgram.String())
	add("pvp swapped", s, err)
	s, err = PvPCompetitionSeed(testProgram.String(), 2, testOwner.String())
	add("pvp seq 2", s, err)
}

func TestSeedStrings(t *testing.T) {
	s, err := EnrollmentSeedString(testProgram.String(), testUser.String())
	require.NoError(t, err)
	require.Equal(t, "enrollment_"+testProgram.String()+"_"+testUser.String(), s)

	s, err = CompetitionSeedString(CompetitionType12, 7)
	require.NoError(t, err)
	require.Equal(t, "12-program_7", s)

	s, err = PvPCompetitionSeedString(testProgram.String(), 3, testOwner.String())
	require.NoError(t, err)
	require.Equal(t, testProgram.String()+"_PvP_3_"+testOwner.String(), s)

	s, err = RaidCardSeedString(testComp.String(), testProgram.String())
	require.NoError(t, err)
	require.Equal(t, "raid_"+testComp.String()+"_"+testProgram.String(), s)
}

func TestSeeds_RejectMalformedIdentity(t *testing.T) {
	bad := []string{
		"",
		"not-base58-0OIl",
		"3mJr7AoUXx2Wqd",                      // valid base58, too short
		testUser.String() + testUser.String(), // too long
	}
	for _, id := range bad {
		_, err := UserCardSeed(id)
		require.ErrorIs(t, err, ErrMalformedSeedInput, "%q", id)

		_, err = RaidCardSeed(testComp.String(), id)
		require.ErrorIs(t, err, ErrMalformedSeedInput, "%q", id)
	}

	_, err := CompetitionSeed("", 1)
	require.ErrorIs(t, err, ErrMalformedSeedInput)
}

func TestFindPDA_UsesHashedSeed(t *testing.T) {
	seed, err := UserCardSeed(testUser.String())
	require.NoError(t, err)

	pda, bump, err := FindPDA(seed, ProgramID)
	require.NoError(t, err)

	want, wantBump, err := solana.FindProgramAddress([][]byte{seed[:]}, ProgramID)
	require.NoError(t, err)
	require.Equal(t, want, pda)
	require.Equal(t, wantBump, bump)
	require.False(t, pda.IsOnCurve())
}

func TestFindSingletonPDA_Distinct(t *testing.T) {
	seen := map[solana.PublicKey]string{}
	for _, literal := range []string{SeedProgramState, SeedRaidProgramsState, SeedRaidsState, SeedCompetitionsState, SeedLeaderboardState} {
		pda, _, err := FindSingletonPDA(literal, ProgramID)
		require.NoError(t, err)
		_, dup := seen[pda]
		require.False(t, dup, literal)
		seen[pda] = literal
	}
}
