package bullposter_protocol

import (
	"crypto/sha256"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// Seed tags prefixed to the identities hashed into PDA seeds.
const (
	TagUserCard                = "user_card_"
	TagEnrollment              = "enrollment_"
	TagRaidProgram             = "raid_program_"
	TagRaidProgramTokenAccount = "raid_program_token_account_"
	TagRaidCard                = "raid_"
)

// Literal seeds of the program-wide singleton accounts.
const (
	SeedProgramState      = "program_state"
	SeedRaidProgramsState = "program_raid_programs_state"
	SeedRaidsState        = "program_raids_state"
	SeedCompetitionsState = "program_competitions_state"
	SeedLeaderboardState  = "program_leaderboard_state"
)

// DeriveSeed hashes a seed string into the 32-byte seed used for PDA
// derivation: the first 32 bytes of SHA-256 over its UTF-8 bytes.
func DeriveSeed(seedString string) [32]byte {
	sum := sha256.Sum256([]byte(seedString))
	var seed [32]byte
	copy(seed[:], sum[:32])
	return seed
}

// ValidateIdentity checks that s is a base58 encoded 32-byte key.
func ValidateIdentity(s string) error {
	raw, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("%w: %q is not base58: %v", ErrMalformedSeedInput, s, err)
	}
	if len(raw) != solana.PublicKeyLength {
		return fmt.Errorf("%w: %q decodes to %d bytes, want %d", ErrMalformedSeedInput, s, len(raw), solana.PublicKeyLength)
	}
	return nil
}

func validateIdentities(ids ...string) error {
	for _, id := range ids {
		if err := ValidateIdentity(id); err != nil {
			return err
		}
	}
	return nil
}

func UserCardSeedString(user string) (string, error) {
	if err := ValidateIdentity(user); err != nil {
		return "", err
	}
	return TagUserCard + user, nil
}

func EnrollmentSeedString(raidProgram, user string) (string, error) {
	if err := validateIdentities(raidProgram, user); err != nil {
		return "", err
	}
	return TagEnrollment + raidProgram + "_" + user, nil
}

// RaidProgramSeedString keys a raid program by its owner and its name, so an
// owner cannot register two programs with the same name.
func RaidProgramSeedString(owner, name string) (string, error) {
	if err := ValidateIdentity(owner); err != nil {
		return "", err
	}
	return TagRaidProgram + owner + "_" + name, nil
}

func RaidProgramTokenAccountSeedString(raidProgram string) (string, error) {
	if err := ValidateIdentity(raidProgram); err != nil {
		return "", err
	}
	return TagRaidProgramTokenAccount + raidProgram, nil
}

// RaidCardSeedString uses the competition account address, not the
// competition seed.
func RaidCardSeedString(competition, raidProgram string) (string, error) {
	if err := validateIdentities(competition, raidProgram); err != nil {
		return "", err
	}
	return TagRaidCard + competition + "_" + raidProgram, nil
}

func CompetitionSeedString(competitionType string, sequence uint64) (string, error) {
	if competitionType == "" {
		return "", fmt.Errorf("%w: empty competition type", ErrMalformedSeedInput)
	}
	return competitionType + "_" + strconv.FormatUint(sequence, 10), nil
}

func PvPCompetitionSeedString(challenger string, sequence uint64, challenged string) (string, error) {
	if err := validateIdentities(challenger, challenged); err != nil {
		return "", err
	}
	return challenger + "_" + CompetitionTypePvP + "_" + strconv.FormatUint(sequence, 10) + "_" + challenged, nil
}

func hashed(s string, err error) ([32]byte, error) {
	if err != nil {
		return [32]byte{}, err
	}
	return DeriveSeed(s), nil
}

func UserCardSeed(user string) ([32]byte, error) {
	return hashed(UserCardSeedString(user))
}

func EnrollmentSeed(raidProgram, user string) ([32]byte, error) {
	return hashed(EnrollmentSeedString(raidProgram, user))
}

func RaidProgramSeed(owner, name string) ([32]byte, error) {
	return hashed(RaidProgramSeedString(owner, name))
}

func RaidProgramTokenAccountSeed(raidProgram string) ([32]byte, error) {
	return hashed(RaidProgramTokenAccountSeedString(raidProgram))
}

func RaidCardSeed(competition, raidProgram string) ([32]byte, error) {
	return hashed(RaidCardSeedString(competition, raidProgram))
}

func CompetitionSeed(competitionType string, sequence uint64) ([32]byte, error) {
	return hashed(CompetitionSeedString(competitionType, sequence))
}

func PvPCompetitionSeed(challenger string, sequence uint64, challenged string) ([32]byte, error) {
	return hashed(PvPCompetitionSeedString(challenger, sequence, challenged))
}

// FindPDA derives the program address for a hashed seed.
func FindPDA(seed [32]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{seed[:]}, programID)
}

// FindSingletonPDA derives the address of a program-wide singleton from its
// literal seed.
func FindSingletonPDA(literal string, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(literal)}, programID)
}
