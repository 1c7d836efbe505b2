package bullposter_protocol

import (
	"github.com/gagliardetto/solana-go"
)

// UserCard is the per-user account, stored at the PDA derived from
// "user_card_<wallet>".
type UserCard struct {
	UserPubkey        solana.PublicKey `json:"userPubkey"`
	OwnedPrograms     string           `json:"ownedPrograms"`
	EnrolledPrograms  string           `json:"enrolledPrograms"`
	IsConductingRaid  bool             `json:"isConductingRaid"`
	UserEmail         string           `json:"userEmail"`
	UserDob           string           `json:"userDob"`
	UserTwitterHandle string           `json:"userTwitterHandle"`
	TotalRewards      uint64           `json:"totalRewards"`
	ParticipatedRaids uint64           `json:"participatedRaids"`
	RaidRanking       uint64           `json:"raidRanking"`
	EngagementScore   uint64           `json:"engagementScore"`
	Streaks           uint64           `json:"streaks"`
	ProfilePictureUrl string           `json:"profilePictureUrl"`
}

func (u *UserCard) OwnedProgramKeys() []string {
	return SplitList(u.OwnedPrograms)
}

func (u *UserCard) EnrolledProgramKeys() []string {
	return SplitList(u.EnrolledPrograms)
}

// RaidProgramCard is a creator-owned program that users enroll in and that
// enters competitions.
type RaidProgramCard struct {
	RaidProgramId           solana.PublicKey `json:"raidProgramId"`
	Name                    string           `json:"name"`
	Description             string           `json:"description"`
	UserKey                 solana.PublicKey `json:"userKey"`
	ProfilePictureUrl       string           `json:"profilePictureUrl"`
	PvpRequests             string           `json:"pvpRequests"`
	Raids                   string           `json:"raids"`
	IsConductingRaid        bool             `json:"isConductingRaid"`
	ActiveRaidId            solana.PublicKey `json:"activeRaidId"`
	Size                    uint64           `json:"size"`
	TotalRewardsDistributed uint64           `json:"totalRewardsDistributed"`
	TotalRaidWins           uint64           `json:"totalRaidWins"`
	TotalRaidsPartaken      uint64           `json:"totalRaidsPartaken"`
	ProgramRank             uint64           `json:"programRank"`
}

func (p *RaidProgramCard) PvpRequestKeys() []string {
	return SplitList(p.PvpRequests)
}

func (p *RaidProgramCard) RaidKeys() []string {
	return SplitList(p.Raids)
}

// ProgramStateCard is the program-wide singleton at the "program_state" PDA.
type ProgramStateCard struct {
	LastSeenRaids           string `json:"lastSeenRaids"`
	RegisteredProgramsCount uint64 `json:"registeredProgramsCount"`
	RegisteredUsersCount    uint64 `json:"registeredUsersCount"`
}

// ParsedLastSeenRaids decodes the JSON held in LastSeenRaids.
func (s *ProgramStateCard) ParsedLastSeenRaids() LastSeenRaids {
	return ParseLastSeenRaids(s.LastSeenRaids)
}

// ProgramRaidProgramsState indexes every registered raid program.
type ProgramRaidProgramsState struct {
	RaidProgramPubkeys string `json:"raidProgramPubkeys"`
}

func (s *ProgramRaidProgramsState) Keys() []string {
	return SplitList(s.RaidProgramPubkeys)
}

// ProgramRaidsState indexes every raid card.
type ProgramRaidsState struct {
	RaidPubkeys string `json:"raidPubkeys"`
}

func (s *ProgramRaidsState) Keys() []string {
	return SplitList(s.RaidPubkeys)
}

// ProgramCompetitionsState indexes every competition card.
type ProgramCompetitionsState struct {
	CompetitionPubkeys string `json:"competitionPubkeys"`
}

func (s *ProgramCompetitionsState) Keys() []string {
	return SplitList(s.CompetitionPubkeys)
}

// LeaderboardState holds the leaderboard JSON republished off-chain.
type LeaderboardState struct {
	LeaderboardData string `json:"leaderboardData"`
}

// RaidCard links a raid program's entry to the competition it joined.
// DistributedRewards and Placements are absent on accounts written before
// rewards were tracked and decode as "".
type RaidCard struct {
	CompetitionId      solana.PublicKey `json:"competitionId"`
	RaidProgramId      solana.PublicKey `json:"raidProgramId"`
	RaidId             solana.PublicKey `json:"raidId"`
	DistributedRewards string           `json:"distributedRewards,omitempty"`
	Placements         string           `json:"placements,omitempty"`
}

type CompetitionCard struct {
	CompetitionId           solana.PublicKey  `json:"competitionId"`
	CompetitionType         string            `json:"competitionType"`
	StartTime               uint64            `json:"startTime"`
	EndTime                 uint64            `json:"endTime"`
	TotalRewardsDistributed uint64            `json:"totalRewardsDistributed"`
	Status                  CompetitionStatus `json:"status"`
	EnrolledPrograms        string            `json:"enrolledPrograms"`
	RequiredPrograms        uint64            `json:"requiredPrograms"`
	ChallengerProgramId     *solana.PublicKey `json:"challengerProgramId,omitempty"`
	ChallengedProgramId     *solana.PublicKey `json:"challengedProgramId,omitempty"`
	StartExpiration         *uint64           `json:"startExpiration,omitempty"`
	DistributedRewards      string            `json:"distributedRewards,omitempty"`
	Placements              string            `json:"placements,omitempty"`
}

func (c *CompetitionCard) EnrolledProgramKeys() []string {
	return SplitList(c.EnrolledPrograms)
}

func (c *CompetitionCard) IsPvP() bool {
	return c.CompetitionType == CompetitionTypePvP
}

// IsJoinable reports whether the program would enroll a new raid into this
// competition instead of opening a new one. Enrolled programs are counted as
// raw comma segments, the way the program counts them.
func (c *CompetitionCard) IsJoinable() bool {
	if c.Status != StatusAwaiting {
		return false
	}
	return uint64(len(splitRaw(c.EnrolledPrograms))) < c.RequiredPrograms
}

// BurnCard records a token burn made by a user for a program in a
// competition.
type BurnCard struct {
	RaidProgramId solana.PublicKey `json:"raidProgramId"`
	CompetitionId solana.PublicKey `json:"competitionId"`
	UserId        solana.PublicKey `json:"userId"`
	BurnAmount    uint64           `json:"burnAmount"`
	Timestamp     uint64           `json:"timestamp"`
}

// RaidHistory holds a JSON history blob for a raid program.
type RaidHistory struct {
	History string `json:"history"`
}
