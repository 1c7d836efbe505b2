package bullposter_protocol

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// fieldReader reads fields in declaration order and keeps the first error,
// tagged with the name of the field that failed.
type fieldReader struct {
	c   *Cursor
	err error
}

func (r *fieldReader) fail(name string, err error) {
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
	}
}

func (r *fieldReader) key(name string, dst *solana.PublicKey) {
	if r.err != nil {
		return
	}
	v, err := r.c.ReadPublicKey()
	r.fail(name, err)
	*dst = v
}

func (r *fieldReader) str(name string, dst *string) {
	if r.err != nil {
		return
	}
	v, err := r.c.ReadString()
	r.fail(name, err)
	*dst = v
}

func (r *fieldReader) trailingStr(name string, dst *string) {
	if r.err != nil {
		return
	}
	v, err := r.c.ReadTrailingString()
	r.fail(name, err)
	*dst = v
}

func (r *fieldReader) u64(name string, dst *uint64) {
	if r.err != nil {
		return
	}
	v, err := r.c.ReadU64LE()
	r.fail(name, err)
	*dst = v
}

func (r *fieldReader) boolean(name string, dst *bool) {
	if r.err != nil {
		return
	}
	v, err := r.c.ReadBool()
	r.fail(name, err)
	*dst = v
}

func (r *fieldReader) optKey(name string, dst **solana.PublicKey) {
	if r.err != nil {
		return
	}
	v, err := r.c.ReadOptionPublicKey()
	r.fail(name, err)
	*dst = v
}

func (r *fieldReader) optU64(name string, dst **uint64) {
	if r.err != nil {
		return
	}
	v, err := r.c.ReadOptionU64()
	r.fail(name, err)
	*dst = v
}

func (obj *UserCard) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var v UserCard
	r := &fieldReader{c: CursorFromDecoder(decoder)}
	r.key("user_pubkey", &v.UserPubkey)
	r.str("owned_programs", &v.OwnedPrograms)
	r.str("enrolled_programs", &v.EnrolledPrograms)
	r.boolean("is_conducting_raid", &v.IsConductingRaid)
	r.str("user_email", &v.UserEmail)
	r.str("user_dob", &v.UserDob)
	r.str("user_twitter_handle", &v.UserTwitterHandle)
	r.u64("total_rewards", &v.TotalRewards)
	r.u64("participated_raids", &v.ParticipatedRaids)
	r.u64("raid_ranking", &v.RaidRanking)
	r.u64("engagement_score", &v.EngagementScore)
	r.u64("streaks", &v.Streaks)
	r.str("profile_picture_url", &v.ProfilePictureUrl)
	if r.err != nil {
		return r.err
	}
	*obj = v
	return nil
}

func (obj *RaidProgramCard) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var v RaidProgramCard
	r := &fieldReader{c: CursorFromDecoder(decoder)}
	r.key("raid_program_id", &v.RaidProgramId)
	r.str("name", &v.Name)
	r.str("description", &v.Description)
	r.key("user_key", &v.UserKey)
	r.str("profile_picture_url", &v.ProfilePictureUrl)
	r.str("pvp_requests", &v.PvpRequests)
	r.str("raids", &v.Raids)
	r.boolean("is_conducting_raid", &v.IsConductingRaid)
	r.key("active_raid_id", &v.ActiveRaidId)
	r.u64("size", &v.Size)
	r.u64("total_rewards_distributed", &v.TotalRewardsDistributed)
	r.u64("total_raid_wins", &v.TotalRaidWins)
	r.u64("total_raids_partaken", &v.TotalRaidsPartaken)
	r.u64("program_rank", &v.ProgramRank)
	if r.err != nil {
		return r.err
	}
	*obj = v
	return nil
}

func (obj *ProgramStateCard) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var v ProgramStateCard
	r := &fieldReader{c: CursorFromDecoder(decoder)}
	r.str("last_seen_raids", &v.LastSeenRaids)
	r.u64("registered_programs_count", &v.RegisteredProgramsCount)
	r.u64("registered_users_count", &v.RegisteredUsersCount)
	if r.err != nil {
		return r.err
	}
	*obj = v
	return nil
}

func (obj *ProgramRaidProgramsState) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var v ProgramRaidProgramsState
	r := &fieldReader{c: CursorFromDecoder(decoder)}
	r.str("raid_program_pubkeys", &v.RaidProgramPubkeys)
	if r.err != nil {
		return r.err
	}
	*obj = v
	return nil
}

func (obj *ProgramRaidsState) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var v ProgramRaidsState
	r := &fieldReader{c: CursorFromDecoder(decoder)}
	r.str("raid_pubkeys", &v.RaidPubkeys)
	if r.err != nil {
		return r.err
	}
	*obj = v
	return nil
}

func (obj *ProgramCompetitionsState) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var v ProgramCompetitionsState
	r := &fieldReader{c: CursorFromDecoder(decoder)}
	r.str("competition_pubkeys", &v.CompetitionPubkeys)
	if r.err != nil {
		return r.err
	}
	*obj = v
	return nil
}

func (obj *LeaderboardState) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var v LeaderboardState
	r := &fieldReader{c: CursorFromDecoder(decoder)}
	r.str("leaderboard_data", &v.LeaderboardData)
	if r.err != nil {
		return r.err
	}
	*obj = v
	return nil
}

func (obj *RaidCard) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var v RaidCard
	r := &fieldReader{c: CursorFromDecoder(decoder)}
	r.key("competition_id", &v.CompetitionId)
	r.key("raid_program_id", &v.RaidProgramId)
	r.key("raid_id", &v.RaidId)
	r.trailingStr("distributed_rewards", &v.DistributedRewards)
	r.trailingStr("placements", &v.Placements)
	if r.err != nil {
		return r.err
	}
	*obj = v
	return nil
}

func (obj *CompetitionCard) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var (
		v      CompetitionCard
		status string
	)
	r := &fieldReader{c: CursorFromDecoder(decoder)}
	r.key("competition_id", &v.CompetitionId)
	r.str("competition_type", &v.CompetitionType)
	r.u64("start_time", &v.StartTime)
	r.u64("end_time", &v.EndTime)
	r.u64("total_rewards_distributed", &v.TotalRewardsDistributed)
	r.str("status", &status)
	r.str("enrolled_programs", &v.EnrolledPrograms)
	r.u64("required_programs", &v.RequiredPrograms)
	r.optKey("challenger_program_id", &v.ChallengerProgramId)
	r.optKey("challenged_program_id", &v.ChallengedProgramId)
	r.optU64("start_expiration", &v.StartExpiration)
	r.trailingStr("distributed_rewards", &v.DistributedRewards)
	r.trailingStr("placements", &v.Placements)
	if r.err != nil {
		return r.err
	}
	v.Status = CompetitionStatus(status)
	*obj = v
	return nil
}

func (obj *BurnCard) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var v BurnCard
	r := &fieldReader{c: CursorFromDecoder(decoder)}
	r.key("raid_program_id", &v.RaidProgramId)
	r.key("competition_id", &v.CompetitionId)
	r.key("user_id", &v.UserId)
	r.u64("burn_amount", &v.BurnAmount)
	r.u64("timestamp", &v.Timestamp)
	if r.err != nil {
		return r.err
	}
	*obj = v
	return nil
}

func (obj *RaidHistory) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var v RaidHistory
	r := &fieldReader{c: CursorFromDecoder(decoder)}
	r.str("history", &v.History)
	if r.err != nil {
		return r.err
	}
	*obj = v
	return nil
}

type accountDecoder interface {
	UnmarshalWithDecoder(decoder *bin.Decoder) error
}

func parseAccount[T any, PT interface {
	*T
	accountDecoder
}](name string, data []byte) (*T, error) {
	var v T
	if err := PT(&v).UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &v, nil
}

func ParseAccount_UserCard(data []byte) (*UserCard, error) {
	return parseAccount[UserCard]("user card", data)
}

func ParseAccount_RaidProgramCard(data []byte) (*RaidProgramCard, error) {
	return parseAccount[RaidProgramCard]("raid program card", data)
}

func ParseAccount_ProgramStateCard(data []byte) (*ProgramStateCard, error) {
	return parseAccount[ProgramStateCard]("program state", data)
}

func ParseAccount_ProgramRaidProgramsState(data []byte) (*ProgramRaidProgramsState, error) {
	return parseAccount[ProgramRaidProgramsState]("raid programs state", data)
}

func ParseAccount_ProgramRaidsState(data []byte) (*ProgramRaidsState, error) {
	return parseAccount[ProgramRaidsState]("raids state", data)
}

func ParseAccount_ProgramCompetitionsState(data []byte) (*ProgramCompetitionsState, error) {
	return parseAccount[ProgramCompetitionsState]("competitions state", data)
}

func ParseAccount_LeaderboardState(data []byte) (*LeaderboardState, error) {
	return parseAccount[LeaderboardState]("leaderboard state", data)
}

func ParseAccount_RaidCard(data []byte) (*RaidCard, error) {
	return parseAccount[RaidCard]("raid card", data)
}

func ParseAccount_CompetitionCard(data []byte) (*CompetitionCard, error) {
	return parseAccount[CompetitionCard]("competition card", data)
}

func ParseAccount_BurnCard(data []byte) (*BurnCard, error) {
	return parseAccount[BurnCard]("burn card", data)
}

func ParseAccount_RaidHistory(data []byte) (*RaidHistory, error) {
	return parseAccount[RaidHistory]("raid history", data)
}
