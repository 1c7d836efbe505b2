package bullposter_protocol

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Encoders mirror the decoders field for field. The client never writes
// accounts; these build fixtures for tests and local tooling.

type fieldWriter struct {
	e   *bin.Encoder
	err error
}

func (w *fieldWriter) fail(name string, err error) {
	if err != nil {
		w.err = fmt.Errorf("%s: %w", name, err)
	}
}

func (w *fieldWriter) key(name string, v solana.PublicKey) {
	if w.err != nil {
		return
	}
	w.fail(name, w.e.WriteBytes(v[:], false))
}

func (w *fieldWriter) str(name string, v string) {
	if w.err != nil {
		return
	}
	w.fail(name, w.e.WriteString(v))
}

func (w *fieldWriter) u64(name string, v uint64) {
	if w.err != nil {
		return
	}
	w.fail(name, w.e.WriteUint64(v, bin.LE))
}

func (w *fieldWriter) boolean(name string, v bool) {
	if w.err != nil {
		return
	}
	w.fail(name, w.e.WriteBool(v))
}

func (w *fieldWriter) optKey(name string, v *solana.PublicKey) {
	if w.err != nil {
		return
	}
	if err := w.e.WriteOption(v != nil); err != nil || v == nil {
		w.fail(name, err)
		return
	}
	w.key(name, *v)
}

func (w *fieldWriter) optU64(name string, v *uint64) {
	if w.err != nil {
		return
	}
	if err := w.e.WriteOption(v != nil); err != nil || v == nil {
		w.fail(name, err)
		return
	}
	w.u64(name, *v)
}

func (obj UserCard) MarshalWithEncoder(encoder *bin.Encoder) error {
	w := &fieldWriter{e: encoder}
	w.key("user_pubkey", obj.UserPubkey)
	w.str("owned_programs", obj.OwnedPrograms)
	w.str("enrolled_programs", obj.EnrolledPrograms)
	w.boolean("is_conducting_raid", obj.IsConductingRaid)
	w.str("user_email", obj.UserEmail)
	w.str("user_dob", obj.UserDob)
	w.str("user_twitter_handle", obj.UserTwitterHandle)
	w.u64("total_rewards", obj.TotalRewards)
	w.u64("participated_raids", obj.ParticipatedRaids)
	w.u64("raid_ranking", obj.RaidRanking)
	w.u64("engagement_score", obj.EngagementScore)
	w.u64("streaks", obj.Streaks)
	w.str("profile_picture_url", obj.ProfilePictureUrl)
	return w.err
}

func (obj RaidProgramCard) MarshalWithEncoder(encoder *bin.Encoder) error {
	w := &fieldWriter{e: encoder}
	w.key("raid_program_id", obj.RaidProgramId)
	w.str("name", obj.Name)
	w.str("description", obj.Description)
	w.key("user_key", obj.UserKey)
	w.str("profile_picture_url", obj.ProfilePictureUrl)
	w.str("pvp_requests", obj.PvpRequests)
	w.str("raids", obj.Raids)
	w.boolean("is_conducting_raid", obj.IsConductingRaid)
	w.key("active_raid_id", obj.ActiveRaidId)
	w.u64("size", obj.Size)
	w.u64("total_rewards_distributed", obj.TotalRewardsDistributed)
	w.u64("total_raid_wins", obj.TotalRaidWins)
	w.u64("total_raids_partaken", obj.TotalRaidsPartaken)
	w.u64("program_rank", obj.ProgramRank)
	return w.err
}

func (obj ProgramStateCard) MarshalWithEncoder(encoder *bin.Encoder) error {
	w := &fieldWriter{e: encoder}
	w.str("last_seen_raids", obj.LastSeenRaids)
	w.u64("registered_programs_count", obj.RegisteredProgramsCount)
	w.u64("registered_users_count", obj.RegisteredUsersCount)
	return w.err
}

func (obj ProgramRaidProgramsState) MarshalWithEncoder(encoder *bin.Encoder) error {
	w := &fieldWriter{e: encoder}
	w.str("raid_program_pubkeys", obj.RaidProgramPubkeys)
	return w.err
}

func (obj ProgramRaidsState) MarshalWithEncoder(encoder *bin.Encoder) error {
	w := &fieldWriter{e: encoder}
	w.str("raid_pubkeys", obj.RaidPubkeys)
	return w.err
}

func (obj ProgramCompetitionsState) MarshalWithEncoder(encoder *bin.Encoder) error {
	w := &fieldWriter{e: encoder}
	w.str("competition_pubkeys", obj.CompetitionPubkeys)
	return w.err
}

func (obj LeaderboardState) MarshalWithEncoder(encoder *bin.Encoder) error {
	w := &fieldWriter{e: encoder}
	w.str("leaderboard_data", obj.LeaderboardData)
	return w.err
}

func (obj RaidCard) MarshalWithEncoder(encoder *bin.Encoder) error {
	w := &fieldWriter{e: encoder}
	w.key("competition_id", obj.CompetitionId)
	w.key("raid_program_id", obj.RaidProgramId)
	w.key("raid_id", obj.RaidId)
	w.str("distributed_rewards", obj.DistributedRewards)
	w.str("placements", obj.Placements)
	return w.err
}

func (obj CompetitionCard) MarshalWithEncoder(encoder *bin.Encoder) error {
	w := &fieldWriter{e: encoder}
	w.key("competition_id", obj.CompetitionId)
	w.str("competition_type", obj.CompetitionType)
	w.u64("start_time", obj.StartTime)
	w.u64("end_time", obj.EndTime)
	w.u64("total_rewards_distributed", obj.TotalRewardsDistributed)
	w.str("status", string(obj.Status))
	w.str("enrolled_programs", obj.EnrolledPrograms)
	w.u64("required_programs", obj.RequiredPrograms)
	w.optKey("challenger_program_id", obj.ChallengerProgramId)
	w.optKey("challenged_program_id", obj.ChallengedProgramId)
	w.optU64("start_expiration", obj.StartExpiration)
	w.str("distributed_rewards", obj.DistributedRewards)
	w.str("placements", obj.Placements)
	return w.err
}

func (obj BurnCard) MarshalWithEncoder(encoder *bin.Encoder) error {
	w := &fieldWriter{e: encoder}
	w.key("raid_program_id", obj.RaidProgramId)
	w.key("competition_id", obj.CompetitionId)
	w.key("user_id", obj.UserId)
	w.u64("burn_amount", obj.BurnAmount)
	w.u64("timestamp", obj.Timestamp)
	return w.err
}

func (obj RaidHistory) MarshalWithEncoder(encoder *bin.Encoder) error {
	w := &fieldWriter{e: encoder}
	w.str("history", obj.History)
	return w.err
}

type accountEncoder interface {
	MarshalWithEncoder(encoder *bin.Encoder) error
}

// MarshalAccount serializes a record into its on-chain byte layout.
func MarshalAccount(v accountEncoder) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := v.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("encode account: %w", err)
	}
	return buf.Bytes(), nil
}
