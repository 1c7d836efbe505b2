package cmd

import (
	"fmt"
	"sort"
	"strings"

	bullposter_protocol "bullposter-cli/solana"
)

func renderUserCard(card *bullposter_protocol.UserCard) string {
	return renderCard("User Card", []row{
		field("Wallet", card.UserPubkey),
		field("Twitter", card.UserTwitterHandle),
		field("Email", card.UserEmail),
		field("Date of birth", card.UserDob),
		field("Conducting raid", card.IsConductingRaid),
		field("Total rewards", card.TotalRewards),
		field("Participated raids", card.ParticipatedRaids),
		field("Raid ranking", card.RaidRanking),
		field("Engagement score", card.EngagementScore),
		field("Streaks", card.Streaks),
		field("Owned programs", len(card.OwnedProgramKeys())),
		field("Enrolled programs", len(card.EnrolledProgramKeys())),
		field("Profile picture", card.ProfilePictureUrl),
	})
}

func renderRaidProgram(address string, p *bullposter_protocol.RaidProgramCard) string {
	return renderCard("Raid Program "+p.Name, []row{
		field("Address", address),
		field("Program id", p.RaidProgramId),
		field("Owner", p.UserKey),
		field("Description", p.Description),
		field("Size", p.Size),
		field("Conducting raid", p.IsConductingRaid),
		field("Active raid", p.ActiveRaidId),
		field("Raids", len(p.RaidKeys())),
		field("PvP requests", len(p.PvpRequestKeys())),
		field("Raid wins", p.TotalRaidWins),
		field("Raids partaken", p.TotalRaidsPartaken),
		field("Rewards distributed", p.TotalRewardsDistributed),
		field("Rank", p.ProgramRank),
	})
}

func renderProgramState(state *bullposter_protocol.ProgramStateCard) string {
	rows := []row{
		field("Registered users", state.RegisteredUsersCount),
		field("Registered programs", state.RegisteredProgramsCount),
	}

	lastSeen := state.ParsedLastSeenRaids()
	types := make([]string, 0, len(lastSeen))
	for t := range lastSeen {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		seq, _ := lastSeen[t].SequenceNumber()
		rows = append(rows, field("Last "+t, fmt.Sprintf("sequence %d", seq)))
	}
	return renderCard("Program State", rows)
}

func renderLeaderboard(lb *bullposter_protocol.Leaderboard) string {
	var b strings.Builder

	userRows := make([]row, 0, len(lb.Users))
	for i, u := range lb.Users {
		name := u.PublicKey
		if u.Username != "" {
			name = u.Username
		}
		userRows = append(userRows, field(fmt.Sprintf("#%d %s", i+1, name),
			fmt.Sprintf("rewards %s  engagement %s  streaks %s", orZero(u.TotalRewards.String()), orZero(u.EngagementScore.String()), orZero(u.Streaks.String()))))
	}
	b.WriteString(renderCard("Top Users", userRows))
	b.WriteString("\n")

	programRows := make([]row, 0, len(lb.Programs))
	for i, p := range lb.Programs {
		programRows = append(programRows, field(fmt.Sprintf("#%d %s", i+1, p.Name),
			fmt.Sprintf("participants %s  raids %s  rewards %s", orZero(p.Participants.String()), orZero(p.CompletedRaids.String()), orZero(p.TotalRewardsDistributed.String()))))
	}
	b.WriteString(renderCard("Top Programs", programRows))
	return b.String()
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func renderCompetition(address string, c *bullposter_protocol.CompetitionCard) string {
	rows := []row{
		field("Address", address),
		field("Type", c.CompetitionType),
		field("Status", c.Status),
		field("Joinable", c.IsJoinable()),
		field("Programs", fmt.Sprintf("%d / %d", len(c.EnrolledProgramKeys()), c.RequiredPrograms)),
		field("Start", c.StartTime),
		field("End", c.EndTime),
		field("Rewards distributed", c.TotalRewardsDistributed),
	}
	if c.ChallengerProgramId != nil {
		rows = append(rows, field("Challenger", *c.ChallengerProgramId))
	}
	if c.ChallengedProgramId != nil {
		rows = append(rows, field("Challenged", *c.ChallengedProgramId))
	}
	if c.StartExpiration != nil {
		rows = append(rows, field("Start expiration", *c.StartExpiration))
	}
	if c.Placements != "" {
		rows = append(rows, field("Placements", c.Placements))
	}
	return renderCard("Competition", rows)
}

func renderRaid(address string, r *bullposter_protocol.RaidCard) string {
	rows := []row{
		field("Address", address),
		field("Raid id", r.RaidId),
		field("Competition", r.CompetitionId),
		field("Raid program", r.RaidProgramId),
	}
	if r.DistributedRewards != "" {
		rows = append(rows, field("Rewards", r.DistributedRewards))
	}
	if r.Placements != "" {
		rows = append(rows, field("Placements", r.Placements))
	}
	return renderCard("Raid", rows)
}

func renderIndexes(programs, raids, competitions []string) string {
	return renderCard("Program Indexes", []row{
		field("Raid programs", len(programs)),
		field("Raids", len(raids)),
		field("Competitions", len(competitions)),
	})
}

func renderTargets(t *bullposter_protocol.CompetitionTargets) string {
	return renderCard("Competition "+t.CompetitionType, []row{
		field("Current sequence", t.CurrentSequence),
		field("Current address", t.Current),
		field("Next sequence", t.NextSequence),
		field("Next address", t.Next),
	})
}
