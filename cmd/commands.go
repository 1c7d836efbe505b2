package cmd

import (
	"context"
	"encoding/hex"
	"fmt"

	bullposter_protocol "bullposter-cli/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
)

var (
	challengerFlag string
	challengedFlag string
	withPrograms   bool
	fetchProgram   bool
	profileFlag    string
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show registered counts and the last competition of each type",
	Args:  cobra.NoArgs,
	RunE:  withApp(showState),
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the published leaderboard",
	Args:  cobra.NoArgs,
	RunE:  withApp(showLeaderboard),
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "List every registered raid program, raid and competition",
	Args:  cobra.NoArgs,
	RunE:  withApp(showIndexes),
}

var userCardCmd = &cobra.Command{
	Use:   "user-card [pubkey]",
	Short: "Show the user card of a wallet or saved profile",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withApp(showUserCard),
}

var programCmd = &cobra.Command{
	Use:   "program <address>",
	Short: "Show a raid program card",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(showProgram),
}

var programPDACmd = &cobra.Command{
	Use:   "program-pda <owner> <name>",
	Short: "Derive the raid program and token account addresses for owner and name",
	Args:  cobra.ExactArgs(2),
	RunE:  withApp(showProgramPDA),
}

var raidCmd = &cobra.Command{
	Use:   "raid <address>",
	Short: "Show a raid card",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(showRaid),
}

var competitionCmd = &cobra.Command{
	Use:   "competition <address>",
	Short: "Show a competition card",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(showCompetition),
}

var nextCompetitionCmd = &cobra.Command{
	Use:   "next-competition <type>",
	Short: "Derive the current and next competition address for a type",
	Long: `Derive the competition addresses a new raid of the given type can land in.
Types: 4-program, 6-program, 12-program, 24-program, PvP.
PvP needs --challenger and --challenged.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(showNextCompetition),
}

var burnCmd = &cobra.Command{
	Use:   "burn <address>",
	Short: "Show a burn record",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(showBurn),
}

var historyCmd = &cobra.Command{
	Use:   "history <address>",
	Short: "Show a raid history record",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(showHistory),
}

var seedCmd = &cobra.Command{
	Use:   "seed <string>",
	Short: "Hash a seed string and derive its program address",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(showSeed),
}

func init() {
	userCardCmd.Flags().BoolVar(&withPrograms, "programs", false, "also fetch the enrolled raid programs")
	userCardCmd.Flags().StringVar(&profileFlag, "profile", "", "use the wallet of a saved profile")
	programPDACmd.Flags().BoolVar(&fetchProgram, "fetch", false, "also fetch the raid program card")
	nextCompetitionCmd.Flags().StringVar(&challengerFlag, "challenger", "", "challenger raid program (PvP)")
	nextCompetitionCmd.Flags().StringVar(&challengedFlag, "challenged", "", "challenged raid program (PvP)")

	rootCmd.AddCommand(
		stateCmd,
		leaderboardCmd,
		indexesCmd,
		userCardCmd,
		programCmd,
		programPDACmd,
		raidCmd,
		competitionCmd,
		nextCompetitionCmd,
		burnCmd,
		historyCmd,
		seedCmd,
	)
}

func parseKey(label, raw string) (solana.PublicKey, error) {
	if err := bullposter_protocol.ValidateIdentity(raw); err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s: %w", label, err)
	}
	return solana.MustPublicKeyFromBase58(raw), nil
}

func showState(ctx context.Context, a *app, _ []string) error {
	state, err := a.client.FetchProgramState(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch program state: %w", err)
	}
	return a.print(state, func() string { return renderProgramState(state) })
}

func showLeaderboard(ctx context.Context, a *app, _ []string) error {
	state, err := a.client.FetchLeaderboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	lb, err := state.Parse()
	if err != nil {
		return fmt.Errorf("failed to parse leaderboard: %w", err)
	}
	return a.print(lb, func() string { return renderLeaderboard(lb) })
}

func showIndexes(ctx context.Context, a *app, _ []string) error {
	programs, err := a.client.FetchRaidProgramsState(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch raid program index: %w", err)
	}
	raids, err := a.client.FetchRaidsState(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch raid index: %w", err)
	}
	competitions, err := a.client.FetchCompetitionsState(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch competition index: %w", err)
	}

	view := map[string][]string{
		"raidPrograms": programs.Keys(),
		"raids":        raids.Keys(),
		"competitions": competitions.Keys(),
	}
	return a.print(view, func() string {
		return renderIndexes(view["raidPrograms"], view["raids"], view["competitions"])
	})
}

func showUserCard(ctx context.Context, a *app, args []string) error {
	var user solana.PublicKey
	switch {
	case len(args) == 1:
		key, err := parseKey("wallet", args[0])
		if err != nil {
			return err
		}
		user = key
	case profileFlag != "":
		p, err := loadProfile(profileFlag)
		if err != nil {
			return err
		}
		user = p.Wallet
	default:
		return fmt.Errorf("give a wallet public key or --profile")
	}

	card, err := a.client.FetchUserCard(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to fetch user card for %s: %w", user, err)
	}
	if err := a.print(card, func() string { return renderUserCard(card) }); err != nil {
		return err
	}
	if !withPrograms {
		return nil
	}

	results, err := a.client.FetchEnrolledPrograms(ctx, user)
	if err != nil {
		return err
	}
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintln(a.out, warningStyle.Render(fmt.Sprintf("%s: %v", res.Address, res.Err)))
			continue
		}
		program := res.Account
		address := res.Address.String()
		if err := a.print(res, func() string { return renderRaidProgram(address, program) }); err != nil {
			return err
		}
	}
	return nil
}

func showProgram(ctx context.Context, a *app, args []string) error {
	address, err := parseKey("raid program address", args[0])
	if err != nil {
		return err
	}
	program, err := a.client.FetchRaidProgramCard(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to fetch raid program %s: %w", address, err)
	}
	return a.print(program, func() string { return renderRaidProgram(address.String(), program) })
}

func showProgramPDA(ctx context.Context, a *app, args []string) error {
	owner, err := parseKey("owner", args[0])
	if err != nil {
		return err
	}
	name := args[1]

	pda, bump, err := a.client.GetRaidProgramPDA(owner, name)
	if err != nil {
		return err
	}
	tokenAccount, tokenBump, err := a.client.GetRaidProgramTokenAccountPDA(pda)
	if err != nil {
		return err
	}

	view := struct {
		RaidProgram      solana.PublicKey `json:"raidProgram"`
		Bump             uint8            `json:"bump"`
		TokenAccount     solana.PublicKey `json:"tokenAccount"`
		TokenAccountBump uint8            `json:"tokenAccountBump"`
	}{pda, bump, tokenAccount, tokenBump}
	if err := a.print(view, func() string {
		return renderCard("Raid Program Addresses", []row{
			field("Owner", owner),
			field("Name", name),
			field("Raid program", pda),
			field("Bump", bump),
			field("Token account", tokenAccount),
			field("Token bump", tokenBump),
		})
	}); err != nil {
		return err
	}

	if fetchProgram {
		return showProgram(ctx, a, []string{pda.String()})
	}
	return nil
}

func showRaid(ctx context.Context, a *app, args []string) error {
	address, err := parseKey("raid address", args[0])
	if err != nil {
		return err
	}
	raid, err := a.client.FetchRaidCard(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to fetch raid %s: %w", address, err)
	}
	return a.print(raid, func() string { return renderRaid(address.String(), raid) })
}

func showCompetition(ctx context.Context, a *app, args []string) error {
	address, err := parseKey("competition address", args[0])
	if err != nil {
		return err
	}
	competition, err := a.client.FetchCompetitionCard(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to fetch competition %s: %w", address, err)
	}
	return a.print(competition, func() string { return renderCompetition(address.String(), competition) })
}

func showNextCompetition(ctx context.Context, a *app, args []string) error {
	competitionType := args[0]

	var (
		targets *bullposter_protocol.CompetitionTargets
		err     error
	)
	if competitionType == bullposter_protocol.CompetitionTypePvP {
		challenger, err := parseKey("challenger", challengerFlag)
		if err != nil {
			return err
		}
		challenged, err := parseKey("challenged", challengedFlag)
		if err != nil {
			return err
		}
		targets, err = a.client.ResolvePvPCompetitionTargets(ctx, challenger, challenged)
		if err != nil {
			return err
		}
	} else {
		targets, err = a.client.ResolveCompetitionTargets(ctx, competitionType)
		if err != nil {
			return err
		}
	}
	return a.print(targets, func() string { return renderTargets(targets) })
}

func showBurn(ctx context.Context, a *app, args []string) error {
	address, err := parseKey("burn address", args[0])
	if err != nil {
		return err
	}
	burn, err := a.client.FetchBurnCard(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to fetch burn %s: %w", address, err)
	}
	return a.print(burn, func() string {
		return renderCard("Burn", []row{
			field("Address", address),
			field("User", burn.UserId),
			field("Raid program", burn.RaidProgramId),
			field("Competition", burn.CompetitionId),
			field("Amount", burn.BurnAmount),
			field("Timestamp", burn.Timestamp),
		})
	})
}

func showHistory(ctx context.Context, a *app, args []string) error {
	address, err := parseKey("history address", args[0])
	if err != nil {
		return err
	}
	history, err := a.client.FetchRaidHistory(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to fetch raid history %s: %w", address, err)
	}
	return a.print(history, func() string {
		return renderCard("Raid History", []row{field("Address", address), field("History", history.History)})
	})
}

func showSeed(_ context.Context, a *app, args []string) error {
	value := args[0]
	seed := bullposter_protocol.DeriveSeed(value)
	pda, bump, err := bullposter_protocol.FindPDA(seed, a.client.ProgramID)
	if err != nil {
		return err
	}

	view := struct {
		Value      string           `json:"value"`
		SeedHex    string           `json:"seedHex"`
		SeedBase58 string           `json:"seedBase58"`
		PDA        solana.PublicKey `json:"pda"`
		Bump       uint8            `json:"bump"`
	}{value, hex.EncodeToString(seed[:]), base58.Encode(seed[:]), pda, bump}
	return a.print(view, func() string {
		return renderCard("Seed", []row{
			field("Value", view.Value),
			field("SHA-256", view.SeedHex),
			field("Base58", view.SeedBase58),
			field("PDA", view.PDA),
			field("Bump", view.Bump),
		})
	})
}
