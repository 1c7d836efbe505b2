package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bullposter-cli/logging"
	bullposter_protocol "bullposter-cli/solana"
	"bullposter-cli/storage"

	"github.com/AlecAivazis/survey/v2"
	figure "github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

const requestTimeout = 30 * time.Second

var (
	rpcFlags      []string
	programIDFlag string
	jsonOutput    bool
)

// Swapped in tests.
var (
	newClient    = bullposter_protocol.NewClient
	openProfiles = storage.Connect
)

var rootCmd = &cobra.Command{
	Use:   "bullposter-cli",
	Short: "BullPoster CLI reads raid programs, competitions and user cards from Solana.",
	Long: `A read-only command-line client for the BullPoster raid program.
Run without a command for an interactive menu.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&rpcFlags, "rpc", nil, "RPC endpoint to read from, in priority order (repeatable)")
	rootCmd.PersistentFlags().StringVar(&programIDFlag, "program-id", "", "BullPoster program id")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of cards")
}

// app holds what every command needs once configuration is resolved.
type app struct {
	cfg    *Config
	log    *logging.ZapLogger
	client *bullposter_protocol.Client
	out    io.Writer
}

func newApp(ctx context.Context, out io.Writer) (*app, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(rpcFlags, programIDFlag); err != nil {
		return nil, err
	}

	log, err := logging.NewConsoleLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if !cfg.DotenvLoaded {
		log.Debug(ctx, ".env file not found, using environment only")
	}

	client, err := newClient(cfg.RpcEndpoints, cfg.ProgramID, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Solana client: %w", err)
	}
	log.Debug(ctx, "client ready", "program", cfg.ProgramID, "endpoints", len(cfg.RpcEndpoints))

	return &app{cfg: cfg, log: log, client: client, out: out}, nil
}

// print writes v as JSON with --json, otherwise the rendered card.
func (a *app) print(v interface{}, render func() string) error {
	if jsonOutput {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	}
	_, err := fmt.Fprintln(a.out, render())
	return err
}

// withApp adapts a command body to cobra, building the app and bounding the
// command with requestTimeout.
func withApp(fn func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.log.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()
		return fn(ctx, a, args)
	}
}

// run is the main entry point for the interactive CLI.
func run(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.log.Sync()

	myFigure := figure.NewFigure("BULLPOSTER", "larry3d", true)
	fmt.Fprintln(a.out, titleStyle.Render(myFigure.String()))

	for {
		if done := runInteractive(cmd.Context(), a); done {
			fmt.Fprintln(a.out, "Exiting BullPoster CLI.")
			return nil
		}
	}
}

const (
	menuState       = "View Program State"
	menuLeaderboard = "View Leaderboard"
	menuUserCard    = "Look Up User Card"
	menuProgram     = "Look Up Raid Program"
	menuCompetition = "Look Up Competition"
	menuNext        = "Next Competition Address"
	menuSeed        = "Derive Seed"
	menuProfiles    = "Manage Profiles"
	menuExit        = "Exit"
)

// runInteractive shows the main menu once. It reports true when the user
// chose to exit.
func runInteractive(parent context.Context, a *app) bool {
	menu := &survey.Select{
		Message: promptStyle.Render("Choose an action:"),
		Options: []string{menuState, menuLeaderboard, menuUserCard, menuProgram, menuCompetition, menuNext, menuSeed, menuProfiles, menuExit},
		Help:    "Use the arrow keys to navigate, and press Enter to select.",
	}

	var choice string
	if err := survey.AskOne(menu, &choice); err != nil {
		fmt.Fprintln(a.out, warningStyle.Render(err.Error()))
		return true
	}
	if choice == menuExit {
		return true
	}

	ctx, cancel := context.WithTimeout(parent, requestTimeout)
	defer cancel()

	var err error
	switch choice {
	case menuState:
		err = showState(ctx, a, nil)
	case menuLeaderboard:
		err = showLeaderboard(ctx, a, nil)
	case menuUserCard:
		err = askAndRun(ctx, a, showUserCard, "Enter the wallet public key:")
	case menuProgram:
		err = askAndRun(ctx, a, showProgram, "Enter the raid program address:")
	case menuCompetition:
		err = askAndRun(ctx, a, showCompetition, "Enter the competition address:")
	case menuNext:
		err = handleNextCompetition(ctx, a)
	case menuSeed:
		err = askAndRun(ctx, a, showSeed, "Enter the seed string:")
	case menuProfiles:
		err = handleProfileManagement(ctx, a)
	}
	if err != nil {
		fmt.Fprintln(a.out, warningStyle.Render(fmt.Sprintf("❌ %v", err)))
	}
	fmt.Fprintln(a.out)
	return false
}

func askAndRun(ctx context.Context, a *app, fn func(context.Context, *app, []string) error, message string) error {
	value := ""
	prompt := &survey.Input{Message: message}
	if err := survey.AskOne(prompt, &value, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	return fn(ctx, a, []string{value})
}

func handleNextCompetition(ctx context.Context, a *app) error {
	competitionType := ""
	prompt := &survey.Select{
		Message: "Choose a competition type:",
		Options: bullposter_protocol.CompetitionTypes(),
	}
	if err := survey.AskOne(prompt, &competitionType); err != nil {
		return err
	}
	if competitionType != bullposter_protocol.CompetitionTypePvP {
		return showNextCompetition(ctx, a, []string{competitionType})
	}

	answers := struct {
		Challenger string
		Challenged string
	}{}
	qs := []*survey.Question{
		{Name: "challenger", Prompt: &survey.Input{Message: "Challenger raid program:"}, Validate: survey.Required},
		{Name: "challenged", Prompt: &survey.Input{Message: "Challenged raid program:"}, Validate: survey.Required},
	}
	if err := survey.Ask(qs, &answers); err != nil {
		return err
	}
	challengerFlag, challengedFlag = answers.Challenger, answers.Challenged
	defer func() { challengerFlag, challengedFlag = "", "" }()
	return showNextCompetition(ctx, a, []string{competitionType})
}

func handleProfileManagement(ctx context.Context, a *app) error {
	menu := &survey.Select{
		Message: promptStyle.Render("Profiles:"),
		Options: []string{"List Profiles", "Add Profile", "Show Profile Card", "Remove Profile", "Back to Main Menu"},
	}
	var choice string
	if err := survey.AskOne(menu, &choice); err != nil {
		return err
	}

	switch choice {
	case "List Profiles":
		return listProfiles(ctx, a, nil)
	case "Add Profile":
		answers := struct {
			Name   string
			Wallet string
		}{}
		qs := []*survey.Question{
			{Name: "name", Prompt: &survey.Input{Message: "Profile name:"}, Validate: survey.Required},
			{Name: "wallet", Prompt: &survey.Input{Message: "Wallet public key:"}, Validate: survey.Required},
		}
		if err := survey.Ask(qs, &answers); err != nil {
			return err
		}
		return addProfile(ctx, a, []string{answers.Name, answers.Wallet})
	case "Show Profile Card":
		return askAndRun(ctx, a, showProfile, "Profile name:")
	case "Remove Profile":
		name := ""
		if err := survey.AskOne(&survey.Input{Message: "Profile name:"}, &name, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
		confirm := false
		if err := survey.AskOne(&survey.Confirm{Message: fmt.Sprintf("Remove profile '%s'?", name), Default: false}, &confirm); err != nil {
			return err
		}
		if !confirm {
			fmt.Fprintln(a.out, promptStyle.Render("Removal cancelled."))
			return nil
		}
		return removeProfile(ctx, a, []string{name})
	}
	return nil
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, warningStyle.Render(err.Error()))
		stop()
		os.Exit(1)
	}
}
