package cmd

import (
	"context"
	"fmt"

	"bullposter-cli/storage"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved wallet profiles",
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name> <wallet>",
	Short: "Save a wallet public key under a name",
	Args:  cobra.ExactArgs(2),
	RunE:  withApp(addProfile),
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	Args:  cobra.NoArgs,
	RunE:  withApp(listProfiles),
}

var profileRemoveCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove"},
	Short:   "Remove a saved profile",
	Args:    cobra.ExactArgs(1),
	RunE:    withApp(removeProfile),
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the user card of a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(showProfile),
}

func init() {
	profileCmd.AddCommand(profileAddCmd, profileListCmd, profileRemoveCmd, profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}

func openStore() (*storage.JSONDB, error) {
	db, err := openProfiles()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to profile storage: %w", err)
	}
	return db, nil
}

func loadProfile(name string) (*storage.Profile, error) {
	db, err := openStore()
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.GetProfile(name)
}

func addProfile(_ context.Context, a *app, args []string) error {
	name := args[0]
	wallet, err := parseKey("wallet", args[1])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveProfile(name, wallet); err != nil {
		return fmt.Errorf("failed to save profile '%s': %w", name, err)
	}
	fmt.Fprintln(a.out, titleStyle.Render(fmt.Sprintf("✅ Profile '%s' saved", name)))
	fmt.Fprintln(a.out, promptStyle.Render("   Wallet address:"), wallet.String())
	return nil
}

func listProfiles(_ context.Context, a *app, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	profiles, err := db.GetAllProfiles()
	if err != nil {
		return fmt.Errorf("failed to get profiles: %w", err)
	}
	return a.print(profiles, func() string {
		if len(profiles) == 0 {
			return promptStyle.Render("No profiles saved. Add one with 'profile add <name> <wallet>'.")
		}
		rows := make([]row, 0, len(profiles))
		for _, p := range profiles {
			rows = append(rows, field(p.Name, p.Wallet))
		}
		return renderCard("Profiles", rows)
	})
}

func removeProfile(_ context.Context, a *app, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteProfile(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, promptStyle.Render(fmt.Sprintf("Profile '%s' removed.", args[0])))
	return nil
}

func showProfile(ctx context.Context, a *app, args []string) error {
	p, err := loadProfile(args[0])
	if err != nil {
		return err
	}
	return showUserCard(ctx, a, []string{p.Wallet.String()})
}
