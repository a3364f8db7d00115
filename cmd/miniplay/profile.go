package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/miniplay/internal/profile"
)

var (
	flagName   string
	flagAvatar string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the player profile",
	Long: `Show the stored player profile, or update it with --name and --avatar.
Empty names fall back to the default and unknown avatars to "user".

Examples:
  miniplay profile
  miniplay profile --name Ada --avatar rocket`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

func init() {
	ids := make([]string, len(profile.Avatars))
	for i, a := range profile.Avatars {
		ids[i] = a.ID
	}
	profileCmd.Flags().StringVar(&flagName, "name", "", "Display name")
	profileCmd.Flags().StringVar(&flagAvatar, "avatar", "", "Avatar ("+strings.Join(ids, ", ")+")")
}

func runProfile(cmd *cobra.Command, _ []string) error {
	store, err := openStoreStrict()
	if err != nil {
		return err
	}
	defer store.Close()

	p := profile.Load(store)

	changed := cmd.Flags().Changed("name") || cmd.Flags().Changed("avatar")
	if changed {
		if cmd.Flags().Changed("name") {
			p.Name = flagName
		}
		if cmd.Flags().Changed("avatar") {
			if profile.Glyph(flagAvatar) == "" {
				return fmt.Errorf("unknown avatar %q", flagAvatar)
			}
			p.Avatar = flagAvatar
		}
		if p, err = profile.Save(store, p); err != nil {
			return fmt.Errorf("saving profile: %w", err)
		}
		fmt.Println("Profile saved.")
	}

	fmt.Printf("%s %s\n", profile.Glyph(p.Avatar), p.Name)
	if !changed {
		fmt.Println()
		fmt.Println("Avatars:")
		for _, a := range profile.Avatars {
			marker := " "
			if a.ID == p.Avatar {
				marker = ">"
			}
			fmt.Printf("  %s %s %s\n", marker, a.Glyph, a.ID)
		}
	}
	return nil
}
