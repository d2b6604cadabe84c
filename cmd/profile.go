package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
)

var (
	profileFlagName   string
	profileFlagEmail  string
	profileFlagBio    string
	profileFlagAvatar string
)

// profileCmd represents the profile command.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
	Long: `Show or edit the user profile. The name greets you in "lifeledger today".

Examples:
  lifeledger profile
  lifeledger profile set --name Robin --email robin@example.com`,
	RunE: runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE:  runProfileSet,
}

func init() {
	profileSetCmd.Flags().StringVar(&profileFlagName, "name", "", "Display name")
	profileSetCmd.Flags().StringVar(&profileFlagEmail, "email", "", "Email address")
	profileSetCmd.Flags().StringVar(&profileFlagBio, "bio", "", "Short bio")
	profileSetCmd.Flags().StringVar(&profileFlagAvatar, "avatar", "", "Avatar image URI")

	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	p, ok := ctx.Store.Profile.Get()
	if ctx.IsJSON() {
		if !ok {
			return ctx.JSONFormatter().PrintStatus("empty", "No profile saved")
		}
		return ctx.JSONFormatter().PrintRecord("ok", "profile", "", p)
	}

	cli := ctx.CLIFormatter()
	if !ok {
		cli.Muted("No profile yet. Create one with: lifeledger profile set --name NAME")
		return nil
	}
	cli.Title(p.Name)
	if p.Email != "" {
		cli.KeyValue("Email", p.Email)
	}
	if p.Bio != "" {
		cli.KeyValue("Bio", p.Bio)
	}
	if p.AvatarURI != "" {
		cli.KeyValue("Avatar", p.AvatarURI)
	}
	cli.KeyValue("Since", output.FormatDate(p.CreatedAt))
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	p, ok := ctx.Store.Profile.Get()
	if !ok {
		p = &model.UserProfile{}
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = profileFlagName
	}
	if flags.Changed("email") {
		p.Email = profileFlagEmail
	}
	if flags.Changed("bio") {
		p.Bio = profileFlagBio
	}
	if flags.Changed("avatar") {
		p.AvatarURI = profileFlagAvatar
	}

	if err := ctx.Store.Profile.Save(p); err != nil {
		return err
	}
	if p.Name != "" && !ctx.Store.OnboardingComplete() {
		if err := ctx.Store.SetOnboardingComplete(true); err != nil {
			return err
		}
	}
	return printRecord("updated", "profile", "", p, "Saved profile for "+p.Name)
}
