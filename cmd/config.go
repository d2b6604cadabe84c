package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/config"
	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/model"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg"},
	Short:   "Manage the configuration file",
	Long: `Show or create config.yaml. Every key can also be set with a
LIFELEDGER_<KEY> environment variable, e.g. LIFELEDGER_BACKEND=sqlite.

Examples:
  lifeledger config init
  lifeledger config show
  lifeledger config path`,
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a default config.yaml if none exists",
	Annotations: map[string]string{"runtime": "none"},
	RunE:        runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config directory",
	Annotations: map[string]string{"runtime": "none"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), configDir())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE:  runConfigShow,
}

// settingsCmd represents the settings command.
var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"prefs"},
	Short:   "View and change stored preferences",
	Long: `View and change the preferences stored with your data. Unlike
config.yaml, settings travel with backups.

Keys:
  theme               system, light or dark
  notifications       on or off
  daily-reminder      Time of the daily reminder (HH:MM)
  currency            Currency code shown next to amounts
  week-starts-monday  on or off
  show-completed      Show completed tasks in day views (on or off)

Examples:
  lifeledger settings get
  lifeledger settings set currency EUR
  lifeledger settings set daily-reminder 08:30`,
	RunE: runSettingsGet,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Show one or all settings",
	Args:  cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeValues(settingKeys...)(cmd, args, toComplete)
	},
	RunE: runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return completeValues(settingKeys...)(cmd, args, toComplete)
	},
	RunE: runSettingsSet,
}

var settingKeys = []string{"theme", "notifications", "daily-reminder", "currency", "week-starts-monday", "show-completed"}

func init() {
	configCmd.AddCommand(configInitCmd, configPathCmd, configShowCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(configCmd, settingsCmd)
}

func configDir() string {
	if flagConfigDir != "" {
		return flagConfigDir
	}
	return config.DefaultConfigDir()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.WriteDefault(configDir())
	if err != nil {
		return errors.NewSystemErrorWithOp("config init", "failed to write config file", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Config file: "+path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := ctx.Config
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{
			config.KeyBackend:            cfg.Backend,
			config.KeyDataDir:            cfg.DataDir,
			config.KeyLogLevel:           cfg.LogLevel,
			config.KeyLogJSON:            cfg.LogJSON,
			config.KeyFinanceLogCap:      cfg.FinanceLogCap,
			config.KeyRecentSearchCap:    cfg.RecentSearchCap,
			config.KeyRecentTransactions: cfg.RecentTransactions,
			config.KeyCurrency:           cfg.Currency,
			"file":                       cfg.File,
			"database":                   cfg.DBPath(),
		})
	}

	cli := ctx.CLIFormatter()
	cli.Title("Configuration")
	file := cfg.File
	if file == "" {
		file = "(none, using defaults)"
	}
	cli.KeyValue("File", file)
	cli.KeyValue("Backend", cfg.Backend)
	cli.KeyValue("Database", cfg.DBPath())
	cli.KeyValue("Log level", cfg.LogLevel)
	cli.KeyValue("Finance log cap", cfg.FinanceLogCap)
	cli.KeyValue("Recent searches", cfg.RecentSearchCap)
	cli.KeyValue("Recent transactions", cfg.RecentTransactions)
	cli.KeyValue("Default currency", cfg.Currency)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(key, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "yes", "enabled", "1":
		return true, nil
	case "off", "false", "no", "disabled", "0":
		return false, nil
	}
	return false, errors.NewUserErrorWithField(key, value, "Invalid value", "Use on or off")
}

// formatClock renders minutes after midnight as HH:MM.
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, errors.NewUserErrorWithField("daily-reminder", value, "Invalid time", "Use HH:MM, e.g. 08:30")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func settingValue(s *model.AppSettings, key string) (string, error) {
	switch key {
	case "theme":
		return strings.ToLower(string(s.ThemeMode)), nil
	case "notifications":
		return onOff(s.NotificationsEnabled), nil
	case "daily-reminder":
		return formatClock(s.DailyReminderTime), nil
	case "currency":
		return s.Currency, nil
	case "week-starts-monday":
		return onOff(s.WeekStartsOnMonday), nil
	case "show-completed":
		return onOff(s.ShowCompletedTasks), nil
	}
	return "", unknownSetting(key)
}

func unknownSetting(key string) error {
	return errors.NewUserErrorWithField("key", key, "Unknown setting", "Use one of: "+strings.Join(settingKeys, ", "))
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	settings := ctx.Store.Settings.Get()

	if len(args) == 1 {
		value, err := settingValue(settings, args[0])
		if err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(map[string]string{args[0]: value})
		}
		ctx.Formatter.Println(value)
		return nil
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(settings)
	}
	cli := ctx.CLIFormatter()
	cli.Title("Settings")
	for _, key := range settingKeys {
		value, _ := settingValue(settings, key)
		cli.KeyValue(key, value)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	settings := ctx.Store.Settings.Get()

	var err error
	switch key {
	case "theme":
		theme := model.ThemeMode(enumValue(value))
		switch theme {
		case model.ThemeSystem, model.ThemeLight, model.ThemeDark:
			settings.ThemeMode = theme
		default:
			return errors.NewUserErrorWithField("theme", value, "Invalid theme", "Use system, light or dark")
		}
	case "notifications":
		settings.NotificationsEnabled, err = parseOnOff(key, value)
	case "daily-reminder":
		settings.DailyReminderTime, err = parseClock(value)
	case "currency":
		code := enumValue(value)
		if len(code) != 3 || !isLetters(code) {
			return errors.NewUserErrorWithField("currency", value, "Invalid currency code", "Use a three-letter code such as USD or EUR")
		}
		settings.Currency = code
	case "week-starts-monday":
		settings.WeekStartsOnMonday, err = parseOnOff(key, value)
	case "show-completed":
		settings.ShowCompletedTasks, err = parseOnOff(key, value)
	default:
		return unknownSetting(key)
	}
	if err != nil {
		return err
	}

	if err := ctx.Store.Settings.Save(settings); err != nil {
		return err
	}
	shown, _ := settingValue(settings, key)
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(settings)
	}
	ctx.CLIFormatter().Success("Set " + key + " = " + shown)
	return nil
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
