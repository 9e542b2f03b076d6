// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, the persistent flags and the per-run
// services (config, i18n, store, bootstrap admin and login).

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/leasemaster/buildvars"
	"github.com/toeirei/leasemaster/internal/auth"
	"github.com/toeirei/leasemaster/internal/config"
	"github.com/toeirei/leasemaster/internal/core"
	"github.com/toeirei/leasemaster/internal/db"
	"github.com/toeirei/leasemaster/internal/i18n"
	"github.com/toeirei/leasemaster/internal/logging"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/security"
	"github.com/toeirei/leasemaster/internal/tui"
	"github.com/toeirei/leasemaster/internal/ui"
)

var version = "dev"   // set by the linker
var gitCommit = "dev" // short commit SHA, set at build time
var buildDate = ""    // RFC3339, set at build time

const modulePath = "github.com/toeirei/leasemaster"

// skipSetup marks commands that run without config, store or login.
const skipSetup = "leasemaster/skip-setup"

// app carries the per-invocation state shared by all commands.
type app struct {
	cfgFile  string
	verbose  bool
	user     string
	password string

	cfg     config.Config
	store   *db.Store
	leasing *core.Leasing
	stdin   *bufio.Reader
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
		a.store = nil
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	explicit, err := configPathFromFlag(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), explicit)
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		// First run: persist the effective configuration for the operator.
		if path, writeErr := config.WriteConfigFile(&cfg, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Debugf("wrote default config to %s", path)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	a.cfg = cfg

	i18n.Init(cfg.Language)
	logging.SetDebug(a.verbose)
	db.SetDebug(a.verbose)

	policy, err := model.ParseDeletePolicy(cfg.Leasing.DeletePolicy)
	if err != nil {
		return err
	}

	store, err := db.New(cfg.Database.Type, cfg.Database.Dsn)
	if err != nil {
		return fmt.Errorf("could not open the database: %w", err)
	}
	a.store = store

	creds := auth.NewCredentials(store, cfg.Auth.BcryptCost)
	ctx := cmd.Context()
	created, err := auth.EnsureAdmin(ctx, creds, cfg.Auth.AdminUsername, a.bootstrapPrompt(cmd))
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("bootstrap.created", cfg.Auth.AdminUsername))
	}

	gate := auth.NewGate(creds)
	if err := a.login(cmd, gate); err != nil {
		return err
	}
	a.leasing = core.New(store, creds, gate, core.Options{
		DeletePolicy: policy,
		DBType:       cfg.Database.Type,
		DSN:          cfg.Database.Dsn,
	})
	return nil
}

// bootstrapPrompt asks for the first administrator's password. A password
// given by flag or environment is used as-is so scripted first runs work.
func (a *app) bootstrapPrompt(cmd *cobra.Command) auth.PasswordPrompt {
	return func(username string) (security.Secret, error) {
		fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("bootstrap.creating", username))
		if pw := a.loginPassword(); pw != "" && (a.user == "" || a.user == username) {
			return security.FromString(pw), nil
		}
		return a.newPassword(cmd)
	}
}

func (a *app) loginPassword() string {
	if a.password != "" {
		return a.password
	}
	return os.Getenv("LEASEMASTER_PASSWORD")
}

// login authenticates the operator. Prompted passwords get three attempts.
func (a *app) login(cmd *cobra.Command, gate *auth.Gate) error {
	username := a.user
	if username == "" {
		username = os.Getenv("LEASEMASTER_USER")
	}
	if username == "" {
		var err error
		if username, err = a.promptLine(cmd, i18n.T("login.username")); err != nil {
			return err
		}
	}

	if pw := a.loginPassword(); pw != "" {
		_, err := gate.Login(cmd.Context(), username, security.FromString(pw))
		return err
	}

	var err error
	for attempt := 0; attempt < 3; attempt++ {
		var pw security.Secret
		if pw, err = a.promptSecret(cmd, i18n.T("login.password")); err != nil {
			return err
		}
		_, err = gate.Login(cmd.Context(), username, pw)
		pw.Zero()
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Describe(err))
	}
	return err
}

// needsSetup reports whether cmd works on the store. Help, completion and
// version run without a login.
func needsSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipSetup] == "true" || c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

func configPathFromFlag(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	a := &app{}
	defer a.close()
	root := newRootCmd(a)
	err := root.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Describe(err))
	}
	return err
}

// NewRootCmd creates a fresh root command with its own state.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leasemaster",
		Short: "Leasemaster manages clients, vehicles, leasing contracts and payments.",
		Long: `Leasemaster is the record keeper of a vehicle leasing business.
Clients, vehicles, leasing contracts and payments live in one SQL store;
every change runs in its own transaction and is checked against the
logged-in user's roles.

Running without a subcommand starts the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsSetup(cmd) {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			a.close()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), a.leasing, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Version = compositeVersion()

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output (debug logs, SQL traces)")
	pf.StringVarP(&a.user, "user", "u", "", "Login name (or LEASEMASTER_USER)")
	pf.StringVarP(&a.password, "password", "p", "", "Login password (or LEASEMASTER_PASSWORD; prompted when empty)")
	pf.String("database.type", "", `Database type ("sqlite", "postgres", "mysql")`)
	pf.String("database.dsn", "", "Database connection string (DSN)")
	pf.String("language", "", `Message language ("en", "ru")`)
	pf.String("leasing.delete_policy", "", `What deleting a referenced row does ("restrict", "cascade")`)

	cmd.AddCommand(
		newClientCmd(a),
		newVehicleCmd(a),
		newContractCmd(a),
		newPaymentCmd(a),
		newManagerCmd(a),
		newUserCmd(a),
		newSummaryCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newDBCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != "dev" {
		out += " (" + c + ")"
	}
	if d != "" {
		out += " built: " + d
	}
	return out
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If info is nil, it reads build info from the
// runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}
	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" && resolvedCommit == "dev" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" && resolvedDate == "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// Show the commit when nothing better is known.
	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}
	return resolvedVersion, resolvedCommit, strings.TrimSpace(resolvedDate)
}
