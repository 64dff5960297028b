package cli

import (
	"time"

	"github.com/dmitrijs2005/resqsync/internal/buildinfo"
	"github.com/dmitrijs2005/resqsync/internal/client/models"
	"github.com/spf13/cobra"
)

const globalFlagsHelp = `Global flags (read before the command name or anywhere on the line):
  -a string    API base URL (env RESQSYNC_API)
  -d string    data directory holding the session store
  -t int       request timeout in seconds
  -l string    log level: debug, info, warn, error
  -c, -config  path to a JSON or YAML config file`

// NewRootCommand builds the command tree over a.
func NewRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "resqsync",
		Short:         "ResQSync crisis coordination client",
		Long:          "ResQSync connects people who need help with volunteers, hospitals and managers.\n\n" + globalFlagsHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.AddCommand(
		versionCommand(a),
		signupCommand(a),
		loginCommand(a),
		logoutCommand(a),
		profileCommand(a),
		hospitalsCommand(a),
		newsCommand(a),
		reportsCommand(a),
		helpRequestCommand(a),
		volunteerCommand(a),
		managerCommand(a),
		notificationsCommand(a),
		shellCommand(a),
	)
	return root
}

func versionCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(a.out)
		},
	}
}

func signupCommand(a *App) *cobra.Command {
	var username, email string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Signup(cmd.Context(), username, email)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account username (prompted when empty)")
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when empty)")
	return cmd
}

func loginCommand(a *App) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Login(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when empty)")
	return cmd
}

func logoutCommand(a *App) *cobra.Command {
	var purge bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Logout(cmd.Context(), purge)
		},
	}
	cmd.Flags().BoolVar(&purge, "purge", false, "wipe the whole local store, not only the credential")
	return cmd
}

func profileCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Profile(cmd.Context())
		},
	}
}

func hospitalsCommand(a *App) *cobra.Command {
	var available bool
	cmd := &cobra.Command{
		Use:   "hospitals",
		Short: "List hospital bed availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Hospitals(cmd.Context(), available)
		},
	}
	cmd.Flags().BoolVar(&available, "available", false, "only hospitals with free beds")
	return cmd
}

func newsCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "news",
		Short: "Show the latest news",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.News(cmd.Context())
		},
	}
}

func reportsCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Reports(cmd.Context())
		},
	}

	var dir string
	download := &cobra.Command{
		Use:   "download <id>",
		Short: "Download a report by id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.DownloadReport(cmd.Context(), args[0], dir)
		},
	}
	download.Flags().StringVar(&dir, "dir", "", "target directory (default <data dir>/downloads)")

	cmd.AddCommand(download)
	return cmd
}

func helpRequestCommand(a *App) *cobra.Command {
	var req models.HelpRequest
	cmd := &cobra.Command{
		Use:   "help-request",
		Short: "Ask for help",
		Long:  "Submit a help request. Area and phone default to your profile; category and description are prompted when not given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.HelpRequest(cmd.Context(), req)
		},
	}
	cmd.Flags().StringVar(&req.Category, "category", "", "kind of help needed")
	cmd.Flags().StringVar(&req.Description, "description", "", "what you need")
	cmd.Flags().StringVar(&req.Urgency, "urgency", "", "low, medium or high")
	cmd.Flags().StringVar(&req.Area, "area", "", "override the area from your profile")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "override the phone from your profile")
	return cmd
}

func volunteerCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volunteer",
		Short: "Join or leave the volunteers",
	}

	var app models.VolunteerApplication
	join := &cobra.Command{
		Use:   "join",
		Short: "Register as a volunteer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.JoinVolunteers(cmd.Context(), app)
		},
	}
	join.Flags().StringVar(&app.Skills, "skills", "", "your skills (prompted when empty)")
	join.Flags().StringVar(&app.Availability, "availability", "", "when you can help")
	join.Flags().StringVar(&app.Area, "area", "", "override the area from your profile")

	leave := &cobra.Command{
		Use:   "leave",
		Short: "Stop volunteering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.LeaveVolunteers(cmd.Context())
		},
	}

	cmd.AddCommand(join, leave)
	return cmd
}

func managerCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manager",
		Short: "Verify volunteers and hospitals (managers only)",
	}
	for _, target := range []string{"volunteers", "hospitals"} {
		cmd.AddCommand(managerTargetCommand(a, target))
	}
	return cmd
}

func managerTargetCommand(a *App, target string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   target,
		Short: "Manage " + target,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List " + target + " you manage",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.ManagerList(cmd.Context(), target)
			},
		},
		&cobra.Command{
			Use:   "verify <email>",
			Short: "Mark one as verified",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.ManagerSetVerified(cmd.Context(), target, args[0], true)
			},
		},
		&cobra.Command{
			Use:   "unverify <email>",
			Short: "Revoke verification",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.ManagerSetVerified(cmd.Context(), target, args[0], false)
			},
		},
	)
	return cmd
}

func notificationsCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Live notifications",
	}

	var (
		d           time.Duration
		metricsAddr string
	)
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Stream notifications until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Watch(cmd.Context(), d, metricsAddr)
		},
	}
	watch.Flags().DurationVar(&d, "for", 0, "stop after this long (0 means until interrupted)")
	watch.Flags().StringVar(&metricsAddr, "metrics-addr", a.config.MetricsAddr, "serve Prometheus metrics on this address while watching")

	cmd.AddCommand(watch)
	return cmd
}

func shellCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.Shell(cmd.Context())
		},
	}
}
