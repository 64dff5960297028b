package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/resqsync/internal/buildinfo"
	"github.com/dmitrijs2005/resqsync/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// defaultWatch bounds "watch" in the shell, where Ctrl-C ends the whole session.
const defaultWatch = time.Minute

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Signup(ctx context.Context, username, email string) error
	Login(ctx context.Context, email string) error
	Logout(ctx context.Context, purge bool) error
	Profile(ctx context.Context) error
	Hospitals(ctx context.Context, onlyAvailable bool) error
	News(ctx context.Context) error
	Reports(ctx context.Context) error
	DownloadReport(ctx context.Context, id, dir string) error
	HelpRequest(ctx context.Context, req models.HelpRequest) error
	JoinVolunteers(ctx context.Context, app models.VolunteerApplication) error
	LeaveVolunteers(ctx context.Context) error
	ManagerList(ctx context.Context, target string) error
	ManagerSetVerified(ctx context.Context, target, email string, verified bool) error
	Watch(ctx context.Context, d time.Duration, metricsAddr string) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF, on "exit" or "quit", or when ctx is done.
//
// Handlers report their own errors, so they are ignored here. Prompts issued
// by handlers read from the same reader, which keeps buffered input in order.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("resq> %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: profile, hospitals [available], news, reports, download <id>, request, " +
					"volunteer join|leave, manager volunteers|hospitals, verify|unverify <target> <email>, watch [seconds], logout [purge], version, exit")
			} else {
				printlnFn("Available commands: signup, login, hospitals [available], news, version, exit")
			}

		case "signup":
			_ = a.Signup(ctx, "", "")

		case "login":
			_ = a.Login(ctx, arg(args, 0))

		case "logout":
			_ = a.Logout(ctx, arg(args, 0) == "purge")

		case "profile":
			_ = a.Profile(ctx)

		case "hospitals":
			_ = a.Hospitals(ctx, arg(args, 0) == "available")

		case "news":
			_ = a.News(ctx)

		case "reports":
			_ = a.Reports(ctx)

		case "download":
			if len(args) == 0 {
				printlnFn("Usage: download <id>")
				continue
			}
			_ = a.DownloadReport(ctx, args[0], "")

		case "request":
			_ = a.HelpRequest(ctx, models.HelpRequest{})

		case "volunteer":
			switch arg(args, 0) {
			case "join":
				_ = a.JoinVolunteers(ctx, models.VolunteerApplication{})
			case "leave":
				_ = a.LeaveVolunteers(ctx)
			default:
				printlnFn("Usage: volunteer join|leave")
			}

		case "manager":
			if len(args) != 1 {
				printlnFn("Usage: manager volunteers|hospitals")
				continue
			}
			_ = a.ManagerList(ctx, args[0])

		case "verify", "unverify":
			if len(args) != 2 {
				printlnFn("Usage: " + cmd + " volunteers|hospitals <email>")
				continue
			}
			_ = a.ManagerSetVerified(ctx, args[0], args[1], cmd == "verify")

		case "watch":
			d := defaultWatch
			if s := arg(args, 0); s != "" {
				n, err := strconv.Atoi(s)
				if err != nil || n <= 0 {
					printlnFn("Usage: watch [seconds]")
					continue
				}
				d = time.Duration(n) * time.Second
			}
			_ = a.Watch(ctx, d, "")

		case "version":
			buildinfo.PrintBuildData(printWriter{})

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// printWriter routes io.Writer output through printlnFn.
type printWriter struct{}

func (printWriter) Write(p []byte) (int, error) {
	printlnFn(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Shell runs the interactive shell until the user exits.
func (a *App) Shell(ctx context.Context) error {
	fmt.Fprintln(a.out, "ResQSync shell. Type 'help' for commands.")
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
	return nil
}
