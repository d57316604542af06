// mentora is the terminal client for the Mentora e-learning platform:
// course catalog, mentor chat, notifications, certificates and timed
// assessment sessions.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/stemsi/mentora-cli/internal/api"
	"github.com/stemsi/mentora-cli/internal/appctx"
	"github.com/stemsi/mentora-cli/internal/config"
	"github.com/stemsi/mentora-cli/internal/logger"
	"github.com/stemsi/mentora-cli/internal/validator"
)

const usage = `Usage: mentora <command> [flags]

Commands:
  login           Log in and store the session token
  logout          Clear the stored session
  whoami          Show the authenticated user
  courses         List courses, or show one with -course
  take            Run a timed assessment session
  chat            Mentor chat for a course
  notifications   List or watch notifications
  certificates    List or download certificates

Run 'mentora <command> -h' for command flags.`

type env struct {
	cfg    *config.Config
	app    *appctx.AppContext
	client *api.Client
	log    zerolog.Logger
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	validator.Setup()

	app := appctx.New(cfg.TokenPath, log)
	if err := app.Init(); err != nil {
		log.Warn().Err(err).Msg("Could not restore stored session")
	}

	e := &env{
		cfg:    cfg,
		app:    app,
		client: api.New(cfg.APIBaseURL, app, cfg.HTTPTimeout, log),
		log:    log,
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "login":
		err = runLogin(e, args)
	case "logout":
		err = runLogout(e)
	case "whoami":
		err = runWhoami(e)
	case "courses":
		err = runCourses(e, args)
	case "take":
		err = runTake(e, args)
	case "chat":
		err = runChat(e, args)
	case "notifications":
		err = runNotifications(e, args)
	case "certificates":
		err = runCertificates(e, args)
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	if api.IsAuthError(err) {
		color.New(color.FgRed).Fprintln(os.Stderr, "Your session has expired. Run `mentora login` again.")
		os.Exit(1)
	}
	color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// requireAuth guards commands that need a token. It does not validate the
// token with the backend; an expired one surfaces as an auth error on the
// first call.
func requireAuth(e *env) error {
	if !e.app.Authenticated() {
		return fmt.Errorf("%w: run `mentora login` first", appctx.ErrNotAuthenticated)
	}
	return nil
}

func runWhoami(e *env) error {
	if err := requireAuth(e); err != nil {
		return err
	}
	user, err := e.client.Me(context.Background())
	if err != nil {
		return err
	}
	e.app.SetUser(user)
	fmt.Printf("%s <%s>", user.Name, user.Email)
	if user.Role != "" {
		fmt.Printf("  (%s)", user.Role)
	}
	fmt.Println()
	return nil
}
