package cli

//
// auth.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"gitlab.com/kabes/go-spm/internal/aerr"
	"gitlab.com/kabes/go-spm/internal/api"
	"gitlab.com/kabes/go-spm/internal/model"
	"gitlab.com/kabes/go-spm/internal/router"
	"gitlab.com/kabes/go-spm/internal/store"
)

func newLoginCmd() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate and establish a local session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "Student number",
				Required: true,
				Config:   cli.StringConfig{TrimSpace: true},
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Password (prompted when not given)",
				Sources: cli.EnvVars("SPM_PASSWORD"),
			},
		},
		Action: wrap(loginCmd),
	}
}

//nolint:forbidigo
func loginCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	password := clicmd.String("password")
	if password == "" {
		var err error
		if password, err = promptPassword("Password: "); err != nil {
			return err
		}
	}

	creds := api.Credentials{
		StudentNo: clicmd.String("user"),
		Password:  password,
	}

	identity, err := do.MustInvoke[*api.Auth](injector).Login(ctx, creds)
	if err != nil {
		return aerr.Wrapf(err, "login failed").
			WithUserMsg("login failed: %s", aerr.GetUserMessageOr(err, err.Error()))
	}

	sstore := do.MustInvoke[*store.SessionStore](injector)
	if err := sstore.Set(identity); err != nil {
		return aerr.Wrapf(err, "store session failed")
	}

	fmt.Printf("Logged in as %s (%s)\n", identity.Name, identity.Role)

	// preload the course context so the first navigation does not bounce
	// to onboarding when the user already belongs to courses.
	courses, err := do.MustInvoke[*api.Courses](injector).My(ctx)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("load courses after login failed")

		return nil
	}

	cctx := &model.CourseContext{Courses: courses}
	if len(courses) > 0 {
		cctx.CurrentID = courses[0].ID
	}

	if err := sstore.SetCourseContext(cctx); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("store course context failed")
	}

	if current, ok := cctx.Current(); ok {
		fmt.Printf("Current course: %s (%d)\n", current.Name, current.ID)
	} else {
		fmt.Println("No course yet; join one with `spm course join`")
	}

	return nil
}

func newRegisterCmd() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create a new account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "Student number",
				Required: true,
				Config:   cli.StringConfig{TrimSpace: true},
			},
			&cli.StringFlag{
				Name:     "name",
				Usage:    "Display name",
				Required: true,
				Config:   cli.StringConfig{TrimSpace: true},
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Password (prompted when not given)",
			},
			&cli.StringFlag{
				Name:   "role",
				Value:  "STUDENT",
				Usage:  "Account role (STUDENT, TEACHER)",
				Config: cli.StringConfig{TrimSpace: true},
			},
		},
		Action: wrap(registerCmd),
	}
}

//nolint:forbidigo
func registerCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	role := model.Role(strings.ToUpper(clicmd.String("role")))
	if !role.Valid() {
		return aerr.Newf("invalid role %q", role).WithTag(aerr.ValidationError).
			WithUserMsg("role must be STUDENT or TEACHER")
	}

	password := clicmd.String("password")
	if password == "" {
		var err error
		if password, err = promptPassword("Password: "); err != nil {
			return err
		}
	}

	reg := api.Registration{
		StudentNo: clicmd.String("user"),
		Name:      clicmd.String("name"),
		Password:  password,
		Role:      string(role),
	}

	identity, err := do.MustInvoke[*api.Auth](injector).Register(ctx, reg)
	if err != nil {
		return aerr.Wrapf(err, "register failed").
			WithUserMsg("register failed: %s", aerr.GetUserMessageOr(err, err.Error()))
	}

	fmt.Printf("Registered %s (%s); login with `spm login -u %s`\n",
		identity.Name, identity.Role, identity.StudentNo)

	return nil
}

func newLogoutCmd() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Drop the local session",
		Action: wrap(logoutCmd),
	}
}

//nolint:forbidigo
func logoutCmd(_ context.Context, _ *cli.Command, injector do.Injector) error {
	do.MustInvoke[*store.SessionStore](injector).Clear()

	fmt.Println("Logged out")

	return nil
}

func newWhoamiCmd() *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the current session",
		Action: wrap(whoamiCmd),
	}
}

//nolint:forbidigo
func whoamiCmd(_ context.Context, _ *cli.Command, injector do.Injector) error {
	sstore := do.MustInvoke[*store.SessionStore](injector)

	sess := sstore.Hydrate()
	if sess == nil {
		fmt.Println("Not logged in")

		return nil
	}

	fmt.Printf("User:       %s (%s)\n", sess.Identity.Name, sess.Identity.StudentNo)
	fmt.Printf("Role:       %s\n", sess.Identity.Role)
	fmt.Printf("Session:    since %s, landing %s\n",
		sess.EstablishedAt.Local().Format("2006-01-02 15:04"), router.Landing(sess.Identity.Role))

	if cctx := sstore.CourseContext(); cctx.Selected() {
		if current, ok := cctx.Current(); ok {
			fmt.Printf("Course:     %s (%d of %d)\n", current.Name, current.ID, len(cctx.Courses))
		}
	} else {
		fmt.Println("Course:     none selected")
	}

	printTokenClaims(sess.Identity.Token)

	return nil
}

// printTokenClaims show what the server put into the bearer token. The
// signature is not checked here; the token is display-only on this side.
//
//nolint:forbidigo
func printTokenClaims(token string) {
	if token == "" {
		return
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		log.Logger.Debug().Err(err).Msg("parse bearer token failed")

		return
	}

	if sub, err := parsed.Claims.GetSubject(); err == nil && sub != "" {
		fmt.Printf("Token sub:  %s\n", sub)
	}

	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		fmt.Printf("Token exp:  %s\n", exp.Local().Format("2006-01-02 15:04"))
	}
}

func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", aerr.New("no password given and stdin is not a terminal").
			WithTag(aerr.ConfigurationError).
			WithUserMsg("give the password with --password or run interactively")
	}

	fmt.Fprint(os.Stderr, prompt)

	password, err := term.ReadPassword(fd)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", aerr.Wrapf(err, "read password failed")
	}

	return string(password), nil
}
