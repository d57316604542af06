package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/stemsi/mentora-cli/internal/model"
	"github.com/stemsi/mentora-cli/internal/validator"
)

func runLogin(e *env, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email (prompted when omitted)")
	password := fs.String("password", "", "account password (prompted when omitted; prefer the prompt)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := model.LoginRequest{Email: *email, Password: *password}

	if req.Email == "" {
		fmt.Print("Email: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		req.Email = strings.TrimSpace(line)
	}

	if req.Password == "" {
		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		req.Password = string(raw)
	}

	// Validate locally so field problems render inline instead of as a
	// backend round-trip.
	if fields := validator.Struct(req); fields != nil {
		for field, msg := range fields {
			color.New(color.FgRed).Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
		return fmt.Errorf("invalid credentials input")
	}

	token, user, err := e.client.Login(context.Background(), req)
	if err != nil {
		return err
	}
	if err := e.app.SetAuth(token, user); err != nil {
		return err
	}

	name := req.Email
	if user != nil {
		name = user.Name
	}
	color.New(color.FgGreen).Printf("Logged in as %s\n", name)
	return nil
}

func runLogout(e *env) error {
	if err := e.app.Teardown(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
