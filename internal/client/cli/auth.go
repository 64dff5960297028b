package cli

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var (
	errEmptyPassword    = errors.New("password must not be empty")
	errPasswordMismatch = errors.New("passwords do not match")
)

// Signup prompts for whatever was not given and creates an account. It does
// not sign in.
func (a *App) Signup(ctx context.Context, username, email string) error {
	var err error
	if username == "" {
		if username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}
	password, err := confirmPassword(a.out)
	if err != nil {
		return a.report(ctx, err)
	}

	if err := a.authService.Signup(ctx, username, email, string(password)); err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintln(a.out, "Account created. You can now log in.")
	return nil
}

// Login prompts for the password (and the email when not given), signs in
// and stores the credential.
func (a *App) Login(ctx context.Context, email string) error {
	var err error
	if email == "" {
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return a.report(ctx, err)
	}

	cred, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		return a.report(ctx, err)
	}

	a.email = email
	a.log.Info(ctx, "signed in", "email", email)
	fmt.Fprintf(a.out, "Signed in. Session valid until %s.\n", time.Unix(cred.Expiry, 0).Format(time.RFC1123))
	return nil
}

// Logout removes the stored credential. With purge the whole local store is
// wiped.
func (a *App) Logout(ctx context.Context, purge bool) error {
	if purge {
		n, err := a.authService.Purge(ctx)
		if err != nil {
			return a.report(ctx, err)
		}
		a.email = ""
		fmt.Fprintf(a.out, "Signed out. Local store reset (%d entries removed).\n", n)
		return nil
	}

	if err := a.authService.Logout(ctx); err != nil {
		return a.report(ctx, err)
	}
	a.email = ""
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}
