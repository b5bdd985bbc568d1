package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/enicarthage/library-client/internal/domain/auth"
	apperrors "github.com/enicarthage/library-client/internal/errors"
	"github.com/enicarthage/library-client/internal/observability/notify"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %w", errUsage, fs.Name(), err)
	}
	return nil
}

func readLine(r io.Reader) (string, error) {
	if r == nil {
		return "", errors.New("no input available")
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cc *commandContext, args []string) error {
	fs := newFlagSet("login")
	username := fs.String("u", "", "username")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("%w: login requires -u <username>", errUsage)
	}
	// a restore finishing after login would overwrite the new session
	if err := cc.Client.WaitReady(cc.Ctx); err != nil {
		return err
	}

	_, _ = fmt.Fprint(cc.Stdout, "Password: ")
	password, err := readLine(cc.Stdin)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cc.Stdout)

	identity, err := cc.Client.Gateway.Login(cc.Ctx, *username, password)
	if err != nil {
		return err
	}
	cc.Client.Notifier.Notify(cc.Ctx, notify.Confirm("Login successful"))
	_, _ = fmt.Fprintf(cc.Stdout, "Signed in as %s (%s)\n", identity.DisplayName(), identity.Role)
	return nil
}

func runLogout(cc *commandContext, _ []string) error {
	if err := cc.Client.WaitReady(cc.Ctx); err != nil {
		return err
	}
	cc.Client.Gateway.Logout(cc.Ctx)
	cc.Client.Notifier.Notify(cc.Ctx, notify.Confirm("Logged out successfully"))
	return nil
}

func runRegister(cc *commandContext, args []string) error {
	fs := newFlagSet("register")
	var reg auth.Registration
	fs.StringVar(&reg.Username, "username", "", "username (min 3 characters)")
	fs.StringVar(&reg.Email, "email", "", "email address")
	fs.StringVar(&reg.FirstName, "first", "", "first name")
	fs.StringVar(&reg.LastName, "last", "", "last name")
	fs.StringVar(&reg.StudentID, "student-id", "", "student ID")
	fs.StringVar(&reg.PhoneNumber, "phone", "", "phone number")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	_, _ = fmt.Fprint(cc.Stdout, "Password: ")
	password, err := readLine(cc.Stdin)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cc.Stdout)
	reg.Password = password

	if err := cc.Client.Gateway.Register(cc.Ctx, reg); err != nil {
		printFieldErrors(cc.Stdout, err)
		return err
	}
	cc.Client.Notifier.Notify(cc.Ctx, notify.Confirm("Registration successful. Please login."))
	return nil
}

func printFieldErrors(w io.Writer, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || len(appErr.Fields) == 0 {
		return
	}
	fields := make([]string, 0, len(appErr.Fields))
	for f := range appErr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		_, _ = fmt.Fprintf(w, "  %s: %s\n", f, appErr.Fields[f])
	}
}

func runWhoami(cc *commandContext, _ []string) error {
	if err := cc.Client.WaitReady(cc.Ctx); err != nil {
		return err
	}
	s := cc.Client.Sessions.Session()
	if !s.AuthenticatedAt(cc.Client.Sessions.Now()) {
		_, _ = fmt.Fprintln(cc.Stdout, "Not signed in.")
		return nil
	}
	id := s.Identity
	tw := newTable(cc.Stdout)
	_, _ = fmt.Fprintf(tw, "Name:\t%s\n", id.DisplayName())
	_, _ = fmt.Fprintf(tw, "Username:\t%s\n", id.Username)
	_, _ = fmt.Fprintf(tw, "Email:\t%s\n", id.Email)
	_, _ = fmt.Fprintf(tw, "Role:\t%s\n", id.Role)
	if !s.ExpiresAt.IsZero() {
		_, _ = fmt.Fprintf(tw, "Expires:\t%s\n", s.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
