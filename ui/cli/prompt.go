// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/leasemaster/internal/auth"
	"github.com/toeirei/leasemaster/internal/i18n"
	"github.com/toeirei/leasemaster/internal/security"
	"golang.org/x/term"
)

// errPasswordMismatch is returned when the confirmation differs.
var errPasswordMismatch = errors.New("passwords do not match")

func (a *app) reader(cmd *cobra.Command) *bufio.Reader {
	if a.stdin == nil {
		a.stdin = bufio.NewReader(cmd.InOrStdin())
	}
	return a.stdin
}

// promptLine prints label and reads one line from the command's input.
func (a *app) promptLine(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label+" ")
	line, err := a.reader(cmd).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a password without echo when the input is a terminal
// and falls back to a plain line otherwise.
func (a *app) promptSecret(cmd *cobra.Command, label string) (security.Secret, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), label+" ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		return security.FromBytes(b), nil
	}
	line, err := a.promptLine(cmd, label)
	if err != nil {
		return nil, err
	}
	return security.FromString(line), nil
}

// newPassword prompts for a new password twice and validates it.
func (a *app) newPassword(cmd *cobra.Command) (security.Secret, error) {
	pw, err := a.promptSecret(cmd, i18n.T("prompt.new_password"))
	if err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(pw); err != nil {
		pw.Zero()
		return nil, err
	}
	confirm, err := a.promptSecret(cmd, i18n.T("prompt.confirm_password"))
	if err != nil {
		pw.Zero()
		return nil, err
	}
	defer confirm.Zero()
	if !bytes.Equal(pw, confirm) {
		pw.Zero()
		return nil, errPasswordMismatch
	}
	return pw, nil
}
