// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type promptKey struct{}

func SetPromptValues(ctx context.Context, values []string) context.Context {
	return context.WithValue(ctx, promptKey{}, &values)
}

func dequeuePromptValues(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if i := ctx.Value(promptKey{}); i != nil {
		sl := i.(*[]string)
		if len(*sl) > 0 {
			s := (*sl)[0]
			*sl = (*sl)[1:]
			return s
		}
	}
	return ""
}

// PromptForSecret reads a value without echoing it when stdin is a terminal,
// otherwise reads one line from the command input.
func PromptForSecret(cmd *cobra.Command, name string) (string, error) {
	if s := dequeuePromptValues(cmd.Context()); s != "" {
		return s, nil
	}
	cmd.Printf("%s: ", name)
	if cmd.InOrStdin() == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", err
		}
		cmd.Println("")
		return strings.TrimSpace(string(b)), nil
	}
	r := bufio.NewReader(cmd.InOrStdin())
	val, err := r.ReadString('\n')
	if err != nil && val == "" {
		return "", err
	}
	return strings.TrimSpace(val), nil
}
