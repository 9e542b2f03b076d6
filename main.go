// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Leasemaster.
//
// Usage:
//
//	go run . [flags]
//	./leasemaster [flags] [command]
//
// Without a command the interactive menu starts. See --help for options.
package main

import (
	"os"

	"github.com/toeirei/leasemaster/internal/logging"
	"github.com/toeirei/leasemaster/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Debugf("leasemaster: %v", err)
		os.Exit(1)
	}
}
