// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Leasemaster using
// Cobra. It wires configuration, the store and the login, and provides
// commands that delegate to the core façade. CLI code should remain thin and
// keep business rules in core.
package cli
