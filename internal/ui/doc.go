// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ui holds presentation helpers shared by the CLI and the
// interactive menu: table rendering and localized error descriptions.
package ui
