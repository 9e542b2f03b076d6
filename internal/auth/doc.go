// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package auth holds the credential store, the authentication gate with its
// role permissions, and the first-run administrator bootstrap.
package auth // import "github.com/toeirei/leasemaster/internal/auth"
