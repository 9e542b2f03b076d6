// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// BackupSchemaVersion is written into every backup and checked on restore.
const BackupSchemaVersion = 1

// BackupData is a container for all data to be exported for a backup.
// It holds the rows of every table, including password hashes.
type BackupData struct {
	// SchemaVersion helps in handling migrations during restore.
	SchemaVersion int `json:"schema_version"`

	Clients    []Client          `json:"clients"`
	Vehicles   []Vehicle         `json:"vehicles"`
	Contracts  []LeasingContract `json:"leasing_contracts"`
	Payments   []Payment         `json:"payments"`
	Principals []Principal       `json:"principals"`
}
