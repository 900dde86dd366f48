// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small file helpers shared by ellipsis packages.
//
//	// Write the config file without ever leaving it half-written
//	err := util.AtomicWriteFile(path, data, 0600)
package util
