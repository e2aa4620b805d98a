// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package supervisor provides Suture-based process supervision for Reelrank.
//
// The tree has two layers under the root:
//   - engine: the dataset reload watcher
//   - api: the HTTP server
//
// Layering isolates failures: a crash in the reload watcher restarts only
// that service and never takes the HTTP server down with it. Supervisor
// events are logged through sutureslog, bridged into zerolog by
// logging.NewSlogLogger.
package supervisor
