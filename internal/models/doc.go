// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

/*
Package models defines the shared data structures of the Reelrank service.

It holds the movie catalog records and the API envelope types used by every
HTTP handler. Keeping these in one leaf package lets the catalog, engine,
and API layers share them without import cycles.

Key types:

  - Movie: a catalog entry (ID, title, genres, year) parsed from the movies CSV
  - Rating: a (user, movie, rating) triple parsed from the ratings CSV
  - APIResponse: the standard response wrapper for all API endpoints
  - APIError: structured error details carried inside the wrapper
  - Metadata: per-response timing information

All models are plain data structures with no internal synchronization;
they are safe for concurrent reads after construction.
*/
package models
