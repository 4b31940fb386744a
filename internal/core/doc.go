// Package core ties a leaderboard source to the projector.
//
// It is transport-agnostic: the web handlers and the CLI both call
// [Service.Render] or [Service.Load] and present the result themselves.
//
// # Load flow
//
//  1. [LoadLimiter] grants a slot or fails with [ErrTooManyLoads]
//  2. the configured source.Source fetches raw bytes
//  3. tabular.ParseReader strips a BOM, repairs UTF-8 and parses records
//  4. leaderboard.New wraps the records for projection
//
// Each load is logged with its own load_id and recorded in [Metrics].
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError].
// Codes are grouped as LOAD (retrieval), DB (database source), CFG
// (presentation config) and RATE (throttling); ERR000 is the fallback.
package core
