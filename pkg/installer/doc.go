// Package installer ties source resolution, linking and the broken-link
// sweep into one idempotent install of the configured assets into a target
// directory.
//
// An install runs sequentially through a fixed state machine:
//
//	Idle -> AssetsEnumerated -> AssetsLinked -> SweepComplete -> Done
//
// Enumeration failures (missing source subfolder, bad manifest) and an
// uncreatable target directory are fatal. A source that is missing or of
// the wrong kind only skips that asset. A LinkError stops the link phase
// unless KeepGoing is set, in which case it is recorded and the run
// continues but still fails. The sweep runs once the link phase completes
// and is skipped after a fatal error.
//
// Nothing is written to remember a previous run: each install derives the
// asset list afresh and the filesystem is the only record.
package installer
