// Package testutil provides filesystem fixtures for agentlink tests.
//
// Tests in this module run against the real filesystem under t.TempDir();
// symlink semantics are the thing under test, so an in-memory filesystem
// would not exercise them.
package testutil
