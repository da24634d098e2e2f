// Package filesystem provides the filesystem seam used by agentlink.
//
// Every component that touches disk goes through FS so tests can wrap the
// OS implementation and inject failures at a single operation.
package filesystem
