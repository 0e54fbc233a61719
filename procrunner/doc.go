/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package procrunner spawns external executables and captures their output.
//
// It is pure process control: it knows nothing about agents, providers, or
// prompts. A single call to Run resolves in exactly one of three ways:
//
//   - the child exits, yielding an Outcome with both streams and the exit
//     code (non-zero exit is data here, not an error)
//   - the timeout elapses, yielding *TimeoutError after sending the child
//     one SIGTERM
//   - the executable cannot be started, yielding *SpawnError
//
// The child's environment is the parent environment overlaid with fixed
// non-interactive variables (NO_COLOR, CI, TERM=dumb, NODE_ENV=production)
// overlaid again with caller-supplied variables; later layers win. Stdin is
// connected only when a payload is supplied, so children that read stdin
// when present cannot block when it is not.
//
// Output accumulates in memory with no size bound; limiting output is the
// caller's concern.
package procrunner
