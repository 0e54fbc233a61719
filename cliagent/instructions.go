/*
Copyright 2026 ClaudeCodex Authors
SPDX-License-Identifier: Apache-2.0
*/

package cliagent

import (
	"context"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"
)

// stageInstructions writes the agent's guardrail file into the workspace
// root and returns the cleanup that removes it again. Staging is best
// effort: an existing file is left alone (the workspace owner's content
// wins) and a write failure is logged but never fails the invocation.
// Cleanup failures are logged only, so they cannot mask the primary
// outcome. A nil return means nothing was staged.
func stageInstructions(ctx context.Context, workspace, filename, content string) (cleanup func()) {
	log := clog.FromContext(ctx).With("file", filename).With("workspace", workspace)
	path := filepath.Join(workspace, filename)

	if _, err := os.Lstat(path); err == nil {
		log.Info("Instruction file already present, leaving it untouched")
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		log.With("error", err).Warn("Failed to stage instruction file, proceeding without it")
		return nil
	}

	return func() {
		if err := os.Remove(path); err != nil {
			log.With("error", err).Warn("Failed to remove staged instruction file")
		}
	}
}
