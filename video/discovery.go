package video

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverCandidates walks root recursively and returns every convertible file,
// sorted so runs are deterministic. Temp artifacts are never returned.
func DiscoverCandidates(ctx context.Context, root string) ([]string, error) {
	var files []string
	var err error

	// Use fd if available for better performance, otherwise fall back to filepath.WalkDir
	if isFdAvailable() {
		files, err = findCandidatesWithFd(ctx, root)
		if err != nil {
			// If fd fails, fall back to the standard method
			files, err = findCandidatesWithWalkDir(ctx, root)
		}
	} else {
		files, err = findCandidatesWithWalkDir(ctx, root)
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// isFdAvailable checks if the 'fd' command is available in PATH
func isFdAvailable() bool {
	_, err := exec.LookPath("fd")
	return err == nil
}

// findCandidatesWithWalkDir uses filepath.WalkDir to find candidates (fallback method)
func findCandidatesWithWalkDir(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			return nil
		}

		if IsCandidate(path) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// findCandidatesWithFd uses the 'fd' command to efficiently find candidates
func findCandidatesWithFd(ctx context.Context, root string) ([]string, error) {
	exts := make([]string, 0, len(candidateExtensions))
	for _, ext := range candidateExtensions {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	pattern := `\.(` + strings.Join(exts, "|") + `)$`

	// --no-ignore and --hidden make fd see the same tree WalkDir does
	cmd := exec.CommandContext(ctx, "fd", "--type", "f", "--ignore-case", "--no-ignore", "--hidden",
		"--absolute-path", pattern, root)
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line == "" || !IsCandidate(line) {
			continue
		}
		// keep paths relative to root in the same shape WalkDir produces
		rel, err := filepath.Rel(absRoot, line)
		if err != nil {
			return nil, err
		}
		files = append(files, filepath.Join(root, rel))
	}

	return files, nil
}
