package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/splitter/internal/core/domain"
	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FixtureCopier = (*FixtureCopier)(nil)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// FixtureCopier copies snapshot fixtures next to the compiled output.
type FixtureCopier struct {
	walker *Walker
	hasher *Hasher
}

// NewFixtureCopier creates a new FixtureCopier.
func NewFixtureCopier(walker *Walker, hasher *Hasher) *FixtureCopier {
	return &FixtureCopier{walker: walker, hasher: hasher}
}

// CopyFixtures copies every file that lives in a directory named hook.Dir and
// matches hook.Pattern to the same relative location under outputDir.
// Destination files with identical content are left untouched.
func (c *FixtureCopier) CopyFixtures(ctx context.Context, sourceDir, outputDir string, hook domain.Hook) (int, error) {
	if hook.Kind != domain.HookCopySnapshots {
		return 0, zerr.With(zerr.Wrap(domain.ErrUnknownHook, "cannot copy fixtures"), "hook", string(hook.Kind))
	}
	hook = hook.WithDefaults()

	sourceDir = filepath.Clean(sourceDir)
	outputDir = filepath.Clean(outputDir)

	written := 0
	for path := range c.walker.WalkFiles(sourceDir, []string{outputDir}) {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		if !isFixture(sourceDir, path, hook) {
			continue
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return written, c.copyErr(err, path)
		}
		dst := filepath.Join(outputDir, rel)

		copied, err := c.copyIfChanged(path, dst)
		if err != nil {
			return written, c.copyErr(err, path)
		}
		if copied {
			written++
		}
	}

	return written, nil
}

func isFixture(root, path string, hook domain.Hook) bool {
	if matched, _ := filepath.Match(hook.Pattern, filepath.Base(path)); !matched {
		return false
	}

	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil || rel == "." {
		return false
	}
	return slices.Contains(splitPath(rel), hook.Dir)
}

func splitPath(rel string) []string {
	var parts []string
	for rel != "." && rel != string(filepath.Separator) && rel != "" {
		dir, base := filepath.Split(rel)
		parts = append(parts, base)
		rel = filepath.Clean(dir)
	}
	return parts
}

func (c *FixtureCopier) copyIfChanged(src, dst string) (bool, error) {
	if _, err := os.Stat(dst); err == nil {
		srcHash, err := c.hasher.ComputeFileHash(src)
		if err != nil {
			return false, err
		}
		dstHash, err := c.hasher.ComputeFileHash(dst)
		if err != nil {
			return false, err
		}
		if srcHash == dstHash {
			return false, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return false, err
	}

	in, err := os.Open(src) //nolint:gosec // Path comes from walking the project directory
	if err != nil {
		return false, err
	}
	defer in.Close() //nolint:errcheck // Read-only file

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm) //nolint:gosec // Destination is under the output directory
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return false, err
	}
	if err := out.Close(); err != nil {
		return false, err
	}
	return true, nil
}

func (c *FixtureCopier) copyErr(err error, path string) error {
	return zerr.With(zerr.Wrap(domain.ErrFixtureCopyFailed, err.Error()), "path", path)
}
