package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/splitter/internal/core/domain"
	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes fingerprints over resolved configs and the files their builds read.
type Hasher struct {
	walker *Walker
	inputs ports.InputResolver
}

// NewHasher creates a new Hasher. inputs decides which directories a fingerprint covers.
func NewHasher(walker *Walker, inputs ports.InputResolver) *Hasher {
	return &Hasher{walker: walker, inputs: inputs}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// Fingerprint hashes the resolved record and every file under the build's input
// roots, excluding its output directory. Paths are hashed relative to the config
// directory, so referenced projects outside it count too.
func (h *Hasher) Fingerprint(cfg *domain.BuildConfig) (string, error) {
	roots, err := h.inputs.InputRoots(cfg)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrFingerprintFailed, err), "config", cfg.ConfigPath)
	}

	hasher := xxhash.New()

	h.hashRecord(cfg, hasher)

	for _, root := range roots {
		for path := range h.walker.WalkFiles(root, []string{cfg.OutputDir, domain.StateDirName}) {
			if err := h.hashFile(cfg.ConfigDir, path, hasher); err != nil {
				return "", zerr.With(zerr.Wrap(domain.ErrFingerprintFailed, err.Error()), "config", cfg.ConfigPath)
			}
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashRecord hashes every field of the resolved record. Plugin order is significant.
func (h *Hasher) hashRecord(cfg *domain.BuildConfig, hasher *xxhash.Digest) {
	writeField := func(s string) {
		_, _ = hasher.WriteString(s)
		_, _ = hasher.Write([]byte{0})
	}

	writeField(cfg.ConfigPath)
	writeField(strconv.FormatBool(cfg.AllFiles))
	writeField(cfg.EntryPath)
	writeField(cfg.OutputDir)
	writeField(string(cfg.SourceMaps))
	writeField(strings.Join(cfg.Inputs, string(filepath.ListSeparator)))

	for _, plugin := range cfg.TransformPlugins {
		writeField(plugin)
	}
	_, _ = hasher.Write([]byte{0}) // Section separator

	if cfg.OnCompiled != nil {
		writeField(string(cfg.OnCompiled.Kind))
		writeField(cfg.OnCompiled.Dir)
		writeField(cfg.OnCompiled.Pattern)
	}
	_, _ = hasher.Write([]byte{0})
}

func (h *Hasher) hashFile(root, path string, mainHasher io.Writer) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	_, _ = mainHasher.Write([]byte(filepath.ToSlash(rel)))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
