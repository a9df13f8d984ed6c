package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/mergeconfig/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks and absolute/relative paths.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniqueFiles returns the absolute paths of files in order, dropping every
// later occurrence of a file already listed under any name. Paths that cannot
// be resolved are kept so that reading them reports the error.
func uniqueFiles(ctx context.Context, files []string) []string {
	unique := make([]string, 0, len(files))
	seen := make(map[fileKey]struct{}, len(files))

	for _, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil {
			unique = append(unique, path)

			continue
		}

		key, ok := statKey(abs)
		if !ok {
			unique = append(unique, abs)

			continue
		}

		if _, dup := seen[key]; dup {
			log.DebugContext(ctx, "skip duplicate input", slog.String("path", path))

			continue
		}

		seen[key] = struct{}{}
		unique = append(unique, abs)
	}

	return unique
}

// statKey resolves symlinks in path and returns its device/inode pair.
func statKey(path string) (fileKey, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
