package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/backoffice/pkg/lifecycle"
)

// filesystem keeps staged bytes under a single directory opened as an
// os.Root, so no key can reach outside it even through symlinks.
type filesystem struct {
	basePath string
	logger   *slog.Logger

	once sync.Once
	root *os.Root
	err  error
}

// New resolves cfg.BasePath. The directory is created on first use or at
// lifecycle startup, whichever comes first.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("base_path required")
	}

	abs, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	return &filesystem{
		basePath: abs,
		logger:   logger.With("system", "storage"),
	}, nil
}

func (f *filesystem) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("starting storage system", "base_path", f.basePath)

	lc.OnStartup(func() {
		if _, err := f.open(); err != nil {
			f.logger.Error("storage initialization failed", "error", err)
			return
		}
		f.logger.Info("storage directory initialized")
	})

	return nil
}

// Store writes data beside the target and renames it into place, so a
// concurrent Retrieve sees either the old bytes or the new ones.
func (f *filesystem) Store(ctx context.Context, key string, data []byte) error {
	root, name, err := f.resolve(ctx, key)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(name); dir != "." {
		if err := root.MkdirAll(dir, 0o755); err != nil {
			return mapErr("create directory", err)
		}
	}

	tmp := name + ".tmp-" + uuid.NewString()
	if err := root.WriteFile(tmp, data, 0o644); err != nil {
		return mapErr("write temp file", err)
	}
	if err := root.Rename(tmp, name); err != nil {
		root.Remove(tmp)
		return mapErr("rename temp file", err)
	}
	return nil
}

func (f *filesystem) Retrieve(ctx context.Context, key string) ([]byte, error) {
	root, name, err := f.resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	data, err := root.ReadFile(name)
	if err != nil {
		return nil, mapErr("read file", err)
	}
	return data, nil
}

// Delete removes key and then every directory above it that is left empty.
func (f *filesystem) Delete(ctx context.Context, key string) error {
	root, name, err := f.resolve(ctx, key)
	if err != nil {
		return err
	}

	if err := root.Remove(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return mapErr("remove file", err)
	}

	for dir := filepath.Dir(name); dir != "."; dir = filepath.Dir(dir) {
		if err := root.Remove(dir); err != nil {
			break
		}
	}
	return nil
}

func (f *filesystem) Validate(ctx context.Context, key string) (bool, error) {
	root, name, err := f.resolve(ctx, key)
	if err != nil {
		return false, err
	}

	if _, err := root.Stat(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, mapErr("stat file", err)
	}
	return true, nil
}

func (f *filesystem) Purge(ctx context.Context, prefix string) error {
	root, name, err := f.resolve(ctx, prefix)
	if err != nil {
		return err
	}

	if err := root.RemoveAll(name); err != nil {
		return mapErr("remove directory", err)
	}
	return nil
}

func (f *filesystem) open() (*os.Root, error) {
	f.once.Do(func() {
		if err := os.MkdirAll(f.basePath, 0o755); err != nil {
			f.err = fmt.Errorf("create base directory: %w", err)
			return
		}
		f.root, f.err = os.OpenRoot(f.basePath)
	})
	return f.root, f.err
}

// resolve checks ctx and turns a slash-separated key into a name relative
// to the root. Empty, absolute, and escaping keys are ErrInvalidKey.
func (f *filesystem) resolve(ctx context.Context, key string) (*os.Root, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	name := path.Clean(strings.ReplaceAll(key, "\\", "/"))
	if key == "" || name == "." || path.IsAbs(name) || name == ".." || strings.HasPrefix(name, "../") {
		return nil, "", ErrInvalidKey
	}

	root, err := f.open()
	if err != nil {
		return nil, "", err
	}
	return root, filepath.FromSlash(name), nil
}

func mapErr(op string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	}
	return fmt.Errorf("%s: %w", op, err)
}
