package store_engines

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/filelock"
	"github.com/tez-capital/refpay/constants"
)

// FileStore keeps the state as a flat JSON object on disk. Every operation
// reopens the file under an exclusive lock so concurrent refpay processes
// sharing a working directory never interleave writes.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Join(constants.ErrStoreLoadFailed, err)
	}
	return &FileStore{path: path}, nil
}

func (engine *FileStore) GetId() string {
	return "FileStore"
}

func (engine *FileStore) GetPath() string {
	return engine.path
}

func (engine *FileStore) lockPath() string {
	return engine.path + ".lock"
}

func (engine *FileStore) withLock(fn func() error) error {
	lock := filelock.NewLocker(engine.lockPath())
	f, err := lock.Open()
	if err != nil {
		slog.Debug("failed to lock state file", "file", engine.lockPath(), "error", err.Error())
		return errors.Join(constants.ErrStateLockFailed, err)
	}
	defer f.Close()
	return fn()
}

func (engine *FileStore) read() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(engine.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (engine *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "\t")
	if err != nil {
		return err
	}
	tmp := engine.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, engine.path)
}

func (engine *FileStore) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	err = engine.withLock(func() error {
		values, err := engine.read()
		if err != nil {
			return err
		}
		value, ok = values[key]
		return nil
	})
	return
}

func (engine *FileStore) Set(ctx context.Context, key string, value string) error {
	return engine.withLock(func() error {
		values, err := engine.read()
		if err != nil {
			return err
		}
		values[key] = value
		return engine.write(values)
	})
}

func (engine *FileStore) Delete(ctx context.Context, key string) error {
	return engine.withLock(func() error {
		values, err := engine.read()
		if err != nil {
			return err
		}
		if _, ok := values[key]; !ok {
			return nil
		}
		delete(values, key)
		return engine.write(values)
	})
}
