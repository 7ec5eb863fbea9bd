package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"code.cloudfoundry.org/filelock"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/state"
)

const DEFAULT_LOCK_TIMEOUT = 30 * time.Second

func lockState(unlockStore *func() error, resultChan chan<- error) {
	lockFilePath := state.Global.GetLockFilePath()
	if err := os.MkdirAll(filepath.Dir(lockFilePath), 0700); err != nil {
		slog.Debug("failed to create lock file directory", "error", err.Error())
		resultChan <- err
		return
	}
	lock := filelock.NewLocker(lockFilePath)

	f, err := lock.Open()
	if err != nil {
		slog.Debug("failed to lock file", "error", err.Error())
		resultChan <- err
		return
	}
	slog.Debug("locked file", "file", lockFilePath)

	*unlockStore = func() error {
		err := f.Close()
		os.Remove(lockFilePath)
		return err
	}
	resultChan <- nil
}

// lockStateStore serializes commands mutating the distribution state within one working directory
func lockStateStore(ctx context.Context) (unlock func() error, err error) {
	resultChan := make(chan error, 1)
	var unlockFn func() error

	slog.Debug("locking state")
	go lockState(&unlockFn, resultChan)

	select {
	case <-ctx.Done():
		slog.Debug("context canceled")
		return nil, errors.Join(constants.ErrStateLockFailed, ctx.Err())
	case err := <-resultChan:
		if err != nil {
			return nil, errors.Join(constants.ErrStateLockFailed, err)
		}
	}
	return unlockFn, nil
}

func lockStateStoreWithTimeout(timeout time.Duration) (unlock func() error, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return lockStateStore(ctx)
}
