package utils

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interruptSelf(t *testing.T, sig os.Signal) {
	process, err := os.FindProcess(os.Getpid())
	assert.Nil(t, err)
	assert.Nil(t, process.Signal(sig))
}

func TestProtectedSectionSurvivesInterruptCallback(t *testing.T) {
	assert := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	CallbackOnInterrupt(ctx, cancel)

	section := StartNewProtectedSection("test section")
	workContext := context.WithoutCancel(ctx)
	interruptSelf(t, syscall.SIGTERM)

	assert.Eventually(func() bool { return ctx.Err() != nil }, 5*time.Second, 10*time.Millisecond)
	assert.Eventually(section.Signaled, 5*time.Second, 10*time.Millisecond)
	assert.Nil(workContext.Err())

	section.Close()
	assert.True(section.Signaled())
}

func TestProtectedSectionNotSignaled(t *testing.T) {
	section := StartNewProtectedSection("test section")
	section.Close()
	assert.False(t, section.Signaled())
}
