package state

import (
	"os"
	"path/filepath"

	"github.com/tez-capital/refpay/constants"
)

var (
	Global State
)

type StateInitOptions struct {
	WantsJsonOutput       bool
	InjectedConfiguration *string
}

type State struct {
	workingDirectory         string
	wantsJsonOutput          bool
	injectedConfiguration    []byte
	hasInjectedConfiguration bool
}

func Init(workingDirectory string, options StateInitOptions) {
	injectedConfiguration, hasInjectedConfiguration := []byte{}, false
	if options.InjectedConfiguration != nil {
		injectedConfiguration, hasInjectedConfiguration = []byte(*options.InjectedConfiguration), true
	}
	Global = State{
		workingDirectory:         workingDirectory,
		injectedConfiguration:    injectedConfiguration,
		wantsJsonOutput:          options.WantsJsonOutput,
		hasInjectedConfiguration: hasInjectedConfiguration,
	}
}

func (state *State) GetWorkingDirectory() string {
	return state.workingDirectory
}

func (state *State) GetWantsOutputJson() bool {
	return state.wantsJsonOutput
}

func (state *State) GetInjectedConfiguration() (bool, []byte) {
	return state.hasInjectedConfiguration, state.injectedConfiguration
}

func (state *State) GetConfigurationFilePath() string {
	configurationFilePath := os.Getenv(constants.CONFIGURATION_FILE_ENV)
	if configurationFilePath != "" {
		return configurationFilePath
	}
	return filepath.Join(state.GetWorkingDirectory(), constants.CONFIG_FILE_NAME)
}

// ResolvePath makes relative paths from the configuration relative to the working directory
func (state *State) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(state.GetWorkingDirectory(), path)
}

func (state *State) GetLockFilePath() string {
	return filepath.Join(state.GetWorkingDirectory(), ".refpay.lock")
}
