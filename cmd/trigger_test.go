package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/engines/events"
	"github.com/tez-capital/refpay/state"
)

var emitter = ethcommon.HexToAddress("0xC8ee91A54287DB53897056e12D9819156D3822Fb")

func TestSimulatedLog(t *testing.T) {
	assert := assert.New(t)
	decoder := events.NewDecoder(emitter)

	log, err := simulatedLog(emitter, string(enums.TRIGGER_DATA_RECEIVED))
	assert.Nil(err)
	event, err := decoder.Decode(log)
	assert.Nil(err)
	assert.Equal(enums.TRIGGER_DATA_RECEIVED, event.TriggerKind())
	received, err := common.ParseFeeDistributionDataReceived(event)
	assert.Nil(err)
	assert.True(received.IsBridgingCompleted)

	log, err = simulatedLog(emitter, string(enums.TRIGGER_DISTRIBUTION_COMPLETED))
	assert.Nil(err)
	event, err = decoder.Decode(log)
	assert.Nil(err)
	assert.Equal(enums.TRIGGER_DISTRIBUTION_COMPLETED, event.TriggerKind())

	_, err = simulatedLog(emitter, "OrderCreated")
	assert.ErrorIs(err, constants.ErrInvalidArgument)
}

func TestReadLogs(t *testing.T) {
	assert := assert.New(t)
	directory := t.TempDir()

	log, err := simulatedLog(emitter, string(enums.TRIGGER_BRIDGED_GMX_RECEIVED))
	assert.Nil(err)
	log.TxHash = ethcommon.HexToHash("0x01")
	single, err := json.Marshal(log)
	assert.Nil(err)
	array, err := json.Marshal([]any{log, log})
	assert.Nil(err)

	singlePath := filepath.Join(directory, "log.json")
	assert.Nil(os.WriteFile(singlePath, single, 0644))
	logs, err := readLogs(singlePath)
	assert.Nil(err)
	assert.Len(logs, 1)
	assert.Equal(log.Topics, logs[0].Topics)
	assert.Equal(log.Data, logs[0].Data)

	arrayPath := filepath.Join(directory, "logs.json")
	assert.Nil(os.WriteFile(arrayPath, array, 0644))
	logs, err = readLogs(arrayPath)
	assert.Nil(err)
	assert.Len(logs, 2)

	_, err = readLogs(filepath.Join(directory, "missing.json"))
	assert.True(errors.Is(err, os.ErrNotExist))
}

func TestExitCodeFor(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(common.EXIT_INSUFFICIENT_BALANCE, exitCodeFor(errors.Join(constants.ErrInsufficientBalance, errors.New("wnt")), common.EXIT_PAYOUT_FAILURE))
	assert.Equal(common.EXIT_INVALID_ARGS, exitCodeFor(constants.ErrInvalidPeriod, common.EXIT_COMPUTE_FAILURE))
	assert.Equal(common.EXIT_STATE_LOAD_FAILURE, exitCodeFor(constants.ErrStateStoreFailed, common.EXIT_COMPUTE_FAILURE))
	assert.Equal(common.EXIT_COMPUTE_FAILURE, exitCodeFor(constants.ErrIndexerQueryFailed, common.EXIT_COMPUTE_FAILURE))
}

func TestWriteDefaultConfiguration(t *testing.T) {
	assert := assert.New(t)
	t.Setenv(constants.CONFIGURATION_FILE_ENV, "")
	directory := t.TempDir()
	state.Init(directory, state.StateInitOptions{})

	target, err := writeDefaultConfiguration(configuration.AVALANCHE, false)
	assert.Nil(err)
	assert.Equal(filepath.Join(directory, constants.CONFIG_FILE_NAME), target)

	loaded, err := configuration.Load()
	assert.Nil(err)
	assert.Equal(configuration.AVALANCHE, loaded.ChainId)
	assert.Equal(constants.PAYOUT_BATCH_SIZE, loaded.Distribution.BatchSize)

	_, err = writeDefaultConfiguration(configuration.ARBITRUM, false)
	assert.ErrorIs(err, constants.ErrInvalidArgument)
	_, err = writeDefaultConfiguration(configuration.ARBITRUM, true)
	assert.Nil(err)
	assert.FileExists(target + constants.CONFIG_FILE_BACKUP_SUFFIX)

	_, err = writeDefaultConfiguration(1, true)
	assert.ErrorIs(err, constants.ErrUnsupportedChain)
}
