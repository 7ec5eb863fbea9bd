package core

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/configuration"
	"github.com/tez-capital/refpay/constants"
	"github.com/tez-capital/refpay/constants/enums"
	"github.com/tez-capital/refpay/metrics"
)

const (
	MESSAGE_NO_RELEVANT_EVENT     = "no relevant event"
	MESSAGE_BRIDGING_NOT_COMPLETE = "bridging is not completed, waiting for FeeDistributionBridgedGmxReceived"
)

type RouteOptions struct {
	Compute *common.ComputeOptions
	Payout  *common.PayoutOptions
}

type RouteResult struct {
	Trigger enums.ETriggerKind      `json:"trigger"`
	Event   *common.DecodedEvent    `json:"-"`
	Compute *common.ComputeResult   `json:"compute,omitempty"`
	Payout  *common.PayoutResult    `json:"payout,omitempty"`
	Result  *common.ExecutionResult `json:"result"`
}

// EventRouter classifies fee distribution events and dispatches them to the matching phase
type EventRouter struct {
	configuration  *configuration.RuntimeConfiguration
	decoder        common.EventLogDecoder
	computeEngines *common.ComputeEngineContext
	payoutEngines  *common.PayoutEngineContext
	logger         *slog.Logger
}

func NewEventRouter(config *configuration.RuntimeConfiguration, decoder common.EventLogDecoder, computeEngines *common.ComputeEngineContext, payoutEngines *common.PayoutEngineContext) (*EventRouter, error) {
	if config == nil {
		return nil, constants.ErrMissingConfiguration
	}
	if decoder == nil {
		return nil, errors.Join(constants.ErrMissingEngine, constants.ErrMissingDecoderEngine)
	}
	if err := computeEngines.Validate(); err != nil {
		return nil, err
	}
	if err := payoutEngines.Validate(); err != nil {
		return nil, err
	}
	return &EventRouter{
		configuration:  config,
		decoder:        decoder,
		computeEngines: computeEngines,
		payoutEngines:  payoutEngines,
		logger:         computeEngines.GetLogger().With("component", "router"),
	}, nil
}

// Route decodes the log and runs the phase its event asks for
func (router *EventRouter) Route(ctx context.Context, log *types.Log, options *RouteOptions) (*RouteResult, error) {
	event, err := router.decoder.Decode(log)
	if err != nil {
		return nil, err
	}
	return router.RouteEvent(ctx, event, options)
}

func (router *EventRouter) RouteEvent(ctx context.Context, event *common.DecodedEvent, options *RouteOptions) (result *RouteResult, err error) {
	if options == nil {
		options = &RouteOptions{}
	}
	trigger := event.TriggerKind()
	logger := router.logger.With(constants.LOG_FIELD_TRIGGER, trigger, "tx", event.TxHash, "block", event.BlockNumber)
	defer func() {
		status := metrics.STATUS_SUCCESS
		switch {
		case err != nil:
			status = metrics.STATUS_ERROR
		case result != nil && result.Result != nil && !result.Result.CanExec:
			status = metrics.STATUS_NOOP
		}
		metrics.TriggersTotal.WithLabelValues(string(trigger), status).Inc()
	}()

	result = &RouteResult{Trigger: trigger, Event: event}
	switch trigger {
	case enums.TRIGGER_DATA_RECEIVED:
		received, err := common.ParseFeeDistributionDataReceived(event)
		if err != nil {
			return nil, err
		}
		if !received.IsBridgingCompleted {
			logger.Info(constants.LOG_MESSAGE_TRIGGER_ROUTED, "action", "none", "chains_received", received.NumberOfChainsReceivedData)
			result.Result = common.NewNoopResult(MESSAGE_BRIDGING_NOT_COMPLETE)
			return result, nil
		}
		fallthrough
	case enums.TRIGGER_BRIDGED_GMX_RECEIVED:
		logger.Info(constants.LOG_MESSAGE_TRIGGER_ROUTED, "action", "compute")
		computeResult, err := ComputeDistribution(ctx, router.configuration, router.computeEngines, options.Compute)
		if err != nil {
			return nil, err
		}
		result.Compute = computeResult
		result.Result = computeResult.Result
	case enums.TRIGGER_DISTRIBUTION_COMPLETED:
		completed, err := common.ParseFeeDistributionCompleted(event)
		if err != nil {
			return nil, err
		}
		logger.Info(constants.LOG_MESSAGE_TRIGGER_ROUTED, "action", "payout",
			"wnt_for_referral_rewards", completed.WntForReferralRewards,
			"es_gmx_for_referral_rewards", completed.EsGmxForReferralRewards)
		payoutResult, err := GeneratePayouts(ctx, router.configuration, router.payoutEngines, options.Payout)
		if err != nil {
			return nil, err
		}
		result.Payout = payoutResult
		result.Result = payoutResult.Result
	default:
		logger.Debug(constants.LOG_MESSAGE_TRIGGER_ROUTED, "action", "none", "event", event.EventName)
		result.Result = common.NewNoopResult(MESSAGE_NO_RELEVANT_EVENT)
	}
	return result, nil
}
