package core

import (
	"github.com/tez-capital/refpay/common"
	"github.com/tez-capital/refpay/core/compute"
	"github.com/tez-capital/refpay/core/payout"
)

type PipelineContext interface {
	*compute.ComputeContext | *payout.PayoutContext
}

type PipelineOptions interface {
	*common.ComputeOptions | *common.PayoutOptions
}

type Stage[T PipelineContext, U PipelineOptions] func(ctx T, options U) (T, error)

type WrappedStageResult[T PipelineContext, U PipelineOptions] struct {
	Ctx T
	Err error
}

type WrappedStage[T PipelineContext, U PipelineOptions] func(previous WrappedStageResult[T, U], options U) WrappedStageResult[T, U]

func (result WrappedStageResult[T, U]) ExecuteStage(options U, stage Stage[T, U]) WrappedStageResult[T, U] {
	return WrapStage(stage)(result, options)
}

func (result WrappedStageResult[T, U]) ExecuteStages(options U, stages ...Stage[T, U]) WrappedStageResult[T, U] {
	for _, stage := range stages {
		result = WrapStage(stage)(result, options)
	}
	return result
}

// WrapStage skips the stage once a previous one failed
func WrapStage[T PipelineContext, U PipelineOptions](stage Stage[T, U]) WrappedStage[T, U] {
	return func(previous WrappedStageResult[T, U], options U) WrappedStageResult[T, U] {
		if previous.Err != nil {
			return previous
		}
		ctx, err := stage(previous.Ctx, options)
		return WrappedStageResult[T, U]{
			Ctx: ctx,
			Err: err,
		}
	}
}

func WrapContext[T PipelineContext, U PipelineOptions](ctx T) WrappedStageResult[T, U] {
	return WrappedStageResult[T, U]{
		Ctx: ctx,
	}
}

func (result WrappedStageResult[T, U]) Unwrap() (T, error) {
	return result.Ctx, result.Err
}
