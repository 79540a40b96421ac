package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"github.com/storefront-next/internal/logger"

	"go.uber.org/zap"
)

// Service 可托管的长生命周期服务
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 托管单个服务：启动、等待退出信号、限时优雅停止。
// 本应用只有一个 HTTP 服务，不做多服务编排。
type Runner struct {
	service Service
}

// NewRunner 创建服务运行器
func NewRunner(service Service) *Runner {
	return &Runner{service: service}
}

// RunWithOptions 运行服务并处理系统信号
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil || runner.service == nil {
		return errors.New("no service to run")
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 启动服务，在上下文取消或服务退出后限时停止
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || r.service == nil {
		return errors.New("no service to run")
	}
	if log == nil {
		log = logger.S()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("service_start", "service", r.service.Name())
		errCh <- r.service.Start(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case err := <-errCh:
		runErr = err
	}

	if stopTimeout <= 0 {
		stopTimeout = 10 * time.Second
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	if err := r.service.Stop(stopCtx); err != nil {
		log.Errorw("service_stop_failed", "service", r.service.Name(), "error", err)
	}
	log.Infow("service_exit", "service", r.service.Name())

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
