package registration

import (
	"errors"
	"os"
	"sync"

	"go.convislabs.com/registration/core"
	"go.convislabs.com/registration/db"
	"go.convislabs.com/registration/event"
	_ "go.convislabs.com/registration/service"
	"go.uber.org/zap"
)

var (
	activeApp App
)

type App interface {
	Init() error
	Start() error
	Stop() error
	Context() core.Context
	Serve() error
}

type AppImpl struct {
	ctx   core.Context
	ctxMu sync.RWMutex
}

func (p *AppImpl) Init() error {
	ctx := p.Context()

	ctx.Logger().Info("Initializing registration app")

	_, ctxOpts := db.NewDatabase(ctx)

	opts, err := p.initServices(ctx)
	if err != nil {
		return err
	}
	ctxOpts = append(ctxOpts, opts...)

	ctxOpts = append(ctxOpts, core.ContextWithEvents(core.GetEvents()...))

	ctx, err = core.NewContext(ctx.Config(), ctx.Logger(), ctxOpts...)
	if err != nil {
		ctx.Logger().Error("Error creating context", zap.Error(err))
		return err
	}

	p.SetContext(ctx)

	return nil
}

func (p *AppImpl) Start() error {
	ctx := p.Context()
	ctx.Logger().Info("Starting registration app")

	if err := p.startStartupFuncs(ctx); err != nil {
		return err
	}

	if err := p.startHTTP(ctx); err != nil {
		return err
	}

	if err := event.FireBootCompleteEvent(ctx); err != nil {
		ctx.Logger().Error("Error firing boot complete event", zap.Error(err))
		return err
	}

	return nil
}

func (p *AppImpl) Stop() error {
	ctx := p.Context()
	ctx.Logger().Info("Stopping registration app")

	return p.runExitFuncs(ctx)
}

func (p *AppImpl) Serve() error {
	ctx := p.Context()
	ctx.Logger().Info("Serving registration app")

	httpSvc := ctx.Service(core.HTTP_SERVICE)

	if httpSvc == nil {
		ctx.Logger().Error("HTTP service not found")
		return errors.New("http service not found")
	}

	return httpSvc.(core.HTTPService).Serve()
}

func (p *AppImpl) initServices(ctx core.Context) (ctxOpts []core.ContextBuilderOption, err error) {
	svcs := core.GetServices()

	for _, svcInfo := range svcs {
		svc, opts, err := svcInfo.Factory()
		if err != nil {
			ctx.Logger().Error("Error creating service", zap.String("service", svcInfo.ID), zap.Error(err))
			return nil, err
		}

		if opts != nil {
			ctxOpts = append(ctxOpts, opts...)
		}

		ctxOpts = append(ctxOpts, core.ContextWithService(svcInfo.ID, svc))
	}

	return ctxOpts, nil
}

func (p *AppImpl) startStartupFuncs(ctx core.Context) error {
	for _, startupFunc := range ctx.StartupFuncs() {
		if err := startupFunc(ctx); err != nil {
			ctx.Logger().Error("Error starting registration app", zap.Error(err))
			return err
		}
	}

	return nil
}

func (p *AppImpl) startHTTP(ctx core.Context) error {
	httpSvc := ctx.Service(core.HTTP_SERVICE)

	if httpSvc == nil {
		ctx.Logger().Error("HTTP service not found")
		return errors.New("http service not found")
	}

	return httpSvc.(core.HTTPService).Init()
}

func (p *AppImpl) runExitFuncs(ctx core.Context) error {
	for _, exitFunc := range ctx.ExitFuncs() {
		if err := exitFunc(ctx); err != nil {
			ctx.Logger().Error("Error stopping registration app", zap.Error(err))
		}
	}

	return nil
}

func NewApp(ctx core.Context) *AppImpl {
	return &AppImpl{
		ctx: ctx,
	}
}

func (p *AppImpl) Context() core.Context {
	p.ctxMu.RLock()
	defer p.ctxMu.RUnlock()
	return p.ctx
}

func (p *AppImpl) SetContext(ctx core.Context) {
	p.ctxMu.Lock()
	defer p.ctxMu.Unlock()
	p.ctx = ctx
}

func NewActiveApp(ctx core.Context) {
	activeApp = NewApp(ctx)
}

func Start() error {
	return activeApp.Start()
}

func Init() error {
	return activeApp.Init()
}

func Stop() error {
	return activeApp.Stop()
}

func Serve() error {
	return activeApp.Serve()
}

func Context() core.Context {
	return activeApp.Context()
}

func ActiveApp() App {
	return activeApp
}

func Shutdown(activeApp App, logger *zap.Logger) {
	ctx := activeApp.Context()

	if logger == nil {
		logger = ctx.Logger().Logger
	}

	ctx.Cancel()

	<-ctx.Done()

	if err := activeApp.Stop(); err != nil {
		logger.Error("Failed to stop registration app", zap.Error(err))
		ctx.SetExitCode(core.ExitCodeFailedQuit)
	}

	os.Exit(ctx.ExitCode())
}
