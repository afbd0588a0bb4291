package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vk/varexport/internal/config"
	"github.com/vk/varexport/internal/ctxlog"
	"github.com/vk/varexport/varexport"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *varexport.Registry
	// modules own the instances exported into the registry, which only holds
	// them weakly.
	modules []Module
}

// NewApp is the constructor for the main application. It returns a fully
// populated App with its own isolated logger and registry. Dumps go to outW,
// logs to logW.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader, modules ...Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.ConfigPaths...)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded.", "namespaces", len(model.Namespaces))

	reg := varexport.NewRegistry(varexport.WithLogger(logger))
	if len(modules) == 0 {
		modules = coreModules()
	}
	if err := registerModules(ctx, reg, modules); err != nil {
		panic(fmt.Errorf("failed to register modules: %w", err))
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	populate(ctx, reg, model)
	if appConfig.StartTime || model.StartTime {
		reg.SetStartTime(time.Now())
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		registry: reg,
		modules:  modules,
	}
}

// registerModules runs every module's registration concurrently.
func registerModules(ctx context.Context, reg *varexport.Registry, modules []Module) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, mod := range modules {
		g.Go(func() error {
			mctx := ctxlog.With(gctx, "module", mod.Name())
			if err := mod.Register(mctx, reg); err != nil {
				return fmt.Errorf("module %s: %w", mod.Name(), err)
			}
			ctxlog.FromContext(mctx).Debug("Module registered.")
			return nil
		})
	}
	return g.Wait()
}

// populate exports the configured variables. Parents are linked by name, so
// a configured namespace can attach to one created by a module.
func populate(ctx context.Context, reg *varexport.Registry, model *config.Model) {
	logger := ctxlog.FromContext(ctx)
	for _, def := range model.SortedNamespaces() {
		ns := reg.ForNamespace(def.Name)
		switch {
		case def.Parent != "":
			ns.SetParent(reg.ForNamespace(def.Parent))
		case def.IncludeInGlobal:
			ns.IncludeInGlobal()
		}
		for _, v := range def.Variables {
			ns.ExportVariable(varexport.NewManaged(varexport.ManagedConfig[any]{
				Name:  v.Name,
				Doc:   v.Doc,
				Value: v.Value,
			}))
		}
		logger.Debug("Configured namespace populated.", "namespace", def.Name, "variables", len(def.Variables))
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *varexport.Registry {
	return a.registry
}
