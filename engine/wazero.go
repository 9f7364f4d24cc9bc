package engine

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	wasi "github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	h3bridge "github.com/geowire/h3-bridge"
	"github.com/geowire/h3-bridge/errors"
)

// Exports every engine build must provide besides its API surface.
const (
	exportMalloc     = "malloc"
	exportCalloc     = "calloc"
	exportFree       = "free"
	exportTempRet0   = "getTempRet0"
	exportInitialize = "_initialize"
)

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum engine memory in pages (64KB each).
	// 0 means wazero's default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// ModuleName overrides the instantiated module's name. Useful when one
	// wazero runtime hosts several engines in tests.
	ModuleName string
}

// WazeroEngine implements h3bridge.Engine using the wazero runtime.
type WazeroEngine struct {
	runtime  wazero.Runtime
	module   api.Module
	mem      h3bridge.Memory
	alloc    h3bridge.Allocator
	tempRet0 api.Function
	fns      map[string]api.Function
}

// New compiles and instantiates an engine build.
func New(ctx context.Context, wasmBytes []byte) (*WazeroEngine, error) {
	return NewWithConfig(ctx, wasmBytes, nil)
}

// NewWithConfig compiles and instantiates an engine build with custom
// configuration. The module is expected to be a standalone (WASI) build;
// its _initialize export, when present, runs before New returns.
func NewWithConfig(ctx context.Context, wasmBytes []byte, cfg *Config) (*WazeroEngine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	e := &WazeroEngine{
		runtime: runtime,
		fns:     make(map[string]api.Function),
	}
	if err := e.instantiate(ctx, wasmBytes, cfg); err != nil {
		_ = runtime.Close(ctx)
		return nil, err
	}
	return e, nil
}

func (e *WazeroEngine) instantiate(ctx context.Context, wasmBytes []byte, cfg *Config) error {
	if _, err := wasi.Instantiate(ctx, e.runtime); err != nil {
		return errors.Load("instantiate WASI", err)
	}

	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return errors.Load("compile engine module", err)
	}

	moduleCfg := wazero.NewModuleConfig().WithStartFunctions()
	if cfg != nil && cfg.ModuleName != "" {
		moduleCfg = moduleCfg.WithName(cfg.ModuleName)
	}

	module, err := e.runtime.InstantiateModule(ctx, compiled, moduleCfg)
	if err != nil {
		return errors.Load("instantiate engine module", err)
	}
	e.module = module

	// Reactor-style builds export _initialize instead of _start.
	if initFn := module.ExportedFunction(exportInitialize); initFn != nil {
		if _, err := initFn.Call(ctx); err != nil {
			return errors.Load("run engine _initialize", err)
		}
	}

	e.mem = wrapMemory(module.Memory())
	if e.mem == nil {
		return errors.MissingExport("memory")
	}

	malloc := module.ExportedFunction(exportMalloc)
	calloc := module.ExportedFunction(exportCalloc)
	free := module.ExportedFunction(exportFree)
	for name, fn := range map[string]api.Function{
		exportMalloc: malloc,
		exportCalloc: calloc,
		exportFree:   free,
	} {
		if fn == nil {
			return errors.MissingExport(name)
		}
	}
	e.alloc = &guestAllocator{malloc: malloc, calloc: calloc, free: free}

	e.tempRet0 = module.ExportedFunction(exportTempRet0)
	if e.tempRet0 == nil {
		return errors.MissingExport(exportTempRet0)
	}

	Logger().Debug("engine module instantiated",
		zap.String("module", module.Name()),
		zap.Uint32("memory_pages", module.Memory().Size()/65536))

	return nil
}

// Call invokes an engine export with raw stack values.
func (e *WazeroEngine) Call(name string, args ...uint64) (uint64, error) {
	fn, ok := e.fns[name]
	if !ok {
		fn = e.module.ExportedFunction(name)
		if fn == nil {
			return 0, errors.MissingExport(name)
		}
		e.fns[name] = fn
	}

	results, err := fn.Call(context.Background(), args...)
	if err != nil {
		return 0, errors.EngineCall(name, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0], nil
}

// HighWord reads the high 32 bits of the most recent 64-bit return from
// the engine's side-channel slot. It must be called before the next Call.
func (e *WazeroEngine) HighWord() (uint32, error) {
	results, err := e.tempRet0.Call(context.Background())
	if err != nil {
		return 0, errors.EngineCall(exportTempRet0, err)
	}
	return uint32(results[0]), nil
}

func (e *WazeroEngine) Memory() h3bridge.Memory {
	return e.mem
}

func (e *WazeroEngine) Allocator() h3bridge.Allocator {
	return e.alloc
}

// Close releases the wazero runtime and the instantiated module.
func (e *WazeroEngine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// guestAllocator implements h3bridge.Allocator over the engine's own heap
// exports, so blocks carry the alignment the engine's structs need.
type guestAllocator struct {
	malloc api.Function
	calloc api.Function
	free   api.Function
}

func (a *guestAllocator) Alloc(size uint32) (uint32, error) {
	results, err := a.malloc.Call(context.Background(), uint64(size))
	if err != nil {
		return 0, errors.EngineCall(exportMalloc, err)
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return 0, errors.AllocationFailed(size)
	}
	return ptr, nil
}

func (a *guestAllocator) AllocZeroed(count, stride uint32) (uint32, error) {
	results, err := a.calloc.Call(context.Background(), uint64(count), uint64(stride))
	if err != nil {
		return 0, errors.EngineCall(exportCalloc, err)
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return 0, errors.AllocationFailed(count * stride)
	}
	return ptr, nil
}

func (a *guestAllocator) Free(ptr uint32) {
	if ptr == 0 {
		return
	}
	if _, err := a.free.Call(context.Background(), uint64(ptr)); err != nil {
		// A failing free is unrecoverable from the host side; the engine
		// heap is already inconsistent. Surface it in logs and move on.
		Logger().Warn("engine free failed", zap.Uint32("ptr", ptr), zap.Error(err))
	}
}
