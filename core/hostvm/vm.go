package hostvm

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"golang.org/x/crypto/blake2b"
)

// prototypeCacheSize bounds the number of compiled runtime modules kept
// resident, so repeated run_task calls against the same blob skip
// re-validating/re-compiling it.
const prototypeCacheSize = 8

var (
	prototypeCache     *lru.Cache
	prototypeCacheOnce sync.Once
)

func cache() *lru.Cache {
	prototypeCacheOnce.Do(func() {
		c, err := lru.New(prototypeCacheSize)
		if err != nil {
			panic(fmt.Sprintf("hostvm: building prototype cache: %v", err))
		}
		prototypeCache = c
	})
	return prototypeCache
}

// Prototype is a compiled, not-yet-instantiated runtime module, shared
// read-only across the calls of a task and cached across tasks that reuse
// the same blob.
type Prototype struct {
	runtime                wazero.Runtime
	compiled               wazero.CompiledModule
	allowUnresolvedImports bool
}

// NewPrototype compiles code, reusing a cached compilation keyed by the
// blob's blake2-256 hash when available.
func NewPrototype(ctx context.Context, code []byte, allowUnresolvedImports bool) (*Prototype, error) {
	key := blake2b.Sum256(code)
	if v, ok := cache().Get(key); ok {
		return v.(*Prototype), nil
	}

	rt := wazero.NewRuntime(ctx)
	compiled, err := rt.CompileModule(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("hostvm: compiling runtime module: %w", err)
	}

	proto := &Prototype{runtime: rt, compiled: compiled, allowUnresolvedImports: allowUnresolvedImports}
	cache().Add(key, proto)
	return proto, nil
}

// Close releases the underlying wazero runtime. The prototype cache holds
// its own reference, so Close is only meaningful once a caller evicts a
// prototype from the cache entirely.
func (p *Prototype) Close(ctx context.Context) error {
	return p.runtime.Close(ctx)
}

// Run instantiates a fresh module from the prototype, links its host
// imports to dispatcher via the channel-based bridge, calls function with
// input, and pumps the bridge until the call completes. Both instantiated
// modules are closed on return, so the same prototype can serve the next
// call.
//
// The prototype's allowUnresolvedImports flag only changes the wording of
// an instantiation error: imports the "env" host module does not export
// are not stubbed, so a runtime that imports one fails to instantiate
// whether or not the flag is set.
func Run(ctx context.Context, proto *Prototype, dispatcher *Dispatcher, function string, input []byte) ([]byte, error) {
	b := newBridge()

	hostBuilder := proto.runtime.NewHostModuleBuilder("env").
		ExportMemory("memory", 23)
	registerHostFunctions(hostBuilder, b)

	envMod, err := hostBuilder.Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("hostvm: linking host module: %w", err)
	}
	defer envMod.Close(ctx)

	cfg := wazero.NewModuleConfig()
	mod, err := proto.runtime.InstantiateModule(ctx, proto.compiled, cfg)
	if err != nil {
		if proto.allowUnresolvedImports {
			return nil, fmt.Errorf("hostvm: instantiating with unresolved imports allowed: %w", err)
		}
		return nil, fmt.Errorf("hostvm: instantiating runtime module: %w", err)
	}
	defer mod.Close(ctx)

	go execGuest(ctx, mod, b, function, input)

	return RunLoop(ctx, b, dispatcher)
}

func execGuest(ctx context.Context, mod api.Module, b *bridge, function string, input []byte) {
	packedInput, err := writeToGuest(ctx, mod, input)
	if err != nil {
		b.finish(nil, err)
		return
	}
	ptr, size := splitPointerSize(packedInput)

	fn := mod.ExportedFunction(function)
	if fn == nil {
		b.finish(nil, fmt.Errorf("hostvm: runtime does not export %q", function))
		return
	}

	results, err := fn.Call(ctx, api.EncodeU32(ptr), api.EncodeU32(size))
	if err != nil {
		b.finish(nil, fmt.Errorf("hostvm: executing %s: %w", function, err))
		return
	}
	if len(results) == 0 {
		b.finish(nil, fmt.Errorf("hostvm: %s returned no value", function))
		return
	}

	output, err := readPointerSize(mod, results[0])
	if err != nil {
		b.finish(nil, err)
		return
	}
	b.finish(output, nil)
}
