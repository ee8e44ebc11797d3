package hostvm

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// packPointerSize and splitPointerSize follow the Substrate/gossamer
// convention of returning a (ptr, size) pair packed into a single i64:
// the pointer in the low 32 bits, the size in the high 32 bits.
func packPointerSize(ptr, size uint32) uint64 {
	return uint64(ptr) | uint64(size)<<32
}

func splitPointerSize(packed uint64) (ptr, size uint32) {
	return uint32(packed), uint32(packed >> 32)
}

// readMemory copies size bytes out of the module's linear memory at ptr.
func readMemory(mod api.Module, ptr, size uint32) ([]byte, error) {
	buf, ok := mod.Memory().Read(ptr, size)
	if !ok {
		return nil, fmt.Errorf("hostvm: memory read out of range (ptr=%d size=%d)", ptr, size)
	}
	return append([]byte{}, buf...), nil
}

// readPointerSize reads the bytes referenced by a packed (ptr, size) i64.
func readPointerSize(mod api.Module, packed uint64) ([]byte, error) {
	ptr, size := splitPointerSize(packed)
	return readMemory(mod, ptr, size)
}

// writeToGuest allocates guest memory via the runtime's own allocator
// export and writes data into it, returning a packed (ptr, size) i64
// ready to be returned from a host function.
func writeToGuest(ctx context.Context, mod api.Module, data []byte) (uint64, error) {
	if len(data) == 0 {
		return packPointerSize(0, 0), nil
	}
	alloc := mod.ExportedFunction("ext_allocator_malloc_version_1")
	if alloc == nil {
		return 0, fmt.Errorf("hostvm: guest does not export ext_allocator_malloc_version_1")
	}
	results, err := alloc.Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("hostvm: guest allocation failed: %w", err)
	}
	ptr := api.DecodeU32(results[0])
	if ok := mod.Memory().Write(ptr, data); !ok {
		return 0, fmt.Errorf("hostvm: guest memory write out of range (ptr=%d size=%d)", ptr, len(data))
	}
	return packPointerSize(ptr, uint32(len(data))), nil
}

// encodeOption packs a byte slice presence flag the way SCALE would
// (0x00 absent, 0x01 || bytes present) for host functions whose ABI
// returns an `Option<Bytes>` inline rather than as a nested pointer.
func encodeOption(present bool, value []byte) []byte {
	if !present {
		return []byte{0}
	}
	return append([]byte{1}, value...)
}
