//go:build wasip1

package abi

import (
	"fmt"
	"sync"
	"unsafe"
)

// DefaultMaxTotalAllocations is the default cap on memory the SDK keeps
// pinned in linear memory.
const DefaultMaxTotalAllocations = 100 * 1024 * 1024 // 100 MB

// Option configures the memory manager.
type Option func(*memoryConfig)

type memoryConfig struct {
	maxTotal int
}

// WithMaxTotalAllocations caps the bytes that may be allocated at once.
// Non-positive limits are ignored.
func WithMaxTotalAllocations(limit int) Option {
	return func(c *memoryConfig) {
		if limit > 0 {
			c.maxTotal = limit
		}
	}
}

// memoryManager pins every buffer handed across the boundary so the Go GC
// cannot collect it before the other side is done with it.
var memoryManager = struct {
	sync.Mutex
	ptrs           map[uint32][]byte
	totalAllocated int
	cfg            memoryConfig
}{
	ptrs: make(map[uint32][]byte),
	cfg:  memoryConfig{maxTotal: DefaultMaxTotalAllocations},
}

// Configure applies opts to the memory manager.
func Configure(opts ...Option) {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	for _, opt := range opts {
		opt(&memoryManager.cfg)
	}
}

// Stats returns the number of tracked allocations and their total size.
func Stats() (count, totalBytes int) {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	return len(memoryManager.ptrs), memoryManager.totalAllocated
}

// allocate reserves size bytes and returns their address. The host calls it
// to place host function results in guest memory.
// Panics if the allocation would exceed the configured limit.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	memoryManager.Lock()
	defer memoryManager.Unlock()

	limit := memoryManager.cfg.maxTotal
	if memoryManager.totalAllocated+int(size) > limit {
		panic(fmt.Sprintf("abi: memory allocation limit exceeded (requested: %d bytes, current: %d bytes, limit: %d bytes)",
			size, memoryManager.totalAllocated, limit))
	}

	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))

	memoryManager.ptrs[ptr] = buf
	memoryManager.totalAllocated += int(size)

	return ptr
}

// deallocate unpins the buffer at ptr. Untracked pointers are ignored and
// the accounting uses the tracked length, not size.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, size uint32) {
	memoryManager.Lock()
	defer memoryManager.Unlock()

	stored, exists := memoryManager.ptrs[ptr]
	if !exists {
		return
	}
	delete(memoryManager.ptrs, ptr)
	memoryManager.totalAllocated -= len(stored)
	if memoryManager.totalAllocated < 0 {
		memoryManager.totalAllocated = 0
	}
}

// FreeAllTracked unpins every tracked buffer. The guest exports call it when
// a contract call finishes.
func FreeAllTracked() {
	memoryManager.Lock()
	defer memoryManager.Unlock()

	clear(memoryManager.ptrs)
	memoryManager.totalAllocated = 0
}

// PtrFromBytes copies data into a tracked buffer and returns it packed.
// Empty data packs to 0.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	size := uint32(len(data))
	ptr := allocate(size)
	copyToMemory(ptr, data)
	return PackPtrLen(ptr, size)
}

// BytesFromPtr copies the buffer described by packed out of linear memory.
func BytesFromPtr(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	return readFromMemory(ptr, length)
}

// DeallocatePacked unpins the buffer described by packed.
func DeallocatePacked(packed uint64) {
	ptr, length := UnpackPtrLen(packed)
	if ptr != 0 && length > 0 {
		deallocate(ptr, length)
	}
}

func copyToMemory(ptr uint32, data []byte) {
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	dest := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), len(data))
	copy(dest, data)
}

func readFromMemory(ptr uint32, length uint32) []byte {
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
	data := make([]byte, length)
	copy(data, src)
	return data
}
