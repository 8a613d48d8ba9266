// Package mem provides memory allocation utilities.
package mem

import (
	"unsafe"
)

// Alignment is the byte alignment required for AVX-512 (64 bytes).
const Alignment = 64

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size == 0 {
		return nil
	}

	// Allocate size + alignment to ensure we can find an aligned offset
	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	// Calculate the offset to the first aligned byte
	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size)]
}

// AllocAlignedComplex64 allocates a complex64 slice of the given size with
// 64-byte alignment. The returned slice is guaranteed to start at a memory
// address divisible by 64.
func AllocAlignedComplex64(size int) []complex64 {
	if size == 0 {
		return nil
	}

	byteSize := size * 8
	byteSlice := AllocAligned(byteSize)

	// Convert []byte to []complex64.
	// This is safe because AllocAligned guarantees 64-byte alignment,
	// which is also 8-byte aligned (required for complex64).
	ptr := unsafe.Pointer(&byteSlice[0])         //nolint:gosec // unsafe is required for memory alignment
	return unsafe.Slice((*complex64)(ptr), size) //nolint:gosec // unsafe is required for memory alignment
}

// AllocAlignedInt32 allocates an int32 slice of the given size with 64-byte alignment.
func AllocAlignedInt32(size int) []int32 {
	if size == 0 {
		return nil
	}

	byteSize := size * 4
	byteSlice := AllocAligned(byteSize)

	ptr := unsafe.Pointer(&byteSlice[0])     //nolint:gosec // unsafe is required for memory alignment
	return unsafe.Slice((*int32)(ptr), size) //nolint:gosec // unsafe is required for memory alignment
}

// AllocAlignedFloat32 allocates a float32 slice of the given size with 64-byte alignment.
func AllocAlignedFloat32(size int) []float32 {
	if size == 0 {
		return nil
	}

	byteSize := size * 4
	byteSlice := AllocAligned(byteSize)

	ptr := unsafe.Pointer(&byteSlice[0])       //nolint:gosec // unsafe is required for memory alignment
	return unsafe.Slice((*float32)(ptr), size) //nolint:gosec // unsafe is required for memory alignment
}
