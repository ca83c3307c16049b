// Package buffers provides a software implementation of the buffer-pool
// collaborators consumed by the render manager.
//
// A Pool owns a bounded set of reference-counted Buffers backed by plain
// byte slices, suitable for CPU renderers and for exercising the manager
// in tests without a GPU. The Manager keeps pools in registration order,
// which the render manager uses as the priority among compatible backends.
//
// Buffers return to their pool's free list when their reference count
// reaches zero; Flush reclaims every idle buffer.
package buffers
