// Package pool recycles encode scratch buffers.
//
// Pools hold only buffers that have been Reset, so nothing written by one call is
// visible to another.
package pool

import (
	"sync"

	"github.com/arloliu/nanobit/buffer"
)

const (
	// EncodeBufferDefaultSize is the capacity of a fresh buffer from the encode pool.
	EncodeBufferDefaultSize = buffer.DefaultCapacity
	// EncodeBufferMaxThreshold is the largest capacity the encode pool keeps.
	EncodeBufferMaxThreshold = 1024 * 1024 // 1MiB
)

// WriteBufferPool is a sync.Pool of WriteBuffers.
//
// Buffers that grew beyond maxThreshold are dropped on Put instead of being kept,
// so one large encode does not pin its memory for the life of the process.
type WriteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewWriteBufferPool creates a pool whose new buffers have defaultSize capacity.
// A non-positive maxThreshold keeps buffers of any size.
func NewWriteBufferPool(defaultSize int, maxThreshold int) *WriteBufferPool {
	return &WriteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return buffer.NewWriteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (p *WriteBufferPool) Get() *buffer.WriteBuffer {
	wb, _ := p.pool.Get().(*buffer.WriteBuffer)
	return wb
}

// Put resets wb and returns it to the pool.
func (p *WriteBufferPool) Put(wb *buffer.WriteBuffer) {
	if wb == nil {
		return
	}

	if p.maxThreshold > 0 && wb.Cap() > p.maxThreshold {
		return
	}

	wb.Reset()
	p.pool.Put(wb)
}

var encodeDefaultPool = NewWriteBufferPool(EncodeBufferDefaultSize, EncodeBufferMaxThreshold)

// GetEncodeBuffer retrieves a buffer from the default encode pool.
func GetEncodeBuffer() *buffer.WriteBuffer {
	return encodeDefaultPool.Get()
}

// PutEncodeBuffer returns a buffer to the default encode pool.
func PutEncodeBuffer(wb *buffer.WriteBuffer) {
	encodeDefaultPool.Put(wb)
}
