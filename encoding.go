package termviz

import (
	"encoding/base64"
	"sync"
)

// ChunkSize is the number of base64 characters carried by one graphics
// escape sequence chunk.
const ChunkSize = 4096

// base64BufPool reuses encode buffers across render calls.
var base64BufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, ChunkSize*2)
		return &buf
	},
}

// Base64Encode encodes src with a pooled scratch buffer.
func Base64Encode(src []byte) string {
	bufPtr := base64BufPool.Get().(*[]byte)
	defer base64BufPool.Put(bufPtr)

	n := base64.StdEncoding.EncodedLen(len(src))
	if cap(*bufPtr) < n {
		*bufPtr = make([]byte, n)
	} else {
		*bufPtr = (*bufPtr)[:n]
	}
	base64.StdEncoding.Encode(*bufPtr, src)
	return string(*bufPtr)
}

// SplitChunks splits an already-encoded payload into chunks of at most
// chunkSize characters. base64 text split at arbitrary offsets decodes
// per-chunk only when the offset is a multiple of four; callers that decode
// chunk-by-chunk must keep chunkSize aligned (ChunkSize is).
func SplitChunks(payload string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = ChunkSize
	}
	chunks := make([]string, 0, (len(payload)+chunkSize-1)/chunkSize)
	for i := 0; i < len(payload); i += chunkSize {
		chunks = append(chunks, payload[i:min(i+chunkSize, len(payload))])
	}
	return chunks
}
