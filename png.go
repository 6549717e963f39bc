package termviz

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/adler32"
	"hash/crc32"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// maxStoredBlock is the deflate stored-block payload limit.
const maxStoredBlock = 65535

// EncodePNG builds a minimal PNG from a row-major RGBA buffer: 8-bit RGBA
// (color type 6), no interlacing, every scanline filtered with None, and an
// IDAT whose zlib stream uses only uncompressed deflate blocks. The output
// is a valid PNG any decoder accepts; it trades size for having no
// dependency on a compressor.
func EncodePNG(pixels []RGBA, width, height int) []byte {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("termviz: negative png dimensions %dx%d", width, height))
	}
	if len(pixels) != width*height {
		panic(fmt.Sprintf("termviz: pixel buffer length %d does not match %dx%d", len(pixels), width, height))
	}

	var buf bytes.Buffer
	buf.Write(pngSignature)

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(height))
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // color type: truecolor with alpha
	// compression, filter and interlace methods stay 0
	writePNGChunk(&buf, "IHDR", ihdr)

	writePNGChunk(&buf, "IDAT", zlibStored(scanlines(pixels, width, height)))
	writePNGChunk(&buf, "IEND", nil)
	return buf.Bytes()
}

// scanlines serializes the pixel rows, prefixing each with the None filter
// byte.
func scanlines(pixels []RGBA, width, height int) []byte {
	out := make([]byte, 0, height*(1+width*4))
	for y := 0; y < height; y++ {
		out = append(out, 0) // filter type None
		for x := 0; x < width; x++ {
			px := pixels[y*width+x]
			out = append(out, px.R, px.G, px.B, px.A)
		}
	}
	return out
}

// zlibStored wraps data in a zlib stream of uncompressed deflate blocks:
// 2-byte header, stored blocks of at most 65535 bytes (1-byte BFINAL/BTYPE
// header, little-endian length and its complement), and the big-endian
// Adler-32 of the raw data.
func zlibStored(data []byte) []byte {
	var out bytes.Buffer
	out.WriteByte(0x78)
	out.WriteByte(0x01)

	if len(data) == 0 {
		// A single final stored block of length zero.
		out.Write([]byte{0x01, 0x00, 0x00, 0xFF, 0xFF})
	}
	for i := 0; i < len(data); i += maxStoredBlock {
		end := min(i+maxStoredBlock, len(data))
		var final byte
		if end == len(data) {
			final = 0x01
		}
		n := uint16(end - i)
		out.WriteByte(final)
		out.WriteByte(byte(n))
		out.WriteByte(byte(n >> 8))
		out.WriteByte(byte(^n))
		out.WriteByte(byte(^n >> 8))
		out.Write(data[i:end])
	}

	var adler [4]byte
	binary.BigEndian.PutUint32(adler[:], adler32.Checksum(data))
	out.Write(adler[:])
	return out.Bytes()
}

// writePNGChunk frames one chunk: big-endian length, 4-byte type, data, and
// the CRC-32 (IEEE reflected polynomial) of type plus data.
func writePNGChunk(buf *bytes.Buffer, chunkType string, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	buf.Write(length[:])
	buf.WriteString(chunkType)
	buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(chunkType))
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	buf.Write(sum[:])
}
