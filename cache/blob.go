// SPDX-License-Identifier: MIT

package cache

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how blob bodies are compressed.
type Compression uint16

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZstd uses zstd (better ratio); the default.
	CompressionZstd Compression = 2
)

// ParseCompression maps "none", "lz4" and "zstd" to a Compression.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd", "":
		return CompressionZstd, nil
	}

	return 0, fmt.Errorf("cache: unknown compression %q", s)
}

// String implements fmt.Stringer.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	}

	return fmt.Sprintf("compression(%d)", uint16(c))
}

const (
	blobMagic   = "PRCL"
	blobVersion = uint16(1)

	// fixed header bytes around the variable-length kind
	blobPrefixLen = 4 + 2 + 2 + 2
	blobSuffixLen = 8 + 4

	// maxBlobRaw bounds the declared payload size before allocating.
	maxBlobRaw = 1 << 31
)

// zstd encoders and decoders are safe for concurrent EncodeAll/DecodeAll.
var (
	zstdOnce sync.Once
	zstdEnc  *zstd.Encoder
	zstdDec  *zstd.Decoder
	zstdErr  error
)

func zstdCodec() (*zstd.Encoder, *zstd.Decoder, error) {
	zstdOnce.Do(func() {
		zstdEnc, zstdErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if zstdErr != nil {
			return
		}
		zstdDec, zstdErr = zstd.NewReader(nil)
	})

	return zstdEnc, zstdDec, zstdErr
}

// encodeBlob frames payload under kind.
func encodeBlob(kind string, payload []byte, comp Compression) ([]byte, error) {
	if len(kind) > 0xffff {
		return nil, fmt.Errorf("kind too long: %d", len(kind))
	}

	var body []byte
	switch comp {
	case CompressionNone:
		body = payload
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		if n == 0 && len(payload) > 0 {
			// Incompressible input.
			comp, body = CompressionNone, payload
		} else {
			body = buf[:n]
		}
	case CompressionZstd:
		enc, _, err := zstdCodec()
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		body = enc.EncodeAll(payload, nil)
	default:
		return nil, fmt.Errorf("unknown compression %d", comp)
	}

	out := make([]byte, 0, blobPrefixLen+len(kind)+blobSuffixLen+len(body))
	out = append(out, blobMagic...)
	out = binary.LittleEndian.AppendUint16(out, blobVersion)
	out = binary.LittleEndian.AppendUint16(out, uint16(comp))
	out = binary.LittleEndian.AppendUint16(out, uint16(len(kind)))
	out = append(out, kind...)
	out = binary.LittleEndian.AppendUint64(out, uint64(len(payload)))
	out = binary.LittleEndian.AppendUint32(out, crc32.ChecksumIEEE(payload))
	out = append(out, body...)

	return out, nil
}

// decodeBlob validates the frame and returns the payload. Every failure wraps
// ErrCorrupt.
func decodeBlob(kind string, blob []byte) ([]byte, error) {
	if len(blob) < blobPrefixLen || string(blob[:4]) != blobMagic {
		return nil, fmt.Errorf("bad magic: %w", ErrCorrupt)
	}
	if v := binary.LittleEndian.Uint16(blob[4:]); v != blobVersion {
		return nil, fmt.Errorf("version %d: %w", v, ErrCorrupt)
	}
	comp := Compression(binary.LittleEndian.Uint16(blob[6:]))
	kindLen := int(binary.LittleEndian.Uint16(blob[8:]))
	off := blobPrefixLen
	if len(blob) < off+kindLen+blobSuffixLen {
		return nil, fmt.Errorf("truncated header: %w", ErrCorrupt)
	}
	if got := string(blob[off : off+kindLen]); got != kind {
		return nil, fmt.Errorf("kind %q, want %q: %w", got, kind, ErrCorrupt)
	}
	off += kindLen
	rawLen := binary.LittleEndian.Uint64(blob[off:])
	sum := binary.LittleEndian.Uint32(blob[off+8:])
	body := blob[off+blobSuffixLen:]
	if rawLen > maxBlobRaw {
		return nil, fmt.Errorf("declared size %d: %w", rawLen, ErrCorrupt)
	}

	var payload []byte
	switch comp {
	case CompressionNone:
		payload = body
	case CompressionLZ4:
		payload = make([]byte, rawLen)
		n, err := lz4.UncompressBlock(body, payload)
		if err != nil {
			return nil, fmt.Errorf("lz4: %v: %w", err, ErrCorrupt)
		}
		payload = payload[:n]
	case CompressionZstd:
		_, dec, err := zstdCodec()
		if err != nil {
			return nil, fmt.Errorf("zstd: %v: %w", err, ErrCorrupt)
		}
		if payload, err = dec.DecodeAll(body, make([]byte, 0, min(rawLen, 1<<24))); err != nil {
			return nil, fmt.Errorf("zstd: %v: %w", err, ErrCorrupt)
		}
	default:
		return nil, fmt.Errorf("compression %d: %w", comp, ErrCorrupt)
	}

	if uint64(len(payload)) != rawLen {
		return nil, fmt.Errorf("size %d, want %d: %w", len(payload), rawLen, ErrCorrupt)
	}
	if crc32.ChecksumIEEE(payload) != sum {
		return nil, fmt.Errorf("checksum mismatch: %w", ErrCorrupt)
	}

	return payload, nil
}
