// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a backup file is stored.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionLZ4
	CompressionZstd
)

// String returns the configuration name of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a configuration name.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd", "":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, lz4, or zstd)", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Compression) MarshalText() ([]byte, error) {
	if c > CompressionZstd {
		return nil, fmt.Errorf("unknown compression %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Compression) UnmarshalText(text []byte) error {
	parsed, err := ParseCompression(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// extension is appended to ".bin" in backup file names.
func (c Compression) extension() string {
	switch c {
	case CompressionLZ4:
		return ".lz4"
	case CompressionZstd:
		return ".zst"
	default:
		return ""
	}
}

// zstd.Encoder and zstd.Decoder are safe for concurrent use through
// EncodeAll and DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		panic("backup: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("backup: zstd decoder initialization failed: " + err.Error())
	}
}

func compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
	case CompressionLZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if err := writer.Apply(lz4.CompressionLevelOption(lz4.Level9)); err != nil {
			return nil, fmt.Errorf("lz4 options: %w", err)
		}
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported compression %s", compression)
	}
}

// decompress reverses compress. size is the expected uncompressed
// length; a mismatch is an error.
func decompress(compressed []byte, compression Compression, size int64) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative backup size %d", size)
	}
	var data []byte
	switch compression {
	case CompressionNone:
		data = compressed
	case CompressionZstd:
		var err error
		data, err = zstdDecoder.DecodeAll(compressed, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
	case CompressionLZ4:
		var err error
		data, err = io.ReadAll(lz4.NewReader(bytes.NewReader(compressed)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported compression %s", compression)
	}
	if int64(len(data)) != size {
		return nil, fmt.Errorf("%s backup decompressed to %d bytes, expected %d", compression, len(data), size)
	}
	return data, nil
}
