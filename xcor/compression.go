package xcor

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// compressionType identifies how an input file is compressed.
type compressionType int

const (
	compressionNone compressionType = iota
	compressionGzip
	compressionBzip2
	compressionXZ
)

// Magic byte signatures for compression detection.
var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{'B', 'Z', 'h'}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// detectCompression sniffs the leading bytes of an input for a known
// compression signature.
func detectCompression(header []byte) compressionType {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return compressionGzip
	case bytes.HasPrefix(header, bzip2Magic):
		return compressionBzip2
	case bytes.HasPrefix(header, xzMagic):
		return compressionXZ
	default:
		return compressionNone
	}
}

// decompressedReader peeks at br and, when the input carries a known
// compression signature, wraps it in the matching decompressor.
// Uncompressed input passes through untouched. The xz signature is the
// longest at six bytes; shorter inputs are sniffed with what is there.
func decompressedReader(br *bufio.Reader) (io.Reader, error) {
	header, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "reading trace header")
	}

	switch detectCompression(header) {
	case compressionGzip:
		gzipReader, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "gzip-compressed trace")
		}
		return gzipReader, nil
	case compressionBzip2:
		return bzip2.NewReader(br), nil
	case compressionXZ:
		xzReader, err := xz.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "xz-compressed trace")
		}
		return xzReader, nil
	default:
		return br, nil
	}
}
