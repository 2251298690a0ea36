package xcor

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
	"gotest.tools/v3/assert"
)

func writeDummyTrace(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trace")
	assert.NilError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadTrace_PlainText(t *testing.T) {
	path := writeDummyTrace(t, "0\n3\n5\n")

	arrivals, err := LoadTrace(path)

	assert.NilError(t, err)
	assert.DeepEqual(t, arrivals, []int{0, 3, 5})
}

func TestLoadTrace_MissingFile(t *testing.T) {
	_, err := LoadTrace(filepath.Join(t.TempDir(), "no-such-trace"))

	assert.Assert(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadTrace_StopsAtBlankLine(t *testing.T) {
	arrivals, err := ReadTrace(strings.NewReader("1\n2\n\n99\n"))

	assert.NilError(t, err)
	assert.DeepEqual(t, arrivals, []int{1, 2})
}

func TestReadTrace_EmptyInputYieldsEmptyTrace(t *testing.T) {
	arrivals, err := ReadTrace(strings.NewReader(""))

	assert.NilError(t, err)
	assert.DeepEqual(t, arrivals, []int{})
}

func TestReadTrace_MissingFinalNewline(t *testing.T) {
	arrivals, err := ReadTrace(strings.NewReader("4\n7"))

	assert.NilError(t, err)
	assert.DeepEqual(t, arrivals, []int{4, 7})
}

func TestReadTrace_RejectsNonCanonicalIntegers(t *testing.T) {
	for _, line := range []string{
		"012",
		"+5",
		"-3",
		"1e3",
		"4 ",
		" 4",
		"12abc",
		"9999999999999999999999",
	} {
		_, err := ReadTrace(strings.NewReader(line + "\n"))

		assert.ErrorIs(t, err, ErrInvalidInteger)
		assert.ErrorContains(t, err, "line 1")
	}
}

func TestReadTrace_ReportsFailingLineNumber(t *testing.T) {
	_, err := ReadTrace(strings.NewReader("1\n2\nbogus\n"))

	assert.ErrorIs(t, err, ErrInvalidInteger)
	assert.ErrorContains(t, err, "line 3")
}

func TestReadTrace_Gzip(t *testing.T) {
	compressed := &bytes.Buffer{}
	zw := gzip.NewWriter(compressed)
	_, err := zw.Write([]byte("2\n4\n6\n"))
	assert.NilError(t, err)
	assert.NilError(t, zw.Close())

	arrivals, err := ReadTrace(bytes.NewReader(compressed.Bytes()))

	assert.NilError(t, err)
	assert.DeepEqual(t, arrivals, []int{2, 4, 6})
}

func TestReadTrace_XZ(t *testing.T) {
	compressed := &bytes.Buffer{}
	xw, err := xz.NewWriter(compressed)
	assert.NilError(t, err)
	_, err = xw.Write([]byte("2\n4\n6\n"))
	assert.NilError(t, err)
	assert.NilError(t, xw.Close())

	arrivals, err := ReadTrace(bytes.NewReader(compressed.Bytes()))

	assert.NilError(t, err)
	assert.DeepEqual(t, arrivals, []int{2, 4, 6})
}

// dummyBzip2Trace is "2\n4\n6\n" compressed with bzip2. The stdlib only
// decodes the format, so the fixture is embedded pre-compressed.
var dummyBzip2Trace = []byte{
	0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0x68, 0xf7,
	0x0c, 0xab, 0x00, 0x00, 0x01, 0xc8, 0x00, 0x00, 0x10, 0x15, 0x00, 0x20,
	0x00, 0x21, 0x9a, 0x68, 0x33, 0x4d, 0x1c, 0xb7, 0x8b, 0xb9, 0x22, 0x9c,
	0x28, 0x48, 0x34, 0x7b, 0x86, 0x55, 0x80,
}

func TestReadTrace_Bzip2(t *testing.T) {
	arrivals, err := ReadTrace(bytes.NewReader(dummyBzip2Trace))

	assert.NilError(t, err)
	assert.DeepEqual(t, arrivals, []int{2, 4, 6})
}

func TestCarefulAtoi(t *testing.T) {
	value, err := carefulAtoi("0")
	assert.NilError(t, err)
	assert.Equal(t, value, 0)

	value, err = carefulAtoi("1048576")
	assert.NilError(t, err)
	assert.Equal(t, value, 1048576)

	_, err = carefulAtoi("00")
	assert.ErrorIs(t, err, ErrInvalidInteger)
}

func TestParseBinDuration(t *testing.T) {
	value, err := ParseBinDuration("100")
	assert.NilError(t, err)
	assert.Equal(t, value, 100)

	_, err = ParseBinDuration("0")
	assert.ErrorContains(t, err, "positive")

	_, err = ParseBinDuration("-5")
	assert.ErrorIs(t, err, ErrInvalidInteger)

	_, err = ParseBinDuration("08")
	assert.ErrorIs(t, err, ErrInvalidInteger)

	_, err = ParseBinDuration("fast")
	assert.ErrorIs(t, err, ErrInvalidInteger)
}
