package xcor

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// LoadTrace opens path and reads it as a packet arrival trace. An open
// failure comes back as the *fs.PathError from os.Open, which already
// names the file.
func LoadTrace(path string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadTrace(file)
}

// ReadTrace decodes a packet arrival trace from r. Compressed input
// (gzip, bzip2, xz) is unwrapped transparently; packet captures (pcap,
// pcapng) contribute one event per packet at its millisecond offset
// from the first packet; anything else is parsed as mahimahi-style
// text, one arrival time per line.
func ReadTrace(r io.Reader) ([]int, error) {
	plain, err := decompressedReader(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}

	buffered := bufio.NewReader(plain)
	header, err := buffered.Peek(4)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "reading trace")
	}
	if isCaptureMagic(header) {
		return readCaptureTimes(buffered, header)
	}
	return readIntegerSequence(buffered)
}

// readIntegerSequence reads one arrival time per line until the first
// blank line or end of input.
func readIntegerSequence(r io.Reader) ([]int, error) {
	arrivals := []int{}

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if line == "" {
			break
		}

		arrival, err := carefulAtoi(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		arrivals = append(arrivals, arrival)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading trace")
	}

	return arrivals, nil
}

// carefulAtoi parses a non-negative decimal integer and verifies that
// it round-trips through canonical formatting: signs, leading zeros,
// whitespace, and out-of-range values are all rejected rather than
// silently normalized.
func carefulAtoi(token string) (int, error) {
	value, err := strconv.Atoi(token)
	if err != nil || value < 0 || strconv.Itoa(value) != token {
		return 0, errors.Wrapf(ErrInvalidInteger, "%q", token)
	}
	return value, nil
}

// ParseBinDuration parses a bin duration argument: a positive decimal
// number of milliseconds in canonical form.
func ParseBinDuration(token string) (int, error) {
	value, err := carefulAtoi(token)
	if err != nil {
		return 0, errors.Wrap(err, "bin duration")
	}
	if value == 0 {
		return 0, errors.New("bin duration must be a positive number of milliseconds")
	}
	return value, nil
}
