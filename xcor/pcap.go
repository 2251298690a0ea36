package xcor

import (
	"bytes"
	"io"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
)

// Capture file magic numbers: the pcapng section header block type,
// then the four classic pcap variants (both byte orders, microsecond
// and nanosecond timestamps).
var (
	pcapngMagic = []byte{0x0a, 0x0d, 0x0d, 0x0a}
	pcapMagics  = [][]byte{
		{0xa1, 0xb2, 0xc3, 0xd4},
		{0xd4, 0xc3, 0xb2, 0xa1},
		{0xa1, 0xb2, 0x3c, 0x4d},
		{0x4d, 0x3c, 0xb2, 0xa1},
	}
)

// isCaptureMagic reports whether header starts a pcap or pcapng file.
func isCaptureMagic(header []byte) bool {
	if bytes.HasPrefix(header, pcapngMagic) {
		return true
	}
	for _, magic := range pcapMagics {
		if bytes.HasPrefix(header, magic) {
			return true
		}
	}
	return false
}

// packetDataReader is the slice of the pcapgo reader API used here.
type packetDataReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
}

// readCaptureTimes turns a packet capture into an arrival-time trace:
// one event per packet record, at its capture-time offset from the
// first packet in whole milliseconds. Captures whose records jump
// backwards in time are rejected.
func readCaptureTimes(r io.Reader, header []byte) ([]int, error) {
	var (
		packets packetDataReader
		err     error
	)
	if bytes.HasPrefix(header, pcapngMagic) {
		packets, err = pcapgo.NewNgReader(r, pcapgo.DefaultNgReaderOptions)
	} else {
		packets, err = pcapgo.NewReader(r)
	}
	if err != nil {
		return nil, errors.Wrap(err, "opening packet capture")
	}

	arrivals := []int{}
	var firstSeen time.Time
	for {
		_, captureInfo, err := packets.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading packet capture")
		}

		if len(arrivals) == 0 {
			firstSeen = captureInfo.Timestamp
		}
		offsetMS := captureInfo.Timestamp.Sub(firstSeen).Milliseconds()
		if offsetMS < 0 {
			return nil, errors.Errorf("capture is not time-ordered: packet at %s precedes the first packet", captureInfo.Timestamp)
		}
		arrivals = append(arrivals, int(offsetMS))
	}

	return arrivals, nil
}
