package session

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"time"
)

// DefaultUtmpPath is where glibc keeps the current login records.
const DefaultUtmpPath = "/var/run/utmp"

// glibc struct utmp layout on Linux (same on 32 and 64 bit since ut_tv uses
// 32-bit fields).
const (
	utmpSize = 384

	offType = 0
	offLine = 8
	offUser = 44
	offSec  = 340
	offUsec = 344

	lineLen = 32
	userLen = 32

	utBootTime    = 2
	utUserProcess = 7
)

// ReadUtmp reads the utmp file at path.
func ReadUtmp(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read utmp: %w", err)
	}
	return ParseUtmp(data), nil
}

// ParseUtmp decodes consecutive utmp entries. A trailing partial entry is
// ignored.
func ParseUtmp(data []byte) []Record {
	records := make([]Record, 0, len(data)/utmpSize)
	for off := 0; off+utmpSize <= len(data); off += utmpSize {
		records = append(records, decodeEntry(data[off:off+utmpSize]))
	}
	return records
}

func decodeEntry(b []byte) Record {
	order := binary.NativeEndian
	r := Record{
		Line: cString(b[offLine : offLine+lineLen]),
		User: cString(b[offUser : offUser+userLen]),
		Time: time.Unix(
			int64(int32(order.Uint32(b[offSec:]))),
			int64(int32(order.Uint32(b[offUsec:])))*int64(time.Microsecond),
		),
	}
	switch int16(order.Uint16(b[offType:])) {
	case utBootTime:
		r.Kind = KindBootTime
	case utUserProcess:
		r.Kind = KindUserProcess
	}
	return r
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
