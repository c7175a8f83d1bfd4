package memtablewire

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

const (
	// frameVersion is the first header byte of every frame. Readers
	// reject anything else, so the format can change later without
	// silently misparsing old peers.
	frameVersion = 0x01

	// maxFrameSize limits memory usage on malformed/hostile input.
	// Results are bounded by the loaded table, so 1 MiB is generous.
	maxFrameSize = 1 << 20

	headerSize = 5 // version byte + big-endian payload length
)

// ReadFrame reads one frame: a 5-byte header (version, payload length)
// followed by a JSON payload decoded into v.
func ReadFrame(r io.Reader, v any) error {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return err
	}
	if hdr[0] != frameVersion {
		return fmt.Errorf("memtablewire: unsupported frame version 0x%02x", hdr[0])
	}

	n := binary.BigEndian.Uint32(hdr[1:])
	if n == 0 {
		return fmt.Errorf("memtablewire: empty frame")
	}
	if n > maxFrameSize {
		return fmt.Errorf("memtablewire: frame too large: %d > %d", n, maxFrameSize)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return err
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("memtablewire: bad json: %w", err)
	}
	return nil
}

// WriteFrame writes v as one frame, header and payload in a single
// Write so a frame never goes out half-sent.
func WriteFrame(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("memtablewire: marshal: %w", err)
	}
	if len(payload) > maxFrameSize {
		return fmt.Errorf("memtablewire: json too large: %d > %d", len(payload), maxFrameSize)
	}

	frame := make([]byte, headerSize+len(payload))
	frame[0] = frameVersion
	binary.BigEndian.PutUint32(frame[1:headerSize], uint32(len(payload)))
	copy(frame[headerSize:], payload)

	_, err = w.Write(frame)
	return err
}
