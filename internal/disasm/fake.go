package disasm

import "errors"

// ErrUndecodable is returned by [FakeDecoder] when it hits a byte not in
// its table, simulating a real decoder refusing malformed input.
var ErrUndecodable = errors.New("undecodable byte sequence")

// FakeDecoder is a test double that treats every byte as a one-byte
// "instruction" whose text comes from a lookup table, so tests can pin
// exact disassembly output without depending on a real x86 decoder.
type FakeDecoder struct {
	// Text maps a leading byte to its rendered instruction text. A byte
	// not present in the table fails to decode.
	Text map[byte]string
}

// DecodeOne implements [Decoder].
func (f FakeDecoder) DecodeOne(b []byte, addr uint64) (int, string, error) {
	if len(b) == 0 {
		return 0, "", ErrUndecodable
	}

	text, ok := f.Text[b[0]]
	if !ok {
		return 0, "", ErrUndecodable
	}

	return 1, text, nil
}

var _ Decoder = FakeDecoder{}
