package state

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

const (
	// DiscriminatorSize is the length of the type tag at the front of every account.
	DiscriminatorSize = 8
)

var (
	ErrInvalidDiscriminator = errors.New("Invalid account discriminator")
	ErrDataTooShort         = errors.New("Account data too short")
	ErrStringTooLong        = errors.New("String exceeds maximum length")
	ErrAccountTooSmall      = errors.New("Account space too small")
)

// Discriminator returns the type tag for a namespaced name, like "account:Poll".
func Discriminator(name string) [DiscriminatorSize]byte {
	var result [DiscriminatorSize]byte
	copy(result[:], chainhash.HashB([]byte(name)))
	return result
}

// Encoder writes little endian fields with u32 length prefixed strings.
type Encoder struct {
	buf bytes.Buffer
}

func (e *Encoder) Tag(tag [DiscriminatorSize]byte) {
	e.buf.Write(tag[:])
}

func (e *Encoder) U64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) Bytes32(b [32]byte) {
	e.buf.Write(b[:])
}

// String writes a length prefixed string after checking it fits max bytes.
func (e *Encoder) String(s string, max int) error {
	if len(s) > max {
		return errors.Wrap(ErrStringTooLong, fmt.Sprintf("%d > %d", len(s), max))
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(len(s)))
	e.buf.Write(b[:])
	e.buf.WriteString(s)
	return nil
}

// Result returns the encoded bytes zero padded to space. A zero space leaves them unpadded.
func (e *Encoder) Result(space int) ([]byte, error) {
	b := e.buf.Bytes()
	if space == 0 {
		return b, nil
	}
	if len(b) > space {
		return nil, errors.Wrap(ErrAccountTooSmall, fmt.Sprintf("%d > %d", len(b), space))
	}

	result := make([]byte, space)
	copy(result, b)
	return result, nil
}

// Decoder reads fields written by Encoder. The first error sticks and later reads return
// zero values.
type Decoder struct {
	data []byte
	err  error
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.data) < n {
		d.err = errors.Wrap(ErrDataTooShort, fmt.Sprintf("need %d, have %d", n, len(d.data)))
		return nil
	}
	b := d.data[:n]
	d.data = d.data[n:]
	return b
}

// Tag consumes the discriminator and checks it matches.
func (d *Decoder) Tag(want [DiscriminatorSize]byte) {
	b := d.take(DiscriminatorSize)
	if d.err == nil && !bytes.Equal(b, want[:]) {
		d.err = ErrInvalidDiscriminator
	}
}

func (d *Decoder) U64() uint64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (d *Decoder) Bytes32() [32]byte {
	var result [32]byte
	copy(result[:], d.take(32))
	return result
}

func (d *Decoder) String(max int) string {
	lb := d.take(4)
	if lb == nil {
		return ""
	}
	l := binary.LittleEndian.Uint32(lb)
	if int(l) > max {
		d.err = errors.Wrap(ErrStringTooLong, fmt.Sprintf("%d > %d", l, max))
		return ""
	}
	return string(d.take(int(l)))
}

// Remaining returns the bytes not yet consumed.
func (d *Decoder) Remaining() []byte {
	return d.data
}

func (d *Decoder) Err() error {
	return d.err
}
