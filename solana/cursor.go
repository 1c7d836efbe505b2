package bullposter_protocol

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Cursor reads account fields in order from a fixed buffer. Every read is
// bounds-checked before it touches the underlying decoder, so a short buffer
// always surfaces as a *BufferOverflowError carrying the failing offset.
type Cursor struct {
	dec *bin.Decoder
}

// NewCursor returns a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{dec: bin.NewBorshDecoder(data)}
}

// CursorFromDecoder continues reading from the decoder's current position.
func CursorFromDecoder(dec *bin.Decoder) *Cursor {
	return &Cursor{dec: dec}
}

func (c *Cursor) Offset() int {
	return int(c.dec.Position())
}

func (c *Cursor) Remaining() int {
	return c.dec.Remaining()
}

func (c *Cursor) ensure(n int) error {
	if n < 0 || n > c.dec.Remaining() {
		return &BufferOverflowError{Offset: c.Offset(), Size: n, Remaining: c.dec.Remaining()}
	}
	return nil
}

// ReadBytes returns a copy of the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.ensure(n); err != nil {
		return nil, err
	}
	b, err := c.dec.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (c *Cursor) ReadPublicKey() (solana.PublicKey, error) {
	if err := c.ensure(solana.PublicKeyLength); err != nil {
		return solana.PublicKey{}, err
	}
	b, err := c.dec.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(b), nil
}

func (c *Cursor) ReadU32LE() (uint32, error) {
	if err := c.ensure(bin.TypeSize.Uint32); err != nil {
		return 0, err
	}
	return c.dec.ReadUint32(bin.LE)
}

func (c *Cursor) ReadU64LE() (uint64, error) {
	if err := c.ensure(bin.TypeSize.Uint64); err != nil {
		return 0, err
	}
	return c.dec.ReadUint64(bin.LE)
}

// ReadBool treats any nonzero byte as true.
func (c *Cursor) ReadBool() (bool, error) {
	if err := c.ensure(bin.TypeSize.Bool); err != nil {
		return false, err
	}
	b, err := c.dec.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// ReadString reads a u32 little-endian length followed by that many bytes.
func (c *Cursor) ReadString() (string, error) {
	n, err := c.ReadU32LE()
	if err != nil {
		return "", err
	}
	if uint64(n) > uint64(c.dec.Remaining()) {
		return "", &BufferOverflowError{Offset: c.Offset(), Size: int(n), Remaining: c.dec.Remaining()}
	}
	b, err := c.dec.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadOptionPublicKey reads a one-byte presence flag and, when it is set,
// the 32-byte key that follows.
func (c *Cursor) ReadOptionPublicKey() (*solana.PublicKey, error) {
	present, err := c.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	key, err := c.ReadPublicKey()
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// ReadOptionU64 is the u64 counterpart of ReadOptionPublicKey.
func (c *Cursor) ReadOptionU64() (*uint64, error) {
	present, err := c.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	v, err := c.ReadU64LE()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ReadTrailingString reads a string field that older accounts may not carry.
// Fewer than four remaining bytes means the field is absent and yields "".
func (c *Cursor) ReadTrailingString() (string, error) {
	if c.dec.Remaining() < bin.TypeSize.Uint32 {
		return "", nil
	}
	return c.ReadString()
}
