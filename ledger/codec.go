package ledger

import (
	"bytes"
	"encoding/binary"
	"errors"

	"estateshares/sdk"
)

type binWriter struct {
	buf bytes.Buffer
}

// newWriter spins up a fresh writer so we dont leak old bytes between encodes.
func newWriter() *binWriter { return &binWriter{} }

// bytes returns the accumulated buffer, tiny helper but keeps code tidy.
func (w *binWriter) bytes() []byte { return w.buf.Bytes() }

// writeUint64 writes big endian numbers so tooling can read them without guessing.
func (w *binWriter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// writeInt64 reuses the uint routine since casting keeps the sign bits intact.
func (w *binWriter) writeInt64(v int64) {
	w.writeUint64(uint64(v))
}

// writeVarUint uses varints to keep counts and lens compact.
func (w *binWriter) writeVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

// writeString prefixes its length then dumps UTF-8 directly.
func (w *binWriter) writeString(s string) {
	w.writeVarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

// writeAddress canonicalizes the address before writing, so later parsing is easyer.
func (w *binWriter) writeAddress(a sdk.Address) {
	w.writeString(sdk.AddressToString(a))
}

type binReader struct {
	data []byte
	pos  int
}

// newReader wraps raw bytes so we can peek sequentially w/out copying.
func newReader(data []byte) *binReader {
	return &binReader{data: data}
}

// readByte grabs the next byte and bumps the cursor, aborts on EOF.
func (r *binReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.New("unexpected EOF")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// readUint64 decodes big endian integers for ids and totals.
func (r *binReader) readUint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errors.New("unexpected EOF")
	}
	val := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return val, nil
}

// readInt64 simply casts the unsigned read, matching the writer logic.
func (r *binReader) readInt64() (int64, error) {
	v, err := r.readUint64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// readVarUint undoes the compact varint encoding for lengths/counts.
func (r *binReader) readVarUint() (uint64, error) {
	val, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, errors.New("invalid varuint")
	}
	r.pos += n
	return val, nil
}

// readString reads the varint length then slices out the utf8 chunk.
func (r *binReader) readString() (string, error) {
	l, err := r.readVarUint()
	if err != nil {
		return "", err
	}
	if r.pos+int(l) > len(r.data) {
		return "", errors.New("unexpected EOF")
	}
	s := string(r.data[r.pos : r.pos+int(l)])
	r.pos += int(l)
	return s, nil
}

// readAddress rebuilds the canonical address written by writeAddress.
func (r *binReader) readAddress() (sdk.Address, error) {
	s, err := r.readString()
	if err != nil {
		return sdk.Address(""), err
	}
	return sdk.AddressFromString(s), nil
}

// encodeProperty dumps every field in fixed order, staged arrays last.
func encodeProperty(w *binWriter, p *Property) {
	w.writeUint64(p.ID)
	w.writeString(p.PostalCode)
	w.writeString(p.Location)
	w.buf.WriteByte(byte(p.Status))
	w.writeVarUint(uint64(len(p.StagedOwners)))
	for i := range p.StagedOwners {
		w.writeAddress(p.StagedOwners[i])
		w.writeInt64(p.StagedShares[i])
	}
}

// EncodeProperty packs a Property into bytes so storage stays lean and no json noise leaks.
// Example payload: EncodeProperty(&Property{ID: 3, PostalCode: "10115"})
func EncodeProperty(p *Property) []byte {
	w := newWriter()
	encodeProperty(w, p)
	return w.bytes()
}

// decodeProperty reads back the fields emitted by encodeProperty in exact order.
func decodeProperty(r *binReader) (Property, error) {
	var p Property
	var err error
	if p.ID, err = r.readUint64(); err != nil {
		return p, err
	}
	if p.PostalCode, err = r.readString(); err != nil {
		return p, err
	}
	if p.Location, err = r.readString(); err != nil {
		return p, err
	}
	status, err := r.readByte()
	if err != nil {
		return p, err
	}
	p.Status = PropertyStatus(status)
	count, err := r.readVarUint()
	if err != nil {
		return p, err
	}
	if count > 0 {
		p.StagedOwners = make([]sdk.Address, 0, count)
		p.StagedShares = make([]int64, 0, count)
		for i := uint64(0); i < count; i++ {
			addr, err := r.readAddress()
			if err != nil {
				return p, err
			}
			shares, err := r.readInt64()
			if err != nil {
				return p, err
			}
			p.StagedOwners = append(p.StagedOwners, addr)
			p.StagedShares = append(p.StagedShares, shares)
		}
	}
	return p, nil
}

// DecodeProperty is handy for tests that need to inspect stored records quickly.
func DecodeProperty(data []byte) (*Property, error) {
	r := newReader(data)
	p, err := decodeProperty(r)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// EncodeAddressList serializes the owner array keeping insertion slots intact.
func EncodeAddressList(addrs []sdk.Address) []byte {
	w := newWriter()
	w.writeVarUint(uint64(len(addrs)))
	for _, a := range addrs {
		w.writeAddress(a)
	}
	return w.bytes()
}

// DecodeAddressList restores the array written by EncodeAddressList.
func DecodeAddressList(data []byte) ([]sdk.Address, error) {
	r := newReader(data)
	count, err := r.readVarUint()
	if err != nil {
		return nil, err
	}
	addrs := make([]sdk.Address, 0, count)
	for i := uint64(0); i < count; i++ {
		a, err := r.readAddress()
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}
