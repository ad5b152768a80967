package market

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

// writeAmount keeps amount scaling consistent via a single call site.
func (w *binWriter) writeAmount(v sdk.Amount) {
	w.writeInt64(int64(v))
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

// readAmount rebuilds an Amount using the int64 path so scaling stays synced.
func (r *binReader) readAmount() (sdk.Amount, error) {
	val, err := r.readInt64()
	if err != nil {
		return 0, err
	}
	return sdk.Amount(val), nil
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

// EncodeListing packs a Listing into bytes, deal fields last since they are
// zero for most of a listing's life.
func EncodeListing(lst *Listing) []byte {
	w := newWriter()
	w.writeUint64(lst.PropertyID)
	w.writeAddress(lst.Seller)
	w.writeInt64(lst.Quantity)
	w.writeAmount(lst.AskPrice)
	w.buf.WriteByte(byte(lst.State))
	w.writeAddress(lst.AcceptedBuyer)
	w.writeAmount(lst.AcceptedPrice)
	w.writeInt64(lst.DealDeadline)
	return w.bytes()
}

// DecodeListing reads back the fields emitted by EncodeListing in exact order.
func DecodeListing(data []byte) (*Listing, error) {
	r := newReader(data)
	var lst Listing
	var err error
	if lst.PropertyID, err = r.readUint64(); err != nil {
		return nil, err
	}
	if lst.Seller, err = r.readAddress(); err != nil {
		return nil, err
	}
	if lst.Quantity, err = r.readInt64(); err != nil {
		return nil, err
	}
	if lst.AskPrice, err = r.readAmount(); err != nil {
		return nil, err
	}
	state, err := r.readByte()
	if err != nil {
		return nil, err
	}
	lst.State = ListingState(state)
	if lst.AcceptedBuyer, err = r.readAddress(); err != nil {
		return nil, err
	}
	if lst.AcceptedPrice, err = r.readAmount(); err != nil {
		return nil, err
	}
	if lst.DealDeadline, err = r.readInt64(); err != nil {
		return nil, err
	}
	return &lst, nil
}

// EncodeOffer packs one buyer's bid.
func EncodeOffer(o *Offer) []byte {
	w := newWriter()
	w.writeAddress(o.Buyer)
	w.writeAmount(o.Price)
	w.writeInt64(o.SentAt)
	return w.bytes()
}

// DecodeOffer restores the bid written by EncodeOffer.
func DecodeOffer(data []byte) (*Offer, error) {
	r := newReader(data)
	var o Offer
	var err error
	if o.Buyer, err = r.readAddress(); err != nil {
		return nil, err
	}
	if o.Price, err = r.readAmount(); err != nil {
		return nil, err
	}
	if o.SentAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	return &o, nil
}

// encodeAddressList serializes the buyer array for a listing.
func encodeAddressList(addrs []sdk.Address) []byte {
	w := newWriter()
	w.writeVarUint(uint64(len(addrs)))
	for _, a := range addrs {
		w.writeAddress(a)
	}
	return w.bytes()
}

// decodeAddressList restores the array written by encodeAddressList.
func decodeAddressList(data []byte) ([]sdk.Address, error) {
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
