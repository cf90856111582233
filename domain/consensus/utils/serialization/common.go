package serialization

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/google/uuid"
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

var errMalformed = errors.New("errMalformed")

// uint256Size is the number of bytes a 256-bit target is encoded in
const uint256Size = 32

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// WriteElement writes the little endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	// Attempt to write the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case int32:
		return putUint32(w, uint32(e))

	case uint32:
		return putUint32(w, e)

	case int64:
		return putUint64(w, uint64(e))

	case uint64:
		return putUint64(w, e)

	case uint8:
		return write(w, []byte{e})

	case bool:
		if e {
			return write(w, []byte{0x01})
		}
		return write(w, []byte{0x00})

	case externalapi.DomainHash:
		return write(w, e.ByteSlice())

	case *externalapi.DomainHash:
		return write(w, e.ByteSlice())

	case externalapi.DomainTransactionID:
		return write(w, e.ByteArray()[:])

	case externalapi.DomainPublicKey:
		return write(w, e[:])

	case externalapi.DomainSignature:
		return write(w, e[:])

	case uuid.UUID:
		return write(w, e[:])

	case *big.Int:
		return writeUint256(w, e)
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to writeElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadElement reads the next sequence of bytes from r using little endian
// depending on the concrete type of element pointed to.
func ReadElement(r io.Reader, element interface{}) error {
	// Attempt to read the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case *int32:
		rv, err := readUint32(r)
		if err != nil {
			return err
		}
		*e = int32(rv)
		return nil

	case *uint32:
		rv, err := readUint32(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *int64:
		rv, err := readUint64(r)
		if err != nil {
			return err
		}
		*e = int64(rv)
		return nil

	case *uint64:
		rv, err := readUint64(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *uint8:
		var buf [1]byte
		err := read(r, buf[:])
		if err != nil {
			return err
		}
		*e = buf[0]
		return nil

	case *bool:
		var buf [1]byte
		err := read(r, buf[:])
		if err != nil {
			return err
		}
		switch buf[0] {
		case 0x00:
			*e = false
		case 0x01:
			*e = true
		default:
			return errors.Wrapf(errMalformed, "in order to keep serialization canonical, true has to"+
				" always be 0x01")
		}
		return nil

	case *externalapi.DomainHash:
		var buf [externalapi.DomainHashSize]byte
		err := read(r, buf[:])
		if err != nil {
			return err
		}
		*e = *externalapi.NewDomainHashFromByteArray(&buf)
		return nil

	case *externalapi.DomainTransactionID:
		var buf [externalapi.DomainHashSize]byte
		err := read(r, buf[:])
		if err != nil {
			return err
		}
		*e = *externalapi.NewDomainTransactionIDFromByteArray(&buf)
		return nil

	case *externalapi.DomainPublicKey:
		return read(r, e[:])

	case *externalapi.DomainSignature:
		return read(r, e[:])

	case *uuid.UUID:
		return read(r, e[:])

	case **big.Int:
		rv, err := readUint256(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
}

// ReadElements reads multiple items from r. It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := ReadElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// IsMalformedError returns whether the error indicates a malformed data source
func IsMalformedError(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, errMalformed)
}

// writeUint256 writes a 256-bit unsigned integer as 32 little endian bytes.
// Values that don't fit are not encodable.
func writeUint256(w io.Writer, value *big.Int) error {
	if value == nil {
		return errors.Wrap(errNoEncodingForType, "couldn't write a nil 256-bit integer")
	}
	if value.Sign() < 0 || value.Cmp(maxUint256) > 0 {
		return errors.Wrapf(errNoEncodingForType, "%x is out of the 256-bit unsigned range", value)
	}

	var buf [uint256Size]byte
	value.FillBytes(buf[:])
	reverse(buf[:])
	return write(w, buf[:])
}

func readUint256(r io.Reader) (*big.Int, error) {
	var buf [uint256Size]byte
	err := read(r, buf[:])
	if err != nil {
		return nil, err
	}
	reverse(buf[:])
	return new(big.Int).SetBytes(buf[:]), nil
}

func reverse(buf []byte) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}

func putUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	return write(w, buf[:])
}

func putUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	return write(w, buf[:])
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	err := read(r, buf[:])
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	err := read(r, buf[:])
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func write(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return errors.WithStack(err)
}

func read(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return errors.WithStack(err)
}
