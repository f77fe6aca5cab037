package address

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

const (
	// Size is the byte length of an account address.
	Size = 32
)

var (
	ErrWrongLength   = errors.New("Wrong byte length")
	ErrInvalidBase58 = errors.New("Invalid base58 address")
)

// Address identifies an account on the ledger. Signer addresses are the x coordinate of a
// public key. Program derived addresses are hashes that are not valid curve points, so no private
// key exists for them.
type Address [Size]byte

// Zero is the empty address. Accounts that have never been assigned are owned by Zero.
var Zero Address

// New copies b into an Address.
func New(b []byte) (Address, error) {
	var result Address
	if len(b) != Size {
		return result, errors.Wrap(ErrWrongLength, fmt.Sprintf("%d", len(b)))
	}
	copy(result[:], b)
	return result, nil
}

// Decode parses a base58 address.
func Decode(s string) (Address, error) {
	b := base58.Decode(s)
	if len(b) == 0 {
		return Zero, errors.Wrap(ErrInvalidBase58, s)
	}
	return New(b)
}

// MustDecode is Decode for constants. It panics on a bad address.
func MustDecode(s string) Address {
	a, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return a
}

// SignerAddress returns the address controlled by the public key.
func SignerAddress(pub *btcec.PublicKey) Address {
	var result Address
	copy(result[:], pub.SerializeCompressed()[1:])
	return result
}

// IsOnCurve returns true if the address is the x coordinate of a secp256k1 point. Only on
// curve addresses can produce signatures.
func IsOnCurve(a Address) bool {
	b := make([]byte, 0, Size+1)
	b = append(b, 0x02)
	b = append(b, a[:]...)
	_, err := btcec.ParsePubKey(b, btcec.S256())
	return err == nil
}

// Bytes returns the address data.
func (a Address) Bytes() []byte {
	return a[:]
}

// String returns the base58 text form.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// Equal returns true if the parameter has the same value.
func (a Address) Equal(o Address) bool {
	return bytes.Equal(a[:], o[:])
}

// IsZero returns true for the empty address.
func (a Address) IsZero() bool {
	return a == Zero
}

// Compare orders addresses bytewise.
func (a Address) Compare(o Address) int {
	return bytes.Compare(a[:], o[:])
}

// MarshalJSON converts to json.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON converts from json.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if len(s) == 0 {
		*a = Zero
		return nil
	}

	decoded, err := Decode(s)
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}
