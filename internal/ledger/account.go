package ledger

import (
	"github.com/tokenized/voting/pkg/address"
)

// Account is the unit of ledger state. An account that was never written has a zero owner and
// no data.
type Account struct {
	Address address.Address `json:"Address"`
	Owner   address.Address `json:"Owner"`
	Data    []byte          `json:"Data"`
}

// NewAccount returns an empty account at the address.
func NewAccount(a address.Address) *Account {
	return &Account{Address: a}
}

// IsInitialized returns true once a program has been assigned the account.
func (a *Account) IsInitialized() bool {
	return !a.Owner.IsZero() || len(a.Data) > 0
}

// Copy returns a deep copy.
func (a *Account) Copy() *Account {
	result := &Account{
		Address: a.Address,
		Owner:   a.Owner,
	}
	if a.Data != nil {
		result.Data = make([]byte, len(a.Data))
		copy(result.Data, a.Data)
	}
	return result
}

// Equal returns true if owner and data match.
func (a *Account) Equal(o *Account) bool {
	if !a.Address.Equal(o.Address) || !a.Owner.Equal(o.Owner) || len(a.Data) != len(o.Data) {
		return false
	}
	for i := range a.Data {
		if a.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}
