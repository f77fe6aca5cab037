package runtime

import (
	"time"

	"github.com/tokenized/voting/internal/ledger"
	"github.com/tokenized/voting/pkg/address"

	"github.com/pkg/errors"
)

// AccountMeta names an account an instruction touches.
type AccountMeta struct {
	Address    address.Address `json:"Address"`
	IsSigner   bool            `json:"IsSigner"`
	IsWritable bool            `json:"IsWritable"`
}

// Instruction is a single call into a program.
type Instruction struct {
	ProgramID address.Address `json:"ProgramID"`
	Accounts  []AccountMeta   `json:"Accounts"`
	Data      []byte          `json:"Data"`
}

// Transaction is a list of instructions applied atomically. Signers are the addresses whose
// signatures the submission layer has already verified.
type Transaction struct {
	Instructions []Instruction    `json:"Instructions"`
	Signers      []address.Address `json:"Signers"`
}

// AccountInfo is a staged account handed to a program.
type AccountInfo struct {
	*ledger.Account
	IsSigner   bool
	IsWritable bool
}

// InstructionContext is everything a program sees while processing one instruction.
type InstructionContext struct {
	ProgramID address.Address
	Accounts  []*AccountInfo
	Data      []byte
	Now       time.Time

	assigned map[address.Address]bool
}

// Assign gives an unassigned account to the executing program. The seeds must derive the
// account address under the program id, which proves the program controls it.
func (ictx *InstructionContext) Assign(info *AccountInfo, seeds [][]byte) error {
	derived, err := address.CreateProgramAddress(seeds, ictx.ProgramID)
	if err != nil {
		return errors.Wrap(ErrInvalidSeeds, err.Error())
	}

	if !derived.Equal(info.Address) {
		return errors.Wrapf(ErrInvalidSeeds, "%s != %s", derived, info.Address)
	}

	if !info.Owner.IsZero() {
		return errors.Wrap(ErrAccountAlreadyAssigned, info.Address.String())
	}

	info.Owner = ictx.ProgramID
	if ictx.assigned == nil {
		ictx.assigned = make(map[address.Address]bool)
	}
	ictx.assigned[info.Address] = true
	return nil
}

// Addresses returns every distinct address in the transaction split by whether any instruction
// writes it.
func (tx *Transaction) Addresses() (writable, readOnly []address.Address) {
	modes := make(map[address.Address]bool)
	var order []address.Address
	for _, ix := range tx.Instructions {
		for _, meta := range ix.Accounts {
			w, exists := modes[meta.Address]
			if !exists {
				order = append(order, meta.Address)
			}
			modes[meta.Address] = w || meta.IsWritable
		}
	}

	for _, a := range order {
		if modes[a] {
			writable = append(writable, a)
		} else {
			readOnly = append(readOnly, a)
		}
	}
	return writable, readOnly
}
