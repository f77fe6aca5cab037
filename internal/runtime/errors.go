package runtime

import "github.com/pkg/errors"

var (
	ErrNoInstructions          = errors.New("Transaction has no instructions")
	ErrProgramNotFound         = errors.New("Program not found")
	ErrMissingSignature        = errors.New("Missing required signature")
	ErrInvalidSigner           = errors.New("Signer address has no private key")
	ErrReadonlyModified        = errors.New("Instruction modified a read only account")
	ErrExternalAccountModified = errors.New("Instruction modified an account owned by another program")
	ErrOwnerModified           = errors.New("Instruction changed an assigned account owner")
	ErrUnauthorizedAssign      = errors.New("Instruction assigned an account without proving its seeds")
	ErrInvalidSeeds            = errors.New("Seeds do not derive the account address")
	ErrAccountAlreadyAssigned  = errors.New("Account already assigned")
)
