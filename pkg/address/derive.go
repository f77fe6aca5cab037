package address

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

const (
	// MaxSeeds is the maximum number of seeds, including the bump seed.
	MaxSeeds = 16

	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	derivedMarker = "ProgramDerivedAddress"
)

var (
	ErrMaxSeedLengthExceeded = errors.New("Max seed length exceeded")
	ErrInvalidSeeds          = errors.New("Seeds derive a valid curve point")
	ErrNoViableBump          = errors.New("Unable to find a viable bump seed")
)

// CreateProgramAddress hashes the seeds with the program id. The result must be off curve,
// otherwise someone could hold the private key for it.
func CreateProgramAddress(seeds [][]byte, programID Address) (Address, error) {
	if len(seeds) > MaxSeeds {
		return Zero, errors.Wrap(ErrMaxSeedLengthExceeded, fmt.Sprintf("%d seeds", len(seeds)))
	}

	size := len(programID) + len(derivedMarker)
	for i, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return Zero, errors.Wrap(ErrMaxSeedLengthExceeded, fmt.Sprintf("seed %d", i))
		}
		size += len(seed)
	}

	preimage := make([]byte, 0, size)
	for _, seed := range seeds {
		preimage = append(preimage, seed...)
	}
	preimage = append(preimage, programID[:]...)
	preimage = append(preimage, derivedMarker...)

	result, err := New(chainhash.HashB(preimage))
	if err != nil {
		return Zero, err
	}

	if IsOnCurve(result) {
		return Zero, ErrInvalidSeeds
	}

	return result, nil
}

// FindProgramAddress searches bump seeds from 255 down and returns the first off curve address
// with the bump that produced it.
func FindProgramAddress(seeds [][]byte, programID Address) (Address, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return Zero, 0, errors.Wrap(ErrMaxSeedLengthExceeded, fmt.Sprintf("%d seeds", len(seeds)))
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}

		result, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return result, uint8(bump), nil
		}
		if errors.Cause(err) != ErrInvalidSeeds {
			return Zero, 0, err
		}
	}

	return Zero, 0, ErrNoViableBump
}

// U64Seed encodes a numeric key as a fixed width little endian seed.
func U64Seed(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
