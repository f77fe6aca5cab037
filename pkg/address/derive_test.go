package address

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
)

var testProgramID = MustDecode("6z68wfurCMYkZG51s1Et9BJEd9nJGUusjHXNt4dGbNNF")

func TestFindProgramAddress_Deterministic(t *testing.T) {
	seeds := [][]byte{U64Seed(1), []byte("Smooth")}

	first, firstBump, err := FindProgramAddress(seeds, testProgramID)
	if err != nil {
		t.Fatalf("Failed to find address : %s", err)
	}

	second, secondBump, err := FindProgramAddress(seeds, testProgramID)
	if err != nil {
		t.Fatalf("Failed to find address : %s", err)
	}

	if !first.Equal(second) || firstBump != secondBump {
		t.Errorf("got %s/%d, want %s/%d", second, secondBump, first, firstBump)
	}

	if IsOnCurve(first) {
		t.Errorf("Derived address is on curve : %s", first)
	}
}

func TestFindProgramAddress_DistinctSeeds(t *testing.T) {
	tests := []struct {
		name  string
		left  [][]byte
		right [][]byte
	}{
		{
			name:  "poll id",
			left:  [][]byte{U64Seed(1), []byte("Smooth")},
			right: [][]byte{U64Seed(2), []byte("Smooth")},
		},
		{
			name:  "candidate name",
			left:  [][]byte{U64Seed(1), []byte("Smooth")},
			right: [][]byte{U64Seed(1), []byte("Crunchy")},
		},
		{
			name:  "poll and candidate",
			left:  [][]byte{U64Seed(1)},
			right: [][]byte{U64Seed(1), []byte("Smooth")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, _, err := FindProgramAddress(tt.left, testProgramID)
			if err != nil {
				t.Fatalf("Failed to find left address : %s", err)
			}
			right, _, err := FindProgramAddress(tt.right, testProgramID)
			if err != nil {
				t.Fatalf("Failed to find right address : %s", err)
			}
			if left.Equal(right) {
				t.Errorf("Addresses match : %s", left)
			}
		})
	}
}

func TestFindProgramAddress_ProgramScoped(t *testing.T) {
	other := MustDecode("11111111111111111111111111111111")
	seeds := [][]byte{U64Seed(7)}

	a, _, err := FindProgramAddress(seeds, testProgramID)
	if err != nil {
		t.Fatalf("Failed to find address : %s", err)
	}
	b, _, err := FindProgramAddress(seeds, other)
	if err != nil {
		t.Fatalf("Failed to find address : %s", err)
	}
	if a.Equal(b) {
		t.Errorf("Programs share address %s", a)
	}
}

func TestCreateProgramAddress_MatchesBump(t *testing.T) {
	seeds := [][]byte{U64Seed(42)}

	found, bump, err := FindProgramAddress(seeds, testProgramID)
	if err != nil {
		t.Fatalf("Failed to find address : %s", err)
	}

	created, err := CreateProgramAddress(append(seeds, []byte{bump}), testProgramID)
	if err != nil {
		t.Fatalf("Failed to create address : %s", err)
	}

	if !created.Equal(found) {
		t.Errorf("got %s, want %s", created, found)
	}
}

func TestCreateProgramAddress_SeedLimits(t *testing.T) {
	long := bytes.Repeat([]byte{1}, MaxSeedLength+1)
	if _, err := CreateProgramAddress([][]byte{long}, testProgramID); errors.Cause(err) != ErrMaxSeedLengthExceeded {
		t.Errorf("got %v, want %v", err, ErrMaxSeedLengthExceeded)
	}

	many := make([][]byte, MaxSeeds)
	for i := range many {
		many[i] = []byte{uint8(i)}
	}
	if _, _, err := FindProgramAddress(many, testProgramID); errors.Cause(err) != ErrMaxSeedLengthExceeded {
		t.Errorf("got %v, want %v", err, ErrMaxSeedLengthExceeded)
	}
}

func TestSignerAddress_OnCurve(t *testing.T) {
	for i := 1; i <= 8; i++ {
		_, pub := btcec.PrivKeyFromBytes(btcec.S256(), bytes.Repeat([]byte{uint8(i)}, 32))
		if a := SignerAddress(pub); !IsOnCurve(a) {
			t.Errorf("Signer address off curve : %s", a)
		}
	}
}

func TestAddress_Text(t *testing.T) {
	text := testProgramID.String()
	if text != "6z68wfurCMYkZG51s1Et9BJEd9nJGUusjHXNt4dGbNNF" {
		t.Errorf("got %s", text)
	}

	if _, err := Decode("0OIl"); err == nil {
		t.Errorf("Expected error decoding invalid base58")
	}

	b, err := testProgramID.MarshalJSON()
	if err != nil {
		t.Fatalf("Failed to marshal : %s", err)
	}
	var decoded Address
	if err := decoded.UnmarshalJSON(b); err != nil {
		t.Fatalf("Failed to unmarshal : %s", err)
	}
	if !decoded.Equal(testProgramID) {
		t.Errorf("got %s, want %s", decoded, testProgramID)
	}
}
