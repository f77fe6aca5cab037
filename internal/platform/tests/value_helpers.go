package tests

import (
	"math/rand"
	"time"

	"github.com/tokenized/voting/pkg/address"
)

var testHelperRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// RandomAddress returns random address bytes. They may or may not be on the curve.
func RandomAddress() address.Address {
	var result address.Address
	for i := range result {
		result[i] = byte(testHelperRand.Intn(256))
	}
	return result
}

// RandomName returns a lower case name of length n.
func RandomName(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[testHelperRand.Intn(len(letters))]
	}
	return string(b)
}
