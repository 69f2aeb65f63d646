// Package uid generates the prefixed opaque identifiers exposed on the
// public API. These are the only stable handles to invoices and
// receipts; internal numeric IDs never leave the dashboard endpoints.
package uid

import (
	"crypto/rand"
	"math/big"
)

const (
	invoicePrefix   = "Inv-"
	invoiceAlphabet = "abcdefghijklmnopqrstuvwxyz"
	invoiceLength   = 12

	receiptPrefix   = "Rcpt-"
	receiptAlphabet = "abcdefghijklmnopqrstuvwxyz#1234567890"
	receiptLength   = 10
)

// Invoice returns a fresh invoice uid of the form Inv-xxxxxxxxxxxx.
func Invoice() string {
	return generate(invoicePrefix, invoiceAlphabet, invoiceLength)
}

// Receipt returns a fresh receipt uid of the form Rcpt-xxxxxxxxxx.
func Receipt() string {
	return generate(receiptPrefix, receiptAlphabet, receiptLength)
}

func generate(prefix, alphabet string, length int) string {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, 0, len(prefix)+length)
	buf = append(buf, prefix...)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken;
			// there is no sensible fallback for identifier generation.
			panic(err)
		}
		buf = append(buf, alphabet[n.Int64()])
	}
	return string(buf)
}
