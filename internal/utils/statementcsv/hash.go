package statementcsv

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
)

// LineHash is the dedup digest of one statement line.
//
// The ordinal is the line's position in its file, so identical rows within one file
// stay distinct while re-importing the same file reproduces the same digests.
// Amounts are rendered in canonical decimal form so "10" and "10.00" hash alike.
// Each field is length-prefixed, so free text containing separators cannot shift
// field boundaries. An absent balance or reference is encoded apart from an empty one.
func LineHash(accountID string, ordinal int, line domain.ParsedLine) string {
	balance := "-"
	if line.Balance != nil {
		balance = "+" + line.Balance.String()
	}
	reference := "-"
	if line.ExternalReference != nil {
		reference = "+" + *line.ExternalReference
	}

	h := sha256.New()
	for _, field := range []string{
		accountID,
		line.LineDate.Format(domain.DateLayout),
		line.Description,
		line.Debit.String(),
		line.Credit.String(),
		balance,
		reference,
		strconv.Itoa(ordinal),
	} {
		fmt.Fprintf(h, "%d:%s", len(field), field)
	}
	return hex.EncodeToString(h.Sum(nil))
}
