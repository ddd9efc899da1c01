package address

import (
	"context"
	"errors"
	"strings"
)

// ErrCEPNotFound means the lookup service has no address for the code.
// Transport failures are returned as distinct, wrapped errors so callers can
// tell "unknown code" from "service unreachable".
var ErrCEPNotFound = errors.New("cep not found")

// Record is a resolved address keyed by a normalized postal code.
type Record struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Lookup resolves a normalized 8-digit CEP.
type Lookup interface {
	Resolve(ctx context.Context, cep string) (*Record, error)
}

const cepLength = 8

// NormalizeCEP strips non-digit characters and reports whether the result is
// a complete 8-digit code.
func NormalizeCEP(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cep := b.String()
	return cep, len(cep) == cepLength
}
