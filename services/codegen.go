package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	productCodePrefix = "P"
	lotBarcodePrefix  = "L"

	// productCode: prefix + 10 uppercase hex chars, 11 total. The
	// format is scanned as QR downstream and must not change.
	productCodeRandomBytes = 5

	// Barcodes are printed on 20-char labels.
	BarcodeMaxLen = 20

	maxGenerationRounds = 5
)

// ExistsFn reports which of the given codes already exist. Called once
// per generation round.
type ExistsFn func(codes []string) (map[string]bool, error)

type CodeGenerator struct{}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// GenerateCode produces one product code: "P" + 10 uppercase hex.
func (g *CodeGenerator) GenerateCode() (string, error) {
	buf := make([]byte, productCodeRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", NewInternalError("random source failed", err)
	}
	return productCodePrefix + strings.ToUpper(hex.EncodeToString(buf)), nil
}

// GenerateLotBarcode produces an auto lot barcode: "L" + YYMMDDHHMMSS
// + 2 random digits (15 chars).
func (g *CodeGenerator) GenerateLotBarcode(now time.Time) (string, error) {
	buf := make([]byte, 1)
	if _, err := rand.Read(buf); err != nil {
		return "", NewInternalError("random source failed", err)
	}
	return fmt.Sprintf("%s%s%02d", lotBarcodePrefix, now.Format("060102150405"), int(buf[0])%100), nil
}

// MemberBarcode derives the barcode for member index of a multi-code
// lot. Manually named lots use "{base}-QR{i}", auto-named lots use
// "{base}Q{i}". Both must fit the 20-char label.
func MemberBarcode(base string, index int, autoGenerated bool) (string, error) {
	var code string
	if autoGenerated {
		code = fmt.Sprintf("%sQ%d", base, index)
	} else {
		code = fmt.Sprintf("%s-QR%d", base, index)
	}
	if len(code) > BarcodeMaxLen {
		return "", NewValidationError("barcode %q exceeds %d characters, shorten the lot barcode", code, BarcodeMaxLen)
	}
	return code, nil
}

// GenerateUniqueBatch produces n pairwise-distinct codes verified
// against the existence check. Only conflicting candidates are
// regenerated, at most maxGenerationRounds times. The pre-check is an
// optimization: the caller still has to treat a unique-constraint
// violation on insert as the real conflict signal.
func (g *CodeGenerator) GenerateUniqueBatch(n int, exists ExistsFn) ([]string, error) {
	if n <= 0 {
		return nil, NewValidationError("batch size must be positive, got %d", n)
	}

	codes := make([]string, 0, n)
	inBatch := make(map[string]bool, n)
	for len(codes) < n {
		code, err := g.GenerateCode()
		if err != nil {
			return nil, err
		}
		if inBatch[code] {
			continue
		}
		inBatch[code] = true
		codes = append(codes, code)
	}

	for round := 0; round < maxGenerationRounds; round++ {
		taken, err := exists(codes)
		if err != nil {
			return nil, NewInternalError("code existence check failed", err)
		}

		conflicts := 0
		for i, code := range codes {
			if !taken[code] {
				continue
			}
			conflicts++
			delete(inBatch, code)
			for {
				fresh, err := g.GenerateCode()
				if err != nil {
					return nil, err
				}
				if inBatch[fresh] {
					continue
				}
				inBatch[fresh] = true
				codes[i] = fresh
				break
			}
		}

		if conflicts == 0 {
			return codes, nil
		}
	}

	return nil, &GenerationExhaustedError{Rounds: maxGenerationRounds}
}
