package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var productCodePattern = regexp.MustCompile(`^P[0-9A-F]{10}$`)

func TestGenerateCodeFormat(t *testing.T) {
	gen := NewCodeGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := gen.GenerateCode()
		assert.NoError(t, err)
		assert.Len(t, code, 11)
		assert.Regexp(t, productCodePattern, code)
		seen[code] = true
	}
	// 100 draws from a 16^10 space should never repeat.
	assert.Len(t, seen, 100)
}

func TestGenerateLotBarcodeFormat(t *testing.T) {
	gen := NewCodeGenerator()
	now := time.Date(2026, 8, 27, 14, 30, 5, 0, time.UTC)

	barcode, err := gen.GenerateLotBarcode(now)
	assert.NoError(t, err)
	assert.Len(t, barcode, 15)
	assert.Equal(t, "L260827143005", barcode[:13])
	assert.Regexp(t, `^\d{2}$`, barcode[13:])
}

func TestMemberBarcode(t *testing.T) {
	code, err := MemberBarcode("LOT-A", 3, false)
	assert.NoError(t, err)
	assert.Equal(t, "LOT-A-QR3", code)

	code, err = MemberBarcode("L26082714300512", 4, true)
	assert.NoError(t, err)
	assert.Equal(t, "L26082714300512Q4", code)

	// A long manual base plus the -QR{i} suffix breaks the label limit.
	_, err = MemberBarcode("AAAAAAAAAAAAAAAAAA", 10, false)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestGenerateUniqueBatchNoConflicts(t *testing.T) {
	gen := NewCodeGenerator()

	calls := 0
	exists := func(codes []string) (map[string]bool, error) {
		calls++
		return map[string]bool{}, nil
	}

	codes, err := gen.GenerateUniqueBatch(5, exists)
	assert.NoError(t, err)
	assert.Len(t, codes, 5)
	assert.Equal(t, 1, calls)

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "duplicate code %s in batch", code)
		seen[code] = true
	}
}

// Two of the first five candidates collide with existing records; the
// generator must replace only those and end with five codes that are
// pairwise distinct and untaken.
func TestGenerateUniqueBatchRegeneratesConflicts(t *testing.T) {
	gen := NewCodeGenerator()

	taken := make(map[string]bool)
	calls := 0
	exists := func(codes []string) (map[string]bool, error) {
		calls++
		if calls == 1 {
			taken[codes[0]] = true
			taken[codes[3]] = true
		}
		result := make(map[string]bool)
		for _, code := range codes {
			if taken[code] {
				result[code] = true
			}
		}
		return result, nil
	}

	codes, err := gen.GenerateUniqueBatch(5, exists)
	assert.NoError(t, err)
	assert.Len(t, codes, 5)
	assert.LessOrEqual(t, calls, 5)

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, taken[code], "code %s collides with an existing record", code)
		assert.False(t, seen[code], "duplicate code %s in batch", code)
		seen[code] = true
	}
}

func TestGenerateUniqueBatchExhausted(t *testing.T) {
	gen := NewCodeGenerator()

	calls := 0
	exists := func(codes []string) (map[string]bool, error) {
		calls++
		result := make(map[string]bool, len(codes))
		for _, code := range codes {
			result[code] = true
		}
		return result, nil
	}

	_, err := gen.GenerateUniqueBatch(3, exists)
	var exhausted *GenerationExhaustedError
	assert.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 5, calls)
}

func TestGenerateUniqueBatchPropagatesLookupError(t *testing.T) {
	gen := NewCodeGenerator()

	exists := func(codes []string) (map[string]bool, error) {
		return nil, errors.New("db down")
	}

	_, err := gen.GenerateUniqueBatch(2, exists)
	var internal *InternalError
	assert.ErrorAs(t, err, &internal)
}

func TestGenerateUniqueBatchRejectsZero(t *testing.T) {
	gen := NewCodeGenerator()
	_, err := gen.GenerateUniqueBatch(0, func([]string) (map[string]bool, error) { return nil, nil })
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
