package code

import (
	"strconv"
	"testing"
)

func TestGenerateRandom(t *testing.T) {
	generated := GenerateRandom()
	if len(generated) != 5 {
		t.Errorf("wrong length expected: %d got %d", 5, len(generated))
	}
	parsed, err := strconv.Atoi(generated)
	if err != nil {
		t.Errorf("code is not numeric: %v", generated)
	}
	if parsed < lowestCode || parsed > highestCode {
		t.Errorf("code out of range: %v", generated)
	}
}
