package code

import (
	"math/rand"
	"strconv"
	"time"
)

const (
	lowestCode  = 10000
	highestCode = 99999
)

// GenerateRandom returns a 5-digit numeric room code.
func GenerateRandom() string {
	s := rand.NewSource(time.Now().UnixNano())
	r := rand.New(s)
	return strconv.Itoa(lowestCode + r.Intn(highestCode-lowestCode+1))
}
