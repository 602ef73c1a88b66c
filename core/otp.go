package core

import (
	"math/rand/v2"
	"strconv"
)

const OTP_LENGTH = 6

// GenerateOTP returns a single-use email verification code: six numeric
// digits, uniform over [100000, 999999]. The code is stored server-side
// and compared on submission; it is not a cryptographic credential.
func GenerateOTP() string {
	return strconv.Itoa(rand.IntN(900000) + 100000)
}
