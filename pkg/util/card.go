package util

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

var (
	ErrInvalidCardNumber = errors.New("card number must be 12-19 digits")
	ErrInvalidCVV        = errors.New("CVV must be exactly 3 digits")
	ErrInvalidExpiry     = errors.New("expiry date must be MM/YY and not in the past")
)

var (
	cvvPattern    = regexp.MustCompile(`^[0-9]{3}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
)

// NormalizeCardNumber strips spaces and dashes.
func NormalizeCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

func ValidateCardNumber(number string) error {
	n := NormalizeCardNumber(number)
	if len(n) < 12 || len(n) > 19 {
		return ErrInvalidCardNumber
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return ErrInvalidCardNumber
		}
	}
	return nil
}

func ValidateCVV(cvv string) error {
	if !cvvPattern.MatchString(cvv) {
		return ErrInvalidCVV
	}
	return nil
}

// ValidateExpiry accepts MM/YY; a card is valid through the last day of its expiry month.
func ValidateExpiry(expiry string, now time.Time) error {
	m := expiryPattern.FindStringSubmatch(strings.TrimSpace(expiry))
	if m == nil {
		return ErrInvalidExpiry
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	endOfMonth := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	if !now.UTC().Before(endOfMonth) {
		return ErrInvalidExpiry
	}
	return nil
}

// CardLast4 returns the trailing four digits of a normalized card number.
func CardLast4(number string) string {
	n := NormalizeCardNumber(number)
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}

// HashCardNumber stores card numbers one-way; only the last four digits are kept in clear.
func HashCardNumber(number string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(NormalizeCardNumber(number)), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyCardNumber(hash, number string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(NormalizeCardNumber(number))) == nil
}
