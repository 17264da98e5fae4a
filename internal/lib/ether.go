package lib

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/params"
)

var ErrInvalidAmount = errors.New("invalid amount")

var (
	weiPerEther   = big.NewInt(params.Ether)
	decimalAmount = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

// ParseEther converts a plain decimal ether amount ("1.25") to wei. Signs, exponents,
// fractions and hex are rejected, as are more than 18 fractional digits and
// results that do not fit uint256
func ParseEther(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, WrapError(ErrInvalidAmount, errors.New("empty"))
	}
	if !decimalAmount.MatchString(s) {
		return nil, WrapError(ErrInvalidAmount, fmt.Errorf("not a decimal number %q", s))
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, WrapError(ErrInvalidAmount, fmt.Errorf("cannot parse %q", s))
	}
	r.Mul(r, new(big.Rat).SetInt(weiPerEther))
	if !r.IsInt() {
		return nil, WrapError(ErrInvalidAmount, fmt.Errorf("more than 18 decimals in %q", s))
	}
	if r.Num().Cmp(math.MaxBig256) > 0 {
		return nil, WrapError(ErrInvalidAmount, fmt.Errorf("%q exceeds uint256", s))
	}
	return new(big.Int).Set(r.Num()), nil
}

// ParseEtherOrZero treats empty input as zero
func ParseEtherOrZero(s string) (*big.Int, error) {
	if strings.TrimSpace(s) == "" {
		return big.NewInt(0), nil
	}
	return ParseEther(s)
}

// FormatEther renders wei as a decimal ether string without trailing zeros
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	s := new(big.Rat).SetFrac(wei, weiPerEther).FloatString(18)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
