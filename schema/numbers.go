package schema

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// parseInt parses integer source in the given base, falling back to
// big.Int when the value exceeds int64. Underscores (YAML 1.1) must be
// stripped by the caller.
func parseInt(src string, base int) (any, error) {
	i, err := strconv.ParseInt(src, base, 64)
	if err == nil {
		return i, nil
	}
	if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
		return nil, fmt.Errorf("%w: %q", ErrResolve, src)
	}
	neg := false
	s := src
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	b, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrResolve, src)
	}
	if neg {
		b.Neg(b)
	}
	return b, nil
}

func resolveDec(src string) (any, error) {
	return parseInt(strings.ReplaceAll(src, "_", ""), 10)
}

func resolveHex(src string) (any, error) {
	s := strings.ReplaceAll(src, "_", "")
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}
	return parseInt(sign+s[2:], 16)
}

func resolveOct0o(src string) (any, error) {
	return parseInt(src[2:], 8)
}

// resolveOct11 handles YAML 1.1 leading-zero octal like 052.
func resolveOct11(src string) (any, error) {
	s := strings.ReplaceAll(src, "_", "")
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}
	return parseInt(sign+strings.TrimPrefix(s, "0"), 8)
}

func resolveBin(src string) (any, error) {
	s := strings.ReplaceAll(src, "_", "")
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}
	return parseInt(sign+s[2:], 2)
}

// resolveSexInt handles base-60 integers like 190:20:30.
func resolveSexInt(src string) (any, error) {
	s := strings.ReplaceAll(src, "_", "")
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	var total int64
	for _, part := range strings.Split(s, ":") {
		p, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrResolve, src)
		}
		total = total*60 + p
	}
	if neg {
		total = -total
	}
	return total, nil
}

func resolveSexFloat(src string) (any, error) {
	s := strings.ReplaceAll(src, "_", "")
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	var total float64
	for _, part := range strings.Split(s, ":") {
		p, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrResolve, src)
		}
		total = total*60 + p
	}
	if neg {
		total = -total
	}
	return total, nil
}

func resolveFloat(src string) (any, error) {
	s := strings.ReplaceAll(src, "_", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrResolve, src)
	}
	return f, nil
}

func resolveInf(src string) (any, error) {
	if strings.HasPrefix(src, "-") {
		return math.Inf(-1), nil
	}
	return math.Inf(1), nil
}

func resolveNaN(string) (any, error) {
	return math.NaN(), nil
}

// FormatFloat renders a float so it re-parses as a float: a decimal
// point is forced when the default formatting drops it. The .inf and
// .nan forms are preserved.
func FormatFloat(f float64, minFractionDigits int) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	if minFractionDigits > 0 && !strings.ContainsAny(s, "eE") {
		dot := strings.IndexByte(s, '.')
		frac := len(s) - dot - 1
		for ; frac < minFractionDigits; frac++ {
			s += "0"
		}
	}
	return s
}

// FormatExp renders a float in exponential form.
func FormatExp(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}

// FormatInt renders an integer honoring the HEX/OCT format hints,
// with the 1.1/1.2 octal difference and the negative-hex rules.
func FormatInt(v any, ctx *StringifyCtx) string {
	var (
		neg bool
		abs string
		dec string
	)
	switch x := v.(type) {
	case int64:
		dec = strconv.FormatInt(x, 10)
		neg = x < 0
		if neg {
			abs = strconv.FormatInt(-x, 10)
		} else {
			abs = dec
		}
	case int:
		return FormatInt(int64(x), ctx)
	case *big.Int:
		dec = x.String()
		neg = x.Sign() < 0
		abs = new(big.Int).Abs(x).String()
	default:
		return fmt.Sprint(v)
	}
	format := ""
	if ctx != nil {
		format = ctx.Format
	}
	version := "1.2"
	if ctx != nil && ctx.Version != "" {
		version = ctx.Version
	}
	switch format {
	case "HEX":
		if neg {
			if version == "1.1" {
				return "-0x" + toBase(abs, 16)
			}
			// 1.2 core has no negative-hex form
			return dec
		}
		return "0x" + toBase(abs, 16)
	case "OCT":
		if neg {
			if version == "1.1" {
				return "-0" + toBase(abs, 8)
			}
			return dec
		}
		if version == "1.1" {
			return "0" + toBase(abs, 8)
		}
		return "0o" + toBase(abs, 8)
	default:
		return dec
	}
}

func toBase(absDec string, base int) string {
	b, ok := new(big.Int).SetString(absDec, 10)
	if !ok {
		return absDec
	}
	return b.Text(base)
}
