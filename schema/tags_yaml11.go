package schema

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timestampRE covers the YAML 1.1 timestamp forms: date-only plus the
// T- or space-separated time with optional fraction and zone.
var timestampRE = regexp.MustCompile(
	`^([0-9]{4})-([0-9]{1,2})-([0-9]{1,2})` +
		`(?:(?:[Tt]|[ \t]+)([0-9]{1,2}):([0-9]{1,2}):([0-9]{1,2})(\.[0-9]*)?` +
		`(?:[ \t]*(Z|[-+][0-9]{1,2}(?::?[0-9]{2})?))?)?$`)

func yaml11Tags() []*Tag {
	return []*Tag{
		mapTag(),
		seqTag(),
		{
			Tag:      TagNull,
			Test:     regexp.MustCompile(`^(?:~|null|Null|NULL|)$`),
			Resolve:  func(string) (any, error) { return nil, nil },
			Identify: identifyNull,
		},
		{
			Tag: TagBool,
			Test: regexp.MustCompile(
				`^(?:y|Y|yes|Yes|YES|n|N|no|No|NO|true|True|TRUE|false|False|FALSE|on|On|ON|off|Off|OFF)$`),
			Resolve:  resolveBool11,
			Identify: identifyBool,
		},
		{
			Tag:     TagInt,
			Test:    regexp.MustCompile(`^[-+]?0b[0-1_]+$`),
			Resolve: resolveBin,
		},
		{
			Tag:     TagInt,
			Test:    regexp.MustCompile(`^[-+]?0x[0-9a-fA-F_]+$`),
			Resolve: resolveHex,
		},
		{
			Tag:     TagInt,
			Test:    regexp.MustCompile(`^[-+]?0[0-7_]+$`),
			Resolve: resolveOct11,
		},
		{
			Tag:      TagInt,
			Test:     regexp.MustCompile(`^[-+]?(?:0|[1-9][0-9_]*)$`),
			Resolve:  resolveDec,
			Identify: identifyInt,
			Stringify: func(v any, ctx *StringifyCtx) (string, bool) {
				return FormatInt(v, ctx), true
			},
		},
		{
			Tag:     TagInt,
			Test:    regexp.MustCompile(`^[-+]?[1-9][0-9_]*(?::[0-5]?[0-9])+$`),
			Resolve: resolveSexInt,
		},
		{
			Tag: TagFloat,
			Test: regexp.MustCompile(
				`^[-+]?(?:[0-9][0-9_]*)?\.[0-9_]*(?:[eE][-+]?[0-9]+)?$`),
			Resolve:  resolveFloat,
			Identify: identifyFloat,
			Stringify: stringifyFloat,
		},
		{
			Tag:     TagFloat,
			Test:    regexp.MustCompile(`^[-+]?[0-9][0-9_]*(?:\.[0-9_]*)?[eE][-+]?[0-9]+$`),
			Resolve: resolveFloat,
		},
		{
			Tag:     TagFloat,
			Test:    regexp.MustCompile(`^[-+]?[0-9][0-9_]*(?::[0-5]?[0-9])+\.[0-9_]*$`),
			Resolve: resolveSexFloat,
		},
		{
			Tag:     TagFloat,
			Test:    regexp.MustCompile(`^[-+]?\.(?:inf|Inf|INF)$`),
			Resolve: resolveInf,
		},
		{
			Tag:     TagFloat,
			Test:    regexp.MustCompile(`^\.(?:nan|NaN|NAN)$`),
			Resolve: resolveNaN,
		},
		{
			Tag:      TagTimestamp,
			Test:     timestampRE,
			Resolve:  resolveTimestamp,
			Identify: identifyTime,
			Stringify: stringifyTimestamp,
		},
		{
			Tag:      TagBinary,
			Identify: identifyBinary,
			Resolve:  resolveBinary,
			Stringify: stringifyBinary,
		},
		{
			Tag:     TagMerge,
			Test:    regexp.MustCompile(`^<<$`),
			Resolve: func(src string) (any, error) { return src, nil },
		},
		{Tag: TagOmap, Collection: true},
		{Tag: TagPairs, Collection: true},
		{Tag: TagSet, Collection: true},
		strTag(),
	}
}

func resolveBool11(src string) (any, error) {
	switch src[0] {
	case 'y', 'Y', 't', 'T':
		return true, nil
	case 'n', 'N', 'f', 'F':
		return false, nil
	}
	// on / off
	return len(src) == 2, nil
}

func resolveTimestamp(src string) (any, error) {
	m := timestampRE.FindStringSubmatch(src)
	if m == nil {
		return nil, fmt.Errorf("%w: timestamp %q", ErrResolve, src)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if m[4] == "" {
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	}
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	sec, _ := strconv.Atoi(m[6])
	nsec := 0
	if len(m[7]) > 1 {
		frac := m[7][1:]
		if len(frac) > 9 {
			frac = frac[:9]
		}
		for len(frac) < 9 {
			frac += "0"
		}
		nsec, _ = strconv.Atoi(frac)
	}
	loc := time.UTC
	if z := m[8]; z != "" && z != "Z" {
		sign := 1
		if z[0] == '-' {
			sign = -1
		}
		z = strings.ReplaceAll(z[1:], ":", "")
		var oh, om int
		switch len(z) {
		case 1, 2:
			oh, _ = strconv.Atoi(z)
		case 3:
			oh, _ = strconv.Atoi(z[:1])
			om, _ = strconv.Atoi(z[1:])
		default:
			oh, _ = strconv.Atoi(z[:2])
			om, _ = strconv.Atoi(z[2:])
		}
		loc = time.FixedZone("", sign*(oh*3600+om*60))
	}
	return time.Date(year, time.Month(month), day, hour, minute, sec, nsec, loc), nil
}

func stringifyTimestamp(v any, _ *StringifyCtx) (string, bool) {
	t, ok := v.(time.Time)
	if !ok {
		return "", false
	}
	if t.Nanosecond() == 0 {
		if h, m, s := t.Clock(); h == 0 && m == 0 && s == 0 && t.Location() == time.UTC {
			return t.Format("2006-01-02"), true
		}
		return t.Format("2006-01-02T15:04:05Z07:00"), true
	}
	return t.Format("2006-01-02T15:04:05.999999999Z07:00"), true
}

func resolveBinary(src string) (any, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, src)
	d, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: binary: %v", ErrResolve, err)
	}
	return d, nil
}

func stringifyBinary(v any, _ *StringifyCtx) (string, bool) {
	d, ok := v.([]byte)
	if !ok {
		return "", false
	}
	return base64.StdEncoding.EncodeToString(d), true
}
