package schema

import (
	"regexp"
)

func strTag() *Tag {
	return &Tag{
		Tag:      TagStr,
		Identify: identifyString,
	}
}

func mapTag() *Tag {
	return &Tag{Tag: TagMap, Collection: true}
}

func seqTag() *Tag {
	return &Tag{Tag: TagSeq, Collection: true}
}

func failsafeTags() []*Tag {
	return []*Tag{mapTag(), seqTag(), strTag()}
}

func jsonTags() []*Tag {
	return []*Tag{
		mapTag(),
		seqTag(),
		{
			Tag:      TagNull,
			Test:     regexp.MustCompile(`^null$`),
			Resolve:  func(string) (any, error) { return nil, nil },
			Identify: identifyNull,
		},
		{
			Tag:      TagBool,
			Test:     regexp.MustCompile(`^(?:true|false)$`),
			Resolve:  func(src string) (any, error) { return src == "true", nil },
			Identify: identifyBool,
		},
		{
			Tag:      TagInt,
			Test:     regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)$`),
			Resolve:  resolveDec,
			Identify: identifyInt,
			Stringify: func(v any, ctx *StringifyCtx) (string, bool) {
				return FormatInt(v, ctx), true
			},
		},
		{
			Tag:      TagFloat,
			Test:     regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)(?:\.[0-9]*)?(?:[eE][-+]?[0-9]+)?$`),
			Resolve:  resolveFloat,
			Identify: identifyFloat,
			Stringify: stringifyFloat,
		},
		strTag(),
	}
}

func coreTags() []*Tag {
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
			Tag:      TagBool,
			Test:     regexp.MustCompile(`^(?:true|True|TRUE|false|False|FALSE)$`),
			Resolve:  resolveBoolCore,
			Identify: identifyBool,
		},
		{
			Tag:      TagInt,
			Test:     regexp.MustCompile(`^[-+]?[0-9]+$`),
			Resolve:  resolveDec,
			Identify: identifyInt,
			Stringify: func(v any, ctx *StringifyCtx) (string, bool) {
				return FormatInt(v, ctx), true
			},
		},
		{
			Tag:     TagInt,
			Test:    regexp.MustCompile(`^0o[0-7]+$`),
			Resolve: resolveOct0o,
		},
		{
			Tag:     TagInt,
			Test:    regexp.MustCompile(`^0x[0-9a-fA-F]+$`),
			Resolve: resolveHex,
		},
		{
			Tag:      TagFloat,
			Test:     regexp.MustCompile(`^[-+]?(?:\.[0-9]+|[0-9]+(?:\.[0-9]*)?)(?:[eE][-+]?[0-9]+)?$`),
			Resolve:  resolveFloat,
			Identify: identifyFloat,
			Stringify: stringifyFloat,
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
		strTag(),
	}
}

func resolveBoolCore(src string) (any, error) {
	return src[0] == 't' || src[0] == 'T', nil
}

func stringifyFloat(v any, ctx *StringifyCtx) (string, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		return "", false
	}
	if ctx != nil && ctx.Format == "EXP" {
		return FormatExp(f), true
	}
	min := 0
	if ctx != nil {
		min = ctx.MinFractionDigits
	}
	return FormatFloat(f, min), true
}
