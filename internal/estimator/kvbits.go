package estimator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DefaultKVCacheBits is used whenever the KV cache width cannot be derived.
const DefaultKVCacheBits = 16

// minModelBitsForSharedKV is the lowest model precision an unset KV cache
// inherits. Below it the cache stays at DefaultKVCacheBits.
const minModelBitsForSharedKV = 8

// KVCacheMode selects how the KV cache element width is chosen.
type KVCacheMode int

const (
	// KVCacheUnset is the zero value: no preference was given.
	KVCacheUnset KVCacheMode = iota
	// KVCacheExplicit uses a concrete width.
	KVCacheExplicit
	// KVCacheSameAsModel reuses the model weight precision.
	KVCacheSameAsModel
)

func (m KVCacheMode) String() string {
	switch m {
	case KVCacheExplicit:
		return "explicit"
	case KVCacheSameAsModel:
		return "same"
	default:
		return "unset"
	}
}

// SameAsModelText is the selection value meaning "use model precision".
const SameAsModelText = "same"

// KVCacheBits is the KV cache precision setting. Build it with
// ExplicitKVCacheBits, SameAsModelKVCacheBits or ParseKVCacheBits; the zero
// value is unset.
type KVCacheBits struct {
	Mode KVCacheMode
	Bits float64
	// Raw holds the source text when the value came from ParseKVCacheBits.
	Raw string
}

// ExplicitKVCacheBits returns a setting with a concrete width.
func ExplicitKVCacheBits(bits float64) KVCacheBits {
	return KVCacheBits{Mode: KVCacheExplicit, Bits: bits}
}

// SameAsModelKVCacheBits returns a setting that follows the model precision.
func SameAsModelKVCacheBits() KVCacheBits {
	return KVCacheBits{Mode: KVCacheSameAsModel}
}

// ParseKVCacheBits interprets selection text. Empty text is unset, "same"
// (any case) follows the model, anything else is read as a leading integer.
// Text without a leading integer still yields an explicit setting so that
// resolution can report the offending value.
func ParseKVCacheBits(s string) KVCacheBits {
	if s == "" {
		return KVCacheBits{}
	}
	if strings.EqualFold(s, SameAsModelText) {
		return SameAsModelKVCacheBits()
	}
	n, ok := parseIntPrefix(s)
	if !ok {
		n = math.NaN()
	}
	return KVCacheBits{Mode: KVCacheExplicit, Bits: n, Raw: s}
}

// String renders the setting the way a selection widget would submit it.
func (k KVCacheBits) String() string {
	switch k.Mode {
	case KVCacheSameAsModel:
		return SameAsModelText
	case KVCacheExplicit:
		if k.Raw != "" {
			return k.Raw
		}
		return formatBits(k.Bits)
	default:
		return ""
	}
}

// ResolveKVCacheBits derives the KV cache element width from the setting and
// the model precision. Warnings describe every default that was applied.
func ResolveKVCacheBits(kv KVCacheBits, modelBits float64) (float64, []string) {
	var warnings []string
	var bits float64

	switch {
	case kv.Mode == KVCacheExplicit && kv.Bits > 0:
		bits = kv.Bits
	case kv.Mode == KVCacheSameAsModel:
		if modelBits > 0 {
			bits = modelBits
		} else {
			bits = DefaultKVCacheBits
			warnings = append(warnings, "KV cache set to 'Same as Model', but model quantization is not specified or invalid. Defaulted KV cache to 16-bit.")
		}
	case kv.Mode == KVCacheExplicit && kv.Raw != "":
		bits = DefaultKVCacheBits
		warnings = append(warnings, fmt.Sprintf("Invalid KV cache precision string '%s'. Defaulted KV cache to 16-bit.", kv.Raw))
	default:
		// Aggressively quantized weights keep a wider cache.
		if modelBits > 0 {
			bits = modelBits
			if modelBits < minModelBitsForSharedKV {
				bits = DefaultKVCacheBits
			}
		} else {
			bits = DefaultKVCacheBits
		}
		warnings = append(warnings, fmt.Sprintf("KV cache precision not specified or invalid. Defaulted to %s-bit.", formatBits(bits)))
	}

	if !(bits > 0) {
		bits = DefaultKVCacheBits
		warnings = append(warnings, "Derived KV cache precision was invalid (<=0). Defaulted to 16-bit.")
	}
	return bits, warnings
}

// parseIntPrefix reads an optionally signed run of decimal digits after any
// leading whitespace and ignores the rest of the text.
func parseIntPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return math.Trunc(n), true
}

func formatBits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
