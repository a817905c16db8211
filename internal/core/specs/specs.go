// Package specs maintains the human-readable hardware spec strings stored on an asset
// (specs_ram, specs_storage, specs_storage_2) as accessories are installed and removed.
//
// A spec string is read as a tagged value: a GB quantity ("16GB", "8 GB DDR4") or an opaque
// label ("Samsung 980 + WD Blue"). Quantities add and subtract exactly. Labels are kept as
// " + " separated segments; removing a label drops exactly one whole segment when it exists,
// otherwise it falls back to a substring patch, which is lossy when segments were reordered
// or duplicated by hand.
package specs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const Separator = " + "

type Kind int

const (
	KindEmpty Kind = iota
	KindQuantity
	KindLabel
)

type Value struct {
	Kind  Kind
	GB    int
	Label string
}

var digitsPattern = regexp.MustCompile(`\d+`)

// Parse classifies s. A string is a quantity when its first integer token is positive and it
// mentions "GB" in any case; the number is taken as gigabytes.
func Parse(s string) Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Value{Kind: KindEmpty}
	}

	if strings.Contains(strings.ToUpper(trimmed), "GB") {
		if token := digitsPattern.FindString(trimmed); token != "" {
			if n, err := strconv.Atoi(token); err == nil && n > 0 {
				return Value{Kind: KindQuantity, GB: n, Label: trimmed}
			}
		}
	}

	return Value{Kind: KindLabel, Label: trimmed}
}

func (v Value) String() string {
	switch v.Kind {
	case KindQuantity:
		return FormatGB(v.GB)
	case KindLabel:
		return v.Label
	default:
		return ""
	}
}

func FormatGB(n int) string {
	return fmt.Sprintf("%dGB", n)
}

// AddRAM returns the RAM spec after installing a module described by added.
func AddRAM(current, added string) string {
	cur, add := Parse(current), Parse(added)
	if cur.Kind == KindQuantity && add.Kind == KindQuantity {
		return FormatGB(cur.GB + add.GB)
	}
	return appendSegment(current, added)
}

// RemoveRAM reverses AddRAM. A quantity that drops to zero or below clears the field.
func RemoveRAM(current, removed string) string {
	cur, rem := Parse(current), Parse(removed)
	if cur.Kind == KindQuantity && rem.Kind == KindQuantity {
		left := cur.GB - rem.GB
		if left > 0 {
			return FormatGB(left)
		}
		return ""
	}
	return removeSegment(current, removed)
}

// AddStorage fills the primary slot, then the secondary slot, then appends to the secondary.
func AddStorage(primary, secondary, added string) (string, string) {
	switch {
	case strings.TrimSpace(primary) == "":
		return added, secondary
	case strings.TrimSpace(secondary) == "":
		return primary, added
	default:
		return primary, secondary + Separator + added
	}
}

// RemoveStorage removes removed from the first slot containing it, primary first. ok is false
// when neither slot mentions it.
func RemoveStorage(primary, secondary, removed string) (newPrimary, newSecondary string, ok bool) {
	if strings.TrimSpace(removed) == "" {
		return primary, secondary, false
	}
	if strings.Contains(primary, removed) {
		return removeSegment(primary, removed), secondary, true
	}
	if strings.Contains(secondary, removed) {
		return primary, removeSegment(secondary, removed), true
	}
	return primary, secondary, false
}

func appendSegment(current, added string) string {
	if strings.TrimSpace(current) == "" {
		return added
	}
	return current + Separator + added
}

func removeSegment(current, removed string) string {
	if removed == "" {
		return strings.TrimSpace(current)
	}

	parts := strings.Split(current, Separator)
	for i, part := range parts {
		if strings.TrimSpace(part) == strings.TrimSpace(removed) {
			parts = append(parts[:i], parts[i+1:]...)
			return strings.TrimSpace(strings.Join(parts, Separator))
		}
	}

	// lossy fallback: patch the first occurrence together with one adjacent separator
	for _, pattern := range []string{Separator + removed, removed + Separator, removed} {
		if strings.Contains(current, pattern) {
			return strings.TrimSpace(strings.Replace(current, pattern, "", 1))
		}
	}
	return strings.TrimSpace(current)
}
