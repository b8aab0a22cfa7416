// BYZRA ⸻ internal/metadata/directive.go
// per-field user intent

package metadata

import (
	"fmt"
	"strings"
)

type DirectiveKind uint8

const (
	Random DirectiveKind = iota
	Keep
	Clear
	Explicit
)

// one instruction for one field
type Directive struct {
	Kind  DirectiveKind
	Value string
}

func RandomValue() Directive { return Directive{Kind: Random} }

func KeepValue() Directive { return Directive{Kind: Keep} }

func ClearValue() Directive { return Directive{Kind: Clear} }

func ExplicitValue(v string) Directive { return Directive{Kind: Explicit, Value: v} }

// a field missing from the map resolves as Random
type Directives map[Field]Directive

func (d Directives) For(f Field) Directive {
	if dir, ok := d[f]; ok {
		return dir
	}
	return RandomValue()
}

// every field set to the same directive
func Uniform(dir Directive) Directives {
	out := make(Directives, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		out[f] = dir
	}
	return out
}

// tokens accepted in presets and on the command line,
// including the zh labels
var directiveTokens = map[string]DirectiveKind{
	"random":   Random,
	"keep":     Keep,
	"clear":    Clear,
	"【随机生成】":   Random,
	"【不修改】":    Keep,
	"【空数据】":    Clear,
	"【清除数据】":   Clear,
	"<random>": Random,
	"<keep>":   Keep,
	"<clear>":  Clear,
}

// parses a directive from text; a leading "=" forces an explicit value
func ParseDirective(text string) Directive {
	if strings.HasPrefix(text, "=") {
		return ExplicitValue(text[1:])
	}

	token := strings.ToLower(strings.TrimSpace(text))
	if kind, ok := directiveTokens[token]; ok {
		return Directive{Kind: kind}
	}

	return ExplicitValue(text)
}

// parses "Field=directive"
func ParseAssignment(s string) (Field, Directive, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return 0, Directive{}, fmt.Errorf("expected Field=directive, got %q", s)
	}

	field, ok := ParseField(name)
	if !ok {
		return 0, Directive{}, fmt.Errorf("unknown field: %s", name)
	}

	return field, ParseDirective(value), nil
}

func (k DirectiveKind) String() string {
	switch k {
	case Random:
		return "random"
	case Keep:
		return "keep"
	case Clear:
		return "clear"
	case Explicit:
		return "explicit"
	default:
		return "unknown"
	}
}

func (d Directive) String() string {
	if d.Kind == Explicit {
		return "=" + d.Value
	}
	return d.Kind.String()
}
