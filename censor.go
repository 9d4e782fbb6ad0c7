package obscured

import (
	"reflect"
	"regexp"
	"strings"
)

// Censor decides whether a value is wrapped in a container. fieldName is the attribute key, map key or struct field name; tag is the field's value for the configured tag key (see WithCustomTagKey), or empty outside structs. value is nil for an unexported struct field that could not be read.
type Censor func(fieldName string, value any, tag string) bool

// Censors is a list of Censor; a value is obscured if any of them matches.
type Censors []Censor

func (x Censors) ShouldObscure(fieldName string, value any, tag string) bool {
	for _, censor := range x {
		if censor(fieldName, value, tag) {
			return true
		}
	}
	return false
}

// tagCensor inspects the whole struct tag of a field, so it can match tag keys other than the configured one.
type tagCensor func(tag reflect.StructTag) bool

type tagCensors []tagCensor

func (x tagCensors) match(tag reflect.StructTag) bool {
	if tag == "" {
		return false
	}
	for _, censor := range x {
		if censor(tag) {
			return true
		}
	}
	return false
}

func stringOf(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.String {
		return "", false
	}
	return v.String(), true
}

// newContainCensor matches strings that contain target anywhere. The whole string is obscured, not only the matching part.
func newContainCensor(target string) Censor {
	return func(fieldName string, value any, tag string) bool {
		s, ok := stringOf(value)
		return ok && strings.Contains(s, target)
	}
}

func newRegexCensor(target *regexp.Regexp) Censor {
	return func(fieldName string, value any, tag string) bool {
		s, ok := stringOf(value)
		return ok && target.MatchString(s)
	}
}

// newTypeCensor matches the exact dynamic type T; named types over T do not match.
func newTypeCensor[T any]() Censor {
	target := reflect.TypeOf((*T)(nil)).Elem()
	return func(fieldName string, value any, tag string) bool {
		return value != nil && reflect.TypeOf(value) == target
	}
}

func newTagCensor(tagValue string) Censor {
	return func(fieldName string, value any, tag string) bool {
		return tag == tagValue
	}
}

func newFieldNameCensor(name string) Censor {
	return func(fieldName string, value any, tag string) bool {
		return name == fieldName
	}
}

func newFieldPrefixCensor(prefix string) Censor {
	return func(fieldName string, value any, tag string) bool {
		return strings.HasPrefix(fieldName, prefix)
	}
}

// newTagMatchCensor matches fields that carry tagKey and whose value satisfies match. A field without tagKey never matches, even if match accepts the empty string.
func newTagMatchCensor(tagKey string, match func(tagValue string) bool) tagCensor {
	return func(tag reflect.StructTag) bool {
		v, ok := tag.Lookup(tagKey)
		return ok && match(v)
	}
}

func newTagKeyValueCensor(tagKey, tagValue string) tagCensor {
	return newTagMatchCensor(tagKey, func(v string) bool { return v == tagValue })
}

func newTagKeyValueCensorWithRegex(tagKey string, target *regexp.Regexp) tagCensor {
	return newTagMatchCensor(tagKey, target.MatchString)
}

func newTagKeyValueContainsCensor(tagKey, target string) tagCensor {
	return newTagMatchCensor(tagKey, func(v string) bool { return strings.Contains(v, target) })
}
