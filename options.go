package obscured

import (
	"reflect"
	"regexp"
)

// WithCensor is an option to add a censor function. If the censor function returns true, the value is wrapped in a container and renders as the placeholder.
func WithCensor(censor Censor) Option {
	return func(x *obscurer) {
		x.censors = append(x.censors, censor)
	}
}

// WithContain is an option to check if the value is a string containing the target string. If it contains the target string, the whole value will be obscured.
func WithContain(target string) Option {
	return WithCensor(newContainCensor(target))
}

// WithRegex is an option to check if the value is a string matching the target regex. If it matches, the value will be obscured.
func WithRegex(target *regexp.Regexp) Option {
	return WithCensor(newRegexCensor(target))
}

// WithType is an option to check if the value has the target type. If the value is the target type, the value will be obscured.
func WithType[T any]() Option {
	return WithCensor(newTypeCensor[T]())
}

// WithTag is an option to check if the struct field has the target tag in `obscured:"xxx"`. If the field has the target tag, the field will be obscured. The tag key can be changed by WithCustomTagKey.
func WithTag(tagValue string) Option {
	return WithCensor(newTagCensor(tagValue))
}

// WithCustomTagKey is an option to set the struct tag key read by WithTag. The default tag key is `obscured`. If tagKey is empty, WithCustomTagKey panics.
func WithCustomTagKey(tagKey string) Option {
	if tagKey == "" {
		panic("obscured: tag key must not be empty")
	}
	return func(x *obscurer) {
		x.tagKey = tagKey
	}
}

// WithFieldName is an option to check if the field name is matched with the target field name. The field name is the attribute key, the map key, or the struct field name. If matched, the value will be obscured.
func WithFieldName(fieldName string) Option {
	return WithCensor(newFieldNameCensor(fieldName))
}

// WithFieldPrefix is an option to check if the field name has the target prefix. If the field name has the target prefix, the value will be obscured.
func WithFieldPrefix(prefix string) Option {
	return WithCensor(newFieldPrefixCensor(prefix))
}

// WithAllowedType is an option to exclude types from obscuring. Values of these types are passed through untouched and are not walked into, even if a censor matches them.
func WithAllowedType(types ...reflect.Type) Option {
	return func(x *obscurer) {
		for _, t := range types {
			x.allowedTypes[t] = struct{}{}
		}
	}
}

func withTagCensor(censor tagCensor) Option {
	return func(x *obscurer) {
		x.tagCensors = append(x.tagCensors, censor)
	}
}

// WithTagKeyValue is an option to check if the struct field has the tag `tagKey:"tagValue"`. Unlike WithTag, tagKey is independent of WithCustomTagKey, so tags written for other tools (e.g. `json:"password"`) can be matched.
func WithTagKeyValue(tagKey, tagValue string) Option {
	return withTagCensor(newTagKeyValueCensor(tagKey, tagValue))
}

// WithTagKeyValueWithRegex is an option to check if the struct field has tagKey and its tag value matches the target regex.
func WithTagKeyValueWithRegex(tagKey string, target *regexp.Regexp) Option {
	return withTagCensor(newTagKeyValueCensorWithRegex(tagKey, target))
}

// WithTagKeyValueContains is an option to check if the struct field has tagKey and its tag value contains target.
func WithTagKeyValueContains(tagKey, target string) Option {
	return withTagCensor(newTagKeyValueContainsCensor(tagKey, target))
}

// WithTagKeyValueMatch is an option to check if the struct field has tagKey and matchFn returns true for its tag value.
func WithTagKeyValueMatch(tagKey string, matchFn func(tagValue string) bool) Option {
	return withTagCensor(newTagMatchCensor(tagKey, matchFn))
}
