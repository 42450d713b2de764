package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mbeissinger/vj-looper/constant"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is one configuration setting with its default value.
// The type of Value is the type viper casts the setting to.
type Field struct {
	Key         string
	Value       any
	Description string
}

// parser turns command line words into a value of one field type.
type parser struct {
	name  string
	parse func(words []string) (any, error)
}

func scalar[T any](name string, conv func(string) (T, error)) parser {
	return parser{name: name, parse: func(words []string) (any, error) {
		v, err := conv(words[0])
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid %s", words[0], name)
		}
		return v, nil
	}}
}

func (f *Field) parser() (parser, bool) {
	switch f.Value.(type) {
	case string:
		return scalar("string", func(s string) (string, error) { return s, nil }), true
	case int:
		return scalar("int", strconv.Atoi), true
	case float64:
		return scalar("float", func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }), true
	case bool:
		return scalar("bool", strconv.ParseBool), true
	case []string:
		return parser{name: "[]string", parse: func(words []string) (any, error) { return words, nil }}, true
	default:
		return parser{}, false
	}
}

// TypeName names the type of the field as shown by `config info`.
func (f *Field) TypeName() string {
	if p, ok := f.parser(); ok {
		return p.name
	}
	return "unknown"
}

// Parse converts the words given to `config set` into the field's type. Lists take every word.
func (f *Field) Parse(words []string) (any, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("no value given for %s", f.Key)
	}

	p, ok := f.parser()
	if !ok {
		return nil, fmt.Errorf("%s cannot be set from the command line", f.Key)
	}
	return p.parse(words)
}

// Env is the environment variable overriding the field, e.g. VJLOOPER_PLAYBACK_DURATION.
func (f *Field) Env() string {
	prefix := strings.ToUpper(constant.App) + "_"
	return prefix + strings.TrimPrefix(strings.ToUpper(EnvKeyReplacer.Replace(f.Key)), prefix)
}

// Pretty renders the field for `config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"key":         f.Key,
		"value":       viper.Get(f.Key),
		"default":     f.Value,
		"description": f.Description,
		"type":        f.TypeName(),
	})
}
