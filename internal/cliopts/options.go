package cliopts

import (
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Option is a single named option value.
type Option struct {
	Name  string
	Value any
}

// Opt is shorthand for constructing an Option.
func Opt(name string, value any) Option {
	return Option{Name: name, Value: value}
}

// Options is an immutable, ordered set of command-line options.
// The zero value is an empty set and is ready to use.
type Options struct {
	values *orderedmap.OrderedMap[string, any]
	args   []string
	str    string
}

// New creates an option set from the given pairs. Later pairs override
// earlier pairs with the same name while keeping the first position.
func New(pairs ...Option) Options {
	values := orderedmap.New[string, any]()
	for _, p := range pairs {
		values.Set(p.Name, p.Value)
	}
	return build(values)
}

// Add returns a new option set with pairs merged over the receiver.
// Existing names keep their position and take the new value; new names are
// appended in the order given. The receiver is left untouched.
func (o Options) Add(pairs ...Option) Options {
	merged := orderedmap.New[string, any]()
	if o.values != nil {
		for pair := o.values.Oldest(); pair != nil; pair = pair.Next() {
			merged.Set(pair.Key, pair.Value)
		}
	}
	for _, p := range pairs {
		merged.Set(p.Name, p.Value)
	}
	return build(merged)
}

// Get returns the stored value for name.
func (o Options) Get(name string) (any, bool) {
	if o.values == nil {
		return nil, false
	}
	return o.values.Get(name)
}

// Len returns the number of options in the set, including false booleans.
func (o Options) Len() int {
	if o.values == nil {
		return 0
	}
	return o.values.Len()
}

// Names returns option names in insertion order.
func (o Options) Names() []string {
	if o.values == nil {
		return nil
	}
	names := make([]string, 0, o.values.Len())
	for pair := o.values.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Args returns the rendered options as unquoted argv tokens.
func (o Options) Args() []string {
	out := make([]string, len(o.args))
	copy(out, o.args)
	return out
}

// String returns the rendered, shell-quoted command-line fragment.
func (o Options) String() string {
	return o.str
}

// FlagName converts a logical option name into its double-dash flag.
func FlagName(name string) string {
	return "--" + strings.ReplaceAll(name, "_", "-")
}

func build(values *orderedmap.OrderedMap[string, any]) Options {
	var args, quoted []string
	for pair := values.Oldest(); pair != nil; pair = pair.Next() {
		flag := FlagName(pair.Key)
		switch v := pair.Value.(type) {
		case bool:
			if v {
				args = append(args, flag)
				quoted = append(quoted, flag)
			}
		default:
			s := render(v)
			args = append(args, flag, s)
			quoted = append(quoted, flag, shellescape.Quote(s))
		}
	}
	return Options{
		values: values,
		args:   args,
		str:    strings.Join(quoted, " "),
	}
}

func render(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
