package adapter

// Option configures a Marshal or Unmarshal call. newConfig starts from
// the defaults (tag key "nachricht", borrowing enabled) and each Option
// then mutates that config in place, in the functional-options style.
type Option func(*config)

type config struct {
	tagKey      string
	copyStrings bool
}

func newConfig(opts []Option) config {
	c := config{tagKey: "nachricht"}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithTagKey overrides the struct tag key consulted for field name
// overrides and the "-" skip marker. Defaults to "nachricht".
func WithTagKey(key string) Option {
	return func(c *config) { c.tagKey = key }
}

// WithCopyStrings forces Unmarshal to copy decoded strings and byte
// slices assigned to string and []byte targets instead of borrowing
// from the input buffer. A value assigned to an empty-interface (any)
// target is stored as the decoded value.Value and is not copied, so its
// strings and bytes still borrow from the input. Borrowing (the
// default) is only safe when the caller keeps the decoded input alive
// and unmodified for as long as the unmarshaled value is in use.
func WithCopyStrings(copy bool) Option {
	return func(c *config) { c.copyStrings = copy }
}
