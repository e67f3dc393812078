package csvimport

type options struct {
	maxRows int
}

func defaultOptions() options {
	return options{}
}

// Option configures Parse.
type Option func(*options)

// WithMaxRows fails the parse once more than n valid rows are read.
// n <= 0 means unbounded.
func WithMaxRows(n int) Option {
	return func(o *options) {
		o.maxRows = n
	}
}
