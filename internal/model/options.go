package model

import "github.com/go-openapi/inflect"

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	// Pluralize derives the default hasMany accessor name.
	Pluralize func(string) string
	// DateFormat is applied to date fields without an explicit format.
	DateFormat string
}

func defaultOptions() Options {
	return Options{
		Pluralize:  inflect.Pluralize,
		DateFormat: DefaultDateFormat,
	}
}
