// Package flag parses the analyze command line.
package flag

import "github.com/thirukguru/sg-audit/model"

type service struct{}

// Service is the interface for CLI flag service.
type Service interface {
	GetParsedFlags() (model.Flags, error)
}
