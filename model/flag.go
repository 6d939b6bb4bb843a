package model

import "time"

// Flags represents the command line flags of the analyze command.
type Flags struct {
	Profile       string
	Region        string
	Version       bool
	Output        string
	OutputFile    string
	WhitelistPath string
	MaxParallel   int
	CallTimeout   time.Duration
	Store         bool
	DBPath        string
	LogLevel      string
}
