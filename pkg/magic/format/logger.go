package format

import "github.com/hashicorp/go-hclog"

var codecLogger hclog.Logger = hclog.NewNullLogger()

// SetLogger routes codec trace output to logger. Passing nil silences it.
func SetLogger(logger hclog.Logger) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	codecLogger = logger.Named("format")
}
