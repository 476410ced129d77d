// Package logging constructs the process-wide zap logger, grounded on
// noah-isme-sma-adp-api's logger setup.
package logging

import "go.uber.org/zap"

// New builds a production logger in JSON mode, or a human-readable
// development logger when dev is true.
func New(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
