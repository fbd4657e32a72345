package gateway

import (
	"fmt"
	"net/http"
	"time"
)

// Supported driver names.
const (
	DriverMessageCentral = "message-central"
	DriverSMSDirect      = "sms-direct"
	DriverLog            = "log"
)

// FactoryOptions carries the per-driver configuration.
type FactoryOptions struct {
	Timeout        time.Duration
	MessageCentral MessageCentralConfig
	SMSDirect      SMSDirectConfig
}

// NewFromDriver builds a Gateway for the configured driver name.
func NewFromDriver(driver string, opts FactoryOptions) (Gateway, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	switch driver {
	case DriverMessageCentral:
		return NewMessageCentral(opts.MessageCentral, client), nil
	case DriverSMSDirect:
		return NewSMSDirect(opts.SMSDirect, client), nil
	case DriverLog:
		return NewLog(), nil
	default:
		return nil, fmt.Errorf("gateway: unsupported driver %q", driver)
	}
}
