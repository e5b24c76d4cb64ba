package mockserver

import (
	"fmt"

	"github.com/grandcat/zeroconf"
	"github.com/muurk/campuspass/internal/discovery"
	"github.com/muurk/campuspass/internal/logging"
	"github.com/muurk/campuspass/internal/version"
	"go.uber.org/zap"
)

// InstanceName is the mDNS instance the mock backend registers.
const InstanceName = "campuspass-mock"

// advertise registers the backend on the local network. The caller must
// Shutdown the returned server.
func advertise(port int) (*zeroconf.Server, error) {
	srv, err := zeroconf.Register(
		InstanceName,
		discovery.ServiceType,
		discovery.ServiceDomain,
		port,
		discovery.TXTRecords(version.Version),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising over mDNS",
		zap.String("instance", InstanceName),
		zap.String("service", discovery.ServiceType),
		zap.Int("port", port),
	)
	return srv, nil
}
