package feed

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
	"tripwatch.villagelink.org/internal/logging"
	"tripwatch.villagelink.org/internal/models"
)

// DefaultSubject is the wildcard the tracker listens on; producers publish
// one message per vehicle per tick under villagelink.vehicles.<vehicleId>.
const DefaultSubject = "villagelink.vehicles.>"

// NATSSource subscribes to the push telemetry feed and forwards decoded
// reports into the Manager.
type NATSSource struct {
	nc     *nats.Conn
	sub    *nats.Subscription
	logger *slog.Logger
}

// ConnectNATS dials the feed and wires connection-state handlers through the
// manager so viewers see connectivity changes.
func ConnectNATS(url string, manager *Manager, logger *slog.Logger) (*NATSSource, error) {
	nc, err := nats.Connect(url,
		nats.Name("tripwatch"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			manager.SetConnected(false)
			logger.Warn("telemetry feed disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			manager.SetConnected(true)
			logger.Info("telemetry feed reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			manager.SetConnected(false)
			logger.Info("telemetry feed closed")
		}),
	)
	if err != nil {
		return nil, err
	}

	src := &NATSSource{nc: nc, logger: logger}
	src.sub, err = nc.Subscribe(DefaultSubject, func(msg *nats.Msg) {
		var t models.VehicleTelemetry
		if err := json.Unmarshal(msg.Data, &t); err != nil {
			logging.LogError(logger, "failed to decode telemetry message", err,
				slog.String("subject", msg.Subject))
			return
		}
		manager.Apply(t)
	})
	if err != nil {
		nc.Close()
		return nil, err
	}

	manager.SetConnected(true)
	return src, nil
}

// Close drains the subscription and closes the connection.
func (s *NATSSource) Close() {
	if s.sub != nil {
		if err := s.sub.Drain(); err != nil {
			logging.LogError(s.logger, "failed to drain telemetry subscription", err)
		}
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
