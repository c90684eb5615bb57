package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/salcedoinaki/fcsim/internal/sim"
)

const mqttConnectTimeout = 5 * time.Second

// MQTTSink publishes each snapshot as JSON on a fixed topic.
type MQTTSink struct {
	client paho.Client
	topic  string
}

func NewMQTTSink(broker, clientID, topic string) (*MQTTSink, error) {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("telemetry: mqtt connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("telemetry: mqtt connect to %s: %w", broker, err)
	}
	return &MQTTSink{client: client, topic: topic}, nil
}

func (s *MQTTSink) Record(snap sim.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	token := s.client.Publish(s.topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

func (s *MQTTSink) Close() { s.client.Disconnect(250) }
