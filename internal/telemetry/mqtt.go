package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/effevee/weatherstation/internal/sensors"
	"github.com/effevee/weatherstation/log"
)

const mqttTimeout = 5 * time.Second

// MQTT publishes the cycle's readings to the ThingSpeak MQTT ingest
// instead of the HTTP update endpoint. One connect-publish-disconnect per
// cycle; the broker session would not survive the power-down anyway.
type MQTT struct {
	broker    string
	port      int
	clientID  string
	username  string
	password  string
	channelID string
}

type MQTTOpts struct {
	Broker    string
	Port      int
	ClientID  string
	Username  string
	Password  string
	ChannelID string
}

func NewMQTT(o MQTTOpts) *MQTT {
	return &MQTT{
		broker:    o.Broker,
		port:      o.Port,
		clientID:  o.ClientID,
		username:  o.Username,
		password:  o.Password,
		channelID: o.ChannelID,
	}
}

// paho tokens carry their own deadlines, the cycle context is not needed.
func (m *MQTT) Upload(_ context.Context, rs []sensors.Reading) error {
	q := url.Values{}
	if encodeFields(q, rs) == 0 {
		log.Info.Println("nothing valid to publish, skipping")

		return nil
	}
	q.Set("status", "MQTTPUBLISH")

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", m.broker, m.port))
	opts.SetClientID(m.clientID)
	opts.SetUsername(m.username)
	opts.SetPassword(m.password)
	opts.SetCleanSession(true)
	opts.SetConnectTimeout(mqttTimeout)

	client := mqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(mqttTimeout) {
		return fmt.Errorf("%w: mqtt connect timeout", ErrUnavailable)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: mqtt connect: %s", ErrUnavailable, err.Error())
	}
	defer client.Disconnect(250)

	topic := fmt.Sprintf("channels/%s/publish", m.channelID)
	pub := client.Publish(topic, 1, false, q.Encode())
	if !pub.WaitTimeout(mqttTimeout) {
		return fmt.Errorf("%w: publish timeout for %s", ErrStatus, topic)
	}
	if err := pub.Error(); err != nil {
		return fmt.Errorf("%w: publish: %s", ErrStatus, err.Error())
	}

	log.Info.Printf("published to %s", topic)

	return nil
}
