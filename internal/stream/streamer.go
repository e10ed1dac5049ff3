package stream

import (
	"encoding/json"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/pwninator/jokes-sub011/internal/animator"
)

// Streamer publishes sampled frames over MQTT so a remote display can
// mirror the character.
type Streamer struct {
	client mqtt.Client
	topic  string
}

// NewStreamer creates a Streamer publishing to the given topic.
func NewStreamer(client mqtt.Client, topic string) *Streamer {
	return &Streamer{client: client, topic: topic}
}

// SendFrame publishes one frame as JSON. Wire it as the animator's OnFrame
// hook; delivery is fire-and-forget so a slow broker cannot stall the tick.
func (s *Streamer) SendFrame(f animator.Frame) {
	b, err := json.Marshal(f)
	if err != nil {
		return
	}
	s.client.Publish(s.topic, 0, false, b)
}
