package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/pwninator/jokes-sub011/internal/animator"
)

// State is the preview/control surface: it streams sampled frames to
// websocket clients and relays transport commands to the animator.
type State struct {
	mu        sync.Mutex
	anim      *animator.Animator
	clients   map[*websocket.Conn]bool
	frameID   uint64
	startTime time.Time
}

func NewState() *State {
	return &State{
		clients:   map[*websocket.Conn]bool{},
		startTime: time.Now(),
	}
}

// Bind points the control surface at its animator. Must be called before
// the HTTP handlers are served; the animator's frame hook can be wired to
// PushFrame before Bind.
func (s *State) Bind(anim *animator.Animator) {
	s.mu.Lock()
	s.anim = anim
	s.mu.Unlock()
}

func (s *State) animator() *animator.Animator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anim
}

// PushFrame broadcasts one sampled frame to every subscribed client.
// Wire it as the animator's OnFrame hook.
func (s *State) PushFrame(f animator.Frame) {
	s.mu.Lock()
	s.frameID++
	msg := struct {
		FrameID uint64 `json:"frame_id"`
		animator.Frame
	}{s.frameID, f}
	b, err := json.Marshal(msg)
	if err != nil {
		s.mu.Unlock()
		return
	}
	for conn := range s.clients {
		// A stalled client gets 200ms, then it is dropped. Without the
		// deadline one slow reader would jam every subsequent frame.
		conn.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			delete(s.clients, conn)
			conn.Close()
		}
	}
	s.mu.Unlock()
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		s.applyControl(msg)
	}
}

func (s *State) applyControl(msg map[string]any) {
	anim := s.animator()
	if anim == nil {
		return
	}
	cmd, _ := msg["cmd"].(string)
	switch cmd {
	case "play":
		anim.Play()
	case "pause":
		anim.Pause()
	case "seek":
		t, ok := msg["t"].(float64)
		if !ok {
			log.Warn().Interface("msg", msg).Msg("seek without numeric t")
			return
		}
		anim.Seek(time.Duration(t * float64(time.Second)))
	default:
		log.Warn().Str("cmd", cmd).Msg("unknown control command")
	}
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	frameID := s.frameID
	s.mu.Unlock()
	resp := map[string]any{
		"frame_id": frameID,
		"uptime_s": time.Since(s.startTime).Seconds(),
	}
	if anim := s.animator(); anim != nil {
		resp["duration_s"] = anim.TotalDuration().Seconds()
		resp["playing"] = anim.Playing()
		resp["active_sounds"] = anim.ActiveSounds()
	}
	_ = json.NewEncoder(w).Encode(resp)
}
