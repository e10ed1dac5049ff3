package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pwninator/jokes-sub011/internal/animator"
	"github.com/pwninator/jokes-sub011/internal/audio"
	"github.com/pwninator/jokes-sub011/internal/config"
	"github.com/pwninator/jokes-sub011/internal/sequence"
	"github.com/pwninator/jokes-sub011/internal/stream"
	"github.com/pwninator/jokes-sub011/internal/ws"
)

// options holds the effective runtime parameters after merging flags
// and config.yaml. An explicitly passed flag always wins over config.
type options struct {
	sequence string
	fps      int
	loop     bool
	mute     bool
	addr     string
}

// applyConfig fills in config.yaml values for every flag the user did
// not pass on the command line. set names the explicitly passed flags.
func applyConfig(o options, cfg *config.Config, set map[string]bool) options {
	if cfg == nil {
		return o
	}
	if cfg.Sequence != "" && !set["sequence"] {
		o.sequence = cfg.Sequence
	}
	if cfg.FPS > 0 && !set["fps"] {
		o.fps = cfg.FPS
	}
	if !set["loop"] {
		o.loop = cfg.Loop
	}
	if !set["mute"] {
		o.mute = cfg.Mute
	}
	if cfg.Addr != "" && !set["addr"] {
		o.addr = cfg.Addr
	}
	return o
}

func main() {
	// ---- Flags (config.yaml fills in anything not passed explicitly) ----
	var (
		seqPath    = flag.String("sequence", "", "path to a sequence file (.yaml or .json)")
		fps        = flag.Int("fps", 60, "clock ticks per second")
		loop       = flag.Bool("loop", false, "restart from the top when the sequence ends")
		mute       = flag.Bool("mute", false, "discard sound triggers instead of playing them")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}

	// ---- Effective params ----
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	opts := applyConfig(options{
		sequence: *seqPath,
		fps:      *fps,
		loop:     *loop,
		mute:     *mute,
		addr:     *addr,
	}, cfg, set)
	if opts.sequence == "" {
		log.Fatal().Msg("no sequence file; use -sequence or config.yaml")
	}

	seq, err := sequence.LoadFile(opts.sequence)
	if err != nil {
		log.Fatal().Err(err).Str("path", opts.sequence).Msg("loading sequence")
	}
	log.Info().Str("path", opts.sequence).Float64("duration_s", seq.TotalDuration()).Msg("sequence loaded")

	// ---- Playback ----
	var playback audio.Playback = audio.NopPlayback{}
	if !opts.mute {
		p, err := audio.NewSFXPlayer()
		if err != nil {
			log.Warn().Err(err).Msg("audio device unavailable; running muted")
		} else {
			if cfg != nil && cfg.Volume > 0 {
				p.Master = cfg.Volume
			}
			playback = p
		}
	}

	// ---- Animator ----
	clock := animator.NewTickerClock(opts.fps)
	clock.Loop = opts.loop

	state := ws.NewState()
	onFrame := state.PushFrame

	// ---- Optional MQTT mirror ----
	if cfg != nil && cfg.Mqtt != nil && cfg.Mqtt.URL != "" {
		opts := mqtt.NewClientOptions().
			AddBroker(cfg.Mqtt.URL).
			SetClientID("puppetsim").
			SetUsername(cfg.Mqtt.Username).
			SetPassword(cfg.Mqtt.Password).
			SetKeepAlive(30 * time.Second)
		client := mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			log.Warn().Err(token.Error()).Msg("mqtt connect failed; mirror disabled")
		} else {
			streamer := stream.NewStreamer(client, cfg.Mqtt.Topic)
			push := onFrame
			onFrame = func(f animator.Frame) {
				push(f)
				streamer.SendFrame(f)
			}
			log.Info().Str("topic", cfg.Mqtt.Topic).Msg("mqtt mirror enabled")
		}
	}

	anim := animator.New(seq, clock, playback, animator.Hooks{OnFrame: onFrame})
	state.Bind(anim)

	// ---- HTTP surface ----
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/frames", state.HandleFramesWS)
	mux.HandleFunc("/ws/control", state.HandleControlWS)
	mux.HandleFunc("/healthz", state.HandleHealth)
	go func() {
		log.Info().Str("addr", opts.addr).Msg("preview server listening")
		if err := http.ListenAndServe(opts.addr, mux); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	anim.Play()

	// ---- Teardown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down")
	anim.Dispose()
}
