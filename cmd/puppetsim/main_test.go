package main

import (
	"testing"

	"github.com/pwninator/jokes-sub011/internal/config"
)

func TestApplyConfigFillsUnsetFlags(t *testing.T) {
	cfg := &config.Config{
		Sequence: "show.yaml",
		FPS:      30,
		Loop:     true,
		Mute:     true,
		Addr:     ":9090",
	}
	o := applyConfig(options{fps: 60, addr: ":8080"}, cfg, map[string]bool{})

	if o.sequence != "show.yaml" || o.fps != 30 || !o.loop || !o.mute || o.addr != ":9090" {
		t.Fatalf("config values not applied: %+v", o)
	}
}

func TestExplicitFlagsBeatConfig(t *testing.T) {
	cfg := &config.Config{
		Sequence: "show.yaml",
		FPS:      30,
		Loop:     true,
		Mute:     true,
		Addr:     ":9090",
	}
	set := map[string]bool{"sequence": true, "fps": true, "loop": true, "mute": true, "addr": true}
	o := applyConfig(options{sequence: "other.yaml", fps: 24, loop: false, mute: false, addr: ":8080"}, cfg, set)

	if o.sequence != "other.yaml" || o.fps != 24 || o.loop || o.mute || o.addr != ":8080" {
		t.Fatalf("explicit flags overridden by config: %+v", o)
	}
}

func TestApplyConfigNilConfig(t *testing.T) {
	o := applyConfig(options{sequence: "a.yaml", fps: 60}, nil, map[string]bool{})
	if o.sequence != "a.yaml" || o.fps != 60 {
		t.Fatalf("nil config must leave flags untouched: %+v", o)
	}
}

func TestExplicitLoopFalseOverridesConfigTrue(t *testing.T) {
	cfg := &config.Config{Loop: true, Mute: true}
	o := applyConfig(options{}, cfg, map[string]bool{"loop": true})

	if o.loop {
		t.Fatal("-loop=false must beat config loop: true")
	}
	if !o.mute {
		t.Fatal("mute was not passed explicitly, config must still apply")
	}
}
