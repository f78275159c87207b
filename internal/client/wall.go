package client

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"whisperwall/internal/client/tui"
	"whisperwall/pkg/libww"
)

// Wall runs the text-based whisper wall application.
func Wall() error {
	defer func() {
		if r := recover(); r != nil {
			var err error
			switch r := r.(type) {
			case error:
				err = r
			default:
				err = fmt.Errorf("%v", r)
			}
			stack := make([]byte, 4<<10)
			length := runtime.Stack(stack, true)

			tui.NewLogger().Printf("[PANIC RECOVER] %s %s\n", err, stack[:length])
		}
	}()

	cfg, err := Load()
	if err != nil {
		return err
	}

	//
	//

	client, err := libww.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach Whisperwall endpoint")
	}

	whispers, err := client.Whispers()
	if err != nil {
		return errors.Wrap(err, "could not get whispers")
	}

	//
	//
	ui, err := tui.New(client.Like)
	if err != nil {
		return err
	}
	defer ui.Cleanup()

	for _, whisper := range whispers {
		ui.Register(tui.NewItem(whisper))
	}

	// The mirror feed is optional: an unconfigured store just leaves the
	// source toggle inert.
	if configured, err := client.MirrorStatus(); err == nil && configured {
		messages, err := client.MirrorMessages()
		if err != nil {
			return errors.Wrap(err, "could not get mirror messages")
		}
		for _, message := range messages {
			ui.RegisterMirror(tui.NewMirrorItem(message))
		}
	}

	go func() {
		if mood, err := client.Mood(); err == nil {
			ui.SetMood(mood)
		}
	}()

	ui.Run()
	return nil
}
