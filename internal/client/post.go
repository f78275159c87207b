package client

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"whisperwall/pkg/libww"
)

// Post runs the interactive whisper composer and posts the result.
func Post() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	client, err := libww.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach Whisperwall endpoint")
	}

	rl, err := readline.New("> ")
	if err != nil {
		return errors.Wrap(err, "could not read from stdin")
	}
	defer rl.Close()

	//
	// Content

	var whisper libww.PostWhisper
	for {
		rl.SetPrompt("whisper (at least 5 characters): ")
		line, err := rl.Readline()
		if err != nil {
			return errors.Wrap(err, "could not read whisper from stdin")
		}

		whisper.Content = strings.TrimSpace(line)
		if utf8.RuneCountInString(whisper.Content) >= 5 {
			break
		}
		fmt.Println("Too short, try again.")
	}

	//
	// Category

	for {
		rl.SetPrompt(fmt.Sprintf("category %v [%s]: ", libww.Categories, libww.CategoryGeneral))
		line, err := rl.Readline()
		if err != nil {
			return errors.Wrap(err, "could not read category from stdin")
		}

		whisper.Category = strings.TrimSpace(line)
		if whisper.Category == "" {
			whisper.Category = libww.CategoryGeneral
		}
		if libww.ValidCategory(whisper.Category) {
			break
		}
		fmt.Println("Unknown category, try again.")
	}

	//
	// Optional fields

	optional := []struct {
		prompt string
		field  *string
	}{
		{"to (optional): ", &whisper.Recipient},
		{"from (optional): ", &whisper.Sender},
		{"feeling (optional): ", &whisper.Feeling},
		{"song, name or open.spotify.com link (optional): ", &whisper.Song},
	}
	for _, o := range optional {
		rl.SetPrompt(o.prompt)
		line, err := rl.Readline()
		if err != nil {
			return errors.Wrap(err, "could not read from stdin")
		}
		*o.field = strings.TrimSpace(line)
	}

	id, err := client.Post(whisper)
	if err != nil {
		return errors.Wrap(err, "could not post whisper")
	}

	fmt.Printf("Whisper #%d posted.\n", id)
	return nil
}
