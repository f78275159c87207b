package client

import (
	"fmt"

	"github.com/pkg/errors"
	"whisperwall/pkg/libww"
)

// Like likes the given whisper and prints the authoritative new count.
func Like(id uint64) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	client, err := libww.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach Whisperwall endpoint")
	}

	likes, err := client.Like(id)
	if err != nil {
		return errors.Wrap(err, "could not like whisper")
	}

	// A like on an existing whisper always yields at least 1.
	if likes == 0 {
		fmt.Printf("Whisper #%d does not exist.\n", id)
		return nil
	}

	fmt.Printf("Whisper #%d now has %d likes.\n", id, likes)
	return nil
}

// MirrorLike likes the given mirror message. The current count is read from
// the feed first, so a concurrent like can still be lost upstream.
func MirrorLike(id int64) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	client, err := libww.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach Whisperwall endpoint")
	}

	messages, err := client.MirrorMessages()
	if err != nil {
		return errors.Wrap(err, "could not get mirror messages")
	}

	for _, message := range messages {
		if message.ID != id {
			continue
		}

		updated, err := client.MirrorLike(id, message.Likes)
		if err != nil {
			return errors.Wrap(err, "could not like mirror message")
		}

		fmt.Printf("Mirror message #%d now has %d likes.\n", updated.ID, updated.Likes)
		return nil
	}

	fmt.Printf("Mirror message #%d is not in the feed.\n", id)
	return nil
}
