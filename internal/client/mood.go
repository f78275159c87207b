package client

import (
	"fmt"

	"github.com/pkg/errors"
	"whisperwall/pkg/libww"
)

// Mood prints the generated mood summary of the wall.
func Mood() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	client, err := libww.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach Whisperwall endpoint")
	}

	summary, err := client.Mood()
	if err != nil {
		return errors.Wrap(err, "could not get mood summary")
	}

	fmt.Println(summary)
	return nil
}
