package client

import (
	"fmt"

	"github.com/pkg/errors"
	"whisperwall/pkg/libww"
)

// Status prints the configured endpoint, the server version and the mirror
// store availability.
func Status() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	fmt.Println("endpoint:", cfg.Endpoint)

	client, err := libww.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach Whisperwall endpoint")
	}

	version, err := client.Version()
	if err != nil {
		return errors.Wrap(err, "could not get server version")
	}
	fmt.Println("server:", version)

	configured, err := client.MirrorStatus()
	if err != nil {
		return errors.Wrap(err, "could not get mirror status")
	}
	fmt.Println("mirror:", map[bool]string{true: "configured", false: "not configured"}[configured])

	return nil
}
