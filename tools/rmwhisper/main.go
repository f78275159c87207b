package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/asdine/storm/v3"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"whisperwall/internal/model"
	"whisperwall/pkg/stormcodec"
)

var codecName string

func main() {
	c := &coral.Command{
		Use:   "rmwhisper",
		Short: "Remove a whisper from the database",
		Args:  coral.ExactArgs(2),
		RunE: func(_ *coral.Command, args []string) error {
			id, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return errors.Errorf("malformed whisper id: %s", args[1])
			}

			codec, err := stormcodec.ByName(codecName)
			if err != nil {
				return err
			}

			//
			//
			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], storm.Codec(codec))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			// Fetch whisper
			var whisper model.Whisper
			err = db.One("ID", id, &whisper)
			if err != nil {
				if err == storm.ErrNotFound {
					fmt.Println("No whisper for this id")
					return nil
				}
				return errors.Wrap(err, "find whisper by id")
			}

			fmt.Printf("Whisper found: [%s] %s\n", whisper.Category, whisper.Content)

			// Delete whisper
			err = db.DeleteStruct(&whisper)
			if err != nil && err != storm.ErrNotFound {
				return errors.Wrap(err, "delete whisper")
			}
			fmt.Println("Whisper removed")

			return nil
		},
	}
	c.Flags().StringVar(&codecName, "codec", "", "Serialization codec (msgpack, cbor or binc)")

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}
