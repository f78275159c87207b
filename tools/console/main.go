package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/asdine/storm/v3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"whisperwall/internal/model"
	"whisperwall/pkg/stormcodec"
	"whisperwall/pkg/stormsql"
)

// go run tools/console/main.go whisperwall.db " SELECT count(*) FROM whispers WHERE Category = 'Love' AND Likes >= 2;  "
// go run tools/console/main.go whisperwall.db " DELETE FROM whispers WHERE ID = 42;  "

var codecName string

func main() {
	c := &cobra.Command{
		Use:   "console",
		Short: "SQL console for whisperwall database",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
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

			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(args[1])), "delete") {
				return del(db, args[1])
			}
			return sel(db, args[1])
		},
	}
	c.Flags().StringVar(&codecName, "codec", "", "Serialization codec (msgpack, cbor or binc)")

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func sel(db *storm.DB, sql string) error {
	sc, err := stormsql.ParseSelect(sql)
	if err != nil {
		return err
	}
	if sc.Tablename != "whispers" {
		return errors.Errorf("unknown tablename: %s", sc.Tablename)
	}

	//
	// Prepare request
	//

	query := db.Select(sc.Matcher)
	if sc.Skip > 0 {
		query.Skip(sc.Skip)
	}
	if sc.Limit > 0 {
		query.Limit(sc.Limit)
	}
	if len(sc.OrderBy) > 0 {
		query.OrderBy(sc.OrderBy...)
		if sc.OrderByReversed {
			query.Reverse()
		}
	}

	// Execute

	if sc.Count {
		n, err := query.Count(&model.Whisper{})
		if err != nil {
			return errors.Wrap(err, "could not perform query")
		}

		fmt.Println("Count:", n)
		return nil
	}

	records := []*model.Whisper{}
	err = query.Find(&records)
	if err == storm.ErrNotFound {
		fmt.Println("[]")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	jsondump(records)
	return nil
}

func del(db *storm.DB, sql string) error {
	dc, err := stormsql.ParseDelete(sql)
	if err != nil {
		return err
	}
	if dc.Tablename != "whispers" {
		return errors.Errorf("unknown tablename: %s", dc.Tablename)
	}

	err = db.Select(dc.Matcher).Delete(&model.Whisper{})
	if err == storm.ErrNotFound {
		fmt.Println("Nothing to delete")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "could not perform delete")
	}

	fmt.Println("Whispers removed")
	return nil
}

func jsondump(v any) {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(d))
}
