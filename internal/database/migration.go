package database

import (
	"github.com/asdine/storm/v3"
	"github.com/pkg/errors"
	"whisperwall/internal/model"
)

const (
	schemaBucket = "schema"
	schemaKey    = "version"
)

// A migration is applied exactly once, in ascending version order.
// The recorded schema version makes the runner idempotent.
type migration struct {
	version int
	name    string
	run     func(db *storm.DB) error
}

var migrations = []migration{
	{
		version: 1,
		name:    "create-whisper-bucket",
		run: func(db *storm.DB) error {
			return db.Init(&model.Whisper{})
		},
	},
	{
		version: 2,
		name:    "default-category-general",
		run: func(db *storm.DB) error {
			// Records created before the category field existed are
			// folded into the default category.
			whispers := make([]*model.Whisper, 0)
			err := db.All(&whispers)
			if err != nil {
				return err
			}

			for _, whisper := range whispers {
				if whisper.Category != "" {
					continue
				}
				whisper.Category = model.CategoryGeneral
				if err := db.Save(whisper); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

func migrate(db *storm.DB) error {
	var version int
	err := db.Get(schemaBucket, schemaKey, &version)
	if err != nil && err != storm.ErrNotFound {
		return errors.Wrap(err, "could not read schema version")
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}

		if err := m.run(db); err != nil {
			return errors.Wrapf(err, "could not apply migration %d (%s)", m.version, m.name)
		}
		if err := db.Set(schemaBucket, schemaKey, m.version); err != nil {
			return errors.Wrapf(err, "could not record schema version %d", m.version)
		}
	}

	return nil
}
