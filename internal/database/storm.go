package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/pkg/errors"
	"whisperwall/internal/model"
	"whisperwall/pkg/stormcodec"
)

type strm struct {
	db *storm.DB
}

// StormInit initializes the Storm database and applies the pending migrations.
func StormInit(database, codec string) error {
	db, err := StormOpen(database, codec)
	if err != nil {
		return err
	}
	return db.Close()
}

// StormReIndex reindex Storm database.
func StormReIndex(database, codec string) error {
	c, err := stormcodec.ByName(codec)
	if err != nil {
		return err
	}

	db, err := storm.Open(database, storm.Codec(c))
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	err = db.ReIndex(&model.Whisper{})
	return errors.Wrap(err, "could not ReIndex whispers")
}

// StormOpen returns a new Storm database connection.
// The pending migrations are applied before the connection is handed out.
func StormOpen(database, codec string) (Client, error) {
	c, err := stormcodec.ByName(codec)
	if err != nil {
		return nil, err
	}

	db, err := storm.Open(database, storm.Codec(c))
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &strm{
		db: db,
	}, nil
}

// Save inserts or updates the entry in database with the given model.
// The creation date is set once, when the model has no ID yet.
func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == 0 {
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// FindWhisper returns the whisper for the given id.
func (c *strm) FindWhisper(id uint64) (*model.Whisper, error) {
	var whisper model.Whisper
	if err := c.db.One("ID", id, &whisper); err != nil {
		return nil, errors.Wrap(err, "could not find whisper")
	}
	return &whisper, nil
}

// FindRecentWhispers returns up to limit whispers ordered by creation, newest first.
// IDs are assigned in creation order so the descending ID order is also
// non-increasing by creation time.
func (c *strm) FindRecentWhispers(limit int) ([]*model.Whisper, error) {
	whispers := make([]*model.Whisper, 0)
	stmt := c.db.Select().OrderBy("ID").Reverse()
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	err := stmt.Find(&whispers)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find whispers")
	}
	return whispers, nil
}

// LikeWhisper increments the like counter of the given whisper within a
// single write transaction.
func (c *strm) LikeWhisper(id uint64) (int, bool, error) {
	tx, err := c.db.Begin(true)
	if err != nil {
		return 0, false, errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback()

	var whisper model.Whisper
	if err := tx.One("ID", id, &whisper); err != nil {
		if errors.Cause(err) == storm.ErrNotFound {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "could not find whisper")
	}

	whisper.Likes++
	whisper.SetUpdatedAt(time.Now().UTC())
	if err := tx.Save(&whisper); err != nil {
		return 0, false, errors.Wrap(err, "could not save whisper")
	}

	return whisper.Likes, true, errors.Wrap(tx.Commit(), "could not commit transaction")
}
