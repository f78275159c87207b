package main

import (
	"fmt"
	"hash"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
	"whisperwall/internal/database"
	"whisperwall/internal/mirror"
	"whisperwall/internal/mood"
	"whisperwall/internal/server"
	"whisperwall/internal/spotify"
)

const dbname = "whisperwall.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "whisperwall",
		Short:   "Anonymous confession wall server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	reindexCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(reindexCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

// loadConfig merges the optional YAML file with WHISPERWALL_ environment
// variables, the latter taking precedence (WHISPERWALL_SESSION__SECRET maps
// to session.secret).
func loadConfig() (*koanf.Koanf, error) {
	godotenv.Load() // nolint:errcheck

	konf := koanf.New(".")
	if cfg != "" {
		if err := konf.Load(file.Provider(cfg), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "could not load configuration file")
		}
	}

	err := konf.Load(env.Provider("WHISPERWALL_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "WHISPERWALL_")
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	return konf, errors.Wrap(err, "could not load environment")
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

func kdf(l int, k []byte) []byte {
	nhash := func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	}

	payload := make([]byte, l)

	kdf := hkdf.New(nhash, k, nil, nil)
	_, err := io.ReadFull(kdf, payload)
	if err != nil {
		panic(err)
	}

	return payload
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := loadConfig()
			if err != nil {
				return err
			}

			return database.StormInit(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := loadConfig()
			if err != nil {
				return err
			}

			return database.StormReIndex(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := loadConfig()
			if err != nil {
				return err
			}

			if konf.String("session.secret") == "" {
				return errors.New("session secret not found")
			}

			db, err := database.StormOpen(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			address := konf.String("address")
			if address == "" {
				address = ":5000"
			}
			publicURL := konf.String("public_url")
			if publicURL == "" {
				publicURL = "http://localhost:5000"
			}
			ttl := konf.Duration("session.ttl")
			if ttl == 0 {
				ttl = 24 * time.Hour
			}

			// The mirror store stays nil when its credentials are absent;
			// the API then renders the not-configured condition.
			var mirrorc *mirror.Client
			if konf.String("supabase.url") != "" && konf.String("supabase.anon_key") != "" {
				mirrorc = mirror.New(konf.String("supabase.url"), konf.String("supabase.anon_key"))
			}

			engine := server.EchoEngine(server.IOC{
				Version:  version,
				Database: db,
				Mirror:   mirrorc,
				Spotify: spotify.New(
					konf.String("spotify.client_id"),
					konf.String("spotify.client_secret"),
					strings.TrimRight(publicURL, "/")+"/auth/spotify/callback",
				),
				Summarizer: mood.New(
					konf.String("mood.endpoint"),
					konf.String("mood.model"),
					konf.String("mood.api_key"),
				),
				SessionSecret: kdf(32, konf.MustBytes("session.secret")),
				SessionTTL:    ttl,
			})
			server.PrintRoutes(engine)

			message := "could not run server"
			log.Printf("Server listening on %s\n", address)
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					log.Printf("Removing existing %s\n", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}
)
