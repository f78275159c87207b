package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"whisperwall/internal/database"
	"whisperwall/internal/mirror"
	"whisperwall/internal/mood"
	"whisperwall/internal/server/middlewares"
	"whisperwall/internal/server/session"
	"whisperwall/internal/spotify"
)

// An IOC is an Iversion Of Control pattern used to init the server package.
type IOC struct {
	Version  string
	Database database.Client
	// Mirror is nil when the hosted store credentials are absent.
	Mirror     *mirror.Client
	Spotify    *spotify.Client
	Summarizer *mood.Summarizer
	// Session params
	SessionSecret []byte
	SessionTTL    time.Duration
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl IOC) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	////////////
	// Router //
	////////////

	sessions := session.NewManager(ctrl.SessionSecret, ctrl.SessionTTL)

	router := engine.Group("")
	router.Use(middlewares.Session(sessions))

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// whisper handlers
	//
	whisper := &whisper{
		db: ctrl.Database,
	}
	router.GET("/api/confessions", whisper.List)
	router.POST("/api/confessions", whisper.Create)
	router.POST("/api/confessions/:id/like", whisper.Like)

	//
	// mirror store handlers
	//
	mirror := &mirrorstore{
		client: ctrl.Mirror,
	}
	router.GET("/api/supabase/status", mirror.Status)
	router.GET("/api/supabase/messages", mirror.List)
	router.POST("/api/supabase/messages", mirror.Create)
	router.POST("/api/supabase/messages/:id/like", mirror.Like)

	//
	// music-service auth bridge handlers
	//
	spotify := &spotifyauth{
		client:   ctrl.Spotify,
		sessions: sessions,
	}
	router.GET("/api/auth/spotify/status", spotify.Status)
	router.GET("/api/auth/spotify/url", spotify.AuthorizeURL)
	router.GET("/auth/spotify/callback", spotify.Callback)
	router.GET("/api/spotify/me/top-tracks", spotify.TopTracks)

	//
	// mood summary handler
	//
	mood := &moodsummary{
		db:         ctrl.Database,
		summarizer: ctrl.Summarizer,
	}
	router.GET("/api/mood/summary", mood.Summary)

	//
	// embedded single-page client
	//
	engine.FileFS("/", "index.html", echo.MustSubFS(publicFS, "public"))
	engine.StaticFS("/assets", echo.MustSubFS(publicFS, "public/assets"))

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentSession(c echo.Context) *session.Session {
	s, ok := c.Get(middlewares.CurrentSessionContextKey).(*session.Session)
	if ok {
		return s
	}
	return new(session.Session)
}
