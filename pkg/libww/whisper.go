package libww

import "time"

// CategoryGeneral is the category applied when none is provided.
const CategoryGeneral = "General"

// Categories is the closed set of whisper categories.
var Categories = []string{CategoryGeneral, "Love", "Rant", "Academic", "Secret", "Funny"}

// ValidCategory returns true when the given category belongs to Categories.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type (
	// A Whisper is an anonymous confession record rendered by the server.
	Whisper struct {
		ID        uint64     `json:"id"`
		Content   string     `json:"content"`
		Category  string     `json:"category"`
		Recipient string     `json:"recipient,omitempty"`
		Sender    string     `json:"sender,omitempty"`
		Feeling   string     `json:"feeling,omitempty"`
		Song      string     `json:"song,omitempty"`
		Likes     int        `json:"likes"`
		CreatedAt *time.Time `json:"created_at"`
		UpdatedAt *time.Time `json:"updated_at"`
	}

	// A PostWhisper holds the fields of a whisper to be created.
	PostWhisper struct {
		Content   string `json:"content"`
		Category  string `json:"category,omitempty"`
		Recipient string `json:"recipient,omitempty"`
		Sender    string `json:"sender,omitempty"`
		Feeling   string `json:"feeling,omitempty"`
		Song      string `json:"song,omitempty"`
	}

	// A MirrorMessage is a record of the third-party-hosted mirror feed.
	// It carries no link to the local whispers.
	MirrorMessage struct {
		ID        int64     `json:"id"`
		Msg       string    `json:"msg"`
		Likes     int       `json:"likes"`
		CreatedAt time.Time `json:"created_at"`
	}
)
