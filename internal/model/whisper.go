package model

// CategoryGeneral is the category applied when none is provided.
const CategoryGeneral = "General"

// A Whisper represents a database record and the rendered API response.
// Optional fields are serialized with omitempty so an absent field stays absent.
type Whisper struct {
	Base `msgpack:",inline" storm:"inline"`

	Content   string `json:"content"             msgpack:"content"`
	Category  string `json:"category"            msgpack:"category"  storm:"index"`
	Recipient string `json:"recipient,omitempty" msgpack:"recipient"`
	Sender    string `json:"sender,omitempty"    msgpack:"sender"`
	Feeling   string `json:"feeling,omitempty"   msgpack:"feeling"`
	Song      string `json:"song,omitempty"      msgpack:"song"`
	Likes     int    `json:"likes"               msgpack:"likes"`
}
