package client

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"whisperwall/pkg/feed"
	"whisperwall/pkg/libww"
)

const (
	ansiKeyword = "\x1b[35m"
	ansiDim     = "\x1b[2m"
	ansiReset   = "\x1b[0m"
)

// Feed prints the whisper feed, newest first.
// category filters locally; mirror switches to the mirror feed where no
// category applies.
func Feed(category string, mirror bool) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	client, err := libww.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach Whisperwall endpoint")
	}

	if mirror {
		return mirrorFeed(client)
	}

	if category == "" {
		category = feed.CategoryAll
	}

	whispers, err := client.Whispers()
	if err != nil {
		return errors.Wrap(err, "could not get whispers")
	}

	whispers = feed.FilterByCategory(whispers, category)
	if len(whispers) == 0 {
		fmt.Println("The wall is quiet.")
		return nil
	}

	for _, whisper := range whispers {
		printWhisper(whisper)
	}
	return nil
}

func mirrorFeed(client libww.Client) error {
	messages, err := client.MirrorMessages()
	if err != nil {
		return errors.Wrap(err, "could not get mirror messages")
	}

	if len(messages) == 0 {
		fmt.Println("The mirror is quiet.")
		return nil
	}

	for _, message := range messages {
		fmt.Printf("#%d (%d likes)\n  %s\n", message.ID, message.Likes, highlightANSI(message.Msg))
	}
	return nil
}

func printWhisper(whisper libww.Whisper) {
	fmt.Printf("#%d [%s] (%d likes)\n", whisper.ID, whisper.Category, whisper.Likes)
	fmt.Printf("  %s\n", highlightANSI(whisper.Content))

	meta := make([]string, 0, 3)
	if whisper.Recipient != "" {
		meta = append(meta, "to "+whisper.Recipient)
	}
	if whisper.Sender != "" {
		meta = append(meta, "from "+whisper.Sender)
	}
	if whisper.Feeling != "" {
		meta = append(meta, "feeling "+whisper.Feeling)
	}
	if len(meta) > 0 {
		fmt.Printf("  %s%s%s\n", ansiDim, strings.Join(meta, ", "), ansiReset)
	}

	if whisper.Song != "" {
		song := feed.ClassifySong(whisper.Song)
		if song.Embeddable {
			fmt.Printf("  ♪ %s\n", song.EmbedURL)
		} else {
			fmt.Printf("  ♪ %s (%s)\n", whisper.Song, song.SearchURL)
		}
	}
}

func highlightANSI(content string) string {
	var b strings.Builder
	for _, span := range feed.Highlight(content) {
		if span.Keyword {
			b.WriteString(ansiKeyword)
			b.WriteString(span.Text)
			b.WriteString(ansiReset)
			continue
		}
		b.WriteString(span.Text)
	}
	return b.String()
}
