package feed

import (
	"sort"
	"time"

	"whisperwall/pkg/libww"
	"whisperwall/pkg/structs"
)

var sortable = map[string]bool{
	"CreatedAt": true,
	"Likes":     true,
	"Category":  true,
}

// SortBy sorts whispers in place by the given field name, descending for
// time and numeric fields, ascending for strings. Supported fields are
// CreatedAt, Likes and Category; anything else leaves the order untouched.
func SortBy(whispers []libww.Whisper, field string) {
	if !sortable[field] {
		return
	}

	sort.SliceStable(whispers, func(i, j int) bool {
		a := structs.GetField(&whispers[i], field)
		b := structs.GetField(&whispers[j], field)

		switch a := a.(type) {
		case *time.Time:
			b := b.(*time.Time)
			if a == nil || b == nil {
				return b == nil && a != nil
			}
			return a.After(*b)
		case int:
			return a > b.(int)
		case string:
			return a < b.(string)
		}
		return false
	})
}
