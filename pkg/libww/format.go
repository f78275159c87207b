package libww

import "strconv"

func formatUint(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func formatInt(id int64) string {
	return strconv.FormatInt(id, 10)
}
