package mrz

import (
	"fmt"
	"strconv"
	"time"
)

// ExpandYear maps a two-digit year to four digits. Years more than ten
// years past the current two-digit year belong to the previous century. The
// same rule is used for birth and expiry dates.
func ExpandYear(yy int, now time.Time) int {
	century := now.Year() / 100 * 100
	if yy > now.Year()%100+10 {
		return century - 100 + yy
	}
	return century + yy
}

// FormatDate converts a YYMMDD date to YYYY-MM-DD. Malformed input yields "".
func FormatDate(yymmdd string, now time.Time) string {
	if len(yymmdd) != 6 {
		return ""
	}
	yy, err1 := strconv.Atoi(yymmdd[0:2])
	mm, err2 := strconv.Atoi(yymmdd[2:4])
	dd, err3 := strconv.Atoi(yymmdd[4:6])
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	if mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", ExpandYear(yy, now), mm, dd)
}

// CompactDate converts YYYY-MM-DD back to YYMMDD. Malformed input yields "".
func CompactDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return ""
	}
	return t.Format("060102")
}
