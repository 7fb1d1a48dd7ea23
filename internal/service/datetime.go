package service

import (
	"strings"
	"time"
)

const (
	dateLayout       = "2006-01-02"
	dateMinuteLayout = "2006-01-02 15:04"
	dateTimeLayout   = "2006-01-02T15:04:05Z07:00"
)

// parseDateTime 接受 RFC3339、"YYYY-MM-DD HH:MM" 或纯日期；无时区的输入按 UTC 解析
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateMinuteLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format(dateTimeLayout)
}
