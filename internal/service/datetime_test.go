package service

import (
	"testing"
	"time"
)

func TestParseDateTime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-02", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2024-01-02T10:30:00Z", time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)},
		{"2024-01-02T18:30:00+08:00", time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)},
		{" 2024-01-02 ", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2024-01-02 17:45", time.Date(2024, 1, 2, 17, 45, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := parseDateTime(tc.in)
		if err != nil {
			t.Errorf("%q 解析失败: %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("%q 期望 %v，实际 %v", tc.in, tc.want, got)
		}
	}

	for _, bad := range []string{"01/02/2024", "2024-01-02 25:00", "2024-01-02 17"} {
		if _, err := parseDateTime(bad); err == nil {
			t.Errorf("%q 应返回错误", bad)
		}
	}
}

func TestFormatDateTime_UTC(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	got := formatDateTime(time.Date(2024, 1, 2, 8, 0, 0, 0, loc))
	if got != "2024-01-02T00:00:00Z" {
		t.Errorf("期望 2024-01-02T00:00:00Z，实际 %s", got)
	}
}
