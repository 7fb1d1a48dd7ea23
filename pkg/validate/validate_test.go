package validate

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Status    string  `json:"status"     validate:"omitempty,homework_status"`
	StartTime *string `json:"start_time" validate:"omitempty,hhmm"`
	Title     string  `json:"title"      validate:"required"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := RegisterOn(v); err != nil {
		t.Fatalf("RegisterOn 失败: %v", err)
	}
	return v
}

func strPtr(s string) *string { return &s }

func TestHomeworkStatus(t *testing.T) {
	v := newValidator(t)

	for _, status := range []string{"To-Do", "In Progress", "Done", ""} {
		if err := v.Struct(sample{Status: status, Title: "x"}); err != nil {
			t.Errorf("status=%q 应通过校验: %v", status, err)
		}
	}
	if err := v.Struct(sample{Status: "Doing", Title: "x"}); err == nil {
		t.Error("status=Doing 不应通过校验")
	}
}

func TestHHMM(t *testing.T) {
	v := newValidator(t)

	if err := v.Struct(sample{StartTime: strPtr("09:30"), Title: "x"}); err != nil {
		t.Errorf("09:30 应通过校验: %v", err)
	}
	for _, bad := range []string{"24:00", "9:30", "09:60", "0930"} {
		if err := v.Struct(sample{StartTime: strPtr(bad), Title: "x"}); err == nil {
			t.Errorf("%q 不应通过校验", bad)
		}
	}
}

func TestDescribe_UsesJSONNames(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(sample{Status: "Doing"})
	msg := Describe(err)
	if !strings.Contains(msg, "title 为必填项") {
		t.Errorf("期望包含 title 必填提示，实际: %s", msg)
	}
	if !strings.Contains(msg, "status 必须是") {
		t.Errorf("期望包含 status 提示，实际: %s", msg)
	}
}
