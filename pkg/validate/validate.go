package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 自定义校验标签
const (
	TagHomeworkStatus = "homework_status"
	TagHHMM           = "hhmm"
)

var hhmmRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// homeworkStatuses 与 model.HomeworkStatus* 保持一致
var homeworkStatuses = map[string]bool{
	"To-Do":       true,
	"In Progress": true,
	"Done":        true,
}

// Register 在 gin 默认绑定引擎上注册自定义校验规则
// 必须在路由初始化之前调用
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin 绑定引擎不是 validator/v10")
	}
	return RegisterOn(v)
}

// RegisterOn 向给定的 validator 实例注册自定义规则
func RegisterOn(v *validator.Validate) error {
	// 错误信息使用 JSON 字段名，而不是 Go 结构体字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(TagHomeworkStatus, func(fl validator.FieldLevel) bool {
		return homeworkStatuses[fl.Field().String()]
	}); err != nil {
		return fmt.Errorf("注册 %s 失败: %w", TagHomeworkStatus, err)
	}

	if err := v.RegisterValidation(TagHHMM, func(fl validator.FieldLevel) bool {
		return hhmmRegex.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("注册 %s 失败: %w", TagHHMM, err)
	}

	return nil
}

// Describe 将绑定错误整理为可读的字段说明
// 非校验类错误（如 JSON 语法错误）原样返回
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" 为必填项")
		case TagHomeworkStatus:
			parts = append(parts, fe.Field()+" 必须是 To-Do / In Progress / Done 之一")
		case TagHHMM:
			parts = append(parts, fe.Field()+" 必须是 HH:MM 格式")
		default:
			parts = append(parts, fmt.Sprintf("%s 不满足 %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
