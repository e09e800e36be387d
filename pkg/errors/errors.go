package errors

import "fmt"

// 错误码
const (
	CodeSuccess         = 200
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeInternalError   = 500
	CodeHostError       = 502
	CodeValidationError = 503
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 同码同消息视为同一业务错误, errors.Is可匹配预定义错误
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WithCause 基于预定义错误附加底层原因
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// New 创建新错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// 预定义错误
var (
	ErrBadRequest    = New(CodeBadRequest, "请求参数错误")
	ErrUnauthorized  = New(CodeUnauthorized, "未授权")
	ErrForbidden     = New(CodeForbidden, "禁止访问")
	ErrNotFound      = New(CodeNotFound, "资源不存在")
	ErrConflict      = New(CodeConflict, "资源冲突")
	ErrInternalError = New(CodeInternalError, "内部服务器错误")

	// 具体业务错误
	ErrInvalidParams     = New(CodeBadRequest, "请求参数错误")
	ErrUnauthenticated   = New(CodeUnauthorized, "缺少GitHub凭证")
	ErrInvalidToken      = New(CodeUnauthorized, "无效的Token")
	ErrTokenExpired      = New(CodeUnauthorized, "Token已过期")
	ErrSessionNotFound   = New(CodeUnauthorized, "会话不存在或已过期")
	ErrProjectNotFound   = New(CodeNotFound, "项目不存在")
	ErrProjectExists     = New(CodeConflict, "项目已存在")
	ErrAnalysisNotFound  = New(CodeNotFound, "项目尚未分析")
	ErrWriteConflict     = New(CodeConflict, "文件已被并发修改, 请重新读取后提交")
	ErrChatUnavailable   = New(CodeHostError, "AI服务不可用")
	ErrOAuthExchangeFail = New(CodeHostError, "OAuth授权码换取Token失败")
)
