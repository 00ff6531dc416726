package api

import (
	"errors"
	"net/http"
	"strings"

	"factcheck/analysis"

	"github.com/gin-gonic/gin"
)

// statusFor 核查错误分类对应的 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, analysis.ErrProviderConfiguration):
		return http.StatusServiceUnavailable
	case errors.Is(err, analysis.ErrProviderUnavailable),
		errors.Is(err, analysis.ErrEmptyProviderResponse),
		errors.Is(err, analysis.ErrMalformedResponse),
		errors.Is(err, analysis.ErrIncompleteResponse):
		return http.StatusBadGateway
	case errors.Is(err, analysis.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// messageFor 每类错误一条面向用户的提示，模型原始输出不会出现在这里
func messageFor(err error) string {
	switch {
	case errors.Is(err, analysis.ErrInvalidInput):
		// 校验信息本身就是给用户看的
		return strings.TrimPrefix(err.Error(), analysis.ErrInvalidInput.Error()+": ")
	case errors.Is(err, analysis.ErrProviderConfiguration):
		return "核查服务未配置或密钥无效，请联系管理员"
	case errors.Is(err, analysis.ErrProviderUnavailable):
		return "核查服务暂时不可用，请稍后重试"
	case errors.Is(err, analysis.ErrEmptyProviderResponse):
		return "核查服务未返回结果，请稍后重试"
	case errors.Is(err, analysis.ErrMalformedResponse):
		return "核查结果格式错误，请稍后重试"
	case errors.Is(err, analysis.ErrIncompleteResponse):
		return "核查结果不完整，请稍后重试"
	case errors.Is(err, analysis.ErrNotFound):
		return "记录不存在"
	case errors.Is(err, analysis.ErrPersistence):
		return SafeErrorMessage(err, "保存核查记录失败")
	default:
		return SafeErrorMessage(err, "服务器内部错误")
	}
}

func respondError(c *gin.Context, err error) {
	Error(c, statusFor(err), messageFor(err))
}
