package response

// Resp 统一响应：成功时只有 data，失败时只有 message
type Resp struct {
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
	Data    any    `json:"data,omitempty"`
}

// OK 成功响应
func OK(data any) Resp {
	return Resp{Code: CodeOK, Data: data}
}

// Error 失败响应（customMsg 为空时用默认 msg）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return Resp{Code: code, Message: msg}
}

// ClientError 4001：找不到 / 引用不存在 / 校验失败
func ClientError(msg string) Resp { return Error(CodeClientError, msg) }
