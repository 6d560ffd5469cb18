package response

// 业务码：HTTP 状态之外的第二层分类
const (
	CodeOK = 200
	// CodeClientError 所有调用方可修正的失败（找不到 / 引用不存在 / 校验失败），用 message 区分
	CodeClientError     = 4001
	CodeTooManyRequests = 429
	CodeServerError     = 500
	CodeServerBusy      = 503
	CodeTimeout         = 504
)

// CodeMsgMap 默认 message
var CodeMsgMap = map[int]string{
	CodeOK:              "OK",
	CodeClientError:     "Bad Request",
	CodeTooManyRequests: "Too Many Requests",
	CodeServerError:     "internal error",
	CodeServerBusy:      "server busy",
	CodeTimeout:         "timeout",
}
