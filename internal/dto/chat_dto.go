package dto

// ChatRequest 对话请求
type ChatRequest struct {
	ProjectID int64  `json:"project_id" binding:"required,min=1"`
	Message   string `json:"message" binding:"required"`
	Context   string `json:"context"` // 可选: 当前选中的文件/节点等上下文
}

// PendingFileChange AI提出的单文件修改建议
// 由提交流程消费, 提交成功或放弃后即丢弃
type PendingFileChange struct {
	Path        string `json:"path"`
	OldContent  string `json:"old_content"`
	NewContent  string `json:"new_content"`
	Description string `json:"description"`
}

// ChatResponse 对话响应, 外部AI服务的返回原样转发
type ChatResponse struct {
	Response   string             `json:"response"`
	Changes    []string           `json:"changes,omitempty"`
	FileChange *PendingFileChange `json:"file_change,omitempty"`
}
