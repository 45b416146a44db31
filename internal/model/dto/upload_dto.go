package dto

// ========== Upload 相关 DTO ==========

// UploadResult 上传服务返回的存储引用
type UploadResult struct {
	URL    string `json:"url"`
	Key    string `json:"key"`
	Bucket string `json:"bucket"`
}
