package store

import (
	"context"

	"Evermatch/internal/model"
)

// Store 问卷草稿和进度记录的持久化契约，按设备会话隔离。
// 依赖检查、进度计算、提交流水线都只依赖这个接口，不依赖具体存储，
// 测试时注入内存实现即可。
//
// 所有操作 best-effort：存储故障内部记日志后吞掉，不向上抛 ——
// 持久化降级时用户还能继续填写，只是刷新后可能丢草稿，不能让流程崩掉。
type Store interface {
	// Read 读取答案集，无数据或数据损坏都返回 nil，不报错
	Read(ctx context.Context, deviceID string) model.AnswerSet

	// Write 将 partial 逐字段浅合并进已有记录，记录不存在则创建
	Write(ctx context.Context, deviceID string, partial model.AnswerSet)

	// Clear 同时删除答案集和进度记录，唯一的破坏性操作，没有部分清除
	Clear(ctx context.Context, deviceID string)

	// ReadProgress 读取进度记录，无数据或损坏返回 nil
	ReadProgress(ctx context.Context, deviceID string) *model.ProgressRecord

	// TouchProgress 更新 currentStep 并把 step 并入 completedSteps（集合语义），
	// 刷新 lastUpdated
	TouchProgress(ctx context.Context, deviceID string, step string)

	// CommitStep 提交流水线的原子落盘：答案合并和进度标记一起写，
	// completedSteps 因此是完成状态的主信号
	CommitStep(ctx context.Context, deviceID string, step string, partial model.AnswerSet)
}
