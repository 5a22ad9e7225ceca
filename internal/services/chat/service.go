package chat

import (
	"context"

	"github.com/kay207/money-life/internal/common"
	"github.com/kay207/money-life/internal/interfaces"
	"github.com/kay207/money-life/internal/models"
)

// offlineNotice is the sole reply when no advisory client is configured.
// errorNotice is the sole reply when a configured advisor fails to open a
// stream.
const (
	offlineNotice = "系统提示：当前未配置 AI 服务密钥，无法进行智能对话。请联系管理员或使用页面上的计算工具。"
	errorNotice   = "网络连接不稳定，请稍后再试。"
)

// Compile-time interface check
var _ interfaces.ChatService = (*Service)(nil)

// Service implements ChatService
type Service struct {
	advisor interfaces.AdvisoryClient
	logger  *common.Logger
}

// NewService creates a new chat service. advisor may be nil.
func NewService(advisor interfaces.AdvisoryClient, logger *common.Logger) *Service {
	return &Service{
		advisor: advisor,
		logger:  logger,
	}
}

// Stream sends a message with its prior conversation turns and returns a
// channel of reply chunks. The channel always closes, whether the reply comes
// from the advisor or from a fallback notice.
func (s *Service) Stream(ctx context.Context, history []models.ChatMessage, message string) (<-chan string, error) {
	if s.advisor == nil {
		return singleChunk(offlineNotice), nil
	}

	chunks, err := s.advisor.StreamChat(ctx, history, message)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Chat stream failed to start")
		return singleChunk(errorNotice), nil
	}
	return chunks, nil
}

func singleChunk(text string) <-chan string {
	out := make(chan string, 1)
	out <- text
	close(out)
	return out
}
