package providers

import (
	"context"
	"fmt"
)

// Classifier judges a single task comment. Implementations never fail: every
// problem is folded into the returned text.
type Classifier interface {
	Classify(ctx context.Context, taskTitle, comment string) string
	Name() string
}

// SystemPrompt is the fixed instruction sent with every classification.
const SystemPrompt = "Тебе приходит название задачи и комментарий пользователя по её выполнению. Проанализируй комментарий и скажи, положительный он или нет?"

// UserPrompt embeds a task title and one comment into the user message.
func UserPrompt(taskTitle, comment string) string {
	return fmt.Sprintf("Название - '%s'. Комментарий - '%s'", taskTitle, comment)
}
