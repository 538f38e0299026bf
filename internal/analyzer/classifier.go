package analyzer

import "context"

// Classification — ответ внешнего классификатора: свободная метка операции
// и извлечённые из текста поля.
type Classification struct {
	Label string
	Slots map[string]string
}

// Classifier — чёрный ящик понимания текста. Вызывается синхронно, без
// повторов внутри анализатора; политика ретраев — забота транспортного слоя.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}
