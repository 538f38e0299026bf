package analyzer

import "context"

// FakeClassifier — детерминированный классификатор для тестов.
// Отдаёт заранее заданные ответы по точному тексту запроса; для прочего
// текста — Default (по умолчанию метка unknown).
type FakeClassifier struct {
	Responses map[string]Classification
	Default   Classification
	Err       error
}

func (f *FakeClassifier) Classify(_ context.Context, text string) (Classification, error) {
	if f.Err != nil {
		return Classification{}, f.Err
	}
	if c, ok := f.Responses[text]; ok {
		return c, nil
	}
	if f.Default.Label == "" {
		return Classification{Label: "unknown"}, nil
	}
	return f.Default, nil
}

// NopClassifier — бэкенд для режима «только шаблоны» (ключ API не задан):
// всегда возвращает нераспознанную метку.
type NopClassifier struct{}

func (NopClassifier) Classify(context.Context, string) (Classification, error) {
	return Classification{Label: "unknown"}, nil
}
