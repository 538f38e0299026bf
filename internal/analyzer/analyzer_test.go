package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbot/internal/models"
)

func TestAnalyze_Patterns(t *testing.T) {
	a := New(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want models.Intent
	}{
		{"create canonical", "Create a task: Buy groceries", models.Intent{Kind: models.IntentCreate, Description: "Buy groceries"}},
		{"create short", "add task: call mom", models.Intent{Kind: models.IntentCreate, Description: "call mom"}},
		{"create russian", "создай задачу: купить молоко", models.Intent{Kind: models.IntentCreate, Description: "купить молоко"}},
		{"read", "Show task 3", models.Intent{Kind: models.IntentRead, TaskID: 3}},
		{"read hash", "show task #12", models.Intent{Kind: models.IntentRead, TaskID: 12}},
		{"read russian", "покажи задачу 7", models.Intent{Kind: models.IntentRead, TaskID: 7}},
		{"update", "update task 1: Buy groceries and milk", models.Intent{Kind: models.IntentUpdate, TaskID: 1, Description: "Buy groceries and milk"}},
		{"update russian", "обнови задачу 2: новый текст", models.Intent{Kind: models.IntentUpdate, TaskID: 2, Description: "новый текст"}},
		{"delete", "Delete task 1", models.Intent{Kind: models.IntentDelete, TaskID: 1}},
		{"delete russian", "удали задачу 4", models.Intent{Kind: models.IntentDelete, TaskID: 4}},
		{"list", "list my tasks", models.Intent{Kind: models.IntentList}},
		{"list show", "Show tasks", models.Intent{Kind: models.IntentList}},
		{"list russian", "покажи мои задачи", models.Intent{Kind: models.IntentList}},
		{"whitespace", "  delete task 5  ", models.Intent{Kind: models.IntentDelete, TaskID: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := a.Analyze(ctx, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, intent)
		})
	}
}

func TestAnalyze_InvalidArguments(t *testing.T) {
	a := New(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		text string
	}{
		{"non-numeric id", "Delete task abc"},
		{"zero id", "delete task 0"},
		{"negative id", "show task -1"},
		{"empty title", "create task:   "},
		{"update non-numeric", "update task xyz: текст"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Analyze(ctx, tt.text)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestAnalyze_Unrecognized(t *testing.T) {
	ctx := context.Background()

	// Без бэкенда непонятный текст отклоняется сразу.
	a := New(nil)
	_, err := a.Analyze(ctx, "asdkjalksd")
	assert.ErrorIs(t, err, ErrUnrecognized)

	_, err = a.Analyze(ctx, "   ")
	assert.ErrorIs(t, err, ErrUnrecognized)

	// Бэкенд вернул метку вне словаря — тоже отказ, без угадывания.
	a = New(&FakeClassifier{Default: Classification{Label: "smalltalk"}})
	_, err = a.Analyze(ctx, "asdkjalksd")
	assert.ErrorIs(t, err, ErrUnrecognized)
}

func TestAnalyze_ClassifierFallback(t *testing.T) {
	ctx := context.Background()

	fake := &FakeClassifier{
		Responses: map[string]Classification{
			"мне бы не забыть про хлеб": {Label: "create", Slots: map[string]string{"description": "купить хлеб"}},
			"что у меня по делам":       {Label: "list"},
			"глянь пятую":               {Label: "show", Slots: map[string]string{"id": "5"}},
			"перепиши третью":           {Label: "edit", Slots: map[string]string{"task_id": "3", "title": "новый текст"}},
			"выкинь вторую":             {Label: "remove", Slots: map[string]string{"id": "2"}},
		},
	}
	a := New(fake)

	intent, err := a.Analyze(ctx, "мне бы не забыть про хлеб")
	require.NoError(t, err)
	assert.Equal(t, models.Intent{Kind: models.IntentCreate, Description: "купить хлеб"}, intent)

	intent, err = a.Analyze(ctx, "что у меня по делам")
	require.NoError(t, err)
	assert.Equal(t, models.IntentList, intent.Kind)

	intent, err = a.Analyze(ctx, "глянь пятую")
	require.NoError(t, err)
	assert.Equal(t, models.Intent{Kind: models.IntentRead, TaskID: 5}, intent)

	// Альтернативные написания слотов (task_id/title) тоже принимаются.
	intent, err = a.Analyze(ctx, "перепиши третью")
	require.NoError(t, err)
	assert.Equal(t, models.Intent{Kind: models.IntentUpdate, TaskID: 3, Description: "новый текст"}, intent)

	intent, err = a.Analyze(ctx, "выкинь вторую")
	require.NoError(t, err)
	assert.Equal(t, models.Intent{Kind: models.IntentDelete, TaskID: 2}, intent)
}

func TestAnalyze_ClassifierBadSlots(t *testing.T) {
	ctx := context.Background()

	fake := &FakeClassifier{
		Responses: map[string]Classification{
			"удали что-нибудь":  {Label: "delete", Slots: map[string]string{"id": "abc"}},
			"запиши пустоту":    {Label: "create", Slots: map[string]string{}},
			"обнови без номера": {Label: "update", Slots: map[string]string{"description": "текст"}},
		},
	}
	a := New(fake)

	for _, text := range []string{"удали что-нибудь", "запиши пустоту", "обнови без номера"} {
		_, err := a.Analyze(ctx, text)
		assert.ErrorIs(t, err, ErrInvalidArgument, "text=%q", text)
	}
}

func TestAnalyze_BackendUnavailable(t *testing.T) {
	a := New(&FakeClassifier{Err: errors.New("connection refused")})

	_, err := a.Analyze(context.Background(), "asdkjalksd")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

// Канонические формулировки не должны доходить до бэкенда вовсе.
func TestAnalyze_PatternsSkipClassifier(t *testing.T) {
	a := New(&FakeClassifier{Err: errors.New("должен остаться невызванным")})

	intent, err := a.Analyze(context.Background(), "delete task 1")
	require.NoError(t, err)
	assert.Equal(t, models.IntentDelete, intent.Kind)
}
