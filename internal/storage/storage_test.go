package storage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_AddAndGet(t *testing.T) {
	st := NewMemoryStorage()

	first, err := st.AddTask("u1", "Купить молоко")
	require.NoError(t, err)
	second, err := st.AddTask("u1", "Сдать отчет")
	require.NoError(t, err)

	// ID назначаются строго по возрастанию.
	assert.Greater(t, second.ID, first.ID)

	got, err := st.GetTask("u1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Купить молоко", got.Description)
	assert.Equal(t, "u1", got.Owner)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestMemoryStorage_OwnerIsolation(t *testing.T) {
	st := NewMemoryStorage()

	task, err := st.AddTask("u1", "Личная задача")
	require.NoError(t, err)

	_, err = st.GetTask("u2", task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = st.UpdateTask("u2", task.ID, "Взлом")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = st.DeleteTask("u2", task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// Задача владельца не пострадала.
	got, err := st.GetTask("u1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Личная задача", got.Description)
}

func TestMemoryStorage_Update(t *testing.T) {
	st := NewMemoryStorage()

	task, err := st.AddTask("u1", "Старый текст")
	require.NoError(t, err)

	updated, err := st.UpdateTask("u1", task.ID, "Новый текст")
	require.NoError(t, err)
	assert.Equal(t, "Новый текст", updated.Description)
	assert.False(t, updated.UpdatedAt.Before(task.UpdatedAt))

	_, err = st.UpdateTask("u1", 9999, "Нет такой")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestMemoryStorage_DeleteTwice(t *testing.T) {
	st := NewMemoryStorage()

	task, err := st.AddTask("u1", "Удалить меня")
	require.NoError(t, err)

	require.NoError(t, st.DeleteTask("u1", task.ID))

	// Удаление не идемпотентно: повторный вызов — ошибка.
	err = st.DeleteTask("u1", task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestMemoryStorage_ListOrderAndEmpty(t *testing.T) {
	st := NewMemoryStorage()

	empty, err := st.ListTasks("u1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	a, _ := st.AddTask("u1", "A")
	b, _ := st.AddTask("u1", "B")
	c, _ := st.AddTask("u1", "C")
	_, _ = st.AddTask("u2", "Чужая")

	tasks, err := st.ListTasks("u1")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []int{a.ID, b.ID, c.ID}, []int{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

// При конкурентных создателях дубликатов ID быть не должно.
func TestMemoryStorage_ConcurrentAdds(t *testing.T) {
	st := NewMemoryStorage()

	const n = 100
	ids := make(chan int, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := st.AddTask("u1", "конкурентная задача")
			if err != nil {
				t.Error(err)
				return
			}
			ids <- task.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "дубликат ID %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestEnsureOwned(t *testing.T) {
	st := NewMemoryStorage()
	task, err := st.AddTask("u1", "задача")
	require.NoError(t, err)

	got, err := st.GetTask("u1", task.ID)
	require.NoError(t, err)

	assert.NoError(t, EnsureOwned("u1", got))
	assert.ErrorIs(t, EnsureOwned("u2", got), ErrTaskNotFound)
	assert.ErrorIs(t, EnsureOwned("u1", nil), ErrTaskNotFound)
}
