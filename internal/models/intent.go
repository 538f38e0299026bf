package models

// IntentKind — закрытый набор операций, которые умеет выполнять бот.
// Диспетчеризация по нему всегда исчерпывающая: необработанный вариант —
// нарушение внутреннего инварианта, а не пользовательская ошибка.
type IntentKind int

const (
	IntentCreate IntentKind = iota
	IntentRead
	IntentUpdate
	IntentDelete
	IntentList
)

func (k IntentKind) String() string {
	switch k {
	case IntentCreate:
		return "create"
	case IntentRead:
		return "read"
	case IntentUpdate:
		return "update"
	case IntentDelete:
		return "delete"
	case IntentList:
		return "list"
	default:
		return "unknown"
	}
}

// Intent — структурированное представление запроса пользователя.
// Создаётся анализатором на одно сообщение и после обработки не живёт.
// Каждый вариант использует только свои поля:
//   - Create: Description
//   - Read/Delete: TaskID
//   - Update: TaskID и Description
//   - List: ничего
type Intent struct {
	Kind        IntentKind
	TaskID      int
	Description string
}

// ActionOutcome — результат успешно обработанного интента.
// Зеркалит варианты Intent и несёт затронутую задачу (или список задач
// для List) — форматтеру нужны конкретика вроде назначенного ID.
type ActionOutcome struct {
	Kind  IntentKind
	Task  *Task
	Tasks []Task
}
