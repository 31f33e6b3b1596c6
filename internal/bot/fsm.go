package bot

import (
	"sync"

	"github.com/google/uuid"
)

// Диалог сбора траты — явный конечный автомат. Состояние и накопленные поля
// лежат в flow и хранятся в sessions по telegram id пользователя; никакого
// глобального состояния. Переходы описаны в advance: (state, event) ->
// (next flow, action), действие исполняет Handler.

type flowState int

const (
	stateIdle flowState = iota
	stateAwaitingName
	stateAwaitingPrice
	stateAwaitingDate
	stateEditAwaitingName
	stateEditAwaitingPrice
)

// flow — состояние одного диалога плюс накопленные поля.
// Цена хранится сырой строкой: парсинг откладывается до коммита.
type flow struct {
	State flowState
	Name  string
	Price string
	TxID  uuid.UUID // только для редактирования
}

type eventKind int

const (
	evText eventKind = iota
	evStartAdd
	evStartEdit
	evPickToday
	evPickOther
)

type event struct {
	Kind eventKind
	Text string
	TxID uuid.UUID
}

type actionKind int

const (
	actNone actionKind = iota
	actHint            // текст вне диалога — подсказать клавиатуру
	actPromptName
	actPromptPrice
	actPromptDate     // inline-клавиатура "Сегодня / Другая дата"
	actPromptDateText // попросить дату текстом ДД.ММ.ГГГГ
	actCommitCreate
	actCommitEdit
)

// action — что Handler должен сделать после перехода.
type action struct {
	Kind  actionKind
	Name  string
	Price string
	Date  string // сырая строка даты; пустая при выборе "Сегодня"
	Today bool
	TxID  uuid.UUID
}

// advance выполняет один переход автомата. Чистая функция, не трогает БД.
// Старт нового диалога посреди текущего перезапускает сбор с чистого листа.
func advance(f flow, ev event) (flow, action) {
	switch ev.Kind {
	case evStartAdd:
		return flow{State: stateAwaitingName}, action{Kind: actPromptName}
	case evStartEdit:
		return flow{State: stateEditAwaitingName, TxID: ev.TxID}, action{Kind: actPromptName}
	}

	switch f.State {
	case stateAwaitingName:
		if ev.Kind != evText {
			return f, action{Kind: actNone}
		}
		return flow{State: stateAwaitingPrice, Name: ev.Text}, action{Kind: actPromptPrice}

	case stateAwaitingPrice:
		if ev.Kind != evText {
			return f, action{Kind: actNone}
		}
		return flow{State: stateAwaitingDate, Name: f.Name, Price: ev.Text}, action{Kind: actPromptDate}

	case stateAwaitingDate:
		switch ev.Kind {
		case evPickToday:
			return flow{}, action{Kind: actCommitCreate, Name: f.Name, Price: f.Price, Today: true}
		case evPickOther:
			return f, action{Kind: actPromptDateText}
		default:
			return flow{}, action{Kind: actCommitCreate, Name: f.Name, Price: f.Price, Date: ev.Text}
		}

	case stateEditAwaitingName:
		if ev.Kind != evText {
			return f, action{Kind: actNone}
		}
		return flow{State: stateEditAwaitingPrice, Name: ev.Text, TxID: f.TxID}, action{Kind: actPromptPrice}

	case stateEditAwaitingPrice:
		if ev.Kind != evText {
			return f, action{Kind: actNone}
		}
		return flow{}, action{Kind: actCommitEdit, Name: f.Name, Price: ev.Text, TxID: f.TxID}
	}

	// stateIdle: callback-события без диалога игнорируем, текст — подсказка.
	if ev.Kind == evText {
		return f, action{Kind: actHint}
	}
	return f, action{Kind: actNone}
}

// sessions хранит диалоги по telegram id. Состояния разных пользователей
// изолированы; у одного пользователя одновременно активен максимум один диалог.
type sessions struct {
	mu sync.Mutex
	m  map[int64]flow
}

func newSessions() *sessions {
	return &sessions{m: make(map[int64]flow)}
}

func (s *sessions) get(telegramID int64) flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[telegramID]
}

func (s *sessions) set(telegramID int64, f flow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.State == stateIdle {
		delete(s.m, telegramID)
		return
	}
	s.m[telegramID] = f
}
