package handlers

import "devforum/services"

const ServiceName = "devforum"

// API держит все сервисы приложения. Хендлеры - методы на нем,
// так что глобальное состояние сторов остается внутри сервисов.
type API struct {
	Sessions  *services.SessionService
	Forum     *services.ForumService
	Chat      *services.ChatService
	Todos     *services.TodoService
	Assistant *services.AssistantService
	Views     *services.ViewCounterService
	WS        *services.WSConnManager
}

func NewAPI(
	sessions *services.SessionService,
	forum *services.ForumService,
	chat *services.ChatService,
	todos *services.TodoService,
	assistant *services.AssistantService,
	views *services.ViewCounterService,
	ws *services.WSConnManager,
) *API {
	return &API{
		Sessions:  sessions,
		Forum:     forum,
		Chat:      chat,
		Todos:     todos,
		Assistant: assistant,
		Views:     views,
		WS:        ws,
	}
}
