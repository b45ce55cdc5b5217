package services

import "encoding/json"

const notifyMessageLimit = 100

type NotifyService struct {
	NotifyType string `json:"notify_type"`
	Message    string `json:"message"`
}

// notifyPayload собирает JSON уведомления. Длинные сообщения урезаются
// по границе руны, чтобы не порвать многобайтовый символ.
func notifyPayload(notifyType, message string) ([]byte, error) {
	if len(notifyType) == 0 {
		notifyType = "info"
	}
	if runes := []rune(message); len(runes) > notifyMessageLimit {
		message = string(runes[:notifyMessageLimit]) + "..."
	}
	return json.Marshal(NotifyService{NotifyType: notifyType, Message: message})
}

// SendWsNotify - отправка уведомления пользователю через WebSocket
func SendWsNotify(userID string, notifyType string, message string) error {
	if len(message) == 0 {
		return nil
	}
	jsonData, err := notifyPayload(notifyType, message)
	if err != nil {
		return err
	}
	GlobalWSConnManager.Send(userID, jsonData)
	return nil
}
