package linemessaging

// Message одно текстовое сообщение LINE
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// pushRequest тело запроса LINE Messaging API push
type pushRequest struct {
	To       string    `json:"to"`
	Messages []Message `json:"messages"`
}

// errorResponse тело ответа LINE API при ошибке
type errorResponse struct {
	Message string `json:"message"`
}

// NewTextMessage создает текстовое сообщение
func NewTextMessage(text string) Message {
	return Message{Type: "text", Text: text}
}
