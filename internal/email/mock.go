package email

import (
	"sync"

	"gamemate_backend/internal/logger"
)

// SentEmail - письмо, перехваченное мок-провайдером
type SentEmail struct {
	To       string
	Subject  string
	HTMLBody string
}

// MockProvider не отправляет ничего, только логирует и запоминает.
// Используется в тестах и когда email в конфиге выключен.
type MockProvider struct {
	mu   sync.Mutex
	Sent []SentEmail
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(to, subject, htmlBody string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Sent = append(p.Sent, SentEmail{To: to, Subject: subject, HTMLBody: htmlBody})
	logger.Info("mock email captured", "to", to, "subject", subject)
	return nil
}

// SentCount - сколько писем перехвачено (потокобезопасно, отправка
// идет из горутины)
func (p *MockProvider) SentCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Sent)
}

// LastSent возвращает последнее перехваченное письмо
func (p *MockProvider) LastSent() (SentEmail, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Sent) == 0 {
		return SentEmail{}, false
	}
	return p.Sent[len(p.Sent)-1], true
}
