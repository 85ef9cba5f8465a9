package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет HTML-письмо
	Send(to, subject, htmlBody string) error
}
