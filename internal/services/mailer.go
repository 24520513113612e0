package services

import (
	"log"
	"sync"

	"gopkg.in/gomail.v2"
)

// Notifier sends a one-way message to an address. Delivery is best-effort:
// failures are logged and never surfaced to the caller.
type Notifier interface {
	Notify(to, subject, body string)
}

// Mailer is a Notifier backed by a pool of SMTP delivery workers.
type Mailer interface {
	Notifier
	Start()
	Stop()
}

type mailMessage struct {
	to      string
	subject string
	body    string
}

type smtpMailer struct {
	dialer   *gomail.Dialer
	from     string
	queue    chan mailMessage
	workers  int
	wg       sync.WaitGroup
	stopChan chan struct{}
}

func NewSMTPMailer(host string, port int, username, password, from string, workers int) Mailer {
	if workers < 1 {
		workers = 1
	}

	return &smtpMailer{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		queue:    make(chan mailMessage, 100),
		workers:  workers,
		stopChan: make(chan struct{}),
	}
}

// Start implements Mailer.
func (m *smtpMailer) Start() {
	log.Printf("🚀 Starting mailer with %d delivery workers\n", m.workers)

	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go m.deliverLoop(i + 1)
	}
}

// Stop implements Mailer.
func (m *smtpMailer) Stop() {
	log.Println("🛑 Stopping mailer...")
	close(m.stopChan)
	m.wg.Wait()
	log.Println("✅ Mailer stopped")
}

// Notify implements Notifier. Messages that cannot be queued are dropped;
// notification delivery never blocks or fails the owning operation.
func (m *smtpMailer) Notify(to, subject, body string) {
	msg := mailMessage{to: to, subject: subject, body: body}

	select {
	case m.queue <- msg:
	case <-m.stopChan:
		log.Printf("⚠️  Mailer stopped, dropping message to %s\n", to)
	default:
		log.Printf("⚠️  Mail queue full, dropping message to %s\n", to)
	}
}

func (m *smtpMailer) deliverLoop(workerID int) {
	defer m.wg.Done()

	for {
		select {
		case <-m.stopChan:
			return
		case msg := <-m.queue:
			if err := m.send(msg); err != nil {
				log.Printf("❌ Mail worker #%d failed to send to %s: %v\n", workerID, msg.to, err)
			} else {
				log.Printf("📧 Mail worker #%d sent %q to %s\n", workerID, msg.subject, msg.to)
			}
		}
	}
}

func (m *smtpMailer) send(msg mailMessage) error {
	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", msg.to)
	mail.SetHeader("Subject", msg.subject)
	mail.SetBody("text/plain", msg.body)

	return m.dialer.DialAndSend(mail)
}
