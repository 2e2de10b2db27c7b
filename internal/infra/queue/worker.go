package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EnrichmentRunner é o contrato que o worker usa para rodar a pipeline.
// Mantém o worker desacoplado do usecase concreto.
type EnrichmentRunner interface {
	RunEnrichment(ctx context.Context, projectID string, leadIDs []string) error
}

type Worker struct {
	Channel *amqp.Channel
	Runner  EnrichmentRunner
}

func NewWorker(ch *amqp.Channel, runner EnrichmentRunner) *Worker {
	return &Worker{
		Channel: ch,
		Runner:  runner,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var job EnrichmentJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem malformada: rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Enriquecendo projeto %s (%d leads)", job.ProjectID, len(job.LeadIDs))

			if err := w.Runner.RunEnrichment(context.Background(), job.ProjectID, job.LeadIDs); err != nil {
				log.Printf("❌ [WORKER] Erro na pipeline: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Projeto %s enriquecido", job.ProjectID)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}
