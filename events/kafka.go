package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

const (
	logPrefix      = "events"
	publishTimeout = time.Second
)

type KafkaPublisher struct {
	sync.RWMutex
	producer sarama.AsyncProducer
	topic    string
	closed   bool
	drained  chan struct{}
}

// NewKafkaPublisher connects an async producer to the brokers
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Timeout = 5 * time.Second
	config.Producer.Return.Errors = true

	producer, err := sarama.NewAsyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return NewKafkaPublisherWithProducer(producer, topic), nil
}

func NewKafkaPublisherWithProducer(producer sarama.AsyncProducer, topic string) *KafkaPublisher {
	p := &KafkaPublisher{
		producer: producer,
		topic:    topic,
		drained:  make(chan struct{}),
	}
	go p.drainErrors()
	return p
}

func (p *KafkaPublisher) drainErrors() {
	defer close(p.drained)
	for perr := range p.producer.Errors() {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"topic":  perr.Msg.Topic,
			"error":  perr.Err,
		}).Error("deliver lifecycle event")
	}
}

// Publish keys the message by request id so one request's transitions stay ordered
func (p *KafkaPublisher) Publish(e LifecycleEvent) {
	value, err := json.Marshal(e)
	if err != nil {
		log.WithField("prefix", logPrefix).WithError(err).Error("marshal lifecycle event")
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(value),
	}
	if e.RequestID != "" {
		msg.Key = sarama.StringEncoder(e.RequestID)
	}

	p.RLock()
	defer p.RUnlock()
	if p.closed {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"type":   e.Type,
		}).Warn("publisher closed, drop lifecycle event")
		return
	}

	select {
	case p.producer.Input() <- msg:
	case <-time.After(publishTimeout):
		log.WithFields(log.Fields{
			"prefix":     logPrefix,
			"type":       e.Type,
			"request_id": e.RequestID,
		}).Warn("producer busy, drop lifecycle event")
	}
}

// Close flushes buffered messages and stops the producer
func (p *KafkaPublisher) Close() error {
	p.Lock()
	if p.closed {
		p.Unlock()
		return nil
	}
	p.closed = true
	p.Unlock()

	err := p.producer.Close()
	<-p.drained
	return err
}
