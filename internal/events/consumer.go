package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
)

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SupportNotifier получает сообщения о бронированиях, требующих ручной очистки
type SupportNotifier interface {
	NotifyCompensationFailed(evt CompensationFailed) error
}

// NewGoChannel in-process pub/sub
func NewGoChannel(bufferSize int64, logger Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: bufferSize,
	}, NewWatermillLogger(logger))
}

// NewRouter регистрирует обработчики событий бронирования
func NewRouter(sub message.Subscriber, notifier SupportNotifier, logger Logger) (*message.Router, error) {
	wmLogger := NewWatermillLogger(logger)

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("events: failed to create router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)

	router.AddNoPublisherHandler(
		"support_notifier",
		TopicCompensationFailed,
		sub,
		func(msg *message.Message) error {
			var evt CompensationFailed
			if err := json.Unmarshal(msg.Payload, &evt); err != nil {
				// битое сообщение не переотправляем
				logger.Error("events: malformed %s message %s: %v", TopicCompensationFailed, msg.UUID, err)
				return nil
			}
			return notifier.NotifyCompensationFailed(evt)
		},
	)

	for _, topic := range []string{TopicBookingCreated, TopicBookingCancelled, TopicBookingApproved} {
		topic := topic
		router.AddNoPublisherHandler(
			"journal_"+topic,
			topic,
			sub,
			func(msg *message.Message) error {
				logger.Info("events: %s %s occurred_at=%s payload=%s",
					topic, msg.UUID, msg.Metadata.Get(metadataEventOccurredAt), string(msg.Payload))
				return nil
			},
		)
	}

	return router, nil
}

// LogNotifier пишет в лог сообщение для поддержки
type LogNotifier struct {
	logger Logger
}

// NewLogNotifier создает уведомитель поддержки
func NewLogNotifier(logger Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyCompensationFailed сообщает о бронировании, оставшемся после неудачного отката
func (n *LogNotifier) NotifyCompensationFailed(evt CompensationFailed) error {
	n.logger.Error("SUPPORT: booking id=%d needs manual cleanup, %s failed at %s: %s",
		evt.BookingID, evt.Action, evt.OccurredAt.Format(time.RFC3339), evt.Reason)
	return nil
}

// watermillLogger адаптер printf-логгера к watermill.LoggerAdapter
type watermillLogger struct {
	logger Logger
	fields watermill.LogFields
}

// NewWatermillLogger оборачивает логгер сервиса для watermill
func NewWatermillLogger(logger Logger) watermill.LoggerAdapter {
	return &watermillLogger{logger: logger}
}

func (l *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Error("watermill: %s: %v %v", msg, err, l.merge(fields))
}

func (l *watermillLogger) Info(msg string, fields watermill.LogFields) {
	l.logger.Info("watermill: %s %v", msg, l.merge(fields))
}

func (l *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debug("watermill: %s %v", msg, l.merge(fields))
}

func (l *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	l.logger.Debug("watermill: %s %v", msg, l.merge(fields))
}

func (l *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{logger: l.logger, fields: l.merge(fields)}
}

func (l *watermillLogger) merge(fields watermill.LogFields) watermill.LogFields {
	if len(l.fields) == 0 {
		return fields
	}
	return l.fields.Add(fields)
}
